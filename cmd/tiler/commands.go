package main

import (
	"fmt"
	"image"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/disintegration/imaging"

	"github.com/ioudine/tiler-the-creator/internal/gallery"
	"github.com/ioudine/tiler-the-creator/internal/imgio"
	"github.com/ioudine/tiler-the-creator/internal/mono"
	"github.com/ioudine/tiler-the-creator/internal/remix"
	"github.com/ioudine/tiler-the-creator/internal/sheet"
	"github.com/ioudine/tiler-the-creator/internal/upscale"
	"github.com/ioudine/tiler-the-creator/internal/web"
)

// tileFlags are shared by every command that samples tiles.
type tileFlags struct {
	TileWidth  int     `help:"Tile width in pixels."`
	TileHeight int     `help:"Tile height in pixels."`
	MinScale   float64 `default:"1.2" help:"Lower bound of the random tile scale."`
	MaxScale   float64 `default:"1.6" help:"Upper bound of the random tile scale."`
	Seed       int64   `default:"-1" help:"Random seed; negative picks a fresh one."`
	Background string  `help:"Canvas color (#rgb or #rrggbb); preserves source alpha when omitted."`
	Filter     string  `default:"lanczos" enum:"nearest,bilinear,bicubic,lanczos" help:"Tile resampling filter."`
	Verbose    bool    `help:"Log every tile placement."`

	InputWidth  int     `help:"Pre-scale the source to this width (with --input-height)."`
	InputHeight int     `help:"Pre-scale the source to this height (with --input-width)."`
	InputScale  float64 `help:"Pre-scale the source by a uniform factor."`
	InputFilter string  `default:"lanczos" enum:"nearest,bilinear,bicubic,lanczos" help:"Pre-scale resampling filter."`
}

func (f tileFlags) rng() *rand.Rand {
	seed := f.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// loadSource opens the input image and applies the optional pre-scale.
func (f tileFlags) loadSource(path string) (image.Image, error) {
	img, err := imgio.Load(path)
	if err != nil {
		return nil, err
	}
	if f.InputScale == 0 && f.InputWidth == 0 && f.InputHeight == 0 {
		return img, nil
	}
	filter, err := imgio.ParseFilter(f.InputFilter)
	if err != nil {
		return nil, err
	}
	return upscale.Rescale(img, f.InputWidth, f.InputHeight, f.InputScale, filter)
}

// options resolves the shared flags against the (pre-scaled) source size.
func (f tileFlags) options(img image.Image, fraction float64) (remix.Options, error) {
	b := img.Bounds()
	tw, th := f.TileWidth, f.TileHeight
	if tw == 0 || th == 0 {
		base := remix.TileSizeFromFraction(b.Dx(), b.Dy(), fraction)
		if tw == 0 {
			tw = base
		}
		if th == 0 {
			th = base
		}
	}
	filter, err := imgio.ParseFilter(f.Filter)
	if err != nil {
		return remix.Options{}, err
	}
	opt := remix.Options{
		TileWidth:  tw,
		TileHeight: th,
		MinScale:   f.MinScale,
		MaxScale:   f.MaxScale,
		Filter:     filter,
		Verbose:    f.Verbose,
	}
	if f.Background != "" {
		bg, err := imgio.ParseColor(f.Background)
		if err != nil {
			return remix.Options{}, err
		}
		opt.Background = &bg
	}
	return opt, nil
}

// SingleCmd composites one magnified tile back onto the canvas, centered on
// its own crop rectangle.
type SingleCmd struct {
	Input    string  `arg:"" type:"existingfile" help:"Source image."`
	Output   string  `arg:"" help:"Destination file."`
	TileSize float64 `default:"0.25" help:"Tile edge as a fraction of the smaller source dimension."`
	tileFlags
}

func (c *SingleCmd) Run() error {
	img, err := c.loadSource(c.Input)
	if err != nil {
		return err
	}
	opt, err := c.options(img, c.TileSize)
	if err != nil {
		return err
	}
	out, err := remix.BuildSingle(img, opt, c.rng())
	if err != nil {
		return err
	}
	if err := imgio.Save(out, c.Output); err != nil {
		return err
	}
	log.Printf("saved single tile remix -> %s", c.Output)
	return nil
}

// LayersCmd layers several magnified tiles onto one canvas.
type LayersCmd struct {
	Input    string  `arg:"" type:"existingfile" help:"Source image."`
	Output   string  `arg:"" help:"Destination file."`
	Count    int     `default:"5" help:"Number of tiles to layer."`
	TileSize float64 `default:"0.2" help:"Tile edge as a fraction of the smaller source dimension."`
	tileFlags
}

func (c *LayersCmd) Run() error {
	img, err := c.loadSource(c.Input)
	if err != nil {
		return err
	}
	opt, err := c.options(img, c.TileSize)
	if err != nil {
		return err
	}
	out, err := remix.BuildLayers(img, c.Count, opt, c.rng())
	if err != nil {
		return err
	}
	if err := imgio.Save(out, c.Output); err != nil {
		return err
	}
	log.Printf("saved layered remix with %d tiles -> %s", c.Count, c.Output)
	return nil
}

// GIFCmd animates layered tile frames into a GIF.
type GIFCmd struct {
	Input    string  `arg:"" type:"existingfile" help:"Source image."`
	Output   string  `arg:"" help:"Destination GIF."`
	Frames   int     `default:"12" help:"Number of frames."`
	Tiles    int     `default:"6" help:"Tiles per frame."`
	FPS      int     `default:"6" name:"fps" help:"Frames per second."`
	TileSize float64 `default:"0.2" help:"Tile edge as a fraction of the smaller source dimension."`
	tileFlags
}

func (c *GIFCmd) Run() error {
	format, err := imaging.FormatFromFilename(c.Output)
	if err != nil {
		return fmt.Errorf("output %s: %w", c.Output, err)
	}
	if format != imaging.GIF {
		return fmt.Errorf("output %s: animation requires a .gif extension", c.Output)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive; got %d", c.FPS)
	}
	img, err := c.loadSource(c.Input)
	if err != nil {
		return err
	}
	opt, err := c.options(img, c.TileSize)
	if err != nil {
		return err
	}
	frames, err := remix.BuildFrames(img, c.Frames, c.Tiles, opt, c.rng())
	if err != nil {
		return err
	}
	if err := imgio.SaveGIF(frames, c.Output, c.FPS); err != nil {
		return err
	}
	log.Printf("saved animation with %d frames -> %s", c.Frames, c.Output)
	return nil
}

// UpscaleCmd resizes an image to a target size under an aspect-ratio policy.
type UpscaleCmd struct {
	Input      string  `arg:"" type:"existingfile" help:"Source image."`
	Output     string  `arg:"" help:"Destination file."`
	Width      int     `help:"Target width in pixels (requires --height)."`
	Height     int     `help:"Target height in pixels (requires --width)."`
	Scale      float64 `help:"Uniform scale factor; alternative to --width/--height."`
	Mode       string  `default:"fit" enum:"fit,fill,stretch" help:"stretch forces the size, fit pads, fill crops."`
	Filter     string  `default:"lanczos" enum:"nearest,bilinear,bicubic,lanczos" help:"Resampling filter."`
	Background string  `default:"#000000" help:"Padding color for fit mode."`
}

func (c *UpscaleCmd) Run() error {
	img, err := imgio.Load(c.Input)
	if err != nil {
		return err
	}
	b := img.Bounds()
	w, h, err := upscale.TargetSize(b.Dx(), b.Dy(), c.Width, c.Height, c.Scale)
	if err != nil {
		return err
	}
	if w < b.Dx() || h < b.Dy() {
		log.Printf("warning: target %dx%d downsamples the %dx%d input", w, h, b.Dx(), b.Dy())
	}
	mode, err := upscale.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	filter, err := imgio.ParseFilter(c.Filter)
	if err != nil {
		return err
	}
	bg, err := imgio.ParseColor(c.Background)
	if err != nil {
		return err
	}
	out, err := upscale.Upscale(img, w, h, mode, filter, bg)
	if err != nil {
		return err
	}
	if err := imgio.Save(out, c.Output); err != nil {
		return err
	}
	log.Printf("upscaled image saved -> %s (%dx%d, mode=%s, filter=%s)", c.Output, w, h, c.Mode, c.Filter)
	return nil
}

// SheetCmd renders tile frames as a PDF contact sheet.
type SheetCmd struct {
	Input    string  `arg:"" type:"existingfile" help:"Source image."`
	Output   string  `arg:"" help:"Destination PDF."`
	Frames   int     `default:"12" help:"Number of frames."`
	Tiles    int     `default:"6" help:"Tiles per frame."`
	Cols     int     `default:"3" help:"Thumbnails per row."`
	Title    string  `help:"Sheet title; defaults to the input path."`
	TileSize float64 `default:"0.2" help:"Tile edge as a fraction of the smaller source dimension."`
	tileFlags
}

func (c *SheetCmd) Run() error {
	img, err := c.loadSource(c.Input)
	if err != nil {
		return err
	}
	opt, err := c.options(img, c.TileSize)
	if err != nil {
		return err
	}
	frames, err := remix.BuildFrames(img, c.Frames, c.Tiles, opt, c.rng())
	if err != nil {
		return err
	}
	title := c.Title
	if title == "" {
		title = c.Input
	}
	pdf, err := sheet.Generate(frames, title, c.Cols)
	if err != nil {
		return err
	}
	if err := imgio.WriteFile(c.Output, pdf); err != nil {
		return err
	}
	log.Printf("saved contact sheet with %d frames -> %s", c.Frames, c.Output)
	return nil
}

// MonoCmd converts an image to grayscale, optionally binarized.
type MonoCmd struct {
	Input     string `arg:"" type:"existingfile" help:"Source image."`
	Output    string `arg:"" help:"Destination file."`
	Threshold int    `default:"-1" help:"0-255 binarization cutoff; negative keeps grayscale."`
}

func (c *MonoCmd) Run() error {
	img, err := imgio.Load(c.Input)
	if err != nil {
		return err
	}
	out, err := mono.Convert(img, c.Threshold)
	if err != nil {
		return err
	}
	if err := imgio.Save(out, c.Output); err != nil {
		return err
	}
	log.Printf("saved mono conversion -> %s", c.Output)
	return nil
}

// ServeCmd runs the browser front-end.
type ServeCmd struct {
	Addr string        `default:":8080" help:"Listen address."`
	TTL  time.Duration `default:"5m" help:"How long rendered outputs stay downloadable."`
}

func (c *ServeCmd) Run() error {
	srv := web.NewServer(gallery.NewStore(c.TTL))
	log.Printf("listening on http://localhost%s", c.Addr)
	return http.ListenAndServe(c.Addr, srv.Routes())
}
