// Package remix implements the tile remix pipeline: random crops from a
// source image are rescaled and composited back onto a canvas, one frame at
// a time.
//
// Placement policy: every tile is pasted so its center lands on a placement
// point. For a single tile the placement point is the center of the crop
// rectangle itself, so the magnified tile grows in place. For layered
// composites each tile gets an independently drawn placement point, uniform
// over the canvas. Tiles whose bounding box extends past the canvas are
// clipped, never rejected or re-rolled.
package remix

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"math/rand"

	"github.com/disintegration/imaging"

	"github.com/ioudine/tiler-the-creator/internal/imgio"
)

var (
	// ErrInvalidTileSize reports tile dimensions outside [1, source size].
	ErrInvalidTileSize = errors.New("invalid tile size")
	// ErrInvalidRange reports a malformed scale range or a negative count.
	ErrInvalidRange = errors.New("invalid range")
)

// Options control tile sampling and placement for one invocation.
type Options struct {
	TileWidth  int
	TileHeight int
	MinScale   float64
	MaxScale   float64
	Filter     imgio.Filter
	// Background fills the canvas when set. When nil the canvas starts as
	// an alpha-preserving copy of the source image.
	Background *color.NRGBA
	// Verbose logs one record per placed tile.
	Verbose bool
}

func (o Options) validate(srcW, srcH int) error {
	if o.TileWidth < 1 || o.TileHeight < 1 {
		return fmt.Errorf("%w: %dx%d (tiles must be at least 1x1)", ErrInvalidTileSize, o.TileWidth, o.TileHeight)
	}
	if o.TileWidth > srcW || o.TileHeight > srcH {
		return fmt.Errorf("%w: %dx%d exceeds source %dx%d", ErrInvalidTileSize, o.TileWidth, o.TileHeight, srcW, srcH)
	}
	if o.MinScale <= 0 || o.MinScale > o.MaxScale {
		return fmt.Errorf("%w: scale [%g, %g]", ErrInvalidRange, o.MinScale, o.MaxScale)
	}
	return nil
}

// TileSizeFromFraction derives a square tile edge from the smaller source
// dimension, the default when no explicit tile size is given.
func TileSizeFromFraction(srcW, srcH int, fraction float64) int {
	short := srcW
	if srcH < short {
		short = srcH
	}
	return int(math.Round(float64(short) * fraction))
}

// tile is one sampled crop together with where it goes on the canvas.
type tile struct {
	img    *image.NRGBA
	origin image.Point // crop origin in the source
	center image.Point // placement point on the canvas
	scale  float64
}

// sampleTile picks a crop origin uniformly so the tile rectangle stays fully
// inside the source, then rescales the crop by a factor drawn from
// [MinScale, MaxScale]. Draw order: origin x, origin y, scale.
func sampleTile(src image.Image, opt Options, rng *rand.Rand) tile {
	b := src.Bounds()
	left := rng.Intn(b.Dx() - opt.TileWidth + 1)
	top := rng.Intn(b.Dy() - opt.TileHeight + 1)
	scale := opt.MinScale + rng.Float64()*(opt.MaxScale-opt.MinScale)

	rect := image.Rect(left, top, left+opt.TileWidth, top+opt.TileHeight).Add(b.Min)
	crop := imaging.Crop(src, rect)
	w := scaledDim(opt.TileWidth, scale)
	h := scaledDim(opt.TileHeight, scale)
	return tile{
		img:    imaging.Resize(crop, w, h, opt.Filter.Resample()),
		origin: image.Pt(left, top),
		center: image.Pt(left+opt.TileWidth/2, top+opt.TileHeight/2),
		scale:  scale,
	}
}

func scaledDim(n int, scale float64) int {
	v := int(math.Round(float64(n) * scale))
	if v < 1 {
		v = 1
	}
	return v
}

// newCanvas returns the compositing base: a solid fill when a background
// color was supplied, otherwise a copy of the source with its alpha intact.
func newCanvas(src image.Image, bg *color.NRGBA) *image.NRGBA {
	if bg != nil {
		b := src.Bounds()
		return imaging.New(b.Dx(), b.Dy(), *bg)
	}
	return imaging.Clone(src)
}

// paste composites t onto canvas centered on its placement point, source-over.
func paste(canvas *image.NRGBA, t tile) *image.NRGBA {
	pos := image.Pt(t.center.X-t.img.Bounds().Dx()/2, t.center.Y-t.img.Bounds().Dy()/2)
	return imaging.Overlay(canvas, t.img, pos, 1.0)
}

// BuildSingle samples one tile and composites it back centered on its own
// crop rectangle.
func BuildSingle(src image.Image, opt Options, rng *rand.Rand) (*image.NRGBA, error) {
	b := src.Bounds()
	if err := opt.validate(b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	t := sampleTile(src, opt, rng)
	if opt.Verbose {
		logTile(0, t)
	}
	return paste(newCanvas(src, opt.Background), t), nil
}

// BuildLayers layers count tiles onto one canvas in generation order; later
// tiles overdraw earlier ones. Per tile the draw order is origin, scale, then
// placement point. A count of zero returns the untouched canvas.
func BuildLayers(src image.Image, count int, opt Options, rng *rand.Rand) (*image.NRGBA, error) {
	b := src.Bounds()
	if err := opt.validate(b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: tile count %d", ErrInvalidRange, count)
	}
	canvas := newCanvas(src, opt.Background)
	for i := 0; i < count; i++ {
		t := sampleTile(src, opt, rng)
		t.center = image.Pt(rng.Intn(b.Dx()), rng.Intn(b.Dy()))
		if opt.Verbose {
			logTile(i, t)
		}
		canvas = paste(canvas, t)
	}
	return canvas, nil
}

// BuildFrames renders frames independent canvases of tilesPerFrame tiles
// each. Every frame draws one seed from the root stream and composes from a
// stream seeded with it, so a single root seed reproduces the whole sequence.
func BuildFrames(src image.Image, frames, tilesPerFrame int, opt Options, rng *rand.Rand) ([]image.Image, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("%w: frame count %d", ErrInvalidRange, frames)
	}
	out := make([]image.Image, 0, frames)
	for fi := 0; fi < frames; fi++ {
		frameRNG := rand.New(rand.NewSource(rng.Int63()))
		frame, err := BuildLayers(src, tilesPerFrame, opt, frameRNG)
		if err != nil {
			return nil, err
		}
		if opt.Verbose {
			log.Printf("frame %d/%d composed", fi+1, frames)
		}
		out = append(out, frame)
	}
	return out, nil
}

func logTile(i int, t tile) {
	log.Printf("tile#%d: origin=(%d,%d) scale=%.3f size=%dx%d center=(%d,%d)",
		i, t.origin.X, t.origin.Y, t.scale,
		t.img.Bounds().Dx(), t.img.Bounds().Dy(), t.center.X, t.center.Y)
}
