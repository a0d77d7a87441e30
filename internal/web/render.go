package web

import (
	"bytes"
	"fmt"
	"image"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/ioudine/tiler-the-creator/internal/gallery"
	"github.com/ioudine/tiler-the-creator/internal/imgio"
	"github.com/ioudine/tiler-the-creator/internal/mono"
	"github.com/ioudine/tiler-the-creator/internal/remix"
	"github.com/ioudine/tiler-the-creator/internal/upscale"
)

const maxUploadBytes = 32 << 20

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.renderPage(w, ViewModel{Error: "bad form: " + err.Error()})
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		s.renderPage(w, ViewModel{Error: "an input image is required"})
		return
	}
	defer file.Close()
	img, err := imaging.Decode(file)
	if err != nil {
		s.renderPage(w, ViewModel{Error: "decode image: " + err.Error()})
		return
	}

	data, mime, err := s.render(r, img)
	if err != nil {
		s.renderPage(w, ViewModel{Error: err.Error()})
		return
	}
	id := s.Store.Put(gallery.Rendering{Data: data, MIME: mime})
	s.renderPage(w, ViewModel{ResultURL: "/image/" + id})
}

func (s *Server) render(r *http.Request, img image.Image) ([]byte, string, error) {
	mode := r.FormValue("mode")
	switch mode {
	case "single", "layers", "gif":
		return s.renderRemix(r, img, mode)
	case "upscale":
		return s.renderUpscale(r, img)
	case "mono":
		return s.renderMono(r, img)
	}
	return nil, "", fmt.Errorf("unknown mode %q", mode)
}

func (s *Server) renderRemix(r *http.Request, img image.Image, mode string) ([]byte, string, error) {
	img, err := preScale(r, img)
	if err != nil {
		return nil, "", err
	}

	defaultFraction := 0.2
	if mode == "single" {
		defaultFraction = 0.25
	}
	fraction, err := formFloat(r, "tile-size", defaultFraction)
	if err != nil {
		return nil, "", err
	}
	tw, err := formInt(r, "tile-width", 0)
	if err != nil {
		return nil, "", err
	}
	th, err := formInt(r, "tile-height", 0)
	if err != nil {
		return nil, "", err
	}
	b := img.Bounds()
	if tw == 0 || th == 0 {
		base := remix.TileSizeFromFraction(b.Dx(), b.Dy(), fraction)
		if tw == 0 {
			tw = base
		}
		if th == 0 {
			th = base
		}
	}
	minScale, err := formFloat(r, "min-scale", 1.2)
	if err != nil {
		return nil, "", err
	}
	maxScale, err := formFloat(r, "max-scale", 1.6)
	if err != nil {
		return nil, "", err
	}
	filter, err := imgio.ParseFilter(formDefault(r, "filter", "lanczos"))
	if err != nil {
		return nil, "", err
	}
	opt := remix.Options{
		TileWidth:  tw,
		TileHeight: th,
		MinScale:   minScale,
		MaxScale:   maxScale,
		Filter:     filter,
	}
	if bg := strings.TrimSpace(r.FormValue("background")); bg != "" {
		c, err := imgio.ParseColor(bg)
		if err != nil {
			return nil, "", err
		}
		opt.Background = &c
	}
	rng, err := formRNG(r)
	if err != nil {
		return nil, "", err
	}

	switch mode {
	case "single":
		out, err := remix.BuildSingle(img, opt, rng)
		if err != nil {
			return nil, "", err
		}
		return encodePNG(out)
	case "layers":
		count, err := formInt(r, "count", 5)
		if err != nil {
			return nil, "", err
		}
		out, err := remix.BuildLayers(img, count, opt, rng)
		if err != nil {
			return nil, "", err
		}
		return encodePNG(out)
	default: // gif
		frames, err := formInt(r, "frames", 12)
		if err != nil {
			return nil, "", err
		}
		tiles, err := formInt(r, "tiles", 6)
		if err != nil {
			return nil, "", err
		}
		fps, err := formInt(r, "fps", 6)
		if err != nil {
			return nil, "", err
		}
		if fps <= 0 {
			return nil, "", fmt.Errorf("fps must be positive; got %d", fps)
		}
		seq, err := remix.BuildFrames(img, frames, tiles, opt, rng)
		if err != nil {
			return nil, "", err
		}
		var buf bytes.Buffer
		if err := imgio.EncodeGIF(&buf, seq, fps); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/gif", nil
	}
}

func (s *Server) renderUpscale(r *http.Request, img image.Image) ([]byte, string, error) {
	width, err := formInt(r, "width", 0)
	if err != nil {
		return nil, "", err
	}
	height, err := formInt(r, "height", 0)
	if err != nil {
		return nil, "", err
	}
	scale, err := formFloat(r, "scale", 0)
	if err != nil {
		return nil, "", err
	}
	b := img.Bounds()
	w, h, err := upscale.TargetSize(b.Dx(), b.Dy(), width, height, scale)
	if err != nil {
		return nil, "", err
	}
	mode, err := upscale.ParseMode(formDefault(r, "upscale-mode", "fit"))
	if err != nil {
		return nil, "", err
	}
	filter, err := imgio.ParseFilter(formDefault(r, "filter", "lanczos"))
	if err != nil {
		return nil, "", err
	}
	bg, err := imgio.ParseColor(formDefault(r, "background", "#000000"))
	if err != nil {
		return nil, "", err
	}
	out, err := upscale.Upscale(img, w, h, mode, filter, bg)
	if err != nil {
		return nil, "", err
	}
	return encodePNG(out)
}

func (s *Server) renderMono(r *http.Request, img image.Image) ([]byte, string, error) {
	threshold, err := formInt(r, "threshold", -1)
	if err != nil {
		return nil, "", err
	}
	out, err := mono.Convert(img, threshold)
	if err != nil {
		return nil, "", err
	}
	return encodePNG(out)
}

// preScale applies the optional input rescale exactly like the CLI flags.
func preScale(r *http.Request, img image.Image) (image.Image, error) {
	inW, err := formInt(r, "input-width", 0)
	if err != nil {
		return nil, err
	}
	inH, err := formInt(r, "input-height", 0)
	if err != nil {
		return nil, err
	}
	inScale, err := formFloat(r, "input-scale", 0)
	if err != nil {
		return nil, err
	}
	if inW == 0 && inH == 0 && inScale == 0 {
		return img, nil
	}
	filter, err := imgio.ParseFilter(formDefault(r, "input-filter", "lanczos"))
	if err != nil {
		return nil, err
	}
	return upscale.Rescale(img, inW, inH, inScale, filter)
}

func encodePNG(img image.Image) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "image/png", nil
}

func formRNG(r *http.Request) (*rand.Rand, error) {
	seed, err := formInt64(r, "seed", -1)
	if err != nil {
		return nil, err
	}
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), nil
}

// Empty fields fall back to their defaults, matching the CLI flag defaults.
func formInt(r *http.Request, name string, def int) (int, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: not a whole number: %q", name, v)
	}
	return n, nil
}

func formInt64(r *http.Request, name string, def int64) (int64, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a whole number: %q", name, v)
	}
	return n, nil
}

func formFloat(r *http.Request, name string, def float64) (float64, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %q", name, v)
	}
	return n, nil
}

func formDefault(r *http.Request, name, def string) string {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return def
	}
	return v
}
