package upscale

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/ioudine/tiler-the-creator/internal/imgio"
)

var (
	red   = color.NRGBA{R: 200, G: 30, B: 30, A: 255}
	black = color.NRGBA{A: 255}
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	return imaging.New(w, h, c)
}

func TestTargetSize(t *testing.T) {
	for _, tc := range []struct {
		name          string
		width, height int
		scale         float64
		wantW, wantH  int
		wantErr       error
	}{
		{name: "scale doubles", scale: 2, wantW: 200, wantH: 100},
		{name: "scale rounds", scale: 1.5, wantW: 150, wantH: 75},
		{name: "explicit dims", width: 320, height: 240, wantW: 320, wantH: 240},
		{name: "scale and dims together", width: 320, height: 240, scale: 2, wantErr: ErrMissingOption},
		{name: "width without height", width: 320, wantErr: ErrMissingOption},
		{name: "height without width", height: 240, wantErr: ErrMissingOption},
		{name: "negative scale", scale: -1, wantErr: ErrInvalidDimension},
		{name: "negative width", width: -5, height: 10, wantErr: ErrInvalidDimension},
	} {
		w, h, err := TargetSize(100, 50, tc.width, tc.height, tc.scale)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("%s: err = %v, want %v", tc.name, err, tc.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if w != tc.wantW || h != tc.wantH {
			t.Errorf("%s: got %dx%d, want %dx%d", tc.name, w, h, tc.wantW, tc.wantH)
		}
	}
}

func TestUpscale_StretchIgnoresAspect(t *testing.T) {
	src := solidImage(100, 50, red)
	out, err := Upscale(src, 80, 80, ModeStretch, imgio.FilterNearest, black)
	if err != nil {
		t.Fatalf("Upscale: %v", err)
	}
	if got := out.Bounds(); got.Dx() != 80 || got.Dy() != 80 {
		t.Errorf("output %dx%d, want exactly 80x80", got.Dx(), got.Dy())
	}
	if got := out.NRGBAAt(40, 40); got != red {
		t.Errorf("center pixel %v, want %v", got, red)
	}
}

func TestUpscale_FitPadsWithBackground(t *testing.T) {
	// 2:1 source into a square target: 80x40 centered, 20px bands above and below.
	src := solidImage(100, 50, red)
	out, err := Upscale(src, 80, 80, ModeFit, imgio.FilterNearest, black)
	if err != nil {
		t.Fatalf("Upscale: %v", err)
	}
	if got := out.Bounds(); got.Dx() != 80 || got.Dy() != 80 {
		t.Errorf("output %dx%d, want exactly 80x80", got.Dx(), got.Dy())
	}
	if got := out.NRGBAAt(40, 5); got != black {
		t.Errorf("padding pixel %v, want background %v", got, black)
	}
	if got := out.NRGBAAt(40, 40); got != red {
		t.Errorf("image pixel %v, want %v", got, red)
	}
}

func TestUpscale_FillCropsToCover(t *testing.T) {
	src := solidImage(100, 50, red)
	out, err := Upscale(src, 80, 80, ModeFill, imgio.FilterNearest, black)
	if err != nil {
		t.Fatalf("Upscale: %v", err)
	}
	if got := out.Bounds(); got.Dx() != 80 || got.Dy() != 80 {
		t.Errorf("output %dx%d, want exactly 80x80", got.Dx(), got.Dy())
	}
	for _, p := range []image.Point{{0, 0}, {79, 79}, {40, 40}} {
		if got := out.NRGBAAt(p.X, p.Y); got != red {
			t.Errorf("pixel %v = %v, want %v (fill leaves no padding)", p, got, red)
		}
	}
}

func TestUpscale_InvalidTarget(t *testing.T) {
	src := solidImage(10, 10, red)
	if _, err := Upscale(src, 0, 10, ModeStretch, imgio.FilterNearest, black); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("err = %v, want ErrInvalidDimension", err)
	}
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"fit", "fill", "stretch"} {
		if _, err := ParseMode(name); err != nil {
			t.Errorf("ParseMode(%q): %v", name, err)
		}
	}
	if _, err := ParseMode("cover"); err == nil {
		t.Error("ParseMode(cover) should fail")
	}
}

func TestRescale(t *testing.T) {
	src := solidImage(100, 50, red)

	out, err := Rescale(src, 0, 0, 0.5, imgio.FilterNearest)
	if err != nil {
		t.Fatalf("Rescale: %v", err)
	}
	if got := out.Bounds(); got.Dx() != 50 || got.Dy() != 25 {
		t.Errorf("scaled to %dx%d, want 50x25", got.Dx(), got.Dy())
	}

	out, err = Rescale(src, 30, 40, 0, imgio.FilterNearest)
	if err != nil {
		t.Fatalf("Rescale: %v", err)
	}
	if got := out.Bounds(); got.Dx() != 30 || got.Dy() != 40 {
		t.Errorf("scaled to %dx%d, want 30x40", got.Dx(), got.Dy())
	}

	if same, err := Rescale(src, 0, 0, 0, imgio.FilterNearest); err != nil || same != image.Image(src) {
		t.Errorf("all-zero rescale should return the input unchanged (err=%v)", err)
	}

	if _, err := Rescale(src, 30, 40, 2, imgio.FilterNearest); !errors.Is(err, ErrMissingOption) {
		t.Errorf("scale with dims: err = %v, want ErrMissingOption", err)
	}
	if _, err := Rescale(src, 30, 0, 0, imgio.FilterNearest); !errors.Is(err, ErrMissingOption) {
		t.Errorf("width without height: err = %v, want ErrMissingOption", err)
	}
}
