// Package upscale resizes images to an explicit target size under one of
// three aspect-ratio policies, and provides the uniform pre-scale used by
// the remix commands.
package upscale

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ioudine/tiler-the-creator/internal/imgio"
)

// Mode selects how the source aspect ratio maps onto the target rectangle.
type Mode string

const (
	ModeStretch Mode = "stretch" // force target dims, may distort
	ModeFit     Mode = "fit"     // preserve ratio, pad with background
	ModeFill    Mode = "fill"    // preserve ratio, center-crop to cover
)

var (
	// ErrInvalidDimension reports a non-positive or unusable target size.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrMissingOption reports an incomplete width/height/scale combination.
	ErrMissingOption = errors.New("missing option")
)

// ParseMode resolves a mode name.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case ModeStretch, ModeFit, ModeFill:
		return Mode(name), nil
	}
	return "", fmt.Errorf("unknown mode %q (want fit, fill or stretch)", name)
}

// TargetSize resolves a uniform scale factor or an explicit width/height pair
// into exact output dimensions. Exactly one of the two forms must be given;
// zero values mean unset.
func TargetSize(srcW, srcH, width, height int, scale float64) (int, int, error) {
	switch {
	case scale != 0 && (width != 0 || height != 0):
		return 0, 0, fmt.Errorf("%w: give either a scale factor or explicit width/height, not both", ErrMissingOption)
	case scale < 0:
		return 0, 0, fmt.Errorf("%w: scale %g must be positive", ErrInvalidDimension, scale)
	case scale != 0:
		return roundDim(float64(srcW) * scale), roundDim(float64(srcH) * scale), nil
	case width == 0 || height == 0:
		return 0, 0, fmt.Errorf("%w: both width and height are required without a scale factor", ErrMissingOption)
	case width < 0 || height < 0:
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	return width, height, nil
}

// Upscale resizes img to exactly width x height under mode. For fit the
// image is centered on a background-filled canvas; for fill it is resized to
// cover the target and center-cropped.
func Upscale(img image.Image, width, height int, mode Mode, filter imgio.Filter, bg color.NRGBA) (*image.NRGBA, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: target %dx%d", ErrInvalidDimension, width, height)
	}
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	switch mode {
	case ModeStretch:
		return imaging.Resize(img, width, height, filter.Resample()), nil
	case ModeFit:
		s := math.Min(float64(width)/float64(srcW), float64(height)/float64(srcH))
		resized := imaging.Resize(img, roundDim(float64(srcW)*s), roundDim(float64(srcH)*s), filter.Resample())
		canvas := imaging.New(width, height, bg)
		return imaging.OverlayCenter(canvas, resized, 1.0), nil
	case ModeFill:
		s := math.Max(float64(width)/float64(srcW), float64(height)/float64(srcH))
		resized := imaging.Resize(img, roundDim(float64(srcW)*s), roundDim(float64(srcH)*s), filter.Resample())
		return imaging.CropCenter(resized, width, height), nil
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}

// Rescale applies the optional input pre-scale: a uniform factor or an
// explicit width/height pair. All zero values return img unchanged.
func Rescale(img image.Image, width, height int, scale float64, filter imgio.Filter) (image.Image, error) {
	if scale == 0 && width == 0 && height == 0 {
		return img, nil
	}
	w, h, err := TargetSize(img.Bounds().Dx(), img.Bounds().Dy(), width, height, scale)
	if err != nil {
		return nil, fmt.Errorf("pre-scale: %w", err)
	}
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("pre-scale: %w: target %dx%d", ErrInvalidDimension, w, h)
	}
	return imaging.Resize(img, w, h, filter.Resample()), nil
}

func roundDim(v float64) int {
	return int(math.Round(v))
}
