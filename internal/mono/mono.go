// Package mono converts images to grayscale with an optional binary
// threshold.
package mono

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Convert returns a grayscale copy of img. A threshold in 0..255 turns every
// pixel with luminance at or above it white and the rest black; a negative
// threshold keeps the full grayscale ramp.
func Convert(img image.Image, threshold int) (*image.NRGBA, error) {
	if threshold > 255 {
		return nil, fmt.Errorf("threshold must be between 0 and 255; got %d", threshold)
	}
	gray := imaging.Grayscale(img)
	if threshold < 0 {
		return gray, nil
	}
	cut := uint8(threshold)
	return imaging.AdjustFunc(gray, func(c color.NRGBA) color.NRGBA {
		v := uint8(0)
		if c.R >= cut {
			v = 255
		}
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	}), nil
}
