package mono

import (
	"image"
	"image/color"
	"testing"
)

// ramp builds a horizontal brightness gradient with full alpha.
func ramp() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 256, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 256; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(x / 2), B: uint8(255 - x), A: 255})
		}
	}
	return img
}

func TestConvert_Grayscale(t *testing.T) {
	out, err := Convert(ramp(), -1)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	seen := map[uint8]bool{}
	for x := 0; x < 256; x++ {
		c := out.NRGBAAt(x, 1)
		if c.R != c.G || c.G != c.B {
			t.Fatalf("pixel %d not gray: %v", x, c)
		}
		if c.A != 255 {
			t.Fatalf("pixel %d lost alpha: %v", x, c)
		}
		seen[c.R] = true
	}
	if len(seen) < 3 {
		t.Errorf("gradient collapsed to %d distinct gray levels", len(seen))
	}
}

func TestConvert_Threshold(t *testing.T) {
	out, err := Convert(ramp(), 128)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	var blacks, whites int
	for x := 0; x < 256; x++ {
		c := out.NRGBAAt(x, 1)
		switch c.R {
		case 0:
			blacks++
		case 255:
			whites++
		default:
			t.Fatalf("pixel %d = %v, threshold output must be pure black or white", x, c)
		}
		if c.R != c.G || c.G != c.B {
			t.Fatalf("pixel %d not gray: %v", x, c)
		}
	}
	if blacks == 0 || whites == 0 {
		t.Errorf("expected both classes across the ramp; got %d black, %d white", blacks, whites)
	}
}

// trapImage panics on any pixel read, so it catches conversions that start
// before validation finishes.
type trapImage struct{}

func (trapImage) ColorModel() color.Model { return color.NRGBAModel }
func (trapImage) Bounds() image.Rectangle { return image.Rect(0, 0, 8, 8) }
func (trapImage) At(x, y int) color.Color { panic("pixel read before validation") }

func TestConvert_ValidatesBeforeReadingPixels(t *testing.T) {
	if _, err := Convert(trapImage{}, 300); err == nil {
		t.Fatal("threshold above 255 should fail")
	}
}

func TestConvert_ThresholdBounds(t *testing.T) {
	if _, err := Convert(ramp(), 256); err == nil {
		t.Error("threshold above 255 should fail")
	}
	if _, err := Convert(ramp(), 0); err != nil {
		t.Errorf("threshold 0 should be accepted: %v", err)
	}
	if _, err := Convert(ramp(), 255); err != nil {
		t.Errorf("threshold 255 should be accepted: %v", err)
	}
}
