// Package imgio handles image decode and encode for the tiler commands.
// Outputs are encoded fully in memory and written in one step, so a failed
// run never leaves a partial file behind.
package imgio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
)

// Load decodes the image at path.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return img, nil
}

// Save encodes img in the format implied by the output extension and writes
// it out, creating parent directories on demand.
func Save(img image.Image, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return WriteFile(path, buf.Bytes())
}

// EncodeGIF quantizes frames to the Plan9 palette with Floyd-Steinberg
// dithering and writes a looping GIF at the given frame rate. Frame order is
// display order.
func EncodeGIF(w io.Writer, frames []image.Image, fps int) error {
	if len(frames) == 0 {
		return fmt.Errorf("gif: no frames")
	}
	if fps <= 0 {
		return fmt.Errorf("gif: fps must be positive; got %d", fps)
	}
	delay := 100 / fps // GIF delays are centiseconds
	if delay < 1 {
		delay = 1
	}
	anim := &gif.GIF{}
	for _, fr := range frames {
		b := fr.Bounds()
		pal := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
		xdraw.FloydSteinberg.Draw(pal, pal.Bounds(), fr, b.Min)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, anim)
}

// SaveGIF encodes frames with EncodeGIF and writes the result to path.
func SaveGIF(frames []image.Image, path string, fps int) error {
	var buf bytes.Buffer
	if err := EncodeGIF(&buf, frames, fps); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return WriteFile(path, buf.Bytes())
}

// WriteFile writes data to path, creating parent directories on demand.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ParseColor parses a #rgb or #rrggbb color string.
func ParseColor(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q (want #rgb or #rrggbb)", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
