// gen_sample writes a synthetic sample image for trying the tiler commands:
// a diagonal color gradient with a few solid disks so crops stay visually
// distinct.
// Usage: go run scripts/gen_sample.go <output.png>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

const (
	sampleW = 800
	sampleH = 600
)

func main() {
	code := run()
	if code != 0 {
		os.Exit(code)
	}
}

func run() int {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: go run scripts/gen_sample.go <output.png>\n")
		return 1
	}
	outPath := filepath.Clean(os.Args[1])

	img := image.NewNRGBA(image.Rect(0, 0, sampleW, sampleH))
	for y := 0; y < sampleH; y++ {
		for x := 0; x < sampleW; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / sampleW),
				G: uint8(y * 255 / sampleH),
				B: uint8((x + y) * 255 / (sampleW + sampleH)),
				A: 255,
			})
		}
	}
	disks := []struct {
		cx, cy, r int
		c         color.NRGBA
	}{
		{200, 150, 80, color.NRGBA{R: 220, G: 60, B: 60, A: 255}},
		{550, 300, 120, color.NRGBA{R: 60, G: 180, B: 90, A: 255}},
		{350, 480, 60, color.NRGBA{R: 250, G: 210, B: 70, A: 255}},
	}
	for _, d := range disks {
		for y := d.cy - d.r; y <= d.cy+d.r; y++ {
			for x := d.cx - d.r; x <= d.cx+d.r; x++ {
				if x < 0 || x >= sampleW || y < 0 || y >= sampleH {
					continue
				}
				dx, dy := x-d.cx, y-d.cy
				if dx*dx+dy*dy <= d.r*d.r {
					img.SetNRGBA(x, y, d.c)
				}
			}
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", outPath, err)
		return 1
	}
	defer func() {
		if cErr := f.Close(); cErr != nil {
			fmt.Fprintf(os.Stderr, "close output: %v\n", cErr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		return 1
	}
	fmt.Println(outPath)
	return 0
}
