// Command tiler remixes a source image into composites of randomly rescaled
// tiles cropped from itself, optionally animating the process into a GIF,
// and upscales images under different aspect-ratio policies.
package main

import (
	"log"

	"github.com/alecthomas/kong"

	"github.com/ioudine/tiler-the-creator/internal/preset"
)

const desc = `Remix an image into composites of randomly rescaled tiles cropped from itself.

Flag defaults can be supplied by a tiler.yaml preset file in the working
directory (flat flag-name keys); explicit flags always win.`

var cli struct {
	Single  SingleCmd  `cmd:"" help:"Composite one magnified tile back onto the canvas."`
	Layers  LayersCmd  `cmd:"" help:"Layer several magnified tiles onto one canvas."`
	GIF     GIFCmd     `cmd:"" name:"gif" help:"Animate layered tile frames into a GIF."`
	Upscale UpscaleCmd `cmd:"" help:"Upscale an image using fit, fill or stretch."`
	Sheet   SheetCmd   `cmd:"" help:"Render tile frames as a PDF contact sheet."`
	Mono    MonoCmd    `cmd:"" help:"Convert an image to grayscale, optionally thresholded."`
	Serve   ServeCmd   `cmd:"" help:"Serve the browser front-end."`
}

func main() {
	log.SetPrefix("tiler: ")
	log.SetFlags(0)
	ctx := kong.Parse(&cli,
		kong.Name("tiler"),
		kong.Description(desc),
		kong.Configuration(preset.Loader, "tiler.yaml"),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
