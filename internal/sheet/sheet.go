// Package sheet renders composite frames as a paginated PDF contact sheet,
// one thumbnail per cell with its frame index below.
package sheet

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/nfnt/resize"
)

const (
	pageW     = 595.0
	pageH     = 842.0
	margin    = 40.0
	headerH   = 24.0
	cellGap   = 12.0
	labelH    = 12.0
	titleSize = 16
	labelSize = 8
	// thumbMax caps the pixel size of embedded thumbnails to keep PDFs small.
	thumbMax = 512
)

// Generate lays out frames in a cols-wide grid on A4 pages and returns the
// PDF bytes. Frame order is preserved left-to-right, top-to-bottom.
func Generate(frames []image.Image, title string, cols int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to lay out")
	}
	if cols < 1 {
		return nil, fmt.Errorf("column count must be positive; got %d", cols)
	}
	cellW := (pageW - 2*margin - float64(cols-1)*cellGap) / float64(cols)
	cellH := cellW + labelH
	rowsPerPage := int((pageH - 2*margin - headerH) / (cellH + cellGap))
	if rowsPerPage < 1 {
		rowsPerPage = 1
	}
	perPage := rowsPerPage * cols

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)

	for i, fr := range frames {
		if i%perPage == 0 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "B", titleSize)
			pdf.SetTextColor(30, 30, 30)
			pdf.SetXY(margin, margin-16)
			pdf.CellFormat(pageW-2*margin, 16, title, "", 0, "L", false, 0, "")
		}
		slot := i % perPage
		row := slot / cols
		col := slot % cols
		x := margin + float64(col)*(cellW+cellGap)
		y := margin + headerH + float64(row)*(cellH+cellGap)

		thumb := fr
		b := fr.Bounds()
		if b.Dx() > thumbMax || b.Dy() > thumbMax {
			thumb = resize.Thumbnail(thumbMax, thumbMax, fr, resize.Bilinear)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, thumb); err != nil {
			return nil, fmt.Errorf("encode frame %d: %w", i, err)
		}
		name := fmt.Sprintf("frame-%03d", i)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		drawW, drawH := fitCell(b.Dx(), b.Dy(), cellW, cellW)
		pdf.ImageOptions(name, x+(cellW-drawW)/2, y+(cellW-drawH)/2, drawW, drawH, false, opts, 0, "")

		pdf.SetFont("Helvetica", "", labelSize)
		pdf.SetTextColor(90, 90, 90)
		pdf.SetXY(x, y+cellW+2)
		pdf.CellFormat(cellW, 10, name, "", 0, "C", false, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// fitCell scales frame dims to fit the cell while preserving aspect ratio.
func fitCell(w, h int, maxW, maxH float64) (float64, float64) {
	s := math.Min(maxW/float64(w), maxH/float64(h))
	return float64(w) * s, float64(h) * s
}
