// Package export writes the board buffer out as PNG or as a one-page PDF.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"

	"github.com/jung-kurt/gofpdf"
)

var ErrNoImage = errors.New("nothing to export")

const boardImage = "board"

// PNG encodes img losslessly.
func PNG(w io.Writer, img image.Image) error {
	if img == nil {
		return ErrNoImage
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PDF writes a landscape A4 page with title at the top and img scaled to
// fit the rest of the page, keeping its aspect ratio.
func PDF(w io.Writer, img image.Image, title string) error {
	if img == nil {
		return ErrNoImage
	}
	var buf bytes.Buffer
	if err := PNG(&buf, img); err != nil {
		return err
	}

	p := gofpdf.New("L", "mm", "A4", "")
	p.SetTitle(title, true)
	p.AddPage()

	left, top, right, bottom := p.GetMargins()
	pageW, pageH := p.GetPageSize()
	y := top
	if title != "" {
		p.SetFont("Helvetica", "B", 14)
		p.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
		y = p.GetY() + 2
	}

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(boardImage, opt, &buf)

	boxW, boxH := pageW-left-right, pageH-y-bottom
	b := img.Bounds()
	iw, ih := fit(float64(b.Dx()), float64(b.Dy()), boxW, boxH)
	p.ImageOptions(boardImage, left+(boxW-iw)/2, y, iw, ih, false, opt, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	log.Printf("[EXPORT] wrote %dx%d board to PDF", b.Dx(), b.Dy())
	return nil
}

// fit scales w×h to the largest size inside maxW×maxH.
func fit(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := min(maxW/w, maxH/h)
	return w * scale, h * scale
}
