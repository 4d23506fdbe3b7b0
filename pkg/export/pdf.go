// Package export writes coloring pages as single-page, letter-size PDFs for
// printing.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// pageMargin keeps the art off the printer's edges (half an inch in points).
const pageMargin = 36.0

// Exporter lays a raster page out on US letter. The art is scaled to fit
// inside the margins while keeping its aspect ratio, never enlarged past its
// natural size at 72 dpi, and centered.
type Exporter struct {
	// Created pins the PDF creation date when non-zero, making the output
	// byte-reproducible.
	Created time.Time
}

// WritePDF writes pngData onto a letter page.
func (e Exporter) WritePDF(w io.Writer, pngData []byte) error {
	cfg, err := png.DecodeConfig(bytes.NewReader(pngData))
	if err != nil {
		return fmt.Errorf("read png: %w", err)
	}
	doc := gofpdf.New("P", "pt", "Letter", "")
	if !e.Created.IsZero() {
		doc.SetCreationDate(e.Created)
	}
	doc.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("page", opt, bytes.NewReader(pngData))

	pw, ph := doc.GetPageSize()
	availW := pw - 2*pageMargin
	availH := ph - 2*pageMargin
	iw := float64(cfg.Width)
	ih := float64(cfg.Height)
	scale := availW / iw
	if s := availH / ih; s < scale {
		scale = s
	}
	if scale > 1 {
		scale = 1
	}
	dw := iw * scale
	dh := ih * scale
	x := (pw - dw) / 2
	y := (ph - dh) / 2
	doc.ImageOptions("page", x, y, dw, dh, false, opt, 0, "")

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WriteImagePDF encodes img as PNG and writes it onto a letter page.
func (e Exporter) WriteImagePDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return e.WritePDF(w, buf.Bytes())
}

// WriteFile writes pngData onto a letter page at path.
func (e Exporter) WriteFile(path string, pngData []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := e.WritePDF(f, pngData); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
