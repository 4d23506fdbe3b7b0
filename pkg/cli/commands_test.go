package cli

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/colorpage/colorpage/pkg/lineart"
)

// TestConvertOnce converts a photo file and checks the written PNG is pure
// black-and-white at the source size.
func TestConvertOnce(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir, 60, 40)
	out := filepath.Join(dir, "page.png")

	if err := convertOnce(in, out, "", "", lineart.Defaults()); err != nil {
		t.Fatalf("convertOnce failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 60 || b.Dy() != 40 {
		t.Fatalf("output is %dx%d, want 60x40", b.Dx(), b.Dy())
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			black := c.R == 0 && c.G == 0 && c.B == 0
			white := c.R == 255 && c.G == 255 && c.B == 255
			if (!black && !white) || c.A != 255 {
				t.Fatalf("pixel (%d,%d) = %v is not pure black or white", x, y, c)
			}
		}
	}
}

// TestConvertOnceDownscales verifies the max dimension option caps the output.
func TestConvertOnceDownscales(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir, 100, 50)
	out := filepath.Join(dir, "small.png")

	opts := lineart.Defaults()
	opts.MaxDim = 40
	if err := convertOnce(in, out, "", "", opts); err != nil {
		t.Fatalf("convertOnce failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output failed: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode config failed: %v", err)
	}
	if cfg.Width != 40 || cfg.Height != 20 {
		t.Fatalf("output is %dx%d, want 40x20", cfg.Width, cfg.Height)
	}
}

// TestConvertOncePDF checks the optional PDF output lands next to the PNG.
func TestConvertOncePDF(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir, 60, 40)
	out := filepath.Join(dir, "page.png")
	pdf := filepath.Join(dir, "page.pdf")

	if err := convertOnce(in, out, pdf, "", lineart.Defaults()); err != nil {
		t.Fatalf("convertOnce failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("missing PNG output: %v", err)
	}
	data, err := os.ReadFile(pdf)
	if err != nil {
		t.Fatalf("read PDF failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-1.")) {
		t.Fatalf("PDF output does not start with a PDF header")
	}
}

// TestConvertOnceMissingArgs rejects empty input/output paths.
func TestConvertOnceMissingArgs(t *testing.T) {
	if err := convertOnce("", "out.png", "", "", lineart.Defaults()); err == nil {
		t.Fatalf("expected an error for missing input path")
	}
	if err := convertOnce("in.png", "", "", "", lineart.Defaults()); err == nil {
		t.Fatalf("expected an error for missing output path")
	}
}

// TestExportOnce embeds a finished page into a PDF without converting it.
func TestExportOnce(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir, 48, 32)
	out := filepath.Join(dir, "page.pdf")

	if err := exportOnce(in, out); err != nil {
		t.Fatalf("exportOnce failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-1.")) {
		t.Fatalf("output is not a PDF")
	}
}

// TestExportOnceMissingArgs rejects empty paths.
func TestExportOnceMissingArgs(t *testing.T) {
	if err := exportOnce("", "out.pdf"); err == nil {
		t.Fatalf("expected an error for missing input path")
	}
	if err := exportOnce("in.png", ""); err == nil {
		t.Fatalf("expected an error for missing output path")
	}
}
