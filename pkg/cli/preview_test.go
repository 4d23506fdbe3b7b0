package cli

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"
)

// forceInlineTerminal fakes an inline-capable terminal for the duration of a test.
func forceInlineTerminal(t *testing.T) {
	t.Helper()
	os.Setenv("TERM_PROGRAM", "WezTerm")
	oldTerm := os.Getenv("TERM")
	os.Setenv("TERM", "xterm-256color")
	t.Cleanup(func() {
		os.Unsetenv("TERM_PROGRAM")
		if oldTerm == "" {
			os.Unsetenv("TERM")
		} else {
			os.Setenv("TERM", oldTerm)
		}
	})
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns what
// was written.
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe failed: %v", err)
	}
	os.Stdout = w

	ferr := fn()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	if ferr != nil {
		t.Fatalf("preview error: %v", ferr)
	}
	return buf.String()
}

// TestPreviewInlineSequence verifies that PreviewImage emits an inline-image OSC
// sequence when TERM_PROGRAM indicates an inline-capable terminal.
func TestPreviewInlineSequence(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(0, 1, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(1, 1, color.NRGBA{0, 0, 0, 255})

	forceInlineTerminal(t)

	out := captureStdout(t, func() error {
		return PreviewImage(img)
	})

	if !strings.Contains(out, "\x1b]1337") {
		t.Fatalf("expected inline 1337 sequence in output, got: %q", out)
	}
}

// TestPreviewPayloadIsPNG ensures the embedded base64 payload decodes to PNG
// bytes (magic \x89PNG).
func TestPreviewPayloadIsPNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}

	forceInlineTerminal(t)

	out := captureStdout(t, func() error {
		return PreviewImage(img)
	})

	// find inline base64 payload after ':' and before BEL or ESC
	idx := strings.Index(out, ":")
	if idx < 0 {
		t.Fatalf("no ':' found in output: %q", out)
	}
	payload := out[idx+1:]
	if bi := strings.Index(payload, "\a"); bi >= 0 {
		payload = payload[:bi]
	}
	if bi := strings.Index(payload, "\x1b"); bi >= 0 {
		payload = payload[:bi]
	}
	dec, derr := base64.StdEncoding.DecodeString(payload)
	if derr != nil {
		t.Fatalf("base64 decode failed: %v", derr)
	}
	if len(dec) < 4 || dec[0] != 0x89 || dec[1] != 'P' || dec[2] != 'N' || dec[3] != 'G' {
		t.Fatalf("expected PNG magic bytes, got: %x", dec[:4])
	}
}

// TestPreviewPNGBytes verifies PreviewPNG sends pre-encoded bytes through
// unchanged instead of re-encoding them.
func TestPreviewPNGBytes(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	var enc bytes.Buffer
	if err := png.Encode(&enc, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	data := enc.Bytes()

	forceInlineTerminal(t)

	out := captureStdout(t, func() error {
		return PreviewPNG(data)
	})

	want := base64.StdEncoding.EncodeToString(data)
	if !strings.Contains(out, want) {
		t.Fatalf("output does not contain the original PNG payload")
	}
}

// TestComputePreviewSize checks aspect-ratio fitting and clamping.
func TestComputePreviewSize(t *testing.T) {
	// A tall image must clamp to the max rows while keeping the aspect ratio.
	s := computePreviewSize(1000, 4000)
	if s.Rows != 40 {
		t.Fatalf("rows = %d, want 40", s.Rows)
	}
	if s.Cols != 20 {
		t.Fatalf("cols = %d, want 20", s.Cols)
	}

	// An image already fitting the pixel box keeps its natural cell size.
	s = computePreviewSize(640, 320)
	if s.Cols != 80 || s.Rows != 20 {
		t.Fatalf("got %dx%d cells, want 80x20", s.Cols, s.Rows)
	}

	// A tiny image must not be scaled up past its own size, only to the minimums.
	s = computePreviewSize(8, 16)
	if s.Cols != 6 || s.Rows != 3 {
		t.Fatalf("got %dx%d cells, want 6x3", s.Cols, s.Rows)
	}
}

// TestComputePreviewSizeEnvOverride checks COLORPAGE_PREVIEW_SIZE changes the
// preview area and that junk values fall back to the default.
func TestComputePreviewSizeEnvOverride(t *testing.T) {
	os.Setenv("COLORPAGE_PREVIEW_SIZE", "40x10")
	t.Cleanup(func() { os.Unsetenv("COLORPAGE_PREVIEW_SIZE") })

	// 40 cols x 10 rows is a 320x160 pixel box; a 640x320 image halves into it.
	s := computePreviewSize(640, 320)
	if s.Cols != 40 || s.Rows != 10 {
		t.Fatalf("got %dx%d cells, want 40x10", s.Cols, s.Rows)
	}

	os.Setenv("COLORPAGE_PREVIEW_SIZE", "bogus")
	s = computePreviewSize(640, 320)
	if s.Cols != 80 || s.Rows != 20 {
		t.Fatalf("got %dx%d cells after bad override, want 80x20", s.Cols, s.Rows)
	}
}
