package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/joho/godotenv"
)

// Terminal preview helper for Kitty and iTerm2 inline-image protocols.
//
// Behavior:
//   - If kitty is detected (KITTY_WINDOW_ID or TERM contains "kitty"), the PNG is sent using
//     the kitty graphics protocol (chunked base64 inside ESC _G ... ESC \).
//   - Else if a terminal implementing the iTerm2-style OSC 1337 inline file sequence is
//     detected (iTerm2, WezTerm, Warp, Tabby, VSCode, etc), that sequence is used.
//   - Else if a terminal likely to support Sixel graphics is detected, the PNG is piped
//     to an external sixel renderer (img2sixel, with chafa as fallback).
//   - Else, if chafa is available on PATH, it renders a block-character approximation.
//   - If none is available, returns an error indicating no supported terminal.
//
// All previews are PNG; the conversion pipeline only ever produces PNG output.
//
// Debugging helper controlled by COLORPAGE_PREVIEW_DEBUG=1
var previewDebug bool

func init() {
	err := godotenv.Load()
	if err != nil {
		// Ignore error if .env not present; it's optional
	}

	debug := os.Getenv("COLORPAGE_PREVIEW_DEBUG")
	if debug == "1" || debug == "true" {
		previewDebug = true
	}
}

func debugf(format string, args ...interface{}) {
	if previewDebug {
		fmt.Fprintf(os.Stderr, "colorpage-preview: "+format+"\n", args...)
	}
}

func isKitty() bool {
	// Primary hint that the terminal is kitty or a kitty-compatible implementation
	// (e.g. ghostty exposes the kitty compatibility features).
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "kitty") || strings.Contains(term, "ghostty") {
		return true
	}
	// Konsole implements parts of the protocol via an older kitty compatibility mode.
	if os.Getenv("KONSOLE_VERSION") != "" {
		return true
	}
	return false
}

// Detects terminals that implement the generic "inline images" OSC protocol
// (iTerm2 style). Heuristic based on TERM_PROGRAM and common TERM substrings.
func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "VSCode", "Tabby":
		debugf("TERM_PROGRAM indicates inline-capable: %s", os.Getenv("TERM_PROGRAM"))
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "wezterm") || strings.Contains(term, "warp") || strings.Contains(term, "tabby") ||
		strings.Contains(term, "vscode") {
		debugf("TERM suggests inline-capable: %s", term)
		return true
	}
	if os.Getenv("ITERM_SESSION_ID") != "" {
		debugf("iTerm2 indicators present")
		return true
	}
	return false
}

// Detect terminals that likely support Sixel graphics (foot, Windows Terminal,
// st with sixel patch, etc). Heuristic; COLORPAGE_SIXEL=1 forces it.
func isSixelCapable() bool {
	if os.Getenv("COLORPAGE_SIXEL") == "1" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "foot") || strings.Contains(term, "sixel") {
		return true
	}
	if os.Getenv("WT_SESSION") != "" { // Windows Terminal newer versions support sixel
		return true
	}
	return false
}

// hasChafa reports whether the external 'chafa' binary is available in PATH.
// chafa works as a fallback for terminals that implement neither inline nor
// sixel protocols but can still display block/character graphics.
func hasChafa() bool {
	if _, err := exec.LookPath("chafa"); err == nil {
		return true
	}
	return false
}

// postImageNewlines returns the number of newline lines to emit after an image
// is rendered, based on the requested row count. The result is clamped so the
// prompt shows just below the image without a large gap.
func postImageNewlines(requestedRows int) int {
	if requestedRows > 0 {
		if requestedRows <= 2 {
			return 1
		}
		if requestedRows <= 6 {
			return 2
		}
		if requestedRows <= 20 {
			return 3
		}
		return 4
	}
	return 1
}

// PreviewSupported returns true if the running environment likely supports a terminal
// inline preview. chafa availability counts as a valid fallback even if no
// inline/sixel protocol is detected.
func PreviewSupported() bool {
	supported := isKitty() || isInlineImageCapable() || isSixelCapable() || hasChafa()
	debugf("PreviewSupported -> %v (kitty=%v inline=%v sixel=%v chafa=%v)", supported, isKitty(), isInlineImageCapable(), isSixelCapable(), hasChafa())
	return supported
}

// PreviewImage encodes an image to PNG and previews it in the terminal.
func PreviewImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	b := img.Bounds()
	return previewPNG(buf.Bytes(), computePreviewSize(b.Dx(), b.Dy()))
}

// PreviewPNG previews already-encoded PNG bytes without re-encoding them.
func PreviewPNG(data []byte) error {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid png data: %w", err)
	}
	return previewPNG(data, computePreviewSize(cfg.Width, cfg.Height))
}

// PreviewSize conveys a target placement for terminal preview backends.
type PreviewSize struct {
	Cols        int // terminal character columns
	Rows        int // terminal character rows
	PixelWidth  int // approximate pixel width (Cols * cellWidth)
	PixelHeight int // approximate pixel height (Rows * cellHeight)
}

// previewMaxCells returns the largest preview area in character cells.
// COLORPAGE_PREVIEW_SIZE=COLSxROWS (e.g. "100x30") overrides the 80x40 default.
func previewMaxCells() (int, int) {
	const defCols = 80
	const defRows = 40
	v := os.Getenv("COLORPAGE_PREVIEW_SIZE")
	if v == "" {
		return defCols, defRows
	}
	var c, r int
	n, err := fmt.Sscanf(strings.ToLower(v), "%dx%d", &c, &r)
	if err != nil || n != 2 || c < 6 || r < 3 {
		debugf("ignoring invalid COLORPAGE_PREVIEW_SIZE: %q", v)
		return defCols, defRows
	}
	return c, r
}

// computePreviewSize maps pixel dimensions into a target terminal character
// cell size. Uses conservative defaults and clamps to avoid extremely large
// previews.
func computePreviewSize(w, h int) PreviewSize {
	// Character cell pixel assumptions.
	const charW = 8
	const charH = 16
	// Lower clamp for columns/rows so tiny images stay visible.
	const minCols = 6
	const minRows = 3
	maxCols, maxRows := previewMaxCells()

	maxPixelW := maxCols * charW
	maxPixelH := maxRows * charH

	// Uniform scale factor preserving the aspect ratio while fitting inside
	// maxPixelW x maxPixelH. Never scales up.
	scaleW := float64(maxPixelW) / float64(w)
	scaleH := float64(maxPixelH) / float64(h)
	scale := math.Min(1.0, math.Min(scaleW, scaleH))

	targetW := int(math.Round(float64(w) * scale))
	targetH := int(math.Round(float64(h) * scale))

	cols := int(math.Round(float64(targetW) / float64(charW)))
	rows := int(math.Round(float64(targetH) / float64(charH)))

	if cols < minCols {
		cols = minCols
	}
	if cols > maxCols {
		cols = maxCols
	}
	if rows < minRows {
		rows = minRows
	}
	if rows > maxRows {
		rows = maxRows
	}

	return PreviewSize{
		Cols:        cols,
		Rows:        rows,
		PixelWidth:  cols * charW,
		PixelHeight: rows * charH,
	}
}

// previewPNG centralizes the logic of sending PNG bytes via kitty/inline/sixel/chafa.
func previewPNG(blob []byte, size PreviewSize) error {
	if len(blob) == 0 {
		return fmt.Errorf("empty image blob")
	}

	// Allow overriding the preferred backend via COLORPAGE_PREVIEW_BACKEND
	// (e.g. "kitty", "inline", "sixel", "chafa"). If set, attempt that backend
	// first but still fall back to the usual sequence on error.
	if v := strings.ToLower(os.Getenv("COLORPAGE_PREVIEW_BACKEND")); v != "" {
		debugf("COLORPAGE_PREVIEW_BACKEND override: %s", v)
		switch v {
		case "kitty":
			if err := sendKittyImage(blob, size); err == nil {
				return nil
			} else {
				debugf("override kitty failed: %v", err)
			}
		case "inline", "iterm", "wezterm":
			if err := sendInlineImage(blob, size); err == nil {
				return nil
			} else {
				debugf("override inline failed: %v", err)
			}
		case "sixel":
			if err := sendSixelImage(blob, size); err == nil {
				return nil
			} else {
				debugf("override sixel failed: %v", err)
			}
		case "chafa":
			if err := sendChafaImage(blob, size); err == nil {
				return nil
			} else {
				debugf("override chafa failed: %v", err)
			}
		default:
			debugf("unknown COLORPAGE_PREVIEW_BACKEND value: %s", v)
		}
		// fall through to normal detection/fallback order
	}

	// Default detection/fallback order: inline-capable, kitty, sixel, chafa.
	// Inline is tried first because many modern terminals implement it reliably.
	if isInlineImageCapable() {
		debugf("attempting inline protocol")
		if err := sendInlineImage(blob, size); err != nil {
			debugf("inline protocol failed: %v", err)
			if isKitty() {
				if err2 := sendKittyImage(blob, size); err2 == nil {
					return nil
				}
			}
			if hasChafa() {
				if err3 := sendChafaImage(blob, size); err3 == nil {
					return nil
				}
			}
			return fmt.Errorf("inline image preview failed: %w", err)
		}
		return nil
	}

	if isKitty() {
		debugf("attempting kitty protocol")
		if err := sendKittyImage(blob, size); err != nil {
			debugf("kitty protocol failed: %v", err)
			if hasChafa() {
				if err2 := sendChafaImage(blob, size); err2 == nil {
					return nil
				}
			}
			return fmt.Errorf("kitty preview failed: %w", err)
		}
		return nil
	}

	if isSixelCapable() {
		if err := sendSixelImage(blob, size); err != nil {
			if hasChafa() {
				if err2 := sendChafaImage(blob, size); err2 == nil {
					return nil
				}
			}
			return fmt.Errorf("sixel preview failed: %w", err)
		}
		return nil
	}

	if hasChafa() {
		if err := sendChafaImage(blob, size); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no preview protocol matched")
}

// sendKittyImage sends PNG bytes to the terminal using the kitty graphics protocol.
// It chunks the base64 payload into <=4096-byte chunks per spec. The first chunk
// includes placement parameters to render the image into a fixed area
// (columns x rows). Terminal responses are suppressed with q=2.
func sendKittyImage(data []byte, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}

	debugf("sendKittyImage preparing to send %d bytes", len(data))

	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096

	cols := size.Cols
	rows := size.Rows
	debugf("kitty placement: cols=%d rows=%d (computed)", cols, rows)

	stdout := os.Stdout

	writeSeq := func(s string) error {
		_, err := stdout.Write([]byte(s))
		return err
	}

	total := len(enc)
	first := true
	for pos := 0; pos < total; pos += chunkSize {
		end := pos + chunkSize
		if end > total {
			end = total
		}
		chunk := enc[pos:end]
		last := end == total

		mVal := "0"
		if !last {
			mVal = "1"
		}

		if first {
			// First chunk includes full control keys and placement (c,r).
			// a=T transmit+display, f=100 PNG payload, t=d direct payload,
			// q=2 suppress responses, c=<cols>, r=<rows> request rendering area.
			header := fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;", cols, rows, mVal)
			header += chunk + "\x1b\\"
			if err := writeSeq(header); err != nil {
				return err
			}
			first = false
			continue
		}

		// Subsequent chunks must contain only m=1/m=0 and the payload chunk.
		header := "\x1b_G" + "m=" + mVal + ";" + chunk + "\x1b\\"
		if err := writeSeq(header); err != nil {
			return err
		}
	}

	// Advance the cursor a small number of lines so subsequent text appears
	// directly under the image.
	for i := 0; i < postImageNewlines(size.Rows); i++ {
		fmt.Println()
	}

	return nil
}

// sendInlineImage emits the generic iTerm2-style inline image OSC (1337) sequence.
func sendInlineImage(data []byte, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	debugf("sendInlineImage preparing to send %d bytes", len(data))
	enc := base64.StdEncoding.EncodeToString(data)
	meta := fmt.Sprintf("size=%d;", len(data))
	if size.PixelWidth > 0 && size.PixelHeight > 0 {
		meta += fmt.Sprintf("width=%dpx;height=%dpx;", size.PixelWidth, size.PixelHeight)
	}
	seq := "\x1b]1337;File=name=preview.png;inline=1;" + meta + ":" + enc + "\a"
	n, err := os.Stdout.Write([]byte(seq))
	debugf("wrote %d bytes to stdout for inline image (err=%v)", n, err)

	for i := 0; i < postImageNewlines(0); i++ {
		fmt.Println()
	}

	return err
}

// sendSixelImage renders the PNG using an external sixel renderer (img2sixel).
// The bytes are piped to the external tool which emits sixel to stdout. If
// img2sixel is unavailable, chafa is tried as a fallback.
func sendSixelImage(data []byte, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}

	debugf("sendSixelImage attempting img2sixel for %d bytes", len(data))

	cmd := exec.Command("img2sixel", "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err == nil {
		debugf("img2sixel succeeded")
		for i := 0; i < postImageNewlines(0); i++ {
			fmt.Println()
		}
		return nil
	} else {
		debugf("img2sixel failed: %v", err)
	}

	// sendChafaImage already advances the cursor; don't print extra lines here.
	if err := sendChafaImage(data, size); err != nil {
		return fmt.Errorf("no sixel renderer available: %w", err)
	}
	return nil
}

// sendChafaImage invokes chafa to render the PNG bytes to stdout as block
// symbols. Returns an error if chafa is not present or fails.
func sendChafaImage(data []byte, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}

	if _, err := exec.LookPath("chafa"); err != nil {
		return fmt.Errorf("chafa not found in PATH: %w", err)
	}

	debugf("sendChafaImage invoking chafa for %d bytes", len(data))

	chafaSize := fmt.Sprintf("%dx%d", size.Cols, size.Rows)
	cmd := exec.Command("chafa", "--fill=block", "--symbols=block", "-s", chafaSize, "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("chafa failed: %w", err)
	}

	for i := 0; i < postImageNewlines(size.Rows); i++ {
		fmt.Println()
	}

	return nil
}
