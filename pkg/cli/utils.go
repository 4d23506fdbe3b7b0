package cli

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/colorpage/colorpage/pkg/lineart"
)

// PromptLine displays a prompt and reads a full line of input from the user.
// The returned string is trimmed of surrounding whitespace (including the newline).
func PromptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptInt prompts for an integer value, showing the current one. An empty
// line keeps the current value; unparseable input keeps it too.
func promptInt(label string, cur int) int {
	line, err := PromptLine(fmt.Sprintf("%s [%d]: ", label, cur))
	if err != nil || line == "" {
		return cur
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		fmt.Printf("not a number: %s\n", line)
		return cur
	}
	return v
}

// LoadImage reads an image file from disk and decodes it, honoring EXIF
// orientation. It returns the decoded image together with the raw file bytes
// so callers can re-send the original to a conversion backend.
func LoadImage(path string) (*image.NRGBA, []byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	img, err := lineart.DecodeBytes(b)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, b, nil
}

// SavePNG writes already-encoded PNG bytes to a file.
func SavePNG(path string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("no image data to save")
	}
	return os.WriteFile(path, data, 0644)
}

// ImageInfo returns a short info string for an image.
func ImageInfo(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}
	b := img.Bounds()
	return fmt.Sprintf("Width: %d, Height: %d", b.Dx(), b.Dy()), nil
}
