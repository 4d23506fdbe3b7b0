package lineart

import (
	"image/color"
	"testing"
)

func TestGrayscaleLuminance(t *testing.T) {
	cases := []struct {
		in   color.NRGBA
		want uint8
	}{
		{color.NRGBA{255, 0, 0, 255}, 76},    // 0.299 * 255 rounded
		{color.NRGBA{0, 255, 0, 255}, 150},   // 0.587 * 255 rounded
		{color.NRGBA{0, 0, 255, 255}, 29},    // 0.114 * 255 rounded
		{color.NRGBA{255, 255, 255, 255}, 255},
		{color.NRGBA{0, 0, 0, 255}, 0},
		{color.NRGBA{100, 100, 100, 255}, 100}, // gray stays gray
	}
	for _, c := range cases {
		img := makeSolidNRGBA(3, 3, c.in)
		out := Grayscale(img)
		i := out.PixOffset(1, 1)
		if out.Pix[i] != c.want || out.Pix[i+1] != c.want || out.Pix[i+2] != c.want {
			t.Fatalf("grayscale of %v: got (%d,%d,%d), want %d on all channels",
				c.in, out.Pix[i], out.Pix[i+1], out.Pix[i+2], c.want)
		}
	}
}

func TestGrayscaleKeepsAlpha(t *testing.T) {
	img := makeSolidNRGBA(2, 2, color.NRGBA{200, 50, 10, 137})
	out := Grayscale(img)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if a := out.Pix[out.PixOffset(x, y)+3]; a != 137 {
				t.Fatalf("alpha at (%d,%d) changed to %d", x, y, a)
			}
		}
	}
}

func TestGrayscaleLeavesSourceAlone(t *testing.T) {
	img := makeSolidNRGBA(2, 2, color.NRGBA{200, 50, 10, 255})
	_ = Grayscale(img)
	i := img.PixOffset(0, 0)
	if img.Pix[i] != 200 || img.Pix[i+1] != 50 || img.Pix[i+2] != 10 {
		t.Fatalf("source pixels modified: (%d,%d,%d)", img.Pix[i], img.Pix[i+1], img.Pix[i+2])
	}
}
