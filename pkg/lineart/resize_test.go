package lineart

import (
	"image/color"
	"testing"
)

func TestFitWithinNoUpscale(t *testing.T) {
	img := makeSolidNRGBA(100, 80, color.NRGBA{10, 20, 30, 255})
	out := FitWithin(img, 1200)
	if out != img {
		t.Fatalf("image under the cap was resampled")
	}
}

func TestFitWithinCapsLongSide(t *testing.T) {
	img := makeSolidNRGBA(3000, 2000, color.NRGBA{90, 90, 90, 255})
	out := FitWithin(img, 1200)
	b := out.Bounds()
	if b.Dx() != 1200 || b.Dy() != 800 {
		t.Fatalf("got %dx%d, want 1200x800", b.Dx(), b.Dy())
	}
}

func TestFitWithinPortrait(t *testing.T) {
	img := makeSolidNRGBA(500, 1000, color.NRGBA{90, 90, 90, 255})
	out := FitWithin(img, 100)
	b := out.Bounds()
	if b.Dx() != 50 || b.Dy() != 100 {
		t.Fatalf("got %dx%d, want 50x100", b.Dx(), b.Dy())
	}
}

func TestFitWithinGuardsThinImages(t *testing.T) {
	// 5000x1 at cap 100 floors the short side to zero; it must clamp to 1.
	img := makeSolidNRGBA(5000, 1, color.NRGBA{90, 90, 90, 255})
	out := FitWithin(img, 100)
	b := out.Bounds()
	if b.Dx() != 100 || b.Dy() != 1 {
		t.Fatalf("got %dx%d, want 100x1", b.Dx(), b.Dy())
	}
}

func TestFitWithinDeterministic(t *testing.T) {
	img := makeSolidNRGBA(333, 222, color.NRGBA{0, 0, 0, 255})
	for y := 0; y < 222; y++ {
		for x := 0; x < 333; x++ {
			setGray(img, x, y, uint8((x+y*7)%256))
		}
	}
	a := FitWithin(img, 150)
	b := FitWithin(img, 150)
	if len(a.Pix) != len(b.Pix) {
		t.Fatalf("runs produced different sizes")
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("resample not deterministic at byte %d", i)
		}
	}
}
