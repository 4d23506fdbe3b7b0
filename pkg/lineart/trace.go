package lineart

import (
	"errors"
	"image"
)

// ErrEmptyImage is returned for a nil or zero-sized source.
var ErrEmptyImage = errors.New("empty image")

// Trace runs the whole conversion over src: fit under MaxDim, grayscale,
// blur, Sobel gradients, threshold to black and white, thicken. The stage
// order is fixed; options only tune stage parameters. The input is never
// modified, and the same image with the same options always produces
// identical pixels.
func Trace(src image.Image, opts Options) (*image.NRGBA, error) {
	if src == nil {
		return nil, ErrEmptyImage
	}
	if b := src.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}
	opts = opts.Clamp()

	img := ToNRGBA(src)
	img = FitWithin(img, opts.MaxDim)
	img = Grayscale(img)
	img = BoxBlur(img, opts.BlurPasses)

	mag := GradientMagnitude(img)
	b := img.Bounds()
	img = Binarize(mag, b.Dx(), b.Dy(), opts.Threshold)
	img = Dilate(img, opts.Thickness)
	return img, nil
}
