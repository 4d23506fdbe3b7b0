package lineart

import (
	"image"

	"golang.org/x/image/draw"
)

// FitWithin scales src down so its longest side is at most maxDim, preserving
// the aspect ratio. An image already inside the cap is returned as is; nothing
// is ever scaled up. Target sides are floored, with a one-pixel minimum so an
// extreme aspect ratio cannot collapse a side to zero. CatmullRom resampling
// keeps the result deterministic across runs and platforms.
func FitWithin(src *image.NRGBA, maxDim int) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return src
	}
	long := w
	if h > long {
		long = h
	}
	scale := float64(maxDim) / float64(long)
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
