package lineart

import "image"

// Grayscale returns a copy of src with each pixel's color channels replaced by
// its BT.601 luminance: 0.299 R + 0.587 G + 0.114 B, computed in integer math
// and rounded to nearest. The alpha channel passes through untouched.
func Grayscale(src *image.NRGBA) *image.NRGBA {
	out := CloneNRGBA(src)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := out.PixOffset(x, y)
			r := int(out.Pix[i+0])
			g := int(out.Pix[i+1])
			bl := int(out.Pix[i+2])
			lum := uint8((299*r + 587*g + 114*bl + 500) / 1000)
			out.Pix[i+0] = lum
			out.Pix[i+1] = lum
			out.Pix[i+2] = lum
		}
	}
	return out
}
