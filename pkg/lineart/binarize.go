package lineart

import "image"

// Binarize turns a gradient map into pure black-and-white line art. The
// cutoff is relative to the strongest gradient in this image:
//
//	cutoff = threshold/255 * max(mag)
//
// A pixel becomes a black line when it responded at all and its magnitude
// reaches the cutoff; everything else becomes white paper. At threshold 0
// every responding pixel is kept, at 255 only the global maximum survives,
// and a flat image (no gradients anywhere) comes out all white. Raising the
// threshold can only turn pixels white, never black. Output alpha is fully
// opaque.
func Binarize(mag []float64, w, h, threshold int) *image.NRGBA {
	threshold = clampInt(threshold, 0, 255)
	maxMag := 0.0
	for _, m := range mag {
		if m > maxMag {
			maxMag = m
		}
	}
	cutoff := float64(threshold) / 255.0 * maxMag
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := out.PixOffset(x, y)
			m := mag[y*w+x]
			if m > 0 && m >= cutoff {
				out.Pix[i+0] = 0
				out.Pix[i+1] = 0
				out.Pix[i+2] = 0
			} else {
				out.Pix[i+0] = 255
				out.Pix[i+1] = 255
				out.Pix[i+2] = 255
			}
			out.Pix[i+3] = 255
		}
	}
	return out
}
