package lineart

import "image"

// Dilate thickens the black lines with passes of a 3x3 minimum filter over
// the red channel. On a black-and-white page the minimum spreads black into
// adjacent white. Each pass reads a snapshot of the previous one; the
// one-pixel border keeps the snapshot's values. The minimum is written to all
// three color channels with opaque alpha. Zero passes is the identity.
func Dilate(src *image.NRGBA, passes int) *image.NRGBA {
	passes = clampInt(passes, 0, 2)
	cur := CloneNRGBA(src)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	for p := 0; p < passes; p++ {
		snap := cur
		next := CloneNRGBA(snap)
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				lo := uint8(255)
				for ky := -1; ky <= 1; ky++ {
					for kx := -1; kx <= 1; kx++ {
						j := snap.PixOffset(x+kx, y+ky)
						if snap.Pix[j] < lo {
							lo = snap.Pix[j]
						}
					}
				}
				i := next.PixOffset(x, y)
				next.Pix[i+0] = lo
				next.Pix[i+1] = lo
				next.Pix[i+2] = lo
				next.Pix[i+3] = 255
			}
		}
		cur = next
	}
	return cur
}
