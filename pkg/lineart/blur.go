package lineart

import "image"

// BoxBlur runs passes of a 3x3 unweighted mean over the color channels and
// returns the result. Each pass reads from a snapshot of the previous one, so
// a neighbor is never read half-written. The one-pixel border keeps the
// snapshot's values, and alpha is copied through unchanged. Zero passes is
// the identity.
func BoxBlur(src *image.NRGBA, passes int) *image.NRGBA {
	passes = clampInt(passes, 0, 3)
	cur := CloneNRGBA(src)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	for p := 0; p < passes; p++ {
		snap := cur
		next := CloneNRGBA(snap)
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				var sr, sg, sb int
				for ky := -1; ky <= 1; ky++ {
					for kx := -1; kx <= 1; kx++ {
						j := snap.PixOffset(x+kx, y+ky)
						sr += int(snap.Pix[j+0])
						sg += int(snap.Pix[j+1])
						sb += int(snap.Pix[j+2])
					}
				}
				// mean of nine, rounded to nearest
				i := next.PixOffset(x, y)
				next.Pix[i+0] = uint8((sr + 4) / 9)
				next.Pix[i+1] = uint8((sg + 4) / 9)
				next.Pix[i+2] = uint8((sb + 4) / 9)
			}
		}
		cur = next
	}
	return cur
}
