package lineart

import (
	"image"
	"math"
	"sync"
)

// Sobel kernels
var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// GradientMagnitude computes the Sobel gradient magnitude of the red channel
// for every pixel and returns it as a row-major map of length w*h. The input
// is expected to be grayscale already, so red carries the luminance. The
// outermost ring has no full 3x3 neighborhood and stays at zero. Rows are
// processed concurrently; the input is only read, so the result is identical
// to a sequential pass.
func GradientMagnitude(src *image.NRGBA) []float64 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	mag := make([]float64, w*h)
	if w < 3 || h < 3 {
		return mag
	}
	var wg sync.WaitGroup
	for y := 1; y < h-1; y++ {
		wg.Add(1)
		go func(y int) {
			defer wg.Done()
			for x := 1; x < w-1; x++ {
				sumX := 0.0
				sumY := 0.0
				for ky := -1; ky <= 1; ky++ {
					for kx := -1; kx <= 1; kx++ {
						j := src.PixOffset(x+kx, y+ky)
						v := float64(src.Pix[j])
						sumX += v * sobelX[ky+1][kx+1]
						sumY += v * sobelY[ky+1][kx+1]
					}
				}
				mag[y*w+x] = math.Sqrt(sumX*sumX + sumY*sumY)
			}
		}(y)
	}
	wg.Wait()
	return mag
}
