package lineart

// Options control the photo to line-art conversion.
//
// Threshold sets how strong a gradient must be to count as an edge, relative
// to the strongest gradient in the image: 0 keeps everything that responded,
// 255 keeps only the strongest. BlurPasses smooths the photo before edge
// detection so fine texture doesn't turn into stray marks. Thickness grows
// the detected lines. MaxDim caps the longest side of the working image.
type Options struct {
	Threshold  int
	BlurPasses int
	Thickness  int
	MaxDim     int
}

// DefaultMaxDim is the longest-side cap used when the caller doesn't set one.
// It matches the hosted conversion service.
const DefaultMaxDim = 1200

// Defaults returns the options used when the caller specifies nothing.
func Defaults() Options {
	return Options{Threshold: 50, BlurPasses: 1, Thickness: 1, MaxDim: DefaultMaxDim}
}

// Clamp returns a copy of o with every field forced into its valid range:
// Threshold 0-255, BlurPasses 0-3, Thickness 0-2. MaxDim has no upper bound;
// zero or negative selects DefaultMaxDim. Every entry point (CLI, HTTP
// handler, converters) clamps through here so out-of-range input behaves the
// same no matter where it arrives.
func (o Options) Clamp() Options {
	o.Threshold = clampInt(o.Threshold, 0, 255)
	o.BlurPasses = clampInt(o.BlurPasses, 0, 3)
	o.Thickness = clampInt(o.Thickness, 0, 2)
	if o.MaxDim <= 0 {
		o.MaxDim = DefaultMaxDim
	}
	return o
}
