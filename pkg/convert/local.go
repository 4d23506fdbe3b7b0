package convert

import (
	"context"
	"fmt"

	"github.com/colorpage/colorpage/pkg/lineart"
)

// Local runs the conversion pipeline in process. It needs no network and no
// state; the zero value is ready to use.
type Local struct{}

// Convert decodes src, traces it with opts and encodes the page as PNG.
// Cancellation is honored between the decode, trace and encode steps.
func (Local) Convert(ctx context.Context, src []byte, opts lineart.Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := lineart.DecodeBytes(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := lineart.Trace(img, opts)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := lineart.EncodePNG(out)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	b := out.Bounds()
	return &Result{PNG: data, Width: b.Dx(), Height: b.Dy()}, nil
}
