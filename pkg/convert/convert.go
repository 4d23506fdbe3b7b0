// Package convert defines the conversion contract: encoded photo bytes in,
// black-and-white line art out. The local implementation runs the pipeline in
// process; the remote one speaks the hosted service's wire protocol; the
// dispatcher picks between them.
package convert

import (
	"context"
	"errors"

	"github.com/colorpage/colorpage/pkg/lineart"
)

// Result holds one finished conversion: the encoded PNG page and its pixel
// dimensions.
type Result struct {
	PNG    []byte
	Width  int
	Height int
}

// Converter turns an encoded source image into line art.
type Converter interface {
	Convert(ctx context.Context, src []byte, opts lineart.Options) (*Result, error)
}

// ErrInvalidImage marks source bytes that could not be decoded as an image.
var ErrInvalidImage = errors.New("invalid image")
