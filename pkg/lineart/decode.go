package lineart

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"

	// Register decoders beyond PNG so any raster format a phone or scanner
	// produces can feed the pipeline.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads any registered raster format and returns an upright NRGBA
// buffer. EXIF orientation is applied during decode, so camera photos come
// out the right way up before any pixels are touched.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return ToNRGBA(img), nil
}

// DecodeBytes decodes an in-memory encoded image.
func DecodeBytes(b []byte) (*image.NRGBA, error) {
	return Decode(bytes.NewReader(b))
}

// EncodePNG encodes img as PNG. PNG is lossless, so a pure black-and-white
// page survives an encode/decode round trip pixel for pixel.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
