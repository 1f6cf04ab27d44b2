package importer

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/png"

	"github.com/piwi3910/ProxySheet/internal/model"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ConvertToPNG decodes an image of a convertible encoding and re-encodes it as PNG.
// Only the first frame of an animated GIF is kept.
func ConvertToPNG(data []byte, enc model.Encoding) ([]byte, error) {
	var (
		img image.Image
		err error
	)
	r := bytes.NewReader(data)

	switch enc {
	case model.EncodingWebP:
		img, err = webp.Decode(r)
	case model.EncodingBMP:
		img, err = bmp.Decode(r)
	case model.EncodingTIFF:
		img, err = tiff.Decode(r)
	case model.EncodingGIF:
		img, err = gif.Decode(r)
	default:
		return nil, fmt.Errorf("%w: cannot convert %s", model.ErrUnsupportedEncoding, enc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrDecodeFailure, enc, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
