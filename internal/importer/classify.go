package importer

import (
	"github.com/gabriel-vasile/mimetype"
	"github.com/piwi3910/ProxySheet/internal/model"
)

// mimeEncodings maps sniffed MIME types to encodings.
var mimeEncodings = map[string]model.Encoding{
	"image/jpeg": model.EncodingJPEG,
	"image/png":  model.EncodingPNG,
	"image/webp": model.EncodingWebP,
	"image/bmp":  model.EncodingBMP,
	"image/tiff": model.EncodingTIFF,
	"image/gif":  model.EncodingGIF,
}

// Classify sniffs the encoding of data from its content. File names are not consulted.
func Classify(data []byte) model.Encoding {
	if len(data) == 0 {
		return model.EncodingUnknown
	}
	mime := mimetype.Detect(data)
	for m := mime; m != nil; m = m.Parent() {
		if enc, ok := mimeEncodings[m.String()]; ok {
			return enc
		}
	}
	return model.EncodingUnknown
}

// MimeType returns the sniffed MIME type of data, for diagnostics.
func MimeType(data []byte) string {
	return mimetype.Detect(data).String()
}
