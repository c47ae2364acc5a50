package imagepkg

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 90

// EncodeJPEG returns img encoded as JPEG. Transparent areas come out black.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
