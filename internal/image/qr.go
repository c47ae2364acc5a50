package imagepkg

import (
	"errors"
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultQRSize = 400
	maxQRSize     = 2048
)

// ShareQR returns a size×size PNG QR code encoding link, typically the URL
// of a stored composite.
func ShareQR(link string, size int) ([]byte, error) {
	q, err := newQR(link)
	if err != nil {
		return nil, err
	}
	return q.PNG(clampQRSize(size))
}

// ShareQRImage is ShareQR as a decoded image, for further composition.
func ShareQRImage(link string, size int) (image.Image, error) {
	q, err := newQR(link)
	if err != nil {
		return nil, err
	}
	return q.Image(clampQRSize(size)), nil
}

func newQR(link string) (*qrcode.QRCode, error) {
	if link == "" {
		return nil, errors.New("empty QR content")
	}
	return qrcode.New(link, qrcode.Medium)
}

func clampQRSize(size int) int {
	if size <= 0 {
		return DefaultQRSize
	}
	return min(size, maxQRSize)
}
