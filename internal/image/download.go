package imagepkg

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/youruser/markx-images/internal/util"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Source fetches and decodes the image stored at a URL.
type Source interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// DefaultMaxImageBytes caps the size of a downloaded image.
const DefaultMaxImageBytes = 20 << 20

// HTTPSource downloads images over HTTP(S).
type HTTPSource struct {
	Client *http.Client
	// MaxBytes rejects larger response bodies; zero or less disables the cap.
	MaxBytes int64
}

// NewHTTPSource returns a source whose requests give up after timeout and
// which refuses images larger than maxBytes.
func NewHTTPSource(timeout time.Duration, maxBytes int64) *HTTPSource {
	return &HTTPSource{Client: &http.Client{Timeout: timeout}, MaxBytes: maxBytes}
}

// Fetch downloads url and returns the decoded image, orientated according
// to its EXIF data.
func (s *HTTPSource) Fetch(ctx context.Context, url string) (image.Image, error) {
	body, err := util.GetBytes(ctx, s.Client, url, s.MaxBytes)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return decode(url, body)
}

// FileSource reads images from the local filesystem. It accepts plain paths
// and file:// URLs.
type FileSource struct{}

func (FileSource) Fetch(_ context.Context, ref string) (image.Image, error) {
	path := ref
	if strings.HasPrefix(ref, "file://") {
		u, err := url.Parse(ref)
		if err != nil {
			return nil, &FetchError{URL: ref, Err: err}
		}
		path = u.Path
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, &FetchError{URL: ref, Err: err}
	}
	return decode(ref, body)
}

// AutoSource dispatches http(s) URLs to HTTP and everything else to the
// filesystem.
type AutoSource struct {
	HTTP *HTTPSource
	File FileSource
}

func (s AutoSource) Fetch(ctx context.Context, ref string) (image.Image, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return s.HTTP.Fetch(ctx, ref)
	}
	return s.File.Fetch(ctx, ref)
}

func decode(ref string, body []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &FetchError{URL: ref, Err: err}
	}
	return img, nil
}
