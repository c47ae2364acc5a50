// Package compose runs the labeling and grid pipelines against an image
// source and a blob sink.
package compose

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strconv"

	imagepkg "github.com/youruser/markx-images/internal/image"
	"github.com/youruser/markx-images/internal/storage"
	"golang.org/x/sync/errgroup"
)

// MaxImages is the most images a single merge accepts.
const MaxImages = 12

// Service turns source URLs into stored, labeled images and grids.
type Service struct {
	Source      imagepkg.Source
	Sink        storage.Sink
	Renderer    *imagepkg.Renderer
	Logger      *slog.Logger
	JPEGQuality int
	// Concurrency caps the images processed at once by MergeMany; zero or
	// less means no limit.
	Concurrency int
}

// LabelSingle fetches imageURL, draws text on it as a caption and stores the
// result under name.
func (s *Service) LabelSingle(ctx context.Context, name, imageURL, text string) (string, error) {
	img, err := s.Source.Fetch(ctx, imageURL)
	if err != nil {
		return "", err
	}
	out, err := s.Renderer.Render(text, img, imagepkg.Caption)
	if err != nil {
		return "", err
	}
	url, err := s.store(ctx, name, out)
	if err != nil {
		return "", err
	}
	s.logger().Info("stored caption", "name", name, "url", url)
	return url, nil
}

// MergeMany labels every image with its 1-based position, stores each labeled
// image as "<name>-<label>", then tiles the labeled images into a grid stored
// as "<name>-merged-image". Any failure aborts the whole merge; labeled images
// already stored are left in place.
func (s *Service) MergeMany(ctx context.Context, name string, imageURLs []string) (string, error) {
	switch n := len(imageURLs); {
	case n == 0:
		return "", &imagepkg.LayoutError{Count: n, Reason: "no images to merge"}
	case n > MaxImages:
		return "", &imagepkg.LayoutError{Count: n, Reason: fmt.Sprintf("at most %d images can be merged", MaxImages)}
	}

	labeled := make([]image.Image, len(imageURLs))
	g, gctx := errgroup.WithContext(ctx)
	if s.Concurrency > 0 {
		g.SetLimit(s.Concurrency)
	}
	for i, u := range imageURLs {
		i, u := i, u
		g.Go(func() error {
			label := IndexLabel(i + 1)
			img, err := s.Source.Fetch(gctx, u)
			if err != nil {
				return err
			}
			out, err := s.Renderer.Render(label, img, imagepkg.Badge)
			if err != nil {
				return err
			}
			url, err := s.store(gctx, name+"-"+label, out)
			if err != nil {
				return err
			}
			s.logger().Debug("stored labeled image", "name", name, "label", label, "url", url)
			labeled[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	grid, err := imagepkg.ComposeGrid(labeled)
	if err != nil {
		return "", err
	}
	url, err := s.store(ctx, name+"-merged-image", grid)
	if err != nil {
		return "", err
	}
	s.logger().Info("stored merged image", "name", name, "images", len(imageURLs), "url", url)
	return url, nil
}

func (s *Service) store(ctx context.Context, name string, img image.Image) (string, error) {
	data, err := imagepkg.EncodeJPEG(img, s.JPEGQuality)
	if err != nil {
		return "", err
	}
	return s.Sink.Store(ctx, name, data)
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// IndexLabel formats n as a grid label: single digits get a leading zero,
// anything else is printed as is.
func IndexLabel(n int) string {
	if n >= 0 && n <= 9 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
