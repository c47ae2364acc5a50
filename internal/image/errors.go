package imagepkg

import "fmt"

// FetchError reports a source image that could not be downloaded or decoded.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// FontLoadError reports a font asset that could not be read or parsed.
type FontLoadError struct {
	Path   string
	Family string
	Err    error
}

func (e *FontLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load font %q: %v", e.Family, e.Err)
	}
	return fmt.Sprintf("load font %q from %s: %v", e.Family, e.Path, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// LayoutError reports an image count no grid can be built for.
type LayoutError struct {
	Count  int
	Reason string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("grid layout for %d images: %s", e.Count, e.Reason)
}
