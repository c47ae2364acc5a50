package imagepkg

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// EmbeddedFamily names the bold Go font used when no font file is configured.
const EmbeddedFamily = "Go Bold"

// FontRegistry holds the parsed fonts of the process. Registration of the
// default font happens once, behind the registry's lock, before the first
// render asks for a face.
type FontRegistry struct {
	defaultPath   string
	defaultFamily string

	mu      sync.Mutex
	loaded  bool
	loadErr error
	fonts   map[string]*opentype.Font
}

// NewFontRegistry creates a registry whose default font is read from path
// under the given family name. An empty path selects the embedded Go Bold
// font.
func NewFontRegistry(path, family string) *FontRegistry {
	if family == "" {
		family = EmbeddedFamily
	}
	return &FontRegistry{
		defaultPath:   path,
		defaultFamily: family,
		fonts:         make(map[string]*opentype.Font),
	}
}

// DefaultFamily returns the family name renders use.
func (r *FontRegistry) DefaultFamily() string {
	return r.defaultFamily
}

// EnsureLoaded registers the default font the first time it is called and
// returns the outcome of that registration on every later call.
func (r *FontRegistry) EnsureLoaded() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		r.loadErr = r.register(r.defaultPath, r.defaultFamily)
		r.loaded = true
	}
	return r.loadErr
}

// RegisterOnce parses the font at path and makes it available as family.
// Registering a family that is already known is a no-op.
func (r *FontRegistry) RegisterOnce(path, family string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(path, family)
}

func (r *FontRegistry) register(path, family string) error {
	if _, ok := r.fonts[family]; ok {
		return nil
	}

	data := gobold.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return &FontLoadError{Path: path, Family: family, Err: err}
		}
		data = b
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return &FontLoadError{Path: path, Family: family, Err: err}
	}
	r.fonts[family] = parsed
	return nil
}

// Face returns a new face of family at size pixels. Faces are not safe for
// concurrent use, so every render gets its own and closes it when done.
func (r *FontRegistry) Face(family string, size float64) (font.Face, error) {
	r.mu.Lock()
	parsed, ok := r.fonts[family]
	r.mu.Unlock()
	if !ok {
		return nil, &FontLoadError{Family: family, Err: errors.New("family not registered")}
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}
