package imagepkg

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestFontRegistryEmbedded(t *testing.T) {
	reg := NewFontRegistry("", "")
	if reg.DefaultFamily() != EmbeddedFamily {
		t.Errorf("DefaultFamily = %q, want %q", reg.DefaultFamily(), EmbeddedFamily)
	}
	if err := reg.EnsureLoaded(); err != nil {
		t.Fatalf("EnsureLoaded: %v", err)
	}
	face, err := reg.Face(EmbeddedFamily, 70)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	defer face.Close()
	if face.Metrics().Ascent <= 0 {
		t.Error("face has no ascent")
	}
}

func TestFontRegistryConcurrentFirstUse(t *testing.T) {
	reg := NewFontRegistry("", "")
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- reg.EnsureLoaded()
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("EnsureLoaded: %v", err)
		}
	}
	if len(reg.fonts) != 1 {
		t.Errorf("registered %d fonts, want 1", len(reg.fonts))
	}
}

func TestFontRegistryMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Caprasimo-Regular.ttf")
	reg := NewFontRegistry(path, "Caprasimo")

	err := reg.EnsureLoaded()
	var fontErr *FontLoadError
	if !errors.As(err, &fontErr) {
		t.Fatalf("EnsureLoaded error = %v, want *FontLoadError", err)
	}
	if fontErr.Path != path || fontErr.Family != "Caprasimo" {
		t.Errorf("FontLoadError = %+v", fontErr)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v does not wrap os.ErrNotExist", err)
	}
	// the failure sticks: registration is attempted once
	if err2 := reg.EnsureLoaded(); err2 != err {
		t.Errorf("second EnsureLoaded = %v, want %v", err2, err)
	}
}

func TestFontRegistryRegisterOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	reg := NewFontRegistry(path, "Go Regular")
	if err := reg.EnsureLoaded(); err != nil {
		t.Fatalf("EnsureLoaded: %v", err)
	}

	// a second registration of the same family does not touch the file
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterOnce(path, "Go Regular"); err != nil {
		t.Errorf("RegisterOnce of a known family: %v", err)
	}
}

func TestFontRegistryBadData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	reg := NewFontRegistry("", "")
	var fontErr *FontLoadError
	if err := reg.RegisterOnce(path, "Broken"); !errors.As(err, &fontErr) {
		t.Errorf("RegisterOnce error = %v, want *FontLoadError", err)
	}
	if _, err := reg.Face("Broken", 12); !errors.As(err, &fontErr) {
		t.Errorf("Face error = %v, want *FontLoadError", err)
	}
}
