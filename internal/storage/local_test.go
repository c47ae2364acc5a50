package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalSinkStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "blobs")
	sink, err := NewLocalSink(dir, "http://localhost:8080/blobs/")
	if err != nil {
		t.Fatal(err)
	}

	data := []byte{0xff, 0xd8, 0xff}
	url, err := sink.Store(context.Background(), "set1-merged-image", data)
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if want := "http://localhost:8080/blobs/set1-merged-image.jpg"; url != want {
		t.Errorf("url = %q, want %q", url, want)
	}
	got, err := os.ReadFile(filepath.Join(dir, "set1-merged-image.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("stored %v, want %v", got, data)
	}
}

func TestLocalSinkFileURL(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewLocalSink(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	url, err := sink.Store(context.Background(), "card", []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "file://" + filepath.ToSlash(filepath.Join(dir, "card.jpg")); url != want {
		t.Errorf("url = %q, want %q", url, want)
	}
}

func TestLocalSinkRejectsPaths(t *testing.T) {
	sink, err := NewLocalSink(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"../escape", "a/b", ".hidden"} {
		_, err := sink.Store(context.Background(), name, []byte("x"))
		var storeErr *StoreError
		if !errors.As(err, &storeErr) {
			t.Errorf("Store(%q) error = %v, want *StoreError", name, err)
		}
	}
}

func TestLocalSinkCanceled(t *testing.T) {
	sink, err := NewLocalSink(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sink.Store(ctx, "late", []byte("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("Store error = %v, want context.Canceled", err)
	}
}
