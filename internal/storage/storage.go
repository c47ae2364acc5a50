// Package storage holds the blob sinks rendered images are published to.
package storage

import (
	"context"
	"fmt"
)

// ContentType of every stored blob.
const ContentType = "image/jpeg"

// Sink stores JPEG bytes under a name and returns the public URL.
type Sink interface {
	Store(ctx context.Context, name string, jpeg []byte) (string, error)
}

// StoreError reports a blob the sink could not accept.
type StoreError struct {
	Name string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Name, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Key is the object key a blob named name is stored under.
func Key(name string) string {
	return name + ".jpg"
}
