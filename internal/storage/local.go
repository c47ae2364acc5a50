package storage

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/youruser/markx-images/internal/util"
)

// LocalSink writes blobs into a directory. The returned URL is the key
// appended to BaseURL, which is expected to serve that directory.
type LocalSink struct {
	Dir     string
	BaseURL string
}

func NewLocalSink(dir, baseURL string) (*LocalSink, error) {
	if err := util.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &LocalSink{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *LocalSink) Store(ctx context.Context, name string, jpeg []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &StoreError{Name: name, Err: err}
	}
	key := Key(name)
	if key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", &StoreError{Name: name, Err: errors.New("invalid blob name")}
	}
	if err := util.WriteFileAtomic(filepath.Join(s.Dir, key), jpeg); err != nil {
		return "", &StoreError{Name: name, Err: err}
	}
	if s.BaseURL == "" {
		return "file://" + filepath.ToSlash(filepath.Join(s.Dir, key)), nil
	}
	return s.BaseURL + "/" + url.PathEscape(key), nil
}
