package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/polkiloo/cvorders/internal/domain/model"
)

// URLPrefix is the route stored files are served under.
const URLPrefix = "/files"

// ErrTooLarge is returned when an upload exceeds the configured limit.
var ErrTooLarge = errors.New("file exceeds upload limit")

// Local stores uploads on disk under generated names.
type Local struct {
	dir      string
	baseURL  string
	maxBytes int64
}

// NewLocal prepares dir and returns the store.
func NewLocal(dir, baseURL string, maxBytes int64) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create files dir: %w", err)
	}
	return &Local{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), maxBytes: maxBytes}, nil
}

// Dir returns the storage root.
func (s *Local) Dir() string { return s.dir }

// Save copies r to disk. The returned file carries display name, storage name and public URL.
func (s *Local) Save(ctx context.Context, originalName string, r io.Reader) (model.OrderFile, error) {
	if err := ctx.Err(); err != nil {
		return model.OrderFile{}, err
	}

	id := uuid.NewString()
	storageName := id + strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(s.dir, storageName)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return model.OrderFile{}, fmt.Errorf("create file: %w", err)
	}

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	n, err := io.Copy(f, src)
	closeErr := f.Close()
	if err == nil && s.maxBytes > 0 && n > s.maxBytes {
		err = ErrTooLarge
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		if errors.Is(err, ErrTooLarge) {
			return model.OrderFile{}, err
		}
		return model.OrderFile{}, fmt.Errorf("write file: %w", err)
	}

	return model.OrderFile{
		ID:              id,
		FileStorageName: storageName,
		Name:            filepath.Base(originalName),
		URL:             s.URL(storageName),
	}, nil
}

// URL builds public URL for a storage name.
func (s *Local) URL(storageName string) string {
	return s.baseURL + URLPrefix + "/" + storageName
}
