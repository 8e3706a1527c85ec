package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File is a Store that writes one JSON file per key under a directory. It
// suits single-process embeddings that need state to survive restarts
// without an external service.
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile creates a file-backed store rooted at dir, creating the directory
// if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &File{dir: dir}, nil
}

func (f *File) Load(ctx context.Context, key string, v any) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	raw, err := os.ReadFile(path)
	f.mu.Unlock()

	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return ErrNotFound
	}
	return nil
}

func (f *File) Save(ctx context.Context, key string, v any) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Write-then-rename keeps readers from ever seeing a torn record.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (f *File) Delete(ctx context.Context, key string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (f *File) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	return filepath.Join(f.dir, key+".json"), nil
}
