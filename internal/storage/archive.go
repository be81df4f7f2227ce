package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirArchive writes issued certificates to a local directory.
type DirArchive struct {
	dir string
}

// NewDirArchive creates an archive rooted at dir.
func NewDirArchive(dir string) *DirArchive {
	return &DirArchive{dir: dir}
}

// Put writes data to dir/key, creating parent directories.
func (a *DirArchive) Put(_ context.Context, key string, data []byte) error {
	path := filepath.Join(a.dir, filepath.Clean("/"+key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// NopArchive discards certificates.
type NopArchive struct{}

func (NopArchive) Put(context.Context, string, []byte) error { return nil }
