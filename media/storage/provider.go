package storage

import (
	"context"
	"io"
)

// Provider persists generated files under a fixed destination.
type Provider interface {
	// Put writes the content of r under name, replacing any existing file,
	// and returns the full path written.
	Put(ctx context.Context, name string, r io.Reader) (string, error)
	// List returns the regular files at the destination, sorted by name.
	List(ctx context.Context) ([]FileInfo, error)
	Name() string
}

// FileInfo describes a stored file.
type FileInfo struct {
	Name      string
	Size      int64
	UpdatedAt int64
}
