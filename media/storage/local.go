package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// LocalProvider implements Provider on a local directory.
type LocalProvider struct {
	basePath string
}

// NewLocalProvider creates basePath and any missing parents. Calling it on
// an existing directory is a no-op.
func NewLocalProvider(basePath string) (*LocalProvider, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, err
	}
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", basePath)
	}
	return &LocalProvider{basePath: basePath}, nil
}

// Put writes to a temporary file in the same directory and renames it over
// the destination, so readers never observe a half-written file.
func (p *LocalProvider) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath := filepath.Join(p.basePath, name)

	tmp, err := os.CreateTemp(p.basePath, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write file content: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		return "", fmt.Errorf("failed to replace %s: %w", name, err)
	}

	return fullPath, nil
}

// List returns regular files, skipping hidden temporaries.
func (p *LocalProvider) List(ctx context.Context) ([]FileInfo, error) {
	entries, err := os.ReadDir(p.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || entry.Name()[0] == '.' {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Name:      entry.Name(),
			Size:      info.Size(),
			UpdatedAt: info.ModTime().Unix(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (p *LocalProvider) Name() string {
	return "local"
}

var _ Provider = (*LocalProvider)(nil)
