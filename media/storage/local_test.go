package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalProvider_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ios", "Runner", "AppIcon.appiconset")

	p, err := NewLocalProvider(dir)
	require.NoError(t, err)
	assert.Equal(t, "local", p.Name())

	_, err = NewLocalProvider(dir)
	require.NoError(t, err, "existing directory is not an error")
}

func TestNewLocalProvider_PathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := NewLocalProvider(file)
	assert.Error(t, err)

	_, err = NewLocalProvider(filepath.Join(file, "child"))
	assert.Error(t, err)
}

func TestPut_WritesAndOverwrites(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p, err := NewLocalProvider(dir)
	require.NoError(t, err)

	path, err := p.Put(ctx, "Icon-20.png", strings.NewReader("first"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Icon-20.png"), path)

	_, err = p.Put(ctx, "Icon-20.png", strings.NewReader("second"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

}

func TestPut_FailureLeavesNoTemporaries(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p, err := NewLocalProvider(dir)
	require.NoError(t, err)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "Icon-58.png"), 0755))
	_, err = p.Put(ctx, "Icon-58.png", strings.NewReader("data"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Icon-58.png", entries[0].Name())
}

func TestPut_CancelledContext(t *testing.T) {
	p, err := NewLocalProvider(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Put(ctx, "Icon-20.png", strings.NewReader("data"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestList_SortedRegularFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p, err := NewLocalProvider(dir)
	require.NoError(t, err)

	for _, name := range []string{"Icon-40.png", "Contents.json", "Icon-20.png"} {
		_, err := p.Put(ctx, name, strings.NewReader(name))
		require.NoError(t, err)
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	files, err := p.List(ctx)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Contents.json", "Icon-20.png", "Icon-40.png"}, names)
	assert.Equal(t, int64(len("Contents.json")), files[0].Size)
}
