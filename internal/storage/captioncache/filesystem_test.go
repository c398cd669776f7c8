package captioncache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileSystemCache_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "captions")

	cache, err := NewFileSystemCache(dir)
	require.NoError(t, err)
	require.NotNil(t, cache)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewFileSystemCache_EmptyPath(t *testing.T) {
	_, err := NewFileSystemCache("")
	assert.Error(t, err)
}

func TestOutputBase_StripsPathSeparators(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewFileSystemCache(dir)
	require.NoError(t, err)

	base := cache.OutputBase("../../etc/passwd")
	assert.Equal(t, filepath.Dir(base), cache.basePath)
	assert.Equal(t, "passwd", filepath.Base(base))
}

func TestReadAndRemove(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewFileSystemCache(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "dQw4w9WgXcQ.en.vtt")
	require.NoError(t, os.WriteFile(path, []byte("WEBVTT\n"), 0o644))

	content, err := cache.ReadAndRemove(path)
	require.NoError(t, err)
	assert.Equal(t, "WEBVTT\n", content)

	// 讀取後檔案必須已被刪除
	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadAndRemove_Missing(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewFileSystemCache(dir)
	require.NoError(t, err)

	_, err = cache.ReadAndRemove(filepath.Join(dir, "no-such-file.vtt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewFileSystemCache(dir)
	require.NoError(t, err)

	stale := filepath.Join(dir, "stale.en.vtt")
	fresh := filepath.Join(dir, "fresh.en.vtt")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(fresh, []byte("y"), 0o644))

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	removed, err := cache.Prune(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(stale)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}
