package toolcache

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVersion(t *testing.T) {
	tests := map[string]string{
		"v0.86.1":            "0.86.1",
		"0.86.1":             "0.86.1",
		"v1.2.3-rc.1":        "1.2.3-rc.1",
		"v1.2.3+build.5":     "1.2.3",
		"v1.2":               "v1.2",
		"latest":             "latest",
		"nightly-2024-01-01": "nightly-2024-01-01",
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, expected, NormalizeVersion(input))
		})
	}
}

func populate(t *testing.T) string {
	t.Helper()

	source := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(source, "updatecli"), []byte("binary"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(source, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "docs", "README.md"), []byte("readme"), 0o644))
	return source
}

func TestCache_CacheDir(t *testing.T) {
	root := t.TempDir()
	cache := New(root)

	dir, err := cache.CacheDir(populate(t), "updatecli", "v0.86.1", "x64")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "updatecli", "0.86.1", "x64"), dir)
	assert.FileExists(t, filepath.Join(dir, "updatecli"))
	assert.FileExists(t, filepath.Join(dir, "docs", "README.md"))
	assert.FileExists(t, dir+".complete")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(dir, "updatecli"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	}
}

func TestCache_CacheDirReplacesEntry(t *testing.T) {
	cache := New(t.TempDir())

	dir, err := cache.CacheDir(populate(t), "updatecli", "v0.86.1", "x64")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale"), []byte("old"), 0o644))

	again, err := cache.CacheDir(populate(t), "updatecli", "v0.86.1", "x64")
	require.NoError(t, err)

	assert.Equal(t, dir, again)
	assert.NoFileExists(t, filepath.Join(dir, "stale"))
}

func TestCache_Find(t *testing.T) {
	cache := New(t.TempDir())

	_, ok := cache.Find("updatecli", "v0.86.1", "x64")
	assert.False(t, ok)

	dir, err := cache.CacheDir(populate(t), "updatecli", "v0.86.1", "x64")
	require.NoError(t, err)

	found, ok := cache.Find("updatecli", "0.86.1", "x64")
	assert.True(t, ok)
	assert.Equal(t, dir, found)

	_, ok = cache.Find("updatecli", "v0.86.1", "arm64")
	assert.False(t, ok)

	t.Run("incomplete entry is a miss", func(t *testing.T) {
		require.NoError(t, os.Remove(dir+".complete"))
		_, ok := cache.Find("updatecli", "v0.86.1", "x64")
		assert.False(t, ok)
	})
}

func TestCache_CacheDirErrors(t *testing.T) {
	cache := New(t.TempDir())

	_, err := cache.CacheDir(t.TempDir(), "updatecli", "", "x64")
	assert.ErrorContains(t, err, "required")

	_, err = cache.CacheDir(filepath.Join(t.TempDir(), "missing"), "updatecli", "v1.0.0", "x64")
	assert.ErrorContains(t, err, "failed to read source folder")
}

func TestCache_CacheDirKeepsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}

	source := populate(t)
	require.NoError(t, os.Symlink("updatecli", filepath.Join(source, "uc")))

	dir, err := New(t.TempDir()).CacheDir(source, "updatecli", "v0.86.1", "x64")
	require.NoError(t, err)

	link, err := os.Readlink(filepath.Join(dir, "uc"))
	require.NoError(t, err)
	assert.Equal(t, "updatecli", link)
}
