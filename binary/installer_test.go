package binary

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURLFormat = "/{{.Version}}/{{.Name}}_{{.OS}}_{{.ArchName}}{{.ArchiveExtension}}"

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires chmod and shell scripts")
	}
}

func TestInstaller_URL(t *testing.T) {
	rt := runtimeFor(t, "darwin", "arm64")

	url, desc, err := NewInstaller().URL(rt, "v0.86.1")
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/updatecli/updatecli/releases/download/v0.86.1/updatecli_Darwin_arm64.tar.gz", url)
	assert.Equal(t, PlatformDarwin, desc.Platform)
}

func TestInstaller_Install(t *testing.T) {
	skipOnWindows(t)

	rel := serveRelease(t, map[string][]byte{
		"updatecli_Linux_x86_64.tar.gz": targz(t,
			entry{name: "updatecli", content: "#!/bin/sh\necho updatecli v0.86.1\n", mode: 0o644},
			entry{name: "LICENSE", content: "license", mode: 0o644},
		),
	})

	rt := runtimeFor(t, "linux", "x64")
	installer := NewInstaller(WithURLFormat(rel.URL + testURLFormat))

	dir, err := installer.Install(context.Background(), rt, "v0.86.1")
	require.NoError(t, err)

	expected := filepath.Join(rt.ToolCacheDir(), "updatecli", "0.86.1", "x64")
	assert.Equal(t, expected, dir)
	assert.FileExists(t, filepath.Join(dir, "updatecli"))
	assert.FileExists(t, filepath.Join(dir, "LICENSE"))
	assert.Equal(t, dir, rt.Path[0])

	info, err := os.Stat(filepath.Join(dir, "updatecli"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o111, "chmod +x should have run")
	assert.Contains(t, rt.Stdout.(*bytes.Buffer).String(), "downloading "+rel.URL)

	entries, err := os.ReadDir(rt.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch folder should be removed")

	t.Run("reuses the cache entry", func(t *testing.T) {
		hits := rel.hits.Load()

		again, err := installer.Install(context.Background(), rt, "v0.86.1")
		require.NoError(t, err)

		assert.Equal(t, dir, again)
		assert.Equal(t, hits, rel.hits.Load())
	})
}

func TestInstaller_InstallWindows(t *testing.T) {
	rel := serveRelease(t, map[string][]byte{
		"updatecli_Windows_arm64.zip": zipped(t,
			entry{name: "updatecli.exe", content: "MZ", mode: 0o644},
		),
	})

	rt := runtimeFor(t, "win32", "arm64")
	// chmod must not be needed
	rt.Path = nil

	dir, err := NewInstaller(WithURLFormat(rel.URL+testURLFormat)).Install(context.Background(), rt, "v0.86.1")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(rt.ToolCacheDir(), "updatecli", "0.86.1", "arm64"), dir)
	assert.FileExists(t, filepath.Join(dir, "updatecli.exe"))
	assert.Equal(t, []string{dir}, rt.Path)
}

func TestInstaller_UnsupportedPlatform(t *testing.T) {
	rt := runtimeFor(t, "foo", "bar")
	path := append([]string(nil), rt.Path...)

	_, err := NewInstaller().Install(context.Background(), rt, "v0.86.1")
	require.Error(t, err)

	var unsupported *UnsupportedPlatformError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "Unsupported platform foo and arch bar", err.Error())
	assert.Equal(t, path, rt.Path)
}

func TestInstaller_UnsupportedArchiveType(t *testing.T) {
	rel := serveRelease(t, map[string][]byte{"foo.bar": []byte("data")})
	rt := runtimeFor(t, "linux", "x64")

	_, err := NewInstaller(WithURLFormat(rel.URL+"/foo.bar")).Install(context.Background(), rt, "v0.86.1")
	assert.EqualError(t, err, "Unsupported archive type: "+rel.URL+"/foo.bar")

	_, found := os.Stat(filepath.Join(rt.ToolCacheDir(), "updatecli"))
	assert.True(t, os.IsNotExist(found))
}

func TestInstaller_DownloadError(t *testing.T) {
	rel := serveRelease(t, map[string][]byte{})
	rt := runtimeFor(t, "linux", "x64")
	path := append([]string(nil), rt.Path...)

	_, err := NewInstaller(WithURLFormat(rel.URL+testURLFormat)).Install(context.Background(), rt, "v9.9.9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response")
	assert.Contains(t, err.Error(), "http404")
	assert.Equal(t, path, rt.Path)
}

func TestInstaller_EmptyVersion(t *testing.T) {
	_, err := NewInstaller().Install(context.Background(), runtimeFor(t, "linux", "x64"), "")
	assert.EqualError(t, err, "version must be set")
}

func TestInstaller_WithName(t *testing.T) {
	skipOnWindows(t)

	rel := serveRelease(t, map[string][]byte{
		"mytool_Darwin_x86_64.tar.gz": targz(t,
			entry{name: "mytool", content: "#!/bin/sh\n", mode: 0o644},
		),
	})

	rt := runtimeFor(t, "darwin", "x64")

	dir, err := NewInstaller(
		WithName("mytool"),
		WithURLFormat(rel.URL+testURLFormat),
	).Install(context.Background(), rt, "v1.0.0")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(rt.ToolCacheDir(), "mytool", "1.0.0", "x64"), dir)

	info, err := os.Stat(filepath.Join(dir, "mytool"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o111)
}

// roundtripper records the requests going through a client.
type roundtripper struct {
	requests []*http.Request
}

func (rt *roundtripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.requests = append(rt.requests, req)
	return http.DefaultTransport.RoundTrip(req)
}

func TestInstaller_WithHTTPClient(t *testing.T) {
	rel := serveRelease(t, map[string][]byte{
		"updatecli_Windows_x86_64.zip": zipped(t,
			entry{name: "updatecli.exe", content: "MZ", mode: 0o644},
		),
	})

	transport := &roundtripper{}
	rt := runtimeFor(t, "win32", "x64")

	_, err := NewInstaller(
		WithHTTPClient(&http.Client{Transport: transport}),
		WithURLFormat(rel.URL+testURLFormat),
	).Install(context.Background(), rt, "v0.86.1")
	require.NoError(t, err)

	require.Len(t, transport.requests, 1)
	assert.Equal(t, rel.URL+"/v0.86.1/updatecli_Windows_x86_64.zip", transport.requests[0].URL.String())
	assert.Equal(t, "setup-updatecli", transport.requests[0].Header.Get("User-Agent"))
}
