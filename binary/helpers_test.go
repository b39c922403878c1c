package binary

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/updatecli/updatecli-action/action"
)

type entry struct {
	name    string
	content string
	mode    int64
}

func targz(t *testing.T, entries ...entry) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	gz := gzip.NewWriter(buf)
	tw := tar.NewWriter(gz)

	for _, e := range entries {
		if strings.HasSuffix(e.name, "/") {
			require.NoError(t, tw.WriteHeader(&tar.Header{Name: e.name, Typeflag: tar.TypeDir, Mode: 0o755}))
			continue
		}
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     e.name,
			Typeflag: tar.TypeReg,
			Mode:     e.mode,
			Size:     int64(len(e.content)),
		}))
		_, err := tw.Write([]byte(e.content))
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func zipped(t *testing.T, entries ...entry) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	for _, e := range entries {
		header := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		header.SetMode(os.FileMode(e.mode))
		w, err := zw.CreateHeader(header)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.content))
		require.NoError(t, err)
	}

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// release serves archives by file name and counts the requests it receives.
type release struct {
	*httptest.Server
	hits atomic.Int32
}

func serveRelease(t *testing.T, assets map[string][]byte) *release {
	t.Helper()

	rel := &release{}
	rel.Server = httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				rel.hits.Add(1)
				data, ok := assets[filepath.Base(r.URL.Path)]
				if !ok {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				w.Write(data)
			},
		),
	)
	t.Cleanup(rel.Close)

	return rel
}

// runtimeFor builds a runtime with isolated temp and cache folders and the
// current PATH, so system commands like chmod can be found.
func runtimeFor(t *testing.T, platform, arch string) *action.Runtime {
	t.Helper()

	out := new(bytes.Buffer)
	return &action.Runtime{
		Platform: platform,
		Arch:     arch,
		Env: map[string]string{
			"RUNNER_TEMP":       t.TempDir(),
			"RUNNER_TOOL_CACHE": t.TempDir(),
		},
		Path:   filepath.SplitList(os.Getenv("PATH")),
		Stdout: out,
		Stderr: out,
	}
}
