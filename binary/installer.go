package binary

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"

	harness "github.com/updatecli/updatecli-action"
	"github.com/updatecli/updatecli-action/action"
	"github.com/updatecli/updatecli-action/toolcache"
)

const (
	// DefaultName is the binary and cache name of the installed tool.
	DefaultName = "updatecli"
	// DefaultURLFormat points at the GitHub release assets.
	DefaultURLFormat = "https://github.com/updatecli/updatecli/releases/download/{{.Version}}/{{.Name}}_{{.OS}}_{{.ArchName}}{{.ArchiveExtension}}"

	// file name of the binary inside the release archive
	binaryFormat = "{{.Name}}{{.Extension}}"
)

// Installer provisions a release of the tool into the tool cache and exposes
// it on the runtime search path.
type Installer struct {
	name      string
	urlformat string
	client    *http.Client
}

func NewInstaller(options ...Option) *Installer {
	inst := Installer{
		name:      DefaultName,
		urlformat: DefaultURLFormat,
		client:    http.DefaultClient,
	}

	for _, opt := range options {
		opt(&inst)
	}

	return &inst
}

// URL returns the download url of version for the runtime platform and arch.
func (i *Installer) URL(rt *action.Runtime, version string) (string, Descriptor, error) {
	desc, err := Match(rt.Platform, rt.Arch)
	if err != nil {
		return "", Descriptor{}, err
	}

	url, err := desc.Template(i.name, version).Resolve(i.urlformat)
	if err != nil {
		return "", Descriptor{}, fmt.Errorf("failed to resolve URL: %w", err)
	}

	return url, desc, nil
}

// Install makes version available on the runtime search path and returns the
// cache directory holding it.
// A complete cache entry for the same version and arch is reused as is;
// otherwise the release archive is downloaded, extracted and cached.
// Nothing is cleaned up from the cache if a later step fails.
func (i *Installer) Install(ctx context.Context, rt *action.Runtime, version string) (string, error) {
	if version == "" {
		return "", fmt.Errorf("version must be set")
	}

	url, desc, err := i.URL(rt, version)
	if err != nil {
		return "", err
	}

	cache := toolcache.New(rt.ToolCacheDir())

	dir, found := cache.Find(i.name, version, rt.Arch)
	if found {
		rt.Info(fmt.Sprintf("Found %s %s in cache @ %s", i.name, version, dir))
	} else {
		dir, err = i.provision(ctx, rt, cache, url, version)
		if err != nil {
			return "", err
		}
	}

	if desc.Platform.POSIX() {
		name, err := desc.Template(i.name, version).Resolve(binaryFormat)
		if err != nil {
			return "", fmt.Errorf("failed to resolve binary name: %w", err)
		}

		bin := filepath.Join(dir, name)
		if err := harness.Run(ctx, rt, "chmod", harness.WithArgs("+x", bin), harness.WithoutNoise()); err != nil {
			return "", fmt.Errorf("failed to set permissions on %s: %w", bin, err)
		}
	}

	if err := rt.AddPath(dir); err != nil {
		return "", fmt.Errorf("failed to add %s to path: %w", dir, err)
	}

	rt.Info(fmt.Sprintf("Downloaded to %s", dir))
	return dir, nil
}

// provision downloads and extracts url into a scratch directory and moves the
// result into the cache.
func (i *Installer) provision(ctx context.Context, rt *action.Runtime, cache *toolcache.Cache, url, version string) (string, error) {
	logstep(rt.Stdout, fmt.Sprintf("installing %s %s", i.name, version))

	if err := os.MkdirAll(rt.TempDir(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create destination folder %s: %w", rt.TempDir(), err)
	}

	scratch, err := os.MkdirTemp(rt.TempDir(), i.name+"-")
	if err != nil {
		return "", fmt.Errorf("failed to create scratch folder: %w", err)
	}
	defer os.RemoveAll(scratch)

	rt.Info(fmt.Sprintf("Downloading %s", url))

	archive := filepath.Join(scratch, path.Base(url))
	if err := download(ctx, rt.Stdout, i.client, url, archive); err != nil {
		return "", err
	}

	extracted := filepath.Join(scratch, "extracted")
	rt.Debug(fmt.Sprintf("Extracting file %s ...", archive))
	if err := Extract(rt.Stdout, archive, url, extracted); err != nil {
		return "", err
	}
	rt.Debug(fmt.Sprintf("Extracted file to %s ...", extracted))

	rt.Debug("Adding to the cache ...")
	dir, err := cache.CacheDir(extracted, i.name, version, rt.Arch)
	if err != nil {
		return "", fmt.Errorf("failed to cache %s: %w", i.name, err)
	}

	return dir, nil
}
