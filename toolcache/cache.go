// Package toolcache stores extracted tools in a directory tree keyed by
// tool name, version and architecture, using the same layout as the hosted
// runners' tool cache: <root>/<tool>/<version>/<arch>, with an empty
// <arch>.complete marker written once an entry is fully populated.
package toolcache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cp "github.com/otiai10/copy"
	"golang.org/x/mod/semver"
)

type Cache struct {
	root string
}

func New(root string) *Cache {
	return &Cache{root: root}
}

// Dir returns the directory an entry lives in, whether it exists or not.
func (c *Cache) Dir(tool, version, arch string) string {
	return filepath.Join(c.root, tool, NormalizeVersion(version), arch)
}

// Find returns the directory of a complete entry.
func (c *Cache) Find(tool, version, arch string) (string, bool) {
	if tool == "" || version == "" || arch == "" {
		return "", false
	}

	dir := c.Dir(tool, version, arch)
	if _, err := os.Stat(dir + ".complete"); err != nil {
		return "", false
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", false
	}

	return dir, true
}

// CacheDir copies the contents of source into the entry for (tool, version, arch)
// and returns the entry directory. An existing entry for the same key is
// replaced.
func (c *Cache) CacheDir(source, tool, version, arch string) (string, error) {
	if tool == "" || version == "" || arch == "" {
		return "", fmt.Errorf("tool, version and arch are required to cache %s", source)
	}

	info, err := os.Stat(source)
	if err != nil {
		return "", fmt.Errorf("failed to read source folder: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("source %s is not a directory", source)
	}

	dest := c.Dir(tool, version, arch)
	marker := dest + ".complete"

	if err := os.RemoveAll(marker); err != nil {
		return "", fmt.Errorf("failed to remove marker %s: %w", marker, err)
	}
	if err := os.RemoveAll(dest); err != nil {
		return "", fmt.Errorf("failed to clear cache entry %s: %w", dest, err)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache entry %s: %w", dest, err)
	}

	if err := cp.Copy(source, dest, cp.Options{PreserveTimes: false}); err != nil {
		return "", fmt.Errorf("failed to populate cache entry %s: %w", dest, err)
	}

	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		return "", fmt.Errorf("failed to write marker %s: %w", marker, err)
	}

	return dest, nil
}

// NormalizeVersion returns the cache key form of a version: valid semantic
// versions lose their leading v and any build metadata, anything else is
// kept verbatim.
func NormalizeVersion(version string) string {
	candidate := version
	if !strings.HasPrefix(candidate, "v") {
		candidate = "v" + candidate
	}

	if !semver.IsValid(candidate) {
		return version
	}

	// semver accepts v1 and v1.2 shorthands, the cache key only
	// normalizes complete major.minor.patch versions
	core := strings.TrimSuffix(strings.TrimSuffix(candidate, semver.Build(candidate)), semver.Prerelease(candidate))
	if strings.Count(core, ".") != 2 {
		return version
	}

	return strings.TrimPrefix(semver.Canonical(candidate), "v")
}
