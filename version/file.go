package version

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ToolVersionsFile is the asdf/mise pin file name.
const ToolVersionsFile = ".tool-versions"

// RE2 \s only covers ascii whitespace; unicode separators and the BOM
// count as whitespace in version files too.
const (
	space    = `[\s\p{Z}\x{FEFF}]`
	nonspace = `[^\s\p{Z}\x{FEFF}]`
)

var (
	// updatecli [<anything>-]vX.Y.Z on a line of its own
	toolVersionsPattern = regexp.MustCompile(`(?m)^(updatecli` + space + `+)(?:` + nonspace + `*-)?(?P<version>v(\d+)(\.\d+)(\.\d+))$`)
	// first v<digits>... token
	genericPattern = regexp.MustCompile(`(?P<version>(v\d+` + nonspace + `*))(` + space + `|$)`)
)

// FromFile reads a pinned version from path.
// A missing file is not an error and yields an empty version, as does a file
// without any recognizable version.
func FromFile(log Logger, path string) (string, error) {
	if path == "" {
		return "", nil
	}

	name := filepath.Base(path)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", nil
	}

	pattern := genericPattern
	if name == ToolVersionsFile {
		pattern = toolVersionsPattern
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read version file %s: %w", path, err)
	}

	content := strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n"))

	version := match(pattern, content)
	if version == "" {
		return "", nil
	}

	log.Debug(fmt.Sprintf("Version from file '%s'", version))
	return version, nil
}

func match(pattern *regexp.Regexp, content string) string {
	groups := pattern.FindStringSubmatch(content)
	if groups == nil {
		return ""
	}
	return groups[pattern.SubexpIndex("version")]
}
