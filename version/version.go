// Package version decides which updatecli release to install.
//
// The version comes from, in order of precedence, an explicit version input,
// a pinned-version file, or [DefaultVersion].
package version

import (
	"fmt"
)

// DefaultVersion is installed when neither a version nor a version file is given.
const DefaultVersion = "v0.86.1"

// Logger receives the informational lines emitted while resolving.
// [action.Runtime] satisfies it.
type Logger interface {
	Debug(msg string)
	Info(msg string)
}

// Inputs are the raw user inputs; both are optional.
type Inputs struct {
	Version     string
	VersionFile string
}

// NoVersionFoundError is returned when a version file was given but no
// version could be read from it.
type NoVersionFoundError struct {
	File string
}

func (e *NoVersionFoundError) Error() string {
	return fmt.Sprintf("No supported version was found in file %s", e.File)
}

// Resolve returns the version to install.
// An explicit version always wins over the version file and is returned verbatim.
func Resolve(log Logger, in Inputs) (string, error) {
	if in.Version != "" {
		return in.Version, nil
	}

	if in.VersionFile == "" {
		log.Info(fmt.Sprintf("Set default value for version to %s", DefaultVersion))
		return DefaultVersion, nil
	}

	version, err := FromFile(log, in.VersionFile)
	if err != nil {
		return "", err
	}
	if version == "" {
		return "", &NoVersionFoundError{File: in.VersionFile}
	}

	return version, nil
}
