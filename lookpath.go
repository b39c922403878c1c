package harness

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/updatecli/updatecli-action/action"
)

// ExecutableNotFoundError is returned when a command can't be resolved
// against the runtime search path.
type ExecutableNotFoundError struct {
	Name string
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf(
		"Unable to locate executable file: %s. "+
			"Please verify either the file path exists or the file can be found within a directory specified by the PATH environment variable. "+
			"Also check the file mode to verify the file is executable.",
		e.Name,
	)
}

// lookPath resolves executable to an absolute path.
// Names containing a path separator are taken relative to the current
// directory; bare names are searched in rt.Path in order.
func lookPath(rt *action.Runtime, executable string) (string, error) {
	if strings.ContainsAny(executable, `/\`) {
		abs, err := filepath.Abs(executable)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", executable, err)
		}
		if _, err := exec.LookPath(abs); err != nil {
			return "", &ExecutableNotFoundError{Name: executable}
		}
		return abs, nil
	}

	candidates := []string{executable}
	if rt.Platform == "win32" && filepath.Ext(executable) == "" {
		candidates = append([]string{executable + ".exe"}, candidates...)
	}

	for _, dir := range rt.Path {
		if dir == "" {
			continue
		}
		for _, name := range candidates {
			// exec.LookPath on a path with a separator only checks the file
			// itself, including its executable bits.
			candidate, err := filepath.Abs(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			if found, err := exec.LookPath(candidate); err == nil {
				return found, nil
			}
		}
	}

	return "", &ExecutableNotFoundError{Name: executable}
}
