package action

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"

	"github.com/sethvargo/go-githubactions"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Runtime is the execution environment of a single action run.
// It's built once at the entry point and passed explicitly to every step,
// so nothing downstream reads platform, arch, environment or PATH from
// process globals.
type Runtime struct {
	// Platform uses the runner naming: linux, darwin or win32.
	Platform string
	// Arch uses the runner naming: x64 or arm64.
	Arch string

	// Env holds the environment variables visible to the run.
	// PATH is not stored here; see Path.
	Env map[string]string
	// Path is the ordered executable search path.
	Path []string

	Stdout io.Writer
	Stderr io.Writer

	// ExitCode is the terminal status of the run.
	ExitCode int
}

// FromEnvironment builds a Runtime from the current process.
func FromEnvironment() *Runtime {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}

	var path []string
	for key, value := range env {
		if strings.EqualFold(key, "PATH") {
			path = filepath.SplitList(value)
			delete(env, key)
		}
	}

	return &Runtime{
		Platform: platformName(runtime.GOOS),
		Arch:     archName(runtime.GOARCH),
		Env:      env,
		Path:     path,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		ExitCode: ExitSuccess,
	}
}

// Getenv returns the value of an environment variable or an empty string.
func (r *Runtime) Getenv(key string) string {
	if strings.EqualFold(key, "PATH") {
		return strings.Join(r.Path, string(os.PathListSeparator))
	}
	return r.Env[key]
}

// Environ returns the environment in KEY=value form, with PATH rebuilt
// from the current path list. Used as the env of spawned processes.
func (r *Runtime) Environ() []string {
	env := make([]string, 0, len(r.Env)+1)
	for key, value := range r.Env {
		env = append(env, key+"="+value)
	}
	sort.Strings(env)

	return append(env, "PATH="+strings.Join(r.Path, string(os.PathListSeparator)))
}

// Input reads an action input, following the runner convention of exposing
// inputs as INPUT_<NAME> environment variables.
func (r *Runtime) Input(name string) string {
	return r.actions().GetInput(name)
}

// AddPath puts dir in front of the search path so later commands in the same
// run resolve to it. When GITHUB_PATH is set, dir is also recorded there so
// following workflow steps see it too.
func (r *Runtime) AddPath(dir string) error {
	if r.Env["GITHUB_PATH"] != "" {
		// same file command as AddPath, which swallows write errors
		cmd := &githubactions.Command{Name: "path", Message: dir}
		if err := r.actions().IssueFileCommand(cmd); err != nil {
			return fmt.Errorf("failed to record %s in GITHUB_PATH: %w", dir, err)
		}
	}

	r.Path = slices.Insert(r.Path, 0, dir)
	return nil
}

// actions binds the workflow command client to the runtime environment and
// output instead of the process ones.
func (r *Runtime) actions() *githubactions.Action {
	return githubactions.New(
		githubactions.WithGetenv(r.Getenv),
		githubactions.WithWriter(r.Stdout),
	)
}

// SetFailed logs msg as an error and marks the run as failed.
func (r *Runtime) SetFailed(msg string) {
	r.Error(msg)
	r.ExitCode = ExitFailure
}

// TempDir is the scratch directory for downloads and extraction.
func (r *Runtime) TempDir() string {
	if dir := r.Env["RUNNER_TEMP"]; dir != "" {
		return dir
	}
	return os.TempDir()
}

// ToolCacheDir is the root of the tool cache.
func (r *Runtime) ToolCacheDir() string {
	if dir := r.Env["RUNNER_TOOL_CACHE"]; dir != "" {
		return dir
	}
	return filepath.Join(os.TempDir(), "updatecli-tool-cache")
}

func platformName(goos string) string {
	if goos == "windows" {
		return "win32"
	}
	return goos
}

func archName(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "386":
		return "ia32"
	default:
		return goarch
	}
}
