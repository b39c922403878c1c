package harness

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/updatecli/updatecli-action/action"
)

// TaskRunner holds the metadata for a specific command.
type TaskRunner struct {
	Executable string
	Arguments  []string

	cmd      *exec.Cmd
	out      io.Writer
	okmsg    string
	errmsg   string
	quiet    bool
	allowerr bool
}

// Cmd builds a command runner for a specific Executable.
// Bare executable names are looked up in the runtime search path, not the
// PATH of the current process; relative paths are made absolute so they
// keep resolving when the working directory is changed with [WithDir].
func Cmd(ctx context.Context, rt *action.Runtime, executable string, opts ...RunnerOpt) (*TaskRunner, error) {
	resolved, err := lookPath(rt, executable)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, resolved)

	cmd.Stdout = rt.Stdout
	cmd.Stderr = rt.Stderr
	cmd.Env = rt.Environ()

	r := TaskRunner{
		Executable: resolved,
		cmd:        cmd,
		out:        rt.Stdout,
	}

	for _, opt := range opts {
		err := opt(&r)
		if err != nil {
			return nil, err
		}
	}

	cmd.Args = append([]string{resolved}, r.Arguments...)

	return &r, nil
}

// Exec a command returning its error and pretty printing the ok and error messages.
func (r *TaskRunner) Exec() error {
	var err error

	start := time.Now()
	defer func() {
		if r.quiet {
			return
		}
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			color.New(color.FgRed).Fprintf(r.out, " ✘ %s\n\n", elapsed)
			return
		}
		color.New(color.FgGreen).Fprintf(r.out, " ✔ %s\n\n", elapsed)
	}()

	if !r.quiet {
		logstep(r.out, fmt.Sprint(filepath.Base(r.Executable), " ", strings.Join(r.Arguments, " ")))
	}

	err = r.cmd.Run()

	if !r.allowerr && err != nil {
		if !r.quiet && r.errmsg != "" {
			color.New(color.FgRed).Fprintln(r.out, r.errmsg)
		}
		return fmt.Errorf("%s: %w", filepath.Base(r.Executable), err)
	}

	if !r.quiet && r.okmsg != "" {
		color.New(color.FgGreen).Fprintln(r.out, r.okmsg)
	}

	return nil
}

// Run is a helper function to avoid repetition while gracefully handling errors.
func Run(ctx context.Context, rt *action.Runtime, program string, opts ...RunnerOpt) error {
	rnr, err := Cmd(ctx, rt, program, opts...)
	if err != nil {
		return err
	}

	return rnr.Exec()
}

// fancy-ish log of a task step.
func logstep(w io.Writer, text string) {
	fmt.Fprintln(
		w,
		color.MagentaString(" ⌘"),
		color.New(color.Bold).Sprint(text),
	)
}

// RunnerOpt allows customizing the behavior of the command runner.
type RunnerOpt func(r *TaskRunner) error

// WithEnv adds environment variables on top of the runtime environment.
func WithEnv(vars ...string) RunnerOpt {
	return func(r *TaskRunner) error {
		for _, vrb := range vars {
			if name, _, ok := strings.Cut(vrb, "="); !ok || name == "" {
				return fmt.Errorf("invalid env format; %s doesn't match NAME=value expectation", vrb)
			}
			r.cmd.Env = append(r.cmd.Env, vrb)
		}
		return nil
	}
}

// WithArgs command arguments.
func WithArgs(args ...string) RunnerOpt {
	return func(r *TaskRunner) error {
		r.Arguments = args
		return nil
	}
}

// WithOKMsg sets a message to be printed when the command finishes successfully.
func WithOKMsg(msg string) RunnerOpt {
	return func(r *TaskRunner) error {
		r.okmsg = msg
		return nil
	}
}

// WithErrMsg sets a message to be printed when the command fails.
func WithErrMsg(msg string) RunnerOpt {
	return func(r *TaskRunner) error {
		r.errmsg = msg
		return nil
	}
}

// WithDir sets the directory where the command should be run inside.
func WithDir(dir string) RunnerOpt {
	return func(r *TaskRunner) error {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("failed to resolve dir %s: %w", dir, err)
		}
		r.cmd.Dir = abs
		return nil
	}
}

// WithoutNoise silences all output for the command; useful when handling that on the caller side.
func WithoutNoise() RunnerOpt {
	return func(r *TaskRunner) error {
		r.quiet = true
		r.cmd.Stdout = nil
		r.cmd.Stderr = nil

		return nil
	}
}

// WithStdOut set up stdout writer.
func WithStdOut(w io.Writer) RunnerOpt {
	return func(r *TaskRunner) error {
		r.cmd.Stdout = w
		return nil
	}
}

// WithAllowErrors allow errors in the command.
func WithAllowErrors() RunnerOpt {
	return func(r *TaskRunner) error {
		r.allowerr = true
		return nil
	}
}
