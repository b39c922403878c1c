package harness

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

// Harness is a support structure that runs tasks, the harness can be customized with
// pre- and post- execution hook functions, where common functionality to all tasks
// can be defined.
type Harness struct {
	PreExecHook  Task
	PostExecHook Task

	out io.Writer
}

// New constructs a harness.
func New(opts ...Option) *Harness {
	h := Harness{
		PreExecHook:  func(_ context.Context) error { return nil },
		PostExecHook: func(_ context.Context) error { return nil },
		out:          os.Stdout,
	}

	for _, opt := range opts {
		opt(&h)
	}

	return &h
}

// Execute a list of tasks inside the harness.
// Tasks run sequentially and the first failing task stops the run; later tasks
// usually depend on what the previous ones produced. The error of the failing
// task is returned as is, so its message can be surfaced to the user verbatim.
// Nothing done by tasks that already finished is rolled back.
func (h *Harness) Execute(ctx context.Context, tasks ...Task) (err error) {
	start := time.Now()

	fmt.Fprintf(h.out, "\n")

	if err := h.PreExecHook(ctx); err != nil {
		return fmt.Errorf("failed to initialize harness: %w", err)
	}

	defer func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		color.New(color.FgHiBlack).Fprintf(h.out, "------------------------\n\n")

		if err != nil {
			color.New(color.FgRed).Fprintf(h.out, " ✘ finished with errors after %s\n", elapsed)
			color.New(color.FgRed).Fprintf(h.out, "   • %s\n\n", err.Error())
			return
		}

		color.New(color.FgGreen).Fprintf(h.out, " ✔ all good after %s\n\n", elapsed)
	}()

	for i := range tasks {
		if err := tasks[i](ctx); err != nil {
			return err
		}
	}

	if err := h.PostExecHook(ctx); err != nil {
		return fmt.Errorf("failed to run post exec hook: %w", err)
	}

	return nil
}

// Task defines the basic function that the harness executes.
// Additional configuration and tweaks can be done by using clojures which return
// Tasks.
type Task func(ctx context.Context) error

type Option func(h *Harness)

// WithPreExecFunc allows specifying a task that will be run every execution, before the
// specific execution tasks are run.
func WithPreExecFunc(hook Task) Option {
	return func(h *Harness) {
		h.PreExecHook = hook
	}
}

// WithPostExecFunc allows specifying a task that will be run after all tasks
// finished successfully.
func WithPostExecFunc(hook Task) Option {
	return func(h *Harness) {
		h.PostExecHook = hook
	}
}

// WithOutput sets where the harness writes its summary.
func WithOutput(w io.Writer) Option {
	return func(h *Harness) {
		h.out = w
	}
}
