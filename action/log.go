package action

import (
	"fmt"

	"github.com/fatih/color"
)

// Debug writes a debug line. Outside of workflow-command mode the line is
// only shown when RUNNER_DEBUG=1.
func (r *Runtime) Debug(msg string) {
	if r.workflowCommands() {
		r.actions().Debugf("%s", msg)
		return
	}
	if r.Env["RUNNER_DEBUG"] != "1" {
		return
	}
	fmt.Fprintln(
		r.Stdout,
		color.New(color.FgHiBlack).Sprint("   └"),
		color.New(color.FgHiBlack).Sprint(msg),
	)
}

func (r *Runtime) Info(msg string) {
	if r.workflowCommands() {
		r.actions().Infof("%s", msg)
		return
	}
	fmt.Fprintln(r.Stdout, color.BlueString(" •"), msg)
}

func (r *Runtime) Warning(msg string) {
	if r.workflowCommands() {
		r.actions().Warningf("%s", msg)
		return
	}
	fmt.Fprintln(r.Stdout, color.YellowString(" !"), color.YellowString(msg))
}

func (r *Runtime) Error(msg string) {
	if r.workflowCommands() {
		r.actions().Errorf("%s", msg)
		return
	}
	fmt.Fprintln(r.Stdout, color.RedString(" ✘"), color.RedString(msg))
}

// workflowCommands reports whether log lines should be emitted as
// ::<level>:: workflow commands, which the runner parses.
func (r *Runtime) workflowCommands() bool {
	return r.Env["GITHUB_ACTIONS"] == "true"
}
