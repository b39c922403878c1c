package commons

import (
	"context"

	harness "github.com/updatecli/updatecli-action"
	"github.com/updatecli/updatecli-action/action"
)

// OnlyLocally returns the task specified as argument only in the case
// the runtime is a dev machine.
// Otherwise it returns a noop task.
func OnlyLocally(rt *action.Runtime, task harness.Task) harness.Task {
	if IsCIEnv(rt) {
		return noop
	}

	return task
}

// IsCIEnv returns true if the runtime is a known ci system.
func IsCIEnv(rt *action.Runtime) bool {
	return rt.Getenv("CI") != "" || rt.Getenv("GITHUB_ACTIONS") == "true"
}

func noop(ctx context.Context) error { return nil }
