package commons

import (
	"context"
	"fmt"

	harness "github.com/updatecli/updatecli-action"
	"github.com/updatecli/updatecli-action/action"
	"github.com/updatecli/updatecli-action/binary"
	"github.com/updatecli/updatecli-action/version"
)

// Updatecli returns the tasks that resolve, install and verify updatecli,
// in the order they have to run.
//
// Inputs are read from the runtime (the version and version-file action
// inputs) unless overridden with options.
//
//	h := harness.New()
//	if err := h.Execute(ctx, commons.Updatecli(rt)...); err != nil {
//		rt.SetFailed(err.Error())
//	}
func Updatecli(rt *action.Runtime, opts ...UpdatecliOpt) []harness.Task {
	conf := updatecliconf{
		inputs: version.Inputs{
			Version:     rt.Input("version"),
			VersionFile: rt.Input("version-file"),
		},
	}

	for _, opt := range opts {
		opt(&conf)
	}

	var resolved string

	return []harness.Task{
		ResolveVersion(rt, conf.inputs, &resolved),
		Install(rt, &resolved, conf.installer...),
		Verify(rt),
	}
}

// ResolveVersion resolves the version to install and stores it in resolved.
func ResolveVersion(rt *action.Runtime, inputs version.Inputs, resolved *string) harness.Task {
	return func(_ context.Context) error {
		logstep(rt, fmt.Sprintf("resolving updatecli from %s", describe(inputs)))

		v, err := version.Resolve(rt, inputs)
		if err != nil {
			return err
		}

		*resolved = v
		return nil
	}
}

type updatecliconf struct {
	inputs    version.Inputs
	installer []binary.Option
}

type UpdatecliOpt func(c *updatecliconf)

// WithVersion sets the version to install, taking precedence over any
// version file.
func WithVersion(v string) UpdatecliOpt {
	return func(c *updatecliconf) {
		c.inputs.Version = v
	}
}

// WithVersionFile sets the file the version is read from when no explicit
// version is set.
func WithVersionFile(path string) UpdatecliOpt {
	return func(c *updatecliconf) {
		c.inputs.VersionFile = path
	}
}

// WithInstallerOptions customizes the installer, e.g. to download from a mirror.
func WithInstallerOptions(opts ...binary.Option) UpdatecliOpt {
	return func(c *updatecliconf) {
		c.installer = append(c.installer, opts...)
	}
}

func describe(inputs version.Inputs) string {
	switch {
	case inputs.Version != "":
		return fmt.Sprintf("version %s", inputs.Version)
	case inputs.VersionFile != "":
		return fmt.Sprintf("version file %s", inputs.VersionFile)
	default:
		return fmt.Sprintf("default version %s", version.DefaultVersion)
	}
}
