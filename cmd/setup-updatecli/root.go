package main

import (
	"context"

	"github.com/spf13/cobra"

	harness "github.com/updatecli/updatecli-action"
	"github.com/updatecli/updatecli-action/action"
	"github.com/updatecli/updatecli-action/binary"
	"github.com/updatecli/updatecli-action/commons"
)

type flags struct {
	version     string
	versionFile string
	urlFormat   string
}

// newRootCmd builds the command installing updatecli into rt.
// Failures are reported through rt.SetFailed; the command itself only
// returns errors for invalid usage.
func newRootCmd(rt *action.Runtime) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "setup-updatecli",
		Short: "Install updatecli and add it to the PATH",
		Long: `setup-updatecli downloads a prebuilt updatecli release for the current
platform, stores it in the runner tool cache and adds it to the PATH.

The version is taken from, in order: --version (or the "version" input),
--version-file (or the "version-file" input), or the built-in default.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			run(cmd.Context(), rt, f)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.version, "version", "", "updatecli version to install, e.g. v0.86.1")
	cmd.Flags().StringVar(&f.versionFile, "version-file", "", "file to read the version from, e.g. .tool-versions")
	cmd.Flags().StringVar(&f.urlFormat, "url-format", binary.DefaultURLFormat, "template of the release download url")

	return cmd
}

// run executes the whole pipeline, mapping any error to a failed status.
func run(ctx context.Context, rt *action.Runtime, f flags) {
	opts := []commons.UpdatecliOpt{
		commons.WithInstallerOptions(binary.WithURLFormat(f.urlFormat)),
	}
	if f.version != "" {
		opts = append(opts, commons.WithVersion(f.version))
	}
	if f.versionFile != "" {
		opts = append(opts, commons.WithVersionFile(f.versionFile))
	}

	h := harness.New(
		harness.WithOutput(rt.Stdout),
		harness.WithPreExecFunc(
			commons.OnlyLocally(rt, func(_ context.Context) error {
				rt.Warning("not running on CI; updatecli is only added to the PATH of this process")
				return nil
			}),
		),
	)

	if err := h.Execute(ctx, commons.Updatecli(rt, opts...)...); err != nil {
		rt.SetFailed(err.Error())
		return
	}

	rt.ExitCode = action.ExitSuccess
}
