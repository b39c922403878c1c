package commons

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	harness "github.com/updatecli/updatecli-action"
	"github.com/updatecli/updatecli-action/action"
	"github.com/updatecli/updatecli-action/binary"
)

// Install provisions the version pointed to by resolved, which is read when
// the task runs so it can be filled by a previous task.
func Install(rt *action.Runtime, resolved *string, opts ...binary.Option) harness.Task {
	return func(ctx context.Context) (err error) {
		start := time.Now()
		defer func() {
			elapsed := time.Since(start).Round(time.Millisecond)
			if err != nil {
				color.New(color.FgRed).Fprintf(rt.Stdout, " ✘ %s\n\n", elapsed)
				return
			}
			color.New(color.FgGreen).Fprintf(rt.Stdout, " ✔ %s\n\n", elapsed)
		}()

		_, err = binary.NewInstaller(opts...).Install(ctx, rt, *resolved)
		return err
	}
}

// Verify runs `updatecli version` through the runtime search path, failing
// when the binary can't be found or doesn't run.
func Verify(rt *action.Runtime) harness.Task {
	return func(ctx context.Context) error {
		rt.Info("Show Updatecli version")

		return harness.Run(ctx, rt, binary.DefaultName,
			harness.WithArgs("version"),
			harness.WithOKMsg("updatecli is ready"),
			harness.WithErrMsg("updatecli is installed but doesn't run"),
		)
	}
}

func logstep(rt *action.Runtime, text string) {
	fmt.Fprintln(
		rt.Stdout,
		color.BlueString(" •"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}
