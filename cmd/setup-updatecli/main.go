package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/updatecli/updatecli-action/action"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rt := action.FromEnvironment()

	if err := newRootCmd(rt).ExecuteContext(ctx); err != nil {
		rt.SetFailed(err.Error())
	}

	os.Exit(rt.ExitCode)
}
