//go:build mage

package main

import (
	"context"
	"fmt"

	harness "github.com/updatecli/updatecli-action"
	"github.com/updatecli/updatecli-action/action"
	"github.com/updatecli/updatecli-action/commons"
)

var rt = action.FromEnvironment()

var h = harness.New(
	harness.WithPreExecFunc(
		func(ctx context.Context) error { // ensure go mod download is run before any task
			return harness.Run(ctx, rt, "go", harness.WithArgs("mod", "download"))
		},
	),
)

// format codebase using gofmt
func Format(ctx context.Context) error {
	return h.Execute(
		ctx,
		func(ctx context.Context) error {
			return harness.Run(ctx, rt, "gofmt", harness.WithArgs("-w", "-s", "."), harness.WithOKMsg("code formatted"), harness.WithErrMsg("failed to format code"))
		},
	)
}

// lint the code using go vet and golangci-lint
func Lint(ctx context.Context) error {
	return h.Execute(
		ctx,
		func(ctx context.Context) error {
			return harness.Run(ctx, rt, "go", harness.WithArgs("vet", "./..."))
		},
		func(ctx context.Context) error {
			return harness.Run(ctx, rt, "go", harness.WithArgs("tool", "golangci-lint", "run"))
		},
	)
}

// run unit tests
func Test(ctx context.Context) error {
	return h.Execute(
		ctx,
		func(ctx context.Context) error {
			return harness.Run(ctx, rt, "go", harness.WithArgs("test", "-race", "-cover", "./..."), harness.WithOKMsg("all tests passed"))
		},
	)
}

// install updatecli locally, reading the version from INPUT_VERSION or INPUT_VERSION-FILE
func Setup(ctx context.Context) error {
	if err := h.Execute(ctx, commons.Updatecli(rt)...); err != nil {
		return fmt.Errorf("failed to set up updatecli: %w", err)
	}
	return nil
}
