// Command farmcarbon calculates farm greenhouse gas emission reports.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ecosystemplus/farmcarbon/internal/cli"
	"github.com/ecosystemplus/farmcarbon/internal/farm"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // Set by the linker.

// Exit codes.
const (
	exitOK           = 0
	exitError        = 1
	exitInvalidInput = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := cli.NewRootCmd(version)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps invalid farm data to its own exit code.
func exitCode(err error) int {
	if errors.Is(err, farm.ErrInvalidInput) {
		return exitInvalidInput
	}
	return exitError
}
