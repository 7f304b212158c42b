// lpmtscan finds the LPMT transform block in a container file and reports
// the layout of every record in it.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1 // Bad input path, config or I/O failure
	exitNotFound = 2 // No LPMT block in the file
)

// defaultInput is scanned when no path is given.
const defaultInput = "test.map"

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)

	err := app.Run(ctx, args)
	if err == nil {
		return exitOK
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		if msg := ec.Error(); msg != "" {
			_, _ = fmt.Fprintln(stderr, msg)
		}
		return ec.ExitCode()
	}
	_, _ = fmt.Fprintln(stderr, err)
	return exitError
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "lpmtscan",
		Usage:     "Infer the record layout of LPMT transform blocks",
		ArgsUsage: "[file]",
		Writer:    stdout,
		ErrWriter: stderr,
		// Exit codes are handled by run.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags:          scanFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				path = defaultInput
			}
			return scanFile(ctx, cmd, path, stdout)
		},
		Commands: []*cli.Command{
			layoutsCmd(stdout),
			probeCmd(stdout),
		},
	}
}
