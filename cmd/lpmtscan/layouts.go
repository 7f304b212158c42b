package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/Faultbox/lpmtscan/pkg/layout"
)

func layoutsCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "layouts",
		Usage: "List the layout catalog in priority order",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tFAMILY")
			for i, d := range layout.Default().Descriptors() {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", i, d.Name, d.Family)
			}
			return tw.Flush()
		},
	}
}

func probeCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     "Show every layout that decodes at one offset",
		ArgsUsage: "<file> <offset>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return cli.Exit("Usage: lpmtscan probe <file> <offset>", exitError)
			}
			path := cmd.Args().Get(0)

			off, err := strconv.ParseInt(cmd.Args().Get(1), 0, 64)
			if err != nil || off < 0 {
				return cli.Exit(fmt.Sprintf("error: invalid offset %q", cmd.Args().Get(1)), exitError)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), exitError)
			}

			data, err := readInput(path)
			if err != nil {
				return err
			}
			if off >= int64(len(data)) {
				return cli.Exit(fmt.Sprintf("error: offset 0x%X is past the end of %s (%d bytes)", off, path, len(data)), exitError)
			}

			matches := layout.Default().Probe(data, int(off))
			fmt.Fprintf(out, "Offset 0x%X: %d of %d layouts decode\n", off, len(matches), layout.Default().Len())

			p := cfg.Report.Precision
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tSIZE\tVALID\tPOS\tSCALE\tQUAT")
			for _, m := range matches {
				t := m.Transform
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t[%.*f %.*f %.*f]\t[%.*f %.*f %.*f]\t[%.*f %.*f %.*f %.*f]\n",
					m.Priority, m.Name, m.Size, yesNo(t.Valid()),
					p, t.Position.X, p, t.Position.Y, p, t.Position.Z,
					p, t.Scale.X, p, t.Scale.Y, p, t.Scale.Z,
					p, t.Rotation.X, p, t.Rotation.Y, p, t.Rotation.Z, p, t.Rotation.W)
			}
			return tw.Flush()
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
