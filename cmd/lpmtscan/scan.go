package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/lpmtscan/internal/config"
	"github.com/Faultbox/lpmtscan/internal/logger"
	"github.com/Faultbox/lpmtscan/internal/report"
	"github.com/Faultbox/lpmtscan/pkg/formats"
)

func scanFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to config file"},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output format: text, json, yaml or cbor"},
		&cli.IntFlag{Name: "precision", Usage: "decimal places in text output"},
		&cli.IntFlag{Name: "max-entries", Usage: "stop after N slots (0 = no limit)"},
		&cli.BoolFlag{Name: "valid-only", Usage: "omit entries that fail validation"},
		&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		&cli.StringFlag{Name: "log-file", Usage: "also write logs to this file"},
	}
}

// loadConfig merges defaults, the config file and command-line flags, then
// initializes logging.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(config.Overrides{
		ConfigPath:   cmd.String("config"),
		Debug:        cmd.Bool("debug"),
		Format:       cmd.String("format"),
		Precision:    int(cmd.Int("precision")),
		PrecisionSet: cmd.IsSet("precision"),
		MaxEntries:   int(cmd.Int("max-entries")),
		ValidOnly:    cmd.Bool("valid-only"),
		LogFile:      cmd.String("log-file"),
	})
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readInput returns the file contents, or an exit error when path is not a
// regular file.
func readInput(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, cli.Exit("File not found: "+path, exitError)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("error: reading %s: %v", path, err), exitError)
	}
	return data, nil
}

func scanFile(_ context.Context, cmd *cli.Command, path string, out io.Writer) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), exitError)
	}
	defer logger.Sync()

	data, err := readInput(path)
	if err != nil {
		return err
	}

	scanner := formats.NewScanner(
		formats.WithLogger(logger.Named("scan")),
		formats.WithOptions(formats.ScanOptions{MaxEntries: cfg.Scan.MaxEntries}),
	)
	res, err := scanner.Scan(data)
	if errors.Is(err, formats.ErrBlockNotFound) {
		return cli.Exit(formats.ErrBlockNotFound.Error(), exitNotFound)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), exitError)
	}

	logger.Info("scan complete",
		zap.String("file", path),
		zap.Int("slots", len(res.Entries)),
		zap.Int("matched", res.Matched()),
		zap.Int("valid", res.ValidCount()),
		zap.Stringer("stop", res.Stop))

	rep := report.New(path, res, cfg.Report.ValidOnly)
	if err := report.Write(out, rep, report.Options{
		Format:    cfg.Report.Format,
		Precision: cfg.Report.Precision,
	}); err != nil {
		return cli.Exit(fmt.Sprintf("error: writing report: %v", err), exitError)
	}
	return nil
}
