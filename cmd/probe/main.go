package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/exoplanets/internal/probe"
	"github.com/okian/exoplanets/pkg/logger"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := command().Run(ctx, os.Args); err != nil {
		os.Stderr.WriteString("probe failed: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func command() *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: "Check a running exoplanet catalog service",
		Description: `Runs black-box checks against a live server: stable listing order,
first-match lookups for duplicated ids, the empty id, the soft not-found
marker, both model reports and mission validation. Exits non-zero when any
check fails.

Examples:
  probe --url http://localhost:9080
  probe --url http://localhost:9080 --workers 16 --requests 5000 --json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Value:   probe.DefaultBaseURL,
				Usage:   "Base URL of the service",
				Sources: cli.EnvVars("EXO_PROBE_URL"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: probe.DefaultTimeout,
				Usage: "HTTP request timeout",
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: probe.DefaultWorkers,
				Usage: "Concurrent workers for the read load check",
			},
			&cli.IntFlag{
				Name:  "requests",
				Value: probe.DefaultRequests,
				Usage: "Lookups issued by the read load check",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: logger.FormatText,
				Usage: "Log output format: text or json",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Write the report as JSON to stdout",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log passing checks too",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if err := logger.Init(logger.WithFormat(cmd.String("log-format")), logger.WithOutput(os.Stderr)); err != nil {
		return err
	}

	report, err := probe.Run(ctx, &probe.Config{
		BaseURL:  cmd.String("url"),
		Timeout:  cmd.Duration("timeout"),
		Workers:  cmd.Int("workers"),
		Requests: cmd.Int("requests"),
		Verbose:  cmd.Bool("verbose"),
	})
	if cmd.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(report); encErr != nil {
			return encErr
		}
	}
	return err
}
