// Command estimate prices a cleaning job from a JSON description.
//
// Usage:
//
//	estimate compute --job job.json [--markup 10 | --markdown 5] [--output text|json]
//	estimate rates
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Simplici0/cleanquote/internal/logger"
)

var version = "dev"

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "estimate",
		Usage:     "Commercial cleaning cost estimates",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			log, err := logger.New(c.String("log-level"), true)
			if err != nil {
				return err
			}
			c.App.Metadata = map[string]any{"logger": log}
			return nil
		},
		After: func(c *cli.Context) error {
			_ = appLogger(c).Sync()
			return nil
		},
		Commands: []*cli.Command{
			computeCommand(),
			ratesCommand(),
		},
	}
}

func appLogger(c *cli.Context) *zap.Logger {
	if log, ok := c.App.Metadata["logger"].(*zap.Logger); ok {
		return log
	}
	return zap.NewNop()
}
