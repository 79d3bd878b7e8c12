package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/eclgrid/internal/logger"
	"github.com/samcharles93/eclgrid/internal/version"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "eclgrid",
		Usage:   "Corner-point grid (EGRID) inspection CLI",
		Version: version.String(),
		Flags:   globalFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			inspectCmd(),
			cellCmd(),
			serveCmd(),
			synthCmd(),
			versionCmd(),
		},
	}
}

// setup runs before every subcommand, once all flags are parsed: it loads
// the config file, fills unset flags from it and installs the logger.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return ctx, err
	}
	applyConfig(cmd, cfg)

	level := logLevel
	if debug {
		level = "debug"
	}
	log, err := logger.Open(logFormat, errWriter(cmd), logger.ParseLevel(level))
	if err != nil {
		return ctx, err
	}
	ctx = withConfig(ctx, cfg)
	return logger.WithContext(ctx, log), nil
}
