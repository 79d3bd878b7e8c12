package main

import "github.com/urfave/cli/v3"

var (
	gridPath   string
	gridsDir   string
	configFile string
	logLevel   string
	logFormat  string
	debug      bool
	jsonOut    bool
	jsonIndent bool
)

func gridFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "grid",
			Aliases:     []string{"g"},
			Usage:       "path to .EGRID file",
			Destination: &gridPath,
		},
		&cli.StringFlag{
			Name:        "grids-dir",
			Usage:       "directory searched for a single .EGRID file when --grid is not given",
			Destination: &gridsDir,
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "print JSON instead of text",
			Destination: &jsonOut,
		},
		&cli.BoolFlag{
			Name:        "json-indent",
			Usage:       "indent JSON output",
			Value:       true,
			Destination: &jsonIndent,
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config file (default: $XDG_CONFIG_HOME/eclgrid/config.yaml)",
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}
