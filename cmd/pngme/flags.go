package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/pkg/png"
)

// globalOptions holds the root flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	debug      bool
	lenient    bool

	cfg Config
}

func loggingFlags(o *globalOptions) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml",
			Sources:     cli.EnvVars(envConfigPath),
			Destination: &o.configPath,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("PNGME_LOG_LEVEL"),
			Destination: &o.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &o.logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &o.debug,
		},
	}
}

func decodeFlags(o *globalOptions) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "lenient",
			Usage:       "accept chunks with a wrong CRC",
			Destination: &o.lenient,
		},
	}
}

// setup loads the config file, applies it to unset flags and installs the logger.
func (o *globalOptions) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := o.configPath
	if path == "" {
		path = defaultConfigPath()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	o.cfg = cfg
	applyGlobalConfig(cmd, cfg, o)

	level := o.logLevel
	if o.debug {
		level = "debug"
	}
	log, err := logger.FromOptions(errWriter(cmd), o.logFormat, level)
	if err != nil {
		return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	if path != "" && cfg != (Config{}) {
		log.Debug("config loaded", "path", path)
	}
	return logger.WithContext(ctx, log), nil
}

func (o *globalOptions) decodeOptions() png.DecodeOptions {
	return png.DecodeOptions{
		SkipChecksum: o.lenient,
		SkipLength:   o.lenient,
	}
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
