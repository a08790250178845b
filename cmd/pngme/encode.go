package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/commands"
	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/internal/pngfile"
)

func fileFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to the PNG file",
		Required:    true,
		Destination: dst,
	}
}

func chunkTypeFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "chunk-type",
		Aliases:     []string{"c"},
		Usage:       "4-letter chunk type, e.g. ruSt",
		Required:    true,
		Destination: dst,
	}
}

func encodeCmd(opts *globalOptions) *cli.Command {
	var (
		filePath  string
		chunkType string
		message   string
		outFile   string
	)

	return &cli.Command{
		Name:  "encode",
		Usage: "Hide a message in a new chunk",
		Flags: []cli.Flag{
			fileFlag(&filePath),
			chunkTypeFlag(&chunkType),
			&cli.StringFlag{
				Name:        "message",
				Aliases:     []string{"m"},
				Usage:       "message to hide",
				Value:       "Hello",
				Destination: &message,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file",
				Value:       "output.png",
				Destination: &outFile,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyEncodeConfig(cmd, opts.cfg, &message, &outFile)

			p, err := pngfile.Open(filePath, opts.decodeOptions())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read %s: %v", filePath, err), 1)
			}
			c, err := commands.Encode(p, chunkType, message)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if err := pngfile.Write(outFile, p); err != nil {
				return cli.Exit(fmt.Sprintf("error: write %s: %v", outFile, err), 1)
			}
			log.Info("message encoded", "type", c.Type().String(), "bytes", c.Length(), "out", outFile)
			return nil
		},
	}
}
