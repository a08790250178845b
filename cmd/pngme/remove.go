package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/commands"
	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/internal/pngfile"
	"github.com/samcharles93/pngme/pkg/png"
)

func removeCmd(opts *globalOptions) *cli.Command {
	var (
		filePath  string
		chunkType string
		outFile   string
	)

	return &cli.Command{
		Name:  "remove",
		Usage: "Remove the first chunk of a type",
		Flags: []cli.Flag{
			fileFlag(&filePath),
			chunkTypeFlag(&chunkType),
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file (default: rewrite --file in place)",
				Destination: &outFile,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			p, err := pngfile.Open(filePath, opts.decodeOptions())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read %s: %v", filePath, err), 1)
			}
			c, err := commands.Remove(p, chunkType)
			if errors.Is(err, png.ErrChunkNotFound) {
				log.Warn("no chunk to remove", "type", chunkType, "file", filePath)
				return nil
			}
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			if outFile == "" {
				outFile = filePath
			}
			if err := pngfile.Write(outFile, p); err != nil {
				return cli.Exit(fmt.Sprintf("error: write %s: %v", outFile, err), 1)
			}
			log.Info("chunk removed", "type", c.Type().String(), "bytes", c.Length(), "out", outFile)
			return nil
		},
	}
}
