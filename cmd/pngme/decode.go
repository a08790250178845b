package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/commands"
	"github.com/samcharles93/pngme/internal/pngfile"
)

func decodeCmd(opts *globalOptions) *cli.Command {
	var (
		filePath  string
		chunkType string
	)

	return &cli.Command{
		Name:  "decode",
		Usage: "Print the message stored in the first chunk of a type",
		Flags: []cli.Flag{
			fileFlag(&filePath),
			chunkTypeFlag(&chunkType),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = ctx

			p, err := pngfile.Open(filePath, opts.decodeOptions())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read %s: %v", filePath, err), 1)
			}
			msg, err := commands.Decode(p, chunkType)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			_, err = fmt.Fprintln(outWriter(cmd), msg)
			return err
		},
	}
}
