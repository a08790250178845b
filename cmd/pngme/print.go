package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/commands"
	"github.com/samcharles93/pngme/internal/pngfile"
)

func printCmd(opts *globalOptions) *cli.Command {
	var (
		filePath string
		asJSON   bool
	)

	return &cli.Command{
		Name:  "print",
		Usage: "List every chunk in a PNG file",
		Flags: []cli.Flag{
			fileFlag(&filePath),
			&cli.BoolFlag{Name: "json", Usage: "print chunk summaries as JSON", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = ctx

			p, err := pngfile.Open(filePath, opts.decodeOptions())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read %s: %v", filePath, err), 1)
			}
			if asJSON {
				return commands.PrintJSON(outWriter(cmd), p)
			}
			return commands.Print(outWriter(cmd), p)
		},
	}
}
