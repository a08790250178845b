package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := newApp(&globalOptions{})
	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(opts *globalOptions) *cli.Command {
	return &cli.Command{
		Name:  "pngme",
		Usage: "Hide, read and remove messages in PNG chunks",
		Flags: append(loggingFlags(opts), decodeFlags(opts)...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return opts.setup(ctx, cmd)
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			encodeCmd(opts),
			decodeCmd(opts),
			removeCmd(opts),
			printCmd(opts),
			serveCmd(opts),
			versionCmd(),
		},
	}
}
