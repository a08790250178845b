package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/api"
	"github.com/samcharles93/pngme/internal/logger"
)

func serveCmd(opts *globalOptions) *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		maxUpload   int64
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the chunk operations over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.Int64Flag{
				Name:        "max-upload",
				Usage:       "largest accepted image in bytes",
				Value:       api.DefaultMaxUpload,
				Destination: &maxUpload,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyServeConfig(cmd, opts.cfg, &addr, &maxUpload)

			server := api.NewServer(api.NewImageStore(), api.Config{
				Decode:    opts.decodeOptions(),
				MaxUpload: maxUpload,
				Logger:    log.WithGroup("api"),
			})
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "lenient", opts.lenient)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
