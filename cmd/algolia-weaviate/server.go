package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/urfave/cli/v3"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/algolia"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/logger"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/metrics"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/tracer"
)

var listenFlag = &cli.StringFlag{
	Name:    "listen",
	Aliases: []string{"l"},
	Usage:   "override server.listen, e.g. :8080",
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the Algolia-compatible HTTP API",
		Flags: []cli.Flag{listenFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := configFromCommand(cmd)
			if err != nil {
				return err
			}
			if listen := cmd.String(listenFlag.Name); listen != "" {
				cfg.Server.Listen = listen
			}

			app := fx.New(
				appOptions(cfg),
				fx.Supply(cfg.Server),
				fx.Provide(newHTTPServer),
				fx.Invoke(registerServerLifecycle),
			)
			app.Run()
			return app.Err()
		},
	}
}

// ServerParams groups the dependencies of the HTTP server.
type ServerParams struct {
	fx.In

	Config  ServerConfig
	Adapter *algolia.Adapter
	Logger  *logger.LoggerClient
	Tracer  *tracer.Tracer
	Metrics *metrics.Metrics `optional:"true"`
}

// newHTTPServer mounts the Algolia handler behind tracing and, when
// enabled, request metrics.
func newHTTPServer(p ServerParams) *http.Server {
	middlewares := []func(http.Handler) http.Handler{p.Tracer.Middleware}
	if p.Metrics != nil {
		middlewares = append(middlewares, p.Metrics.Middleware)
	}

	return &http.Server{
		Addr:         p.Config.Listen,
		Handler:      algolia.NewHandler(p.Adapter, p.Logger, middlewares...),
		ReadTimeout:  p.Config.ReadTimeout,
		WriteTimeout: p.Config.WriteTimeout,
	}
}

// registerServerLifecycle binds the listener in OnStart, so a busy port
// fails startup, and drains in-flight requests in OnStop.
func registerServerLifecycle(lc fx.Lifecycle, srv *http.Server, cfg ServerConfig, log *logger.LoggerClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}

			log.Info("Starting search API", nil, map[string]interface{}{
				"address": ln.Addr().String(),
			})
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Search API stopped", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down search API", nil, nil)
			ctx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}
