package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/logger"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/redis"
)

func newCacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the Redis response cache",
		Commands: []*cli.Command{
			{
				Name:   "flush",
				Usage:  "Drop every cached search result, e.g. after reindexing",
				Action: flushCacheAction,
			},
		},
	}
}

func flushCacheAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := configFromCommand(cmd)
	if err != nil {
		return err
	}
	if !cfg.Cache.Enabled {
		return fmt.Errorf("cache is disabled in %s", cmd.String(configFlag.Name))
	}

	var client *redis.RedisClient
	app := fx.New(
		fx.Supply(cfg.Logger, cfg.Cache.Config),
		fx.NopLogger,
		logger.FXModule,
		redis.FXModule,
		fx.Provide(fx.Annotate(
			func(l *logger.LoggerClient) *logger.LoggerClient { return l },
			fx.As(new(redis.Logger)),
		)),
		fx.Populate(&client),
	)
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = app.Stop(context.Background())
	}()

	n, err := client.Flush(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "deleted %d cached results\n", n)
	return nil
}
