package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/algolia"
)

func newSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run one search against the configured backend and print the Algolia response",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "index", Aliases: []string{"i"}, Usage: "Algolia index name"},
			&cli.StringFlag{Name: "filters", Aliases: []string{"f"}, Usage: `filter expression, e.g. "price:>600 AND title:*Pro*"`},
			&cli.IntFlag{Name: "page", Usage: "zero-based page"},
			&cli.IntFlag{Name: "hits-per-page", Aliases: []string{"n"}, Usage: "page size"},
			&cli.BoolFlag{Name: "hybrid", Usage: "blend vector and keyword scoring"},
		},
		Action: searchAction,
	}
}

func searchAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := configFromCommand(cmd)
	if err != nil {
		return err
	}
	// A one-shot search has nothing to scrape and is not user traffic.
	cfg.Metrics.Enabled = false
	cfg.Events.Enabled = false

	var adapter *algolia.Adapter
	app := fx.New(appOptions(cfg), fx.Populate(&adapter))
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = app.Stop(context.Background())
	}()

	req := algolia.SearchRequest{
		IndexName: cmd.String("index"),
		Params: algolia.SearchParams{
			Query:       cmd.Args().First(),
			Filters:     cmd.String("filters"),
			Page:        cmd.Int("page"),
			HitsPerPage: cmd.Int("hits-per-page"),
			Hybrid:      cmd.Bool("hybrid"),
		},
	}

	resp, err := adapter.Search(ctx, []algolia.SearchRequest{req})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(resp.Results[0], "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
