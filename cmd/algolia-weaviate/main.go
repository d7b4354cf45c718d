package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to the YAML config file",
		Value:   "config.yaml",
		Sources: cli.EnvVars("ALGOLIA_WEAVIATE_CONFIG"),
	}
	backendFlag = &cli.StringFlag{
		Name:  "backend",
		Usage: "override the configured backend (weaviate or qdrant)",
	}
)

func main() {
	cmd := &cli.Command{
		Name:  "algolia-weaviate",
		Usage: "Serve Algolia InstantSearch requests from Weaviate or Qdrant",
		Flags: []cli.Flag{configFlag, backendFlag},
		Commands: []*cli.Command{
			newServeCommand(),
			newSearchCommand(),
			newCacheCommand(),
			newValidateCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configFromCommand loads the config file and applies flag overrides.
func configFromCommand(cmd *cli.Command) (*Config, error) {
	cfg, err := Load(cmd.String(configFlag.Name))
	if err != nil {
		return nil, err
	}

	if backend := cmd.String(backendFlag.Name); backend != "" {
		cfg.Backend = backend
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
	}
	return cfg, nil
}

func newValidateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Load and validate the config file, then exit",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := configFromCommand(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "config ok: backend=%s class=%s listen=%s\n",
				cfg.Backend, cfg.Algolia.ClassName, cfg.Server.Listen)
			return nil
		},
	}
}
