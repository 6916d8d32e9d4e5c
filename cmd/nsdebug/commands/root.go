// Package commands wires the nsdebug subcommands. Each subcommand replaces
// one of the ad-hoc scripts previously used to debug the FieldPay ↔ NetSuite
// OAuth integration.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/fieldpay/nsdebug/internal/app"
	"github.com/fieldpay/nsdebug/internal/observability"
)

// Execute runs the root command with the given context and arguments.
func Execute(ctx context.Context, args []string) error {
	cmd := &cli.Command{
		Name:  "nsdebug",
		Usage: "NetSuite OAuth integration debugging toolkit",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug|info|warn|error)",
				Value: slog.LevelInfo.String(),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format (text|json)",
				Value: string(app.DefaultConfigLogFormat),
			},
		},
		Commands: []*cli.Command{
			authURLCommand(),
			apiCommand(),
			logsCommand(),
			defaultsCommand(),
			tokenCommand(),
		},
	}

	return cmd.Run(ctx, args)
}

// setup loads config and installs logging; every subcommand action starts here.
func setup(cmd *cli.Command) (*app.Config, error) {
	cfg, err := loadConfig(cmd.String("config"), cmd, os.Environ)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := observability.Instrument(cfg.LogLevel, string(cfg.LogFormat)); err != nil {
		return nil, fmt.Errorf("failed to set up observability layer: %w", err)
	}

	return cfg, nil
}
