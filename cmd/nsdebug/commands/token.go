package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "manage the saved NetSuite access token used by api probes",
		Flags: tokenStorageFlags(),
		Commands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "save an access token (prompts when no argument is given)",
				ArgsUsage: "[token]",
				Action:    tokenSetAction,
			},
			{
				Name:  "show",
				Usage: "print the saved access token, masked by default",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "reveal",
						Usage: "print the full token instead of the masked form",
					},
				},
				Action: tokenShowAction,
			},
		},
	}
}

func tokenSetAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	store, err := cfg.Token.NewTokenStore()
	if err != nil {
		return fmt.Errorf("creating token store: %w", err)
	}

	token := cmd.Args().First()
	if token == "" {
		if token, err = promptSecret("Enter NetSuite Access Token: "); err != nil {
			return err
		}
	}
	if token == "" {
		return fmt.Errorf("access token is required")
	}

	if err := store.Write(ctx, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	fmt.Println("Token saved to", store.Source())
	return nil
}

func tokenShowAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	store, err := cfg.Token.NewTokenStore()
	if err != nil {
		return fmt.Errorf("creating token store: %w", err)
	}

	token, err := store.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}

	fmt.Println("Source:", store.Source())
	if cmd.Bool("reveal") {
		fmt.Println("Token:", token)
	} else {
		fmt.Println("Token:", mask(token))
	}
	return nil
}
