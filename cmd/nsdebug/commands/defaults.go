package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/fieldpay/nsdebug/internal/app"
	"github.com/fieldpay/nsdebug/internal/simctl"
)

// netsuiteDefaultsKeys are the UserDefaults keys the app persists its
// NetSuite configuration and tokens under.
var netsuiteDefaultsKeys = []string{
	"netsuite_account_id",
	"netsuite_client_id",
	"netsuite_client_secret",
	"netsuite_access_token",
	"netsuite_refresh_token",
}

func defaultsCommand() *cli.Command {
	return &cli.Command{
		Name:  "defaults",
		Usage: "inspect and modify the app's persisted UserDefaults on the simulator",
		Flags: simulatorFlags(),
		Commands: []*cli.Command{
			{
				Name:      "read",
				Usage:     "dump the app's defaults domain, or one key",
				ArgsUsage: "[key]",
				Action:    defaultsReadAction,
			},
			{
				Name:      "write",
				Usage:     "write one key and verify it reads back",
				ArgsUsage: "<key> <value>",
				Action:    defaultsWriteAction,
			},
			{
				Name:   "seed",
				Usage:  "write the configured NetSuite credentials into the app's defaults",
				Flags:  netsuiteFlags(),
				Action: defaultsSeedAction,
			},
			{
				Name:   "selftest",
				Usage:  "round-trip a test key to verify the defaults save mechanism",
				Action: defaultsSelftestAction,
			},
		},
	}
}

func simulatorClient(cfg *app.Config) (*simctl.Client, error) {
	return simctl.New(cfg.Simulator.Device)
}

func defaultsReadAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	sim, err := simulatorClient(cfg)
	if err != nil {
		return err
	}

	domain := cfg.Simulator.BundleID

	if key := cmd.Args().First(); key != "" {
		value, err := sim.ReadDefault(ctx, domain, key)
		if err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", key, value)
		return nil
	}

	dump, err := sim.ReadDefaults(ctx, domain)
	if err != nil {
		fmt.Println("Could not read UserDefaults. Try these steps:")
		fmt.Println("1. Make sure the app is running in the simulator")
		fmt.Println("2. Go to Settings > NetSuite Settings")
		fmt.Println("3. Enter your Account ID and save")
		fmt.Println("4. Run this command again")
		return err
	}

	fmt.Println("=== UserDefaults Contents ===")
	fmt.Println(dump)

	fmt.Println("=== NetSuite Configuration Check ===")
	for _, key := range netsuiteDefaultsKeys {
		if strings.Contains(dump, key) {
			fmt.Printf("%s: found\n", key)
		} else {
			fmt.Printf("%s: NOT FOUND\n", key)
		}
	}

	return nil
}

func defaultsWriteAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	key := cmd.Args().Get(0)
	value := cmd.Args().Get(1)
	if key == "" || value == "" {
		return fmt.Errorf("usage: defaults write <key> <value>")
	}

	sim, err := simulatorClient(cfg)
	if err != nil {
		return err
	}
	domain := cfg.Simulator.BundleID

	if err := sim.WriteDefault(ctx, domain, key, value); err != nil {
		return err
	}

	readBack, err := sim.ReadDefault(ctx, domain, key)
	if err != nil {
		return fmt.Errorf("wrote %s but read-back failed: %w", key, err)
	}

	fmt.Printf("Wrote %s = %s (read back: %s)\n", key, value, readBack)
	return nil
}

func defaultsSeedAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	sim, err := simulatorClient(cfg)
	if err != nil {
		return err
	}
	domain := cfg.Simulator.BundleID

	credentials := []struct {
		key   string
		value string
	}{
		{"netsuite_client_id", cfg.NetSuite.ClientID},
		{"netsuite_client_secret", cfg.NetSuite.ClientSecret},
		{"netsuite_account_id", cfg.NetSuite.AccountID},
		{"netsuite_redirect_uri", cfg.NetSuite.RedirectURI},
	}

	fmt.Println("=== Seeding NetSuite Credentials ===")
	for _, cred := range credentials {
		if cred.value == "" {
			fmt.Printf("Skipping %s: not configured\n", cred.key)
			continue
		}
		fmt.Printf("Setting %s: %s\n", cred.key, mask(cred.value))
		if err := sim.WriteDefault(ctx, domain, cred.key, cred.value); err != nil {
			return fmt.Errorf("seeding %s: %w", cred.key, err)
		}
	}

	// Read the domain back and echo the seeded lines, masking the secret.
	dump, err := sim.ReadDefaults(ctx, domain)
	if err != nil {
		return fmt.Errorf("verifying seeded credentials: %w", err)
	}

	fmt.Println()
	fmt.Println("=== Verification ===")
	for line := range strings.Lines(dump) {
		line = strings.TrimRight(line, "\n")
		for _, cred := range credentials {
			if !strings.Contains(line, cred.key) {
				continue
			}
			if cred.key == "netsuite_client_secret" {
				if key, value, found := strings.Cut(line, "="); found {
					fmt.Printf("%s= %s\n", key, mask(strings.Trim(strings.TrimSpace(value), `";`)))
					break
				}
			}
			fmt.Println(line)
			break
		}
	}

	fmt.Println()
	fmt.Println("Credentials are ready for OAuth testing. Next steps:")
	fmt.Println("1. Launch the app in the simulator")
	fmt.Println("2. Go to Settings and choose Connect to NetSuite")
	fmt.Println("3. Complete the OAuth flow")
	return nil
}

func defaultsSelftestAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	sim, err := simulatorClient(cfg)
	if err != nil {
		return err
	}
	domain := cfg.Simulator.BundleID

	const key, value = "test_setting", "test_value"

	fmt.Println("=== UserDefaults Save Selftest ===")
	if err := sim.WriteDefault(ctx, domain, key, value); err != nil {
		return fmt.Errorf("saving test setting: %w", err)
	}
	fmt.Println("Saved test setting")

	readBack, err := sim.ReadDefault(ctx, domain, key)
	if err != nil {
		return fmt.Errorf("reading test setting back: %w", err)
	}
	if readBack != value {
		return fmt.Errorf("round-trip mismatch: wrote %q, read %q", value, readBack)
	}

	fmt.Printf("Read back: %s\n", readBack)
	fmt.Println("Defaults save mechanism is working")
	return nil
}
