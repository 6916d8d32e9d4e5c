package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/fieldpay/nsdebug/internal/app"
	"github.com/fieldpay/nsdebug/internal/netsuite"
)

// accessTokenFlag is built per subcommand; flag instances hold state and
// must not be shared between commands.
func accessTokenFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "access-token",
		Usage: "NetSuite access token (falls back to the token store, then an interactive prompt)",
	}
}

func apiCommand() *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "probe the NetSuite REST API with a bearer token",
		Commands: []*cli.Command{
			{
				Name:   "probe",
				Usage:  "run the full endpoint and permission check sequence",
				Flags:  append(append(netsuiteFlags(), tokenStorageFlags()...), accessTokenFlag()),
				Action: apiProbeAction,
			},
			{
				Name:   "quick",
				Usage:  "single customer fetch against the legacy restlets host",
				Flags:  append(append(netsuiteFlags(), tokenStorageFlags()...), accessTokenFlag()),
				Action: apiQuickAction,
			},
		},
	}
}

// resolveAccountID returns the configured account ID, prompting when it is
// still the sample placeholder.
func resolveAccountID(cfg *app.Config) (string, error) {
	accountID := cfg.NetSuite.AccountID
	if accountID != "" && accountID != app.DefaultConfigAccountID {
		return accountID, nil
	}

	accountID, err := promptLine("Enter your NetSuite Account ID: ")
	if err != nil {
		return "", err
	}
	if accountID == "" {
		return "", fmt.Errorf("account ID is required")
	}
	return accountID, nil
}

// resolveToken finds the bearer token: --access-token flag, then the token
// store, then an interactive no-echo prompt.
func resolveToken(ctx context.Context, cmd *cli.Command, cfg *app.Config) (string, error) {
	if token := cmd.String("access-token"); token != "" {
		return token, nil
	}

	if store, err := cfg.Token.NewTokenStore(); err == nil {
		if token, err := store.Read(ctx); err == nil {
			slog.DebugContext(ctx, "using saved access token", "source", store.Source())
			return token, nil
		}
	}

	token, err := promptSecret("Enter NetSuite Access Token: ")
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", fmt.Errorf("access token is required")
	}
	return token, nil
}

func apiProbeAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	accountID, err := resolveAccountID(cfg)
	if err != nil {
		return err
	}
	token, err := resolveToken(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	client, err := netsuite.NewClient(accountID, token)
	if err != nil {
		return fmt.Errorf("creating NetSuite client: %w", err)
	}

	fmt.Println("=== NetSuite API Probe ===")
	fmt.Println("Base URL:", client.BaseURL())
	fmt.Println("Access token:", mask(token))
	fmt.Println()

	// Test 1: connection, with full response detail.
	fmt.Println("--- Test 1: Connection ---")
	probe, err := client.Get(ctx, netsuite.RecordPath("customer", 1))
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	fmt.Println("Request URL:", probe.URL)
	fmt.Println("Status:", probe.StatusCode)
	printHeaders(probe.Header)
	if probe.OK() {
		fmt.Println("Connection successful")
		printJSONBody(probe)
	} else {
		fmt.Println("Connection failed")
		fmt.Println("Response:", string(probe.Body))
	}
	fmt.Println()

	// Tests 2 and 3: record listings.
	for _, recordType := range []string{"customer", "invoice"} {
		fmt.Printf("--- Record listing: %s ---\n", recordType)
		if err := probeRecordListing(ctx, client, recordType); err != nil {
			return err
		}
		fmt.Println()
	}

	// Test 4: permissions via the account endpoint.
	fmt.Println("--- Permissions ---")
	probe, err = client.Get(ctx, netsuite.RecordPath("account", 0))
	if err != nil {
		return fmt.Errorf("permissions check failed: %w", err)
	}
	fmt.Println("Status:", probe.StatusCode)
	switch probe.StatusCode {
	case http.StatusOK:
		fmt.Println("Account endpoint accessible - permissions look good")
	case http.StatusForbidden:
		fmt.Println("Permission denied - check your OAuth scopes")
		fmt.Println("Required scopes: restlets, rest_webservices")
	case http.StatusUnauthorized:
		fmt.Println("Authentication failed - the access token may be expired")
	default:
		fmt.Println("Response:", string(probe.Body))
	}

	return nil
}

func probeRecordListing(ctx context.Context, client *netsuite.Client, recordType string) error {
	probe, err := client.Get(ctx, netsuite.RecordPath(recordType, 0))
	if err != nil {
		return fmt.Errorf("listing %s records: %w", recordType, err)
	}

	fmt.Println("Status:", probe.StatusCode)
	if !probe.OK() {
		fmt.Println("Response:", string(probe.Body))
		return nil
	}

	page, ok := probe.RecordPage()
	if !ok {
		fmt.Println("Response has no record listing; body follows")
		printJSONBody(probe)
		return nil
	}

	fmt.Printf("Records: %d (hasMore: %v, totalResults: %d)\n", page.Count, page.HasMore, page.TotalResults)
	if len(page.Items) > 0 {
		pretty, err := json.MarshalIndent(page.Items[0], "", "  ")
		if err != nil {
			return fmt.Errorf("formatting first %s record: %w", recordType, err)
		}
		fmt.Println("First record:")
		fmt.Println(string(pretty))
	}
	return nil
}

func apiQuickAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	accountID, err := resolveAccountID(cfg)
	if err != nil {
		return err
	}
	token, err := resolveToken(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	client, err := netsuite.NewClient(accountID, token,
		netsuite.WithBaseURL(netsuite.RestletsBaseURL(accountID)),
		netsuite.WithTimeout(10*time.Second),
	)
	if err != nil {
		return fmt.Errorf("creating NetSuite client: %w", err)
	}

	fmt.Println("=== Quick NetSuite API Test ===")
	fmt.Println("Base URL:", client.BaseURL())

	probe, err := client.Get(ctx, "/rest/platform/v1/record/customer")
	if err != nil {
		return fmt.Errorf("customer fetch failed: %w", err)
	}

	fmt.Println("Status:", probe.StatusCode)
	switch probe.StatusCode {
	case http.StatusOK:
		if page, ok := probe.RecordPage(); ok {
			fmt.Printf("Found %d customers\n", page.Count)
			fmt.Println("First customer:", page.FirstCompanyName())
		} else {
			fmt.Println("No customer records found in response")
			fmt.Println("Response:", truncate(string(probe.Body), 500))
		}
	case http.StatusUnauthorized:
		fmt.Println("Authentication failed - the OAuth token may be expired")
		fmt.Println("Try refreshing the token in the app")
	case http.StatusForbidden:
		fmt.Println("Permission denied - check your NetSuite role permissions")
	default:
		fmt.Println("Response:", truncate(string(probe.Body), 200))
	}

	return nil
}

func printHeaders(header http.Header) {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Headers:")
	for _, name := range names {
		fmt.Printf("  %s: %s\n", name, strings.Join(header[name], ", "))
	}
}

func printJSONBody(probe *netsuite.Probe) {
	if probe.JSON == nil {
		fmt.Println("Response is not valid JSON:", truncate(string(probe.Body), 200))
		return
	}
	pretty, err := json.MarshalIndent(probe.JSON, "", "  ")
	if err != nil {
		fmt.Println("Response:", string(probe.Body))
		return
	}
	fmt.Println("Response:")
	fmt.Println(string(pretty))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
