package commands

import (
	"context"
	"fmt"
	"net/url"

	"github.com/urfave/cli/v3"

	"github.com/fieldpay/nsdebug/internal/authurl"
	"github.com/fieldpay/nsdebug/internal/netsuite"
	"github.com/fieldpay/nsdebug/internal/pkce"
)

func authURLCommand() *cli.Command {
	return &cli.Command{
		Name:  "authurl",
		Usage: "generate and analyze a NetSuite OAuth authorization URL with a fresh PKCE pair",
		Flags: append(netsuiteFlags(),
			&cli.StringFlag{
				Name:  "state",
				Usage: "state parameter (generated when empty)",
			},
			&cli.StringFlag{
				Name:  "verifier",
				Usage: "PKCE code verifier (generated when empty)",
			},
		),
		Action: authURLAction,
	}
}

func authURLAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	verifier := cmd.String("verifier")
	if verifier == "" {
		if verifier, err = pkce.NewVerifier(); err != nil {
			return fmt.Errorf("generating code verifier: %w", err)
		}
	} else if err := pkce.ValidateVerifier(verifier); err != nil {
		return fmt.Errorf("invalid code verifier: %w", err)
	}
	challenge := pkce.ChallengeS256(verifier)

	state := cmd.String("state")
	if state == "" {
		state = pkce.NewState()
	}

	params := authurl.Params{
		AccountID:     cfg.NetSuite.AccountID,
		ClientID:      cfg.NetSuite.ClientID,
		RedirectURI:   cfg.NetSuite.RedirectURI,
		Scope:         cfg.NetSuite.Scope,
		State:         state,
		CodeChallenge: challenge,
	}

	rawURL, err := authurl.Build(params)
	if err != nil {
		return fmt.Errorf("building authorization URL: %w", err)
	}

	analysis, err := authurl.Analyze(rawURL, params)
	if err != nil {
		return fmt.Errorf("analyzing authorization URL: %w", err)
	}

	fmt.Println("=== NetSuite OAuth URL ===")
	fmt.Println("Account ID:", params.AccountID)
	fmt.Println("Client ID:", params.ClientID)
	fmt.Println("Redirect URI:", params.RedirectURI)
	fmt.Println("Scope:", params.Scope)
	fmt.Println("State:", params.State)
	fmt.Println("Code verifier:", verifier)
	fmt.Println("Code challenge (S256):", challenge)
	fmt.Println("Challenge round-trip:", pkce.VerifyS256(verifier, challenge))
	fmt.Println()
	fmt.Println("Authorization URL:", rawURL)
	fmt.Println("Token URL:", netsuite.TokenURL(params.AccountID))
	fmt.Println()

	printURLAnalysis("URL Analysis", analysis.URL)
	printURLAnalysis("Redirect URI Analysis", analysis.Redirect)

	fmt.Println("=== Warnings ===")
	if len(analysis.Warnings) == 0 {
		fmt.Println("No issues found")
	}
	for _, warning := range analysis.Warnings {
		fmt.Println("-", warning)
	}
	fmt.Println()

	fmt.Println("=== Next Steps ===")
	fmt.Println("1. Open the authorization URL in a browser and sign in")
	fmt.Println("2. Keep the code verifier; the token exchange needs it")
	fmt.Println("3. Verify the redirect URI is registered in the NetSuite integration record")
	fmt.Println("4. For sandbox accounts, use the sandbox account ID (suffix -sb1)")

	return nil
}

func printURLAnalysis(title string, u *url.URL) {
	fmt.Printf("=== %s ===\n", title)
	fmt.Println("Scheme:", u.Scheme)
	fmt.Println("Host:", u.Host)
	fmt.Println("Path:", u.Path)
	if u.RawQuery != "" {
		fmt.Println("Query:", u.RawQuery)
	}
	fmt.Println()
}
