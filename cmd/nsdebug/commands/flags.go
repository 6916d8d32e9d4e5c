package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/fieldpay/nsdebug/internal/app"
)

// Flag names use "--" to separate config nesting levels, mirroring the
// NSDEBUG_SECTION__KEY environment variable convention.

func netsuiteFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "netsuite--account-id",
			Usage: "NetSuite account ID",
			Value: app.DefaultConfigAccountID,
		},
		&cli.StringFlag{
			Name:  "netsuite--client-id",
			Usage: "OAuth client ID",
			Value: app.DefaultConfigClientID,
		},
		&cli.StringFlag{
			Name:  "netsuite--client-secret",
			Usage: "OAuth client secret",
		},
		&cli.StringFlag{
			Name:  "netsuite--redirect-uri",
			Usage: "OAuth redirect URI registered for the app",
			Value: app.DefaultConfigRedirectURI,
		},
		&cli.StringFlag{
			Name:  "netsuite--scope",
			Usage: "OAuth scopes (space-separated)",
			Value: app.DefaultConfigScope,
		},
	}
}

func simulatorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "simulator--device",
			Usage: "simulator device name",
			Value: app.DefaultConfigDevice,
		},
		&cli.StringFlag{
			Name:  "simulator--bundle-id",
			Usage: "app bundle identifier",
			Value: app.DefaultConfigBundleID,
		},
		&cli.StringFlag{
			Name:  "simulator--process",
			Usage: "app process name in the unified log",
			Value: app.DefaultConfigProcess,
		},
	}
}

func tokenStorageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "token--storage",
			Usage: "token storage backend (file|env|keyring)",
			Value: string(app.DefaultConfigTokenStore),
		},
		&cli.StringFlag{
			Name:  "token--file",
			Usage: "token file path (file storage)",
		},
		&cli.StringFlag{
			Name:  "token--env-key",
			Usage: "environment variable name (env storage)",
		},
		&cli.StringFlag{
			Name:  "token--keyring-user",
			Usage: "keyring user identifier (keyring storage)",
		},
	}
}
