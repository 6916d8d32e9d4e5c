package netsuite

import (
	"fmt"

	"golang.org/x/oauth2"
)

// NetSuite hosts are account-scoped: every endpoint embeds the account ID in
// the hostname, so all URL construction starts from the account.

// AuthorizeURL returns the OAuth 2.0 authorization endpoint for an account.
func AuthorizeURL(accountID string) string {
	return fmt.Sprintf("https://%s.app.netsuite.com/app/login/oauth2/authorize.nl", accountID)
}

// TokenURL returns the OAuth 2.0 token exchange endpoint for an account.
func TokenURL(accountID string) string {
	return fmt.Sprintf("https://%s.suitetalk.api.netsuite.com/services/rest/auth/oauth2/v1/token", accountID)
}

// APIBaseURL returns the SuiteTalk REST API base URL for an account.
func APIBaseURL(accountID string) string {
	return fmt.Sprintf("https://%s.suitetalk.api.netsuite.com", accountID)
}

// RestletsBaseURL returns the legacy restlets API host for an account. The
// mobile app still reads customer records through this host.
func RestletsBaseURL(accountID string) string {
	return fmt.Sprintf("https://%s.restlets.api.netsuite.com", accountID)
}

// Endpoint returns the oauth2 endpoint description for an account.
// NetSuite expects client credentials in the request parameters.
func Endpoint(accountID string) oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   AuthorizeURL(accountID),
		TokenURL:  TokenURL(accountID),
		AuthStyle: oauth2.AuthStyleInParams,
	}
}
