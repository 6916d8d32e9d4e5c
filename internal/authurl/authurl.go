// Package authurl builds and analyzes NetSuite OAuth 2.0 authorization URLs,
// the first leg of the PKCE flow the mobile app drives through Safari.
package authurl

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/fieldpay/nsdebug/internal/netsuite"
)

// Params are the inputs of one authorization request.
type Params struct {
	AccountID   string
	ClientID    string
	RedirectURI string
	Scope       string

	State         string
	CodeChallenge string
}

// Build constructs the full authorization URL. State and CodeChallenge must
// already be populated; generation belongs to the caller so the verifier can
// be reported alongside the URL.
func Build(p Params) (string, error) {
	if p.AccountID == "" {
		return "", fmt.Errorf("account ID cannot be empty")
	}
	if p.State == "" {
		return "", fmt.Errorf("state cannot be empty")
	}
	if p.CodeChallenge == "" {
		return "", fmt.Errorf("code challenge cannot be empty")
	}

	cfg := &oauth2.Config{
		ClientID:    p.ClientID,
		RedirectURL: p.RedirectURI,
		Scopes:      strings.Fields(p.Scope),
		Endpoint:    netsuite.Endpoint(p.AccountID),
	}

	return cfg.AuthCodeURL(p.State,
		oauth2.SetAuthURLParam("code_challenge", p.CodeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	), nil
}

// Analysis is the parsed breakdown of a generated authorization URL and its
// redirect URI, with warnings for the mistakes that keep coming up when the
// flow fails (placeholder credentials, unregistered redirect schemes).
type Analysis struct {
	URL      *url.URL
	Redirect *url.URL
	Warnings []string
}

// placeholder values shipped in the sample configuration; a URL built from
// them parses fine but NetSuite will reject it.
const (
	PlaceholderAccountID = "1234567"
	PlaceholderClientID  = "your_client_id_here"
)

// Analyze parses the authorization URL and redirect URI and collects
// warnings about likely misconfigurations.
func Analyze(rawURL string, p Params) (*Analysis, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing authorization URL: %w", err)
	}

	redirect, err := url.Parse(p.RedirectURI)
	if err != nil {
		return nil, fmt.Errorf("parsing redirect URI: %w", err)
	}

	a := &Analysis{URL: parsed, Redirect: redirect}

	if p.AccountID == "" || p.AccountID == PlaceholderAccountID {
		a.warn("account ID is missing or still the placeholder value")
	}
	if p.ClientID == "" || p.ClientID == PlaceholderClientID {
		a.warn("client ID is missing or still the placeholder value")
	}
	if redirect.Scheme != "fieldpay" {
		a.warn(fmt.Sprintf("redirect URI scheme %q does not match the app URL scheme \"fieldpay\"", redirect.Scheme))
	}
	if parsed.Scheme != "https" {
		a.warn("authorization URL is not https")
	}

	query := parsed.Query()
	for _, required := range []string{"response_type", "client_id", "redirect_uri", "scope", "state", "code_challenge", "code_challenge_method"} {
		if query.Get(required) == "" {
			a.warn(fmt.Sprintf("authorization URL is missing the %s parameter", required))
		}
	}
	if m := query.Get("code_challenge_method"); m != "" && m != "S256" {
		a.warn(fmt.Sprintf("code_challenge_method is %q, NetSuite only accepts S256", m))
	}

	return a, nil
}

func (a *Analysis) warn(msg string) {
	a.Warnings = append(a.Warnings, msg)
}
