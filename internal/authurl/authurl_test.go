package authurl

import (
	"net/url"
	"strings"
	"testing"
)

func validParams() Params {
	return Params{
		AccountID:     "tstdrv1870144",
		ClientID:      "2ada1369bdb25a146faf520ddfd9c88517b2e2a7",
		RedirectURI:   "fieldpay://callback",
		Scope:         "restlets rest_webservices",
		State:         "state-abc",
		CodeChallenge: "challenge-xyz",
	}
}

func TestBuild(t *testing.T) {
	p := validParams()

	rawURL, err := Build(p)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("generated URL does not parse: %v", err)
	}

	if parsed.Scheme != "https" {
		t.Errorf("scheme = %s, want https", parsed.Scheme)
	}
	if want := "tstdrv1870144.app.netsuite.com"; parsed.Host != want {
		t.Errorf("host = %s, want %s", parsed.Host, want)
	}
	if want := "/app/login/oauth2/authorize.nl"; parsed.Path != want {
		t.Errorf("path = %s, want %s", parsed.Path, want)
	}

	query := parsed.Query()
	for param, want := range map[string]string{
		"response_type":         "code",
		"client_id":             p.ClientID,
		"redirect_uri":          p.RedirectURI,
		"scope":                 p.Scope,
		"state":                 p.State,
		"code_challenge":        p.CodeChallenge,
		"code_challenge_method": "S256",
	} {
		if got := query.Get(param); got != want {
			t.Errorf("query[%s] = %q, want %q", param, got, want)
		}
	}
}

func TestBuildRejectsMissingInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"missing account", func(p *Params) { p.AccountID = "" }},
		{"missing state", func(p *Params) { p.State = "" }},
		{"missing challenge", func(p *Params) { p.CodeChallenge = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			if _, err := Build(p); err == nil {
				t.Error("Build() succeeded, want error")
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*Params)
		wantWarnings []string
	}{
		{
			name:         "clean configuration",
			mutate:       func(p *Params) {},
			wantWarnings: nil,
		},
		{
			name:         "placeholder account ID",
			mutate:       func(p *Params) { p.AccountID = PlaceholderAccountID },
			wantWarnings: []string{"account ID"},
		},
		{
			name:         "placeholder client ID",
			mutate:       func(p *Params) { p.ClientID = PlaceholderClientID },
			wantWarnings: []string{"client ID"},
		},
		{
			name:         "foreign redirect scheme",
			mutate:       func(p *Params) { p.RedirectURI = "https://example.com/callback" },
			wantWarnings: []string{"redirect URI scheme"},
		},
		{
			name: "everything wrong at once",
			mutate: func(p *Params) {
				p.AccountID = PlaceholderAccountID
				p.ClientID = PlaceholderClientID
				p.RedirectURI = "myapp://callback"
			},
			wantWarnings: []string{"account ID", "client ID", "redirect URI scheme"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			rawURL, err := Build(p)
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}

			analysis, err := Analyze(rawURL, p)
			if err != nil {
				t.Fatalf("Analyze() error: %v", err)
			}

			if len(analysis.Warnings) != len(tt.wantWarnings) {
				t.Fatalf("got %d warnings %v, want %d", len(analysis.Warnings), analysis.Warnings, len(tt.wantWarnings))
			}
			for i, fragment := range tt.wantWarnings {
				if !strings.Contains(analysis.Warnings[i], fragment) {
					t.Errorf("warning[%d] = %q, want it to mention %q", i, analysis.Warnings[i], fragment)
				}
			}
		})
	}
}

func TestAnalyzeMissingParameters(t *testing.T) {
	p := validParams()
	// A URL missing the PKCE parameters must be flagged.
	raw := "https://tstdrv1870144.app.netsuite.com/app/login/oauth2/authorize.nl?response_type=code&client_id=x&redirect_uri=fieldpay%3A%2F%2Fcallback&scope=restlets&state=s"

	analysis, err := Analyze(raw, p)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	var mentionsChallenge bool
	for _, warning := range analysis.Warnings {
		if strings.Contains(warning, "code_challenge") {
			mentionsChallenge = true
		}
	}
	if !mentionsChallenge {
		t.Errorf("warnings %v do not flag the missing code_challenge", analysis.Warnings)
	}
}
