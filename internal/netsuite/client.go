// Package netsuite provides a minimal REST client for probing the NetSuite
// SuiteTalk API with a hand-entered OAuth access token, plus account-scoped
// endpoint construction for the OAuth 2.0 flow.
package netsuite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// DefaultTimeout bounds probe requests against an unresponsive account host.
const DefaultTimeout = 30 * time.Second

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	baseURL       string
	timeout       time.Duration
	baseTransport http.RoundTripper
}

// WithBaseURL overrides the SuiteTalk base URL, e.g. to probe the legacy
// restlets host instead.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithTransport sets a custom base transport for API requests.
// If not provided, http.DefaultTransport is used.
func WithTransport(transport http.RoundTripper) ClientOption {
	return func(c *clientConfig) {
		c.baseTransport = transport
	}
}

// Client issues authenticated GET probes against a NetSuite REST host.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient creates a Client for the given account using a static bearer
// token. The token is attached via oauth2.Transport, the same mechanism the
// production client uses, so authorization failures reproduce faithfully.
func NewClient(accountID, accessToken string, opts ...ClientOption) (*Client, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account ID cannot be empty")
	}
	if accessToken == "" {
		return nil, fmt.Errorf("access token cannot be empty")
	}

	cfg := &clientConfig{
		baseURL:       APIBaseURL(accountID),
		timeout:       DefaultTimeout,
		baseTransport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	base, err := url.Parse(cfg.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: cfg.timeout,
			Transport: &oauth2.Transport{
				Source: source,
				Base:   cfg.baseTransport,
			},
		},
	}, nil
}

// BaseURL returns the host the client probes, for display purposes.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Probe captures everything a debugging session needs from one response:
// the raw status, headers and body, plus the decoded JSON object when the
// body parses as one.
type Probe struct {
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte

	// JSON is nil when the body is not a JSON object.
	JSON map[string]any
}

// OK reports whether the probe got a 200 response.
func (p *Probe) OK() bool {
	return p.StatusCode == http.StatusOK
}

// Get issues an authenticated GET against a path relative to the base URL.
// Non-2xx statuses are not errors: the probe carries the status for the
// caller to branch on, matching how a debugging session reads failures.
func (c *Client) Get(ctx context.Context, path string) (*Probe, error) {
	target := c.baseURL.JoinPath(path)
	// JoinPath escapes "?" in the path argument, so query strings are split
	// out before joining.
	if i := strings.IndexByte(path, '?'); i >= 0 {
		target = c.baseURL.JoinPath(path[:i])
		target.RawQuery = path[i+1:]
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	probe := &Probe{
		URL:        target.String(),
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}

	var decoded map[string]any
	if json.Unmarshal(body, &decoded) == nil {
		probe.JSON = decoded
	}

	return probe, nil
}

// RecordPath returns the SuiteTalk record collection path for a record type,
// optionally with a limit parameter.
func RecordPath(recordType string, limit int) string {
	path := "/services/rest/record/v1/" + recordType
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	return path
}
