// Package simctl wraps the `xcrun simctl` device management CLI: checking
// simulator and app state, reading and writing an app's UserDefaults domain,
// and streaming the unified log of a running simulator.
//
// All invocations go through the Runner seam so tests can substitute a fake.
package simctl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner executes simctl invocations. args exclude the leading
// "xcrun simctl".
type Runner interface {
	// Output runs the invocation to completion and returns its stdout.
	Output(ctx context.Context, args ...string) ([]byte, error)

	// Stream starts the invocation and returns its stdout pipe. Closing the
	// returned ReadCloser terminates the subprocess.
	Stream(ctx context.Context, args ...string) (io.ReadCloser, error)
}

// execRunner runs simctl through os/exec.
type execRunner struct{}

// Compile-time check to ensure execRunner implements Runner
var _ Runner = (*execRunner)(nil)

func (execRunner) Output(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "xcrun", append([]string{"simctl"}, args...)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("simctl %s: %w: %s", strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("simctl %s: %w", strings.Join(args, " "), err)
	}
	return stdout.Bytes(), nil
}

func (execRunner) Stream(ctx context.Context, args ...string) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, "xcrun", append([]string{"simctl"}, args...)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("simctl %s: %w", strings.Join(args, " "), err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("simctl %s: %w", strings.Join(args, " "), err)
	}

	return &processStream{stdout: stdout, cmd: cmd}, nil
}

// processStream couples a stdout pipe with its process so Close reaps the
// subprocess instead of leaking it.
type processStream struct {
	stdout io.ReadCloser
	cmd    *exec.Cmd
}

func (s *processStream) Read(p []byte) (int, error) {
	return s.stdout.Read(p)
}

func (s *processStream) Close() error {
	_ = s.stdout.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	// Wait error is expected after Kill; the stream is done either way.
	_ = s.cmd.Wait()
	return nil
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRunner substitutes the subprocess runner, primarily for tests.
func WithRunner(r Runner) ClientOption {
	return func(c *Client) {
		c.runner = r
	}
}

// Client targets one simulator device.
type Client struct {
	device string
	runner Runner
}

// New creates a Client for the named simulator device, e.g. "iPhone 16".
func New(device string, opts ...ClientOption) (*Client, error) {
	if device == "" {
		return nil, fmt.Errorf("device name cannot be empty")
	}

	c := &Client{
		device: device,
		runner: execRunner{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Device returns the simulator device name the client targets.
func (c *Client) Device() string {
	return c.device
}

// DeviceListed reports whether the device appears in `simctl list devices`.
// On a miss the full device listing is returned for display.
func (c *Client) DeviceListed(ctx context.Context) (bool, string, error) {
	out, err := c.runner.Output(ctx, "list", "devices")
	if err != nil {
		return false, "", fmt.Errorf("listing devices: %w", err)
	}
	listing := string(out)
	return strings.Contains(listing, c.device), listing, nil
}

// AppInstalled reports whether the bundle ID appears in the device's
// installed app listing.
func (c *Client) AppInstalled(ctx context.Context, bundleID string) (bool, error) {
	out, err := c.runner.Output(ctx, "listapps", c.device)
	if err != nil {
		return false, fmt.Errorf("listing apps on %s: %w", c.device, err)
	}
	return strings.Contains(string(out), bundleID), nil
}

// ReadDefaults dumps the entire UserDefaults domain of an app. A missing
// domain surfaces as an error from the defaults tool.
func (c *Client) ReadDefaults(ctx context.Context, domain string) (string, error) {
	out, err := c.runner.Output(ctx, "spawn", c.device, "defaults", "read", domain)
	if err != nil {
		return "", fmt.Errorf("reading defaults domain %s: %w", domain, err)
	}
	return string(out), nil
}

// ReadDefault reads one key from an app's UserDefaults domain.
func (c *Client) ReadDefault(ctx context.Context, domain, key string) (string, error) {
	out, err := c.runner.Output(ctx, "spawn", c.device, "defaults", "read", domain, key)
	if err != nil {
		return "", fmt.Errorf("reading default %s.%s: %w", domain, key, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// WriteDefault writes one string value into an app's UserDefaults domain.
func (c *Client) WriteDefault(ctx context.Context, domain, key, value string) error {
	if _, err := c.runner.Output(ctx, "spawn", c.device, "defaults", "write", domain, key, value); err != nil {
		return fmt.Errorf("writing default %s.%s: %w", domain, key, err)
	}
	return nil
}

// StreamLogs starts a unified log stream on the device filtered to one
// process. The caller must Close the stream, which terminates the underlying
// `log stream` subprocess.
func (c *Client) StreamLogs(ctx context.Context, process string) (io.ReadCloser, error) {
	stream, err := c.runner.Stream(ctx,
		"spawn", c.device, "log", "stream",
		"--predicate", fmt.Sprintf("process == %q", process),
		"--style", "compact",
	)
	if err != nil {
		return nil, fmt.Errorf("starting log stream for %s: %w", process, err)
	}
	return stream, nil
}
