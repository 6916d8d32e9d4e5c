package simctl

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// fakeRunner records invocations and serves canned stdout keyed by the
// joined argument list.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	stream  string

	calls [][]string
}

var _ Runner = (*fakeRunner)(nil)

func (f *fakeRunner) Output(_ context.Context, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	key := strings.Join(args, " ")
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	return []byte(f.outputs[key]), nil
}

func (f *fakeRunner) Stream(_ context.Context, args ...string) (io.ReadCloser, error) {
	f.calls = append(f.calls, args)
	return io.NopCloser(strings.NewReader(f.stream)), nil
}

func newTestClient(t *testing.T, runner *fakeRunner) *Client {
	t.Helper()
	client, err := New("iPhone 16", WithRunner(runner))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return client
}

func TestNewRequiresDevice(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("New(\"\") succeeded, want error")
	}
}

func TestDeviceListed(t *testing.T) {
	tests := []struct {
		name    string
		listing string
		want    bool
	}{
		{"present", "== Devices ==\n    iPhone 16 (Booted)\n    iPhone SE (Shutdown)\n", true},
		{"absent", "== Devices ==\n    iPhone SE (Shutdown)\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{outputs: map[string]string{"list devices": tt.listing}}
			client := newTestClient(t, runner)

			listed, listing, err := client.DeviceListed(context.Background())
			if err != nil {
				t.Fatalf("DeviceListed() error: %v", err)
			}
			if listed != tt.want {
				t.Errorf("DeviceListed() = %v, want %v", listed, tt.want)
			}
			if listing != tt.listing {
				t.Errorf("listing = %q, want %q", listing, tt.listing)
			}
		})
	}
}

func TestAppInstalled(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"listapps iPhone 16": `"Fieldpay.fieldpay" = { ApplicationType = User; };`,
	}}
	client := newTestClient(t, runner)

	installed, err := client.AppInstalled(context.Background(), "Fieldpay.fieldpay")
	if err != nil {
		t.Fatalf("AppInstalled() error: %v", err)
	}
	if !installed {
		t.Error("AppInstalled() = false, want true")
	}

	installed, err = client.AppInstalled(context.Background(), "com.example.other")
	if err != nil {
		t.Fatalf("AppInstalled() error: %v", err)
	}
	if installed {
		t.Error("AppInstalled() = true for missing bundle, want false")
	}
}

func TestReadDefaults(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"spawn iPhone 16 defaults read Fieldpay.fieldpay": "{\n    netsuite_account_id = tstdrv1870144;\n}\n",
	}}
	client := newTestClient(t, runner)

	dump, err := client.ReadDefaults(context.Background(), "Fieldpay.fieldpay")
	if err != nil {
		t.Fatalf("ReadDefaults() error: %v", err)
	}
	if !strings.Contains(dump, "netsuite_account_id") {
		t.Errorf("dump = %q, want it to contain netsuite_account_id", dump)
	}
}

func TestReadDefaultsDomainMissing(t *testing.T) {
	domainErr := errors.New("Domain Fieldpay.fieldpay does not exist")
	runner := &fakeRunner{errs: map[string]error{
		"spawn iPhone 16 defaults read Fieldpay.fieldpay": domainErr,
	}}
	client := newTestClient(t, runner)

	if _, err := client.ReadDefaults(context.Background(), "Fieldpay.fieldpay"); !errors.Is(err, domainErr) {
		t.Errorf("ReadDefaults() error = %v, want wrapped %v", err, domainErr)
	}
}

func TestReadDefaultTrims(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"spawn iPhone 16 defaults read Fieldpay.fieldpay test_setting": "test_value\n",
	}}
	client := newTestClient(t, runner)

	value, err := client.ReadDefault(context.Background(), "Fieldpay.fieldpay", "test_setting")
	if err != nil {
		t.Fatalf("ReadDefault() error: %v", err)
	}
	if value != "test_value" {
		t.Errorf("ReadDefault() = %q, want %q", value, "test_value")
	}
}

func TestWriteDefaultArguments(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(t, runner)

	if err := client.WriteDefault(context.Background(), "Fieldpay.fieldpay", "netsuite_account_id", "tstdrv1870144"); err != nil {
		t.Fatalf("WriteDefault() error: %v", err)
	}

	want := []string{"spawn", "iPhone 16", "defaults", "write", "Fieldpay.fieldpay", "netsuite_account_id", "tstdrv1870144"}
	if len(runner.calls) != 1 {
		t.Fatalf("got %d invocations, want 1", len(runner.calls))
	}
	got := runner.calls[0]
	if strings.Join(got, "\x00") != strings.Join(want, "\x00") {
		t.Errorf("invocation = %v, want %v", got, want)
	}
}

func TestStreamLogsArguments(t *testing.T) {
	runner := &fakeRunner{stream: "line one\nline two\n"}
	client := newTestClient(t, runner)

	stream, err := client.StreamLogs(context.Background(), "fieldpay")
	if err != nil {
		t.Fatalf("StreamLogs() error: %v", err)
	}
	defer func() { _ = stream.Close() }()

	want := []string{"spawn", "iPhone 16", "log", "stream", "--predicate", `process == "fieldpay"`, "--style", "compact"}
	got := runner.calls[0]
	if strings.Join(got, "\x00") != strings.Join(want, "\x00") {
		t.Errorf("invocation = %v, want %v", got, want)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("reading stream: %v", err)
	}
	if string(data) != "line one\nline two\n" {
		t.Errorf("stream = %q", data)
	}
}
