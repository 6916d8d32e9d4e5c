package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fieldpay/nsdebug/internal/app"
)

func noEnv() []string { return nil }

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nsdebug.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("", nil, noEnv)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.NetSuite.AccountID != app.DefaultConfigAccountID {
		t.Errorf("AccountID = %q, want default %q", cfg.NetSuite.AccountID, app.DefaultConfigAccountID)
	}
	if cfg.Simulator.Device != app.DefaultConfigDevice {
		t.Errorf("Device = %q, want default %q", cfg.Simulator.Device, app.DefaultConfigDevice)
	}
	if cfg.LogFormat != app.LogFormatText {
		t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
log_format = "json"

[netsuite]
account_id = "tstdrv1870144"
client_id = "real-client-id"

[simulator]
device = "iPhone 15"
`)

	cfg, err := loadConfig(path, nil, noEnv)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.LogFormat != app.LogFormatJSON {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
	if cfg.NetSuite.AccountID != "tstdrv1870144" {
		t.Errorf("AccountID = %q", cfg.NetSuite.AccountID)
	}
	if cfg.NetSuite.ClientID != "real-client-id" {
		t.Errorf("ClientID = %q", cfg.NetSuite.ClientID)
	}
	if cfg.Simulator.Device != "iPhone 15" {
		t.Errorf("Device = %q", cfg.Simulator.Device)
	}
	// Values absent from the file keep their defaults.
	if cfg.Simulator.BundleID != app.DefaultConfigBundleID {
		t.Errorf("BundleID = %q, want default", cfg.Simulator.BundleID)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	environ := func() []string {
		return []string{
			"NSDEBUG_NETSUITE__ACCOUNT_ID=envacct",
			"NSDEBUG_SIMULATOR__DEVICE=iPhone SE",
			"NSDEBUG_LOG_FORMAT=json",
			"UNRELATED_VARIABLE=ignored",
		}
	}

	cfg, err := loadConfig("", nil, environ)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.NetSuite.AccountID != "envacct" {
		t.Errorf("AccountID = %q, want envacct", cfg.NetSuite.AccountID)
	}
	if cfg.Simulator.Device != "iPhone SE" {
		t.Errorf("Device = %q, want iPhone SE", cfg.Simulator.Device)
	}
	if cfg.LogFormat != app.LogFormatJSON {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
}

func TestLoadConfigEnvironmentOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
[netsuite]
account_id = "fileacct"
`)
	environ := func() []string {
		return []string{"NSDEBUG_NETSUITE__ACCOUNT_ID=envacct"}
	}

	cfg, err := loadConfig(path, nil, environ)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.NetSuite.AccountID != "envacct" {
		t.Errorf("AccountID = %q, want env value to win", cfg.NetSuite.AccountID)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := writeConfigFile(t, `
log_format = "yaml"
`)
	if _, err := loadConfig(path, nil, noEnv); err == nil {
		t.Error("loadConfig() accepted an invalid log format")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml"), nil, noEnv); err == nil {
		t.Error("loadConfig() succeeded for a missing config file")
	}
}
