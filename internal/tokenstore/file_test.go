package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileStoreRequiresPath(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Error("NewFileStore(\"\") succeeded, want error")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	ctx := context.Background()
	if err := store.Write(ctx, "  my-secret-token \n"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	token, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if token != "my-secret-token" {
		t.Errorf("Read() = %q, want %q", token, "my-secret-token")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permissions = %04o, want 0600", perm)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	ctx := context.Background()
	for _, token := range []string{"first", "second"} {
		if err := store.Write(ctx, token); err != nil {
			t.Fatalf("Write(%q) error: %v", token, err)
		}
	}

	token, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if token != "second" {
		t.Errorf("Read() = %q, want %q", token, "second")
	}
}

func TestFileStoreReadMissingFile(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	if _, err := store.Read(context.Background()); err == nil {
		t.Error("Read() of a missing file succeeded, want error")
	}
}

func TestFileStoreRejectsInsecurePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	ctx := context.Background()
	if err := store.Write(ctx, "secret"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := os.Chmod(path, 0644); err != nil {
		t.Fatalf("Chmod() error: %v", err)
	}

	_, err = store.Read(ctx)
	if err == nil {
		t.Fatal("Read() of a world-readable token succeeded, want error")
	}
	if !strings.Contains(err.Error(), "insecure permissions") {
		t.Errorf("error = %v, want it to mention insecure permissions", err)
	}
}

func TestFileStoreRejectsEmptyToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	if err := os.WriteFile(path, []byte("\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	if _, err := store.Read(context.Background()); err == nil {
		t.Error("Read() of an empty token file succeeded, want error")
	}
}

func TestFileStoreSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	if !strings.Contains(store.Source(), path) {
		t.Errorf("Source() = %q, want it to contain %q", store.Source(), path)
	}
}
