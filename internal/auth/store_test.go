package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestFileTokenStoreLoadMissingFile(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "missing.json"))

	token, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if token != nil {
		t.Fatalf("expected nil token, got %#v", token)
	}
}

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	store := NewFileTokenStore(path)

	expected := &oauth2.Token{
		AccessToken: "access",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour).Round(time.Second),
	}
	if err := store.Save(expected); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 permissions, got %v", perm)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.AccessToken != expected.AccessToken || got.TokenType != expected.TokenType {
		t.Fatalf("token mismatch: got %#v want %#v", got, expected)
	}
	if !got.Expiry.Equal(expected.Expiry) {
		t.Fatalf("expiry mismatch: got %v want %v", got.Expiry, expected.Expiry)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFileTokenStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileTokenStore(path).Load(); err == nil {
		t.Fatal("expected decode error")
	}
}
