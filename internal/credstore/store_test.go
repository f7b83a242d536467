package credstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)

	fields := map[Field]string{
		FieldAppID:          "app-123",
		FieldAppSecret:      "secret-456",
		FieldAccessToken:    "at-789",
		FieldRefreshToken:   "rt-012",
		FieldDefaultMailbox: "42",
	}
	for f, v := range fields {
		if err := s.Set(f, v); err != nil {
			t.Fatalf("Set(%s): %v", f, err)
		}
	}
	for f, want := range fields {
		got, err := s.Get(f)
		if err != nil {
			t.Fatalf("Get(%s): %v", f, err)
		}
		if got != want {
			t.Errorf("Get(%s) = %q, want %q", f, got, want)
		}
	}
}

func TestFileStoreClearRemovesOnlyNamedField(t *testing.T) {
	s := newTestStore(t)
	if err := s.Set(FieldAccessToken, "at"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(FieldRefreshToken, "rt"); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(FieldAccessToken); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if got, _ := s.Get(FieldAccessToken); got != "" {
		t.Errorf("access token should be cleared, got %q", got)
	}
	if got, _ := s.Get(FieldRefreshToken); got != "rt" {
		t.Errorf("refresh token should survive, got %q", got)
	}
}

func TestFileStoreClearAbsentField(t *testing.T) {
	s := newTestStore(t)
	if err := s.Clear(FieldAccessToken); err != nil {
		t.Errorf("clearing an absent field should be a no-op, got %v", err)
	}
}

func TestFileStoreGetUnsetField(t *testing.T) {
	s := newTestStore(t)
	got, err := s.Get(FieldDefaultMailbox)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "" {
		t.Errorf("Get on empty store = %q, want empty", got)
	}
}

func TestFileStoreEnvOverlay(t *testing.T) {
	s := newTestStore(t)
	t.Setenv("HELPSCOUT_APP_ID", "env-app")
	t.Setenv("HELPSCOUT_APP_SECRET", "env-secret")

	if got, _ := s.Get(FieldAppID); got != "env-app" {
		t.Errorf("app id from env = %q, want %q", got, "env-app")
	}
	if got, _ := s.Get(FieldAppSecret); got != "env-secret" {
		t.Errorf("app secret from env = %q, want %q", got, "env-secret")
	}

	// A stored value wins over the environment.
	if err := s.Set(FieldAppID, "stored-app"); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get(FieldAppID); got != "stored-app" {
		t.Errorf("stored value should win, got %q", got)
	}

	// Tokens have no env overlay.
	t.Setenv("HELPSCOUT_ACCESS_TOKEN", "nope")
	if got, _ := s.Get(FieldAccessToken); got != "" {
		t.Errorf("access token should have no env overlay, got %q", got)
	}
}

func TestFileStorePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	s := newTestStore(t)
	if err := s.Set(FieldAppSecret, "secret"); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(s.path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("credentials file mode = %o, want 0600", perm)
	}
}
