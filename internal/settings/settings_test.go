package settings_test

import (
	"path/filepath"
	"testing"

	"github.com/rmeucci/portfolio-bff-go/internal/settings"
)

func openStore(t *testing.T, path string) *settings.Store {
	t.Helper()
	s, err := settings.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_DefaultsWhenUnset(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "settings.db"))

	if got := s.Get("theme"); got != "dark" {
		t.Errorf("expected default theme 'dark', got %q", got)
	}
	if got := s.Get("sidebar"); got != "open" {
		t.Errorf("expected default sidebar 'open', got %q", got)
	}
	if got := s.Get("unknown"); got != "" {
		t.Errorf("expected empty value for unknown key, got %q", got)
	}
}

func TestStore_SetPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")

	s := openStore(t, path)
	if err := s.Set("theme", "light"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got := s.Get("theme"); got != "light" {
		t.Fatalf("expected 'light' immediately after set, got %q", got)
	}
	s.Close()

	reopened := openStore(t, path)
	if got := reopened.Get("theme"); got != "light" {
		t.Errorf("expected 'light' after reopen, got %q", got)
	}
}

func TestStore_SetOverwrites(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "settings.db"))

	if err := s.Set("sidebar", "closed"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Set("sidebar", "open"); err != nil {
		t.Fatalf("second set failed: %v", err)
	}
	if got := s.Get("sidebar"); got != "open" {
		t.Errorf("expected 'open', got %q", got)
	}
}

func TestStore_AllMergesDefaults(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "settings.db"))

	if err := s.Set("theme", "light"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	all := s.All()
	if all["theme"] != "light" {
		t.Errorf("expected stored value to win, got %q", all["theme"])
	}
	if all["sidebar"] != "open" {
		t.Errorf("expected default filled in, got %q", all["sidebar"])
	}
}
