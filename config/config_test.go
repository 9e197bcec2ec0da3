package config_test

import (
	"path/filepath"
	"testing"

	"familyboard/config"
	"familyboard/internal/localstore"
)

func newTestManager(t *testing.T) *config.Manager {
	t.Helper()

	store, err := localstore.NewStore(localstore.Config{
		DatabasePath: filepath.Join(t.TempDir(), "store.db"),
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return config.NewManager(store)
}

func TestLoadReturnsDefaultsWhenEmpty(t *testing.T) {
	manager := newTestManager(t)

	cfg, err := manager.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.People) != 4 {
		t.Fatalf("expected 4 default people, got %d", len(cfg.People))
	}
	for _, p := range cfg.People {
		if p.CalendarID != "" {
			t.Fatalf("default person %s should have no calendar id", p.Name)
		}
		if len(p.Color) != 7 || p.Color[0] != '#' {
			t.Fatalf("default person %s has a malformed color %q", p.Name, p.Color)
		}
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	manager := newTestManager(t)

	saved := &config.AppConfig{
		People: []config.Person{
			{Name: "John", Color: "#A8E6CF", CalendarID: "john@group.calendar.google.com"},
		},
		Env: config.EnvConfig{
			GoogleClientID:     "client-id",
			GoogleClientSecret: "client-secret",
			GoogleRedirectURI:  "http://localhost/api/auth/callback",
		},
	}
	if err := manager.Save(saved); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded.People) != 1 || loaded.People[0].Name != "John" {
		t.Fatalf("unexpected people after roundtrip: %+v", loaded.People)
	}
	if loaded.Env.GoogleClientID != "client-id" {
		t.Fatalf("unexpected env after roundtrip: %+v", loaded.Env)
	}
}

func TestSaveIsWholesale(t *testing.T) {
	manager := newTestManager(t)

	first := &config.AppConfig{People: []config.Person{
		{Name: "John", Color: "#A8E6CF"},
		{Name: "Jane", Color: "#B8E0F6"},
	}}
	if err := manager.Save(first); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	second := &config.AppConfig{People: []config.Person{
		{Name: "Adam", Color: "#FFD3B6"},
	}}
	if err := manager.Save(second); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded.People) != 1 || loaded.People[0].Name != "Adam" {
		t.Fatalf("expected wholesale replacement, got %+v", loaded.People)
	}
}

func TestSaveRejectsDuplicateNames(t *testing.T) {
	manager := newTestManager(t)

	err := manager.Save(&config.AppConfig{People: []config.Person{
		{Name: "John", Color: "#A8E6CF"},
		{Name: "John", Color: "#B8E0F6"},
	}})
	if err == nil {
		t.Fatalf("expected duplicate name to be rejected")
	}
}
