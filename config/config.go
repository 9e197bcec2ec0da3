package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"familyboard/internal/localstore"
)

// Person is one tracked family member. Name is unique within the config.
// CalendarID is the opaque provider calendar identifier; people without one
// are shown on the board but contribute no events.
type Person struct {
	Name       string `json:"name"`
	Color      string `json:"color"`
	Avatar     string `json:"avatar,omitempty"`
	CalendarID string `json:"calendarId,omitempty"`
}

// EnvConfig holds the Google OAuth client credentials supplied by the user.
type EnvConfig struct {
	GoogleClientID     string `json:"googleClientId"`
	GoogleClientSecret string `json:"googleClientSecret"`
	GoogleRedirectURI  string `json:"googleRedirectUri"`
}

// AppConfig is the single process-wide configuration record. It is loaded
// at startup and overwritten wholesale on save; there are no partial updates.
type AppConfig struct {
	People []Person  `json:"people"`
	Env    EnvConfig `json:"env"`
}

// DefaultConfig returns the initial configuration used before the first
// save. The sample people mirror the shipped defaults; none has a calendar
// identifier yet.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		People: []Person{
			{Name: "John", Color: "#A8E6CF", Avatar: "/avatars/dad.png"},
			{Name: "Jane", Color: "#B8E0F6", Avatar: "/avatars/mom.png"},
			{Name: "Adam", Color: "#FFD3B6", Avatar: "/avatars/son.png"},
			{Name: "Eve", Color: "#D8C7F5", Avatar: "/avatars/daughter.png"},
		},
		Env: EnvConfig{},
	}
}

// Validate checks the structural invariants of a config record.
func (c *AppConfig) Validate() error {
	seen := make(map[string]bool, len(c.People))
	for _, p := range c.People {
		if p.Name == "" {
			return fmt.Errorf("person with empty name")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate person name %q", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// Manager owns the persisted AppConfig record. All reads and writes go
// through it; the record is serialized as one JSON value under a fixed key
// in the local store.
type Manager struct {
	store *localstore.Store
	mu    sync.RWMutex
}

// NewManager creates a config manager backed by the given store.
func NewManager(store *localstore.Store) *Manager {
	return &Manager{store: store}
}

// Load returns the persisted configuration, or the defaults when no record
// has been saved yet.
func (m *Manager) Load() (*AppConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, ok, err := m.store.Get(localstore.KeyAppConfig)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !ok {
		return DefaultConfig(), nil
	}

	var cfg AppConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.People == nil {
		cfg.People = []Person{}
	}
	return &cfg, nil
}

// Save validates and persists the configuration, replacing the previous
// record wholesale.
func (m *Manager) Save(cfg *AppConfig) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := m.store.Set(localstore.KeyAppConfig, string(data)); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
