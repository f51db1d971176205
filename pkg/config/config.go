package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Studio   StudioConfig   `json:"studio"`
	Provider ProviderConfig `json:"provider"`
	Storage  StorageConfig  `json:"storage"`
	mu       sync.RWMutex
}

type StudioConfig struct {
	// DebounceMS is the quiet period after a field edit before the
	// summary regenerates.
	DebounceMS int    `json:"debounce_ms" env:"PERSONASTUDIO_STUDIO_DEBOUNCE_MS"`
	LogLevel   string `json:"log_level" env:"PERSONASTUDIO_STUDIO_LOG_LEVEL"`
}

type ProviderConfig struct {
	APIKey  string `json:"api_key" env:"PERSONASTUDIO_PROVIDER_API_KEY"`
	APIBase string `json:"api_base" env:"PERSONASTUDIO_PROVIDER_API_BASE"`
	Model   string `json:"model" env:"PERSONASTUDIO_PROVIDER_MODEL"`
	Proxy   string `json:"proxy,omitempty" env:"PERSONASTUDIO_PROVIDER_PROXY"`
}

type StorageConfig struct {
	// Path is the SQLite database file. Empty disables persistence.
	Path string `json:"path" env:"PERSONASTUDIO_STORAGE_PATH"`
}

func DefaultConfig() *Config {
	return &Config{
		Studio: StudioConfig{
			DebounceMS: 1500,
			LogLevel:   "info",
		},
		Provider: ProviderConfig{
			APIBase: "https://openrouter.ai/api/v1",
			Model:   "openai/gpt-5.2",
		},
		Storage: StorageConfig{
			Path: "~/.personastudio/studio.db",
		},
	}
}

// DefaultPath is the config file location used when no flag overrides it.
func DefaultPath() string {
	return expandHome("~/.personastudio/config.json")
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := env.Parse(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// StoragePath returns the expanded database path, empty when persistence
// is disabled.
func (c *Config) StoragePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return expandHome(c.Storage.Path)
}

func expandHome(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, _ := os.UserHomeDir()
		if len(path) > 1 && path[1] == '/' {
			return home + path[1:]
		}
		return home
	}
	return path
}
