package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/garapadev/garapagent/internal/paths"
)

// Config holds the global application configuration, persisted as JSON at
// ~/.garapagent/config.json. Environment variables override file values.
type Config struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
	BaseURL  string `json:"base_url,omitempty"`

	TelegramToken  string  `json:"telegram_token,omitempty"`
	AllowedUserIDs []int64 `json:"allowed_user_ids,omitempty"`

	BridgeAddr string `json:"bridge_addr,omitempty"`
}

// Path returns the global config file location.
func Path() string {
	return filepath.Join(paths.GetGlobalDir(), "config.json")
}

// Load reads the global config file and applies environment overrides. A
// missing file is not an error: defaults plus environment are enough to run.
func Load() (*Config, error) {
	cfg := &Config{
		Provider:   "anthropic",
		BridgeAddr: "127.0.0.1:8765",
	}

	data, err := os.ReadFile(Path())
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", Path(), err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnv(cfg)

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key: set GARAPAGENT_API_KEY or api_key in %s", Path())
	}
	return cfg, nil
}

// Save persists the config, creating ~/.garapagent as needed.
func (c *Config) Save() error {
	if err := paths.EnsureDir(paths.GetGlobalDir()); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(Path(), data, 0600)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GARAPAGENT_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("GARAPAGENT_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("GARAPAGENT_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GARAPAGENT_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.TelegramToken = v
	}
	if v := os.Getenv("GARAPAGENT_BRIDGE_ADDR"); v != "" {
		cfg.BridgeAddr = v
	}
	if v := os.Getenv("ALLOWED_USER_IDS"); v != "" {
		cfg.AllowedUserIDs = nil
		for _, idStr := range strings.Split(v, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				continue
			}
			cfg.AllowedUserIDs = append(cfg.AllowedUserIDs, id)
		}
	}
}
