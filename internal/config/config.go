// Package config handles loading and managing hs configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Default Help Scout API endpoints. Overridable in config for testing
// against a mock server.
const (
	DefaultBaseURL  = "https://api.helpscout.net/v2"
	DefaultTokenURL = "https://api.helpscout.net/v2/oauth2/token"
)

// Config represents the hs configuration.
type Config struct {
	API APIConfig `toml:"api"`

	// Computed (not from config file)
	HomeDir string `toml:"-"`
}

// APIConfig holds remote endpoint configuration.
type APIConfig struct {
	BaseURL  string `toml:"base_url"`
	TokenURL string `toml:"token_url"`
}

// DefaultHome returns the default hs home directory.
// Respects the HSCLI_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("HSCLI_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hscli"
	}
	return filepath.Join(home, ".hscli")
}

// Load reads the configuration from the specified file. If path is empty,
// uses the default location (~/.hscli/config.toml). A homeDir override wins
// over HSCLI_HOME. The config file is optional; defaults apply without it.
func Load(path, homeDir string) (*Config, error) {
	if homeDir == "" {
		homeDir = DefaultHome()
	}
	homeDir = expandTilde(homeDir)
	if path == "" {
		path = filepath.Join(homeDir, "config.toml")
	}
	path = expandTilde(path)

	cfg := &Config{
		HomeDir: homeDir,
		API: APIConfig{
			BaseURL:  DefaultBaseURL,
			TokenURL: DefaultTokenURL,
		},
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.TokenURL == "" {
		cfg.API.TokenURL = DefaultTokenURL
	}

	return cfg, nil
}

// expandTilde expands a leading ~/ to the user's home directory.
func expandTilde(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// CredentialsPath returns the path to the credentials file.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.HomeDir, "credentials.json")
}

// ConfigFilePath returns the path to the config file for help text.
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.HomeDir, "config.toml")
}

// EnsureHomeDir creates the home directory if it does not exist.
func (c *Config) EnsureHomeDir() error {
	return os.MkdirAll(c.HomeDir, 0700)
}
