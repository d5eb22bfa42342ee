// Package config handles XDG configuration directory and file paths.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "taskhub"

	// TokenFile is the stored session token filename.
	TokenFile = "token.json"

	// EnvFile is the optional settings file in the config directory.
	EnvFile = ".env"

	// APIURLVar names the environment variable overriding the service URL.
	APIURLVar = "TASKHUB_API_URL"

	// DefaultAPIURL is the task service address when nothing overrides it.
	DefaultAPIURL = "http://localhost:8000"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL of the task service.
	APIURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskhub or
// $HOME/.config/taskhub. The service URL comes from, in order: the
// TASKHUB_API_URL environment variable, the .env file in the config
// directory, the built-in default.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, APIURL: DefaultAPIURL}

	if vals, err := godotenv.Read(filepath.Join(dir, EnvFile)); err == nil {
		if u := vals[APIURLVar]; u != "" {
			cfg.APIURL = u
		}
	}
	if u := os.Getenv(APIURLVar); u != "" {
		cfg.APIURL = u
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored session token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
