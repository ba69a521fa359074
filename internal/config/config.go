// Package config loads CLI settings.
//
// Settings come from two layers: a JSON file in the XDG config dir (written
// by Save) and environment variables, optionally seeded from a .env file in
// the working directory. Environment values win over the file. No secrets
// are kept here; session cookies live in the OS keychain.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"sss/cli/internal/xdg"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	APIBaseURL      string `json:"api_base_url" env:"SSS_CORE_API_BASE_URL"`
	FrontBaseURL    string `json:"front_base_url" env:"SSS_CORE_FRONT_BASE_URL"`
	AdminPathPrefix string `json:"admin_path_prefix,omitempty" env:"SSS_ADMIN_PATH_PREFIX"`
	LogLevel        string `json:"log_level" env:"SSS_LOG_LEVEL"`
}

// Defaults returns the settings used when neither file nor environment
// provide a value.
func Defaults() Config {
	return Config{
		APIBaseURL:   "http://localhost:8080",
		FrontBaseURL: "http://localhost:3000",
		LogLevel:     "info",
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file, then applies .env and environment overrides.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(p)
}

// LoadFrom is Load with an explicit file path. A missing file yields defaults.
func LoadFrom(path string) (Config, error) {
	c, err := readFile(path)
	if err != nil {
		return c, err
	}
	// .env is optional
	_ = godotenv.Load()
	return ApplyEnv(c)
}

// ApplyEnv overlays set environment variables onto c.
func ApplyEnv(c Config) (Config, error) {
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse environment: %w", err)
	}
	return c, nil
}

func readFile(path string) (Config, error) {
	c := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to the default path with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(p, c)
}

// SaveTo writes c to path with 0600 permissions.
func SaveTo(path string, c Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
