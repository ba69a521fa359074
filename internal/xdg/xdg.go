// Package xdg resolves XDG Base Directory paths for sss.
//
// When the XDG environment variables are unset it falls back to the
// conventional locations under the user's home directory. Directories are
// created with private permissions.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under each XDG base.
const AppName = "sss"

// ConfigDir returns $XDG_CONFIG_HOME/sss, falling back to ~/.config/sss.
// The directory is created with 0700 if missing.
func ConfigDir() (string, error) {
	return ensure("XDG_CONFIG_HOME", ".config")
}

// StateDir returns $XDG_STATE_HOME/sss, falling back to ~/.local/state/sss.
// The directory is created with 0700 if missing.
func StateDir() (string, error) {
	return ensure("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func ensure(envVar, homeRel string) (string, error) {
	base := os.Getenv(envVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeRel)
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}
