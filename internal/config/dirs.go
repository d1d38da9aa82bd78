package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDirs creates the gallery root and the database parent directory if
// they do not exist yet. Safe to call on every startup.
func (cfg *Config) EnsureDirs() error {
	if cfg.Gallery.Dir != "" {
		if err := os.MkdirAll(cfg.Gallery.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create gallery directory %s: %w", cfg.Gallery.Dir, err)
		}
	}

	if cfg.Database.Path != "" {
		parent := filepath.Dir(cfg.Database.Path)
		if err := os.MkdirAll(parent, 0755); err != nil {
			return fmt.Errorf("failed to create database directory %s: %w", parent, err)
		}
	}

	return nil
}
