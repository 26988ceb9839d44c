// Package monocle writes the files read by the Monocle Gateway.
package monocle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"auto-monocle/pkg/models"
)

// WriteToken stores the Monocle API token verbatim.
func WriteToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// WriteConfig stores cfg as indented JSON. A nil camera list is written as [].
func WriteConfig(path string, cfg models.MonocleConfig) error {
	if cfg.Cameras == nil {
		cfg.Cameras = []models.MonocleCamera{}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
