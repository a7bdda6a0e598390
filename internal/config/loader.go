package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"scouts/pkg/logging"

	"gopkg.in/yaml.v3"
)

// fileOverrides is the schema of the optional config.yaml. Only upstream
// endpoints are overridable from a file; storage paths and the browser
// toggles stay environment-driven.
type fileOverrides struct {
	APIBaseURL  string `yaml:"apiBaseUrl,omitempty"`
	AuthBaseURL string `yaml:"authBaseUrl,omitempty"`
	WebBaseURL  string `yaml:"webBaseUrl,omitempty"`
}

// applyFileOverrides merges config.yaml into cfg if it exists. A missing
// file is not an error; a malformed one is.
func applyFileOverrides(cfg *Config) error {
	configFilePath := filepath.Join(cfg.AppDir, configFileName)

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var overrides fileOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}

	if overrides.APIBaseURL != "" {
		cfg.APIBaseURL = overrides.APIBaseURL
	}
	if overrides.AuthBaseURL != "" {
		cfg.AuthBaseURL = overrides.AuthBaseURL
	}
	if overrides.WebBaseURL != "" {
		cfg.WebBaseURL = overrides.WebBaseURL
	}

	logging.Info("Config", "Loaded configuration overrides from %s", configFilePath)
	return nil
}
