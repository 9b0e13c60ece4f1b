package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/checkdk/checkdk/internal/domain"
)

const (
	configDir  = ".checkdk"
	configFile = "config.yaml"
)

// YAMLLoader reads and writes the persisted user settings at
// ~/.checkdk/config.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Path returns the settings file location.
func (l *YAMLLoader) Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, configDir, configFile), nil
}

// Load reads the settings file. A missing file returns DefaultSettings.
func (l *YAMLLoader) Load() (domain.Settings, error) {
	path, err := l.Path()
	if err != nil {
		return domain.DefaultSettings(), err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultSettings(), nil
		}
		return domain.DefaultSettings(), err
	}

	settings := domain.DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return domain.DefaultSettings(), fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return domain.DefaultSettings(), fmt.Errorf("invalid %s: %w", path, err)
	}
	return settings, nil
}

// Save writes the settings file, creating the directory when needed.
func (l *YAMLLoader) Save(settings domain.Settings) error {
	path, err := l.Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
