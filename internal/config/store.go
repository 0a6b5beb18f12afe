package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "casttompv"
	configFile = "config.yaml"

	// PathEnvVar overrides the configuration file location.
	PathEnvVar = "CASTTOMPV_CONFIG"
)

// Store persists a Config as a flat key-value YAML record.
// A Store has a single active caller per process; the mutex only keeps
// concurrent Save calls from interleaving their temp files.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore returns a Store at the OS-appropriate location, honoring
// CASTTOMPV_CONFIG.
func DefaultStore() (*Store, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// GetConfigDir returns the OS-appropriate configuration directory for the application.
//   - Linux: $XDG_CONFIG_HOME/casttompv or $HOME/.config/casttompv
//   - macOS: $HOME/.config/casttompv
//   - Windows: %LOCALAPPDATA%\casttompv
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	if override := os.Getenv(PathEnvVar); override != "" {
		return override, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load reads the persisted record. Absent keys take their defaults and a
// missing file yields Default().
func (s *Store) Load() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save validates cfg and writes every field in one atomic replace.
// On a validation error the record on disk is left untouched.
func (s *Store) Save(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{Field: "config"}
	}
	toSave := cfg.Clone()
	toSave.Normalize()
	if err := toSave.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(toSave)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# casttompv configuration\n# Receiver address and sender preferences.\n\n")
	data = append(header, data...)

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}
