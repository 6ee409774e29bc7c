// Package config persists the tunable pipeline settings (config.json) and
// the Groq API credential (.env). Both files live side by side in one
// directory and are created on demand with safe defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/poiesic/wikiq/core"
)

const (
	configFile = "config.json"
	envFile    = ".env"

	// APIKeyName is the environment variable holding the Groq credential.
	APIKeyName = "GROQ_API_KEY"
)

// Store reads and writes the on-disk configuration of one wikiq instance.
type Store struct {
	configPath string
	envPath    string
	log        *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// NewStore creates a store rooted at dir. The directory must exist.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{
		configPath: filepath.Join(dir, configFile),
		envPath:    filepath.Join(dir, envFile),
		log:        slog.Default().With("component", "config"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadSettings reads and validates config.json.
// A missing file, malformed JSON, and out-of-range values are all errors;
// callers that want self-healing use EnsureSettings instead.
func (s *Store) LoadSettings() (core.Settings, error) {
	raw, err := os.ReadFile(s.configPath)
	if err != nil {
		return core.Settings{}, fmt.Errorf("reading %s: %w", configFile, err)
	}

	var settings core.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return core.Settings{}, fmt.Errorf("%w: parsing %s: %w", core.ErrInvalidSettings, configFile, err)
	}
	if err := settings.Validate(); err != nil {
		return core.Settings{}, err
	}
	return settings, nil
}

// SaveSettings validates and writes settings to config.json, replacing the
// previous contents entirely.
func (s *Store) SaveSettings(settings core.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.configPath, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", configFile, err)
	}
	return nil
}

// EnsureSettings guarantees a valid config.json exists, rewriting it with
// defaults when it is missing, malformed, or out of range. It reports
// whether the file had to be reset, which sends the user to the settings
// page on first contact.
func (s *Store) EnsureSettings() (core.Settings, bool, error) {
	settings, err := s.LoadSettings()
	if err == nil {
		return settings, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("resetting invalid configuration", "err", err)
	}

	defaults := core.DefaultSettings()
	if err := s.SaveSettings(defaults); err != nil {
		return core.Settings{}, false, err
	}
	return defaults, true, nil
}

// APIKey reads the Groq credential from the .env file.
// Returns ErrKeyNotSet when the file exists but the key is blank.
func (s *Store) APIKey() (string, error) {
	env, err := godotenv.Read(s.envPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", envFile, err)
	}
	key := strings.TrimSpace(env[APIKeyName])
	if key == "" {
		return "", ErrKeyNotSet
	}
	return key, nil
}

// SetAPIKey writes the Groq credential into the .env file, preserving any
// other variables already stored there.
func (s *Store) SetAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrKeyNotSet
	}

	env, err := godotenv.Read(s.envPath)
	if err != nil {
		env = map[string]string{}
	}
	env[APIKeyName] = key

	if err := godotenv.Write(env, s.envPath); err != nil {
		return fmt.Errorf("writing %s: %w", envFile, err)
	}
	return nil
}

// EnsureEnv guarantees a .env file exists, creating an empty-key template
// when missing. It reports whether the credential still needs to be set.
func (s *Store) EnsureEnv() (bool, error) {
	if _, err := os.Stat(s.envPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(s.envPath, []byte(APIKeyName+"=\n"), 0o600); err != nil {
			return false, fmt.Errorf("creating %s: %w", envFile, err)
		}
		return true, nil
	}

	if _, err := s.APIKey(); err != nil {
		if errors.Is(err, ErrKeyNotSet) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
