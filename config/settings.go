package config

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/openclaw/labelgen/internal/atomicfile"
)

// ErrInvalidSettings is returned when a settings value is rejected.
var ErrInvalidSettings = errors.New("invalid settings")

// MaxCurrencyLen is the longest accepted currency symbol, in characters.
const MaxCurrencyLen = 5

// logoBase is the file name, without extension, of the installed logo.
const logoBase = "company_logo"

// Settings is the user's persisted preferences. It is treated as a value:
// change a copy and Save it.
type Settings struct {
	Currency string `yaml:"currency" json:"currency"`
	LogoPath string `yaml:"logo_path" json:"logo_path"`
}

// DefaultSettings are used when nothing has been saved yet.
func DefaultSettings() Settings {
	return Settings{Currency: "$"}
}

// Validate checks the currency symbol.
func (s Settings) Validate() error {
	c := strings.TrimSpace(s.Currency)
	if c == "" {
		return fmt.Errorf("%w: currency symbol is required", ErrInvalidSettings)
	}
	if utf8.RuneCountInString(c) > MaxCurrencyLen {
		return fmt.Errorf("%w: currency symbol %q is longer than %d characters", ErrInvalidSettings, c, MaxCurrencyLen)
	}
	return nil
}

// SettingsStore reads and writes the settings record and keeps the installed
// logo next to it.
type SettingsStore struct {
	path string
}

// NewSettingsStore returns a store for the record at path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Path returns the settings file location.
func (s *SettingsStore) Path() string {
	return s.path
}

// Load returns the saved settings. A missing, unreadable or invalid record
// yields DefaultSettings and true.
func (s *SettingsStore) Load() (Settings, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return DefaultSettings(), true
	}
	var st Settings
	if err := yaml.Unmarshal(data, &st); err != nil {
		return DefaultSettings(), true
	}
	if err := st.Validate(); err != nil {
		return DefaultSettings(), true
	}
	st.Currency = strings.TrimSpace(st.Currency)
	return st, false
}

// Save validates st and replaces the record on disk.
func (s *SettingsStore) Save(st Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}
	st.Currency = strings.TrimSpace(st.Currency)

	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}
	if err := atomicfile.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// InstallLogo copies the image at src into the settings directory as
// company_logo with the source extension and returns the new path. Files
// that are not decodable images are rejected with ErrInvalidSettings.
func (s *SettingsStore) InstallLogo(src string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("%w: reading logo: %v", ErrInvalidSettings, err)
	}
	defer f.Close()
	return s.InstallLogoFrom(filepath.Base(src), f)
}

// InstallLogoFrom is InstallLogo for an image read from r. name only
// supplies the file extension.
func (s *SettingsStore) InstallLogoFrom(name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: reading logo: %v", ErrInvalidSettings, err)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: %s is not a supported image: %v", ErrInvalidSettings, name, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating settings dir: %w", err)
	}
	dst := filepath.Join(dir, logoBase+strings.ToLower(filepath.Ext(name)))
	if err := atomicfile.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("installing logo: %w", err)
	}
	return dst, nil
}

// RemoveLogo returns st without a logo. The file is deleted only if it is
// one InstallLogo put there.
func (s *SettingsStore) RemoveLogo(st Settings) (Settings, error) {
	if s.owns(st.LogoPath) {
		if err := os.Remove(st.LogoPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return st, fmt.Errorf("removing logo: %w", err)
		}
	}
	st.LogoPath = ""
	return st, nil
}

func (s *SettingsStore) owns(path string) bool {
	if path == "" || filepath.Dir(path) != filepath.Dir(s.path) {
		return false
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) == logoBase
}
