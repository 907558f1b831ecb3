// Package config loads the application configuration and manages the
// persisted user settings record.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. LABELGEN_LISTEN.
const EnvPrefix = "LABELGEN_"

// Fonts selects the label faces. Empty paths use the embedded Go fonts.
type Fonts struct {
	Regular     string  `yaml:"regular" env:"REGULAR"`
	Bold        string  `yaml:"bold" env:"BOLD"`
	NameSize    float64 `yaml:"name_size" env:"NAME_SIZE"`
	PriceSize   float64 `yaml:"price_size" env:"PRICE_SIZE"`
	CaptionSize float64 `yaml:"caption_size" env:"CAPTION_SIZE"`
}

// Config holds all application configuration values.
type Config struct {
	DataDir        string   `yaml:"data_dir" env:"DATA_DIR"`
	LogLevel       string   `yaml:"log_level" env:"LOG_LEVEL"`
	Listen         string   `yaml:"listen" env:"LISTEN"`
	RequestTimeout Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT"`
	Fonts          Fonts    `yaml:"fonts" envPrefix:"FONTS_"`
}

// Duration is a time.Duration written as "30s", "5m" or "1h" in YAML and in
// the environment.
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (any, error) {
	return d.Duration.String(), nil
}

// UnmarshalText parses environment values.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

func defaults() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return &Config{
		DataDir:        filepath.Join(homeDir, ".labelgen"),
		LogLevel:       "info",
		Listen:         "127.0.0.1:8556",
		RequestTimeout: Duration{30 * time.Second},
		Fonts: Fonts{
			NameSize:    24,
			PriceSize:   32,
			CaptionSize: 18,
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error. LABELGEN_* environment variables override file and default
// values; a .env file must already have been loaded into the environment.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// EnsureDataDir creates DataDir if it does not already exist.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir %s: %w", c.DataDir, err)
	}
	return nil
}

// SettingsPath is where the settings record lives.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.DataDir, "settings.yaml")
}
