package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides, e.g. PRINTDESK_LOG_LEVEL
const EnvPrefix = "PRINTDESK"

type Config struct {
	// Shop details printed on quotes, invoices and reminders
	Shop ShopConfig `yaml:"shop"`

	// Document numbering
	Numbering NumberingConfig `yaml:"numbering"`

	// Invoice settings
	Invoice InvoiceConfig `yaml:"invoice"`

	// Quote settings
	Quote QuoteConfig `yaml:"quote"`

	Log LogConfig `yaml:"log"`

	// Fixtures is a seed file to load instead of the built-in demo data
	Fixtures string `yaml:"fixtures"`
}

type ShopConfig struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email" validate:"omitempty,email"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
}

// NumberingConfig sets document number prefixes, e.g. "Q" gives Q001
type NumberingConfig struct {
	QuotePrefix   string `yaml:"quote_prefix" split_words:"true" validate:"required"`
	InvoicePrefix string `yaml:"invoice_prefix" split_words:"true" validate:"required"`
}

type InvoiceConfig struct {
	// Days until invoice due
	DefaultDueDays int `yaml:"default_due_days" split_words:"true" validate:"gte=1"`
	// Initial list window: 30days, 90days, year or all
	DefaultDateFilter string `yaml:"default_date_filter" split_words:"true" validate:"oneof=30days 90days year all"`
}

type QuoteConfig struct {
	// Days until a quote expires
	ValidDays int `yaml:"valid_days" split_words:"true" validate:"gte=1"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
	// Path is the log file; empty logs to stderr
	Path string `yaml:"path"`
}

// DefaultConfigPath returns ~/.config/printdesk/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "printdesk")
	}
	return filepath.Join(homeDir, ".config", "printdesk")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Shop: ShopConfig{
			Name: "Print Shop",
		},
		Numbering: NumberingConfig{
			QuotePrefix:   "Q",
			InvoicePrefix: "INV",
		},
		Invoice: InvoiceConfig{
			DefaultDueDays:    14,
			DefaultDateFilter: "30days",
		},
		Quote: QuoteConfig{
			ValidDays: 30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Path:   filepath.Join(configDir(), "printdesk.log"),
		},
	}
}

// Load loads config from the given path, or starts from defaults if the file
// doesn't exist. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

var validate = validator.New()

// Validate checks that every setting holds a usable value
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the log directory
func (c *Config) EnsureDirectories() error {
	if c.Log.Path == "" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(c.Log.Path), 0755)
}
