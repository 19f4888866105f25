// Package config loads the command line settings from a TOML file, the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
)

// Environment variables overriding the file.
const (
	EnvFile     = "CASHBOOK_FILE"
	EnvCurrency = "CASHBOOK_CURRENCY"
	EnvLogLevel = "CASHBOOK_LOG_LEVEL"
	EnvColor    = "CASHBOOK_COLOR"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the command line settings.
type Config struct {
	File     string `toml:"file" validate:"required"`
	Currency string `toml:"currency" validate:"required,max=8"`
	LogLevel string `toml:"log_level" validate:"oneof=debug info warn error"`
	Color    string `toml:"color" validate:"oneof=auto always never"`
	Columns  int    `toml:"columns" validate:"gte=40,lte=1000"`
	Colors   Colors `toml:"colors"`
}

// Colors overrides the report palette with "#rrggbb" values.
type Colors struct {
	Negative string `toml:"negative" validate:"omitempty,hexcolor"`
	Positive string `toml:"positive" validate:"omitempty,hexcolor"`
	Heading  string `toml:"heading" validate:"omitempty,hexcolor"`
	Category string `toml:"category" validate:"omitempty,hexcolor"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		File:     filepath.Join(dataHome(), "cashbook", "transactions.json"),
		Currency: "R$",
		LogLevel: "warn",
		Color:    ColorAuto,
		Columns:  80,
	}
}

// DefaultPath returns the config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "cashbook", "config.toml")
}

func dataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share")
	}
	return "."
}

// Load reads path over the defaults, then applies .env and environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		var file Config
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cfg.merge(&file)
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.File != "" {
		c.File = expandHome(o.File)
	}
	if o.Currency != "" {
		c.Currency = o.Currency
	}
	if o.LogLevel != "" {
		c.LogLevel = strings.ToLower(o.LogLevel)
	}
	if o.Color != "" {
		c.Color = strings.ToLower(o.Color)
	}
	if o.Columns != 0 {
		c.Columns = o.Columns
	}
	if o.Colors.Negative != "" {
		c.Colors.Negative = o.Colors.Negative
	}
	if o.Colors.Positive != "" {
		c.Colors.Positive = o.Colors.Positive
	}
	if o.Colors.Heading != "" {
		c.Colors.Heading = o.Colors.Heading
	}
	if o.Colors.Category != "" {
		c.Colors.Category = o.Colors.Category
	}
}

func (c *Config) applyEnv() {
	c.merge(&Config{
		File:     os.Getenv(EnvFile),
		Currency: os.Getenv(EnvCurrency),
		LogLevel: os.Getenv(EnvLogLevel),
		Color:    os.Getenv(EnvColor),
	})
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}

var validate = validator.New()

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %q fails %q", fieldName(fe.Namespace()), fmt.Sprint(fe.Value()), fe.Tag()))
	}
	return errors.New("invalid config: " + strings.Join(msgs, "; "))
}

// fieldName turns "Config.Colors.Negative" into "colors.negative".
func fieldName(ns string) string {
	_, rest, _ := strings.Cut(ns, ".")
	return strings.ToLower(rest)
}
