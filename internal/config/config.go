package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrijs2005/csvdb/internal/cryptox"
	"github.com/dmitrijs2005/csvdb/internal/storage"
	"github.com/spf13/pflag"
)

// Config holds runtime settings for the csvdb shell.
type Config struct {
	RootDir         string `json:"root_dir" yaml:"root_dir"`
	LogLevel        string `json:"log_level" yaml:"log_level"`
	LogFormat       string `json:"log_format" yaml:"log_format"`
	PasswordHashing string `json:"password_hashing" yaml:"password_hashing"`
	MaxIDAttempts   int    `json:"max_id_attempts" yaml:"max_id_attempts"`
	Prompt          string `json:"prompt" yaml:"prompt"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RootDir = "."
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.PasswordHashing = cryptox.ModePlain
	c.MaxIDAttempts = storage.DefaultMaxIDAttempts
	c.Prompt = "csvdb"
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error

	if c.RootDir == "" {
		errs = append(errs, errors.New("root_dir must not be empty"))
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q: %w", c.LogLevel, err))
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format %q: must be text or json", c.LogFormat))
	}

	if _, err := cryptox.NewVerifier(c.PasswordHashing); err != nil {
		errs = append(errs, err)
	}

	if c.MaxIDAttempts <= 0 {
		errs = append(errs, fmt.Errorf("max_id_attempts must be positive, got %d", c.MaxIDAttempts))
	}

	return errors.Join(errs...)
}

// Load builds a Config by applying defaults, the config file, the
// environment and finally the flags set on fs. fs must have been prepared
// with RegisterFlags and parsed.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, err := fs.GetString(FlagConfig)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	if err := cfg.loadEnv(lookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.applyFlags(fs); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
