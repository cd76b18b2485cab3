// Package config holds the tunables helix-runner reads from its config file,
// the environment and command-line flags.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. HELIX_RUNNER_PASTE_DELAY_MS.
const EnvPrefix = "HELIX_RUNNER"

type Config struct {
	Debug     bool   `mapstructure:"debug"`
	LogFormat string `mapstructure:"log-format"`

	FocusAttempts     int `mapstructure:"focus-attempts"`
	ClipboardAttempts int `mapstructure:"clipboard-attempts"`
	PasteDelayMs      int `mapstructure:"paste-delay-ms"`
	SettleDelayMs     int `mapstructure:"settle-delay-ms"`
	ChangeDirDelayMs  int `mapstructure:"cd-delay-ms"`
	BufferSize        int `mapstructure:"buffer-size"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log-format", "text")
	v.SetDefault("focus-attempts", 3)
	v.SetDefault("clipboard-attempts", 10)
	v.SetDefault("paste-delay-ms", 50)
	v.SetDefault("settle-delay-ms", 300)
	v.SetDefault("cd-delay-ms", 100)
	v.SetDefault("buffer-size", 256)
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log format must be 'text' or 'json', got %q", c.LogFormat)
	}
	if c.FocusAttempts < 1 || c.FocusAttempts > 10 {
		return fmt.Errorf("focus attempts must be between 1 and 10, got %d", c.FocusAttempts)
	}
	if c.ClipboardAttempts < 1 || c.ClipboardAttempts > 100 {
		return fmt.Errorf("clipboard attempts must be between 1 and 100, got %d", c.ClipboardAttempts)
	}
	if c.PasteDelayMs < 0 || c.PasteDelayMs > 5000 {
		return fmt.Errorf("paste delay must be between 0 and 5000 ms, got %d", c.PasteDelayMs)
	}
	if c.SettleDelayMs < 0 || c.SettleDelayMs > 10000 {
		return fmt.Errorf("settle delay must be between 0 and 10000 ms, got %d", c.SettleDelayMs)
	}
	if c.ChangeDirDelayMs < 0 || c.ChangeDirDelayMs > 10000 {
		return fmt.Errorf("cd delay must be between 0 and 10000 ms, got %d", c.ChangeDirDelayMs)
	}
	if c.BufferSize < 16 || c.BufferSize > 32768 {
		return fmt.Errorf("buffer size must be between 16 and 32768, got %d", c.BufferSize)
	}
	return nil
}

func (c *Config) GetPasteDelay() time.Duration {
	return time.Duration(c.PasteDelayMs) * time.Millisecond
}

func (c *Config) GetSettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

func (c *Config) GetChangeDirDelay() time.Duration {
	return time.Duration(c.ChangeDirDelayMs) * time.Millisecond
}

// InitLogger logs to stderr, keeping stdout for window listings.
func InitLogger(cfg *Config) *slog.Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	if !cfg.Debug {
		// Discard logs outside debug mode
		return slog.New(slog.DiscardHandler)
	}

	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
