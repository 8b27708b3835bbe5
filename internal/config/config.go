// Package config provides configuration types and defaults for sabun.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/sprite-ai/sabun/internal/log"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds all configuration options for sabun.
type Config struct {
	Context        int    `mapstructure:"context"`         // unchanged lines around each change
	PagerThreshold int    `mapstructure:"pager_threshold"` // page only when there are more records than this
	Pager          bool   `mapstructure:"pager"`           // allow the interactive pager at all
	Color          string `mapstructure:"color"`           // "auto", "always" or "never"
	LineNumbers    bool   `mapstructure:"line_numbers"`    // line number gutter in direct output
	LogLevel       string `mapstructure:"log_level"`       // minimum level written to the debug log
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Context:        3,
		PagerThreshold: 20,
		Pager:          true,
		Color:          ColorAuto,
		LineNumbers:    false,
		LogLevel:       "debug",
	}
}

// Load reads configuration into v and returns the result. An explicit path must exist;
// otherwise the user config file is read when present. SABUN_* environment variables
// override file values, and flags bound to v override both.
func Load(v *viper.Viper, path string) (Config, error) {
	defaults := Defaults()
	v.SetDefault("context", defaults.Context)
	v.SetDefault("pager_threshold", defaults.PagerThreshold)
	v.SetDefault("pager", defaults.Pager)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("line_numbers", defaults.LineNumbers)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix("sabun")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if dir := userConfigDir(); dir != "" {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}
	if used := v.ConfigFileUsed(); used != "" {
		log.Debug(log.CatConfig, "loaded config file", "path", used)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Context < 0 {
		return fmt.Errorf("invalid context %d: must not be negative", c.Context)
	}
	if c.PagerThreshold < 0 {
		return fmt.Errorf("invalid pager_threshold %d: must not be negative", c.PagerThreshold)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q: want auto, always or never", c.Color)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// userConfigDir is $XDG_CONFIG_HOME/sabun, falling back to ~/.config/sabun.
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sabun")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sabun")
}
