// Package config loads gitout settings from defaults, an optional YAML file,
// GITOUT_* environment variables and command line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/thiagokokada/gitout/internal/git"
)

// Output formats understood by the CLI.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// EnvPrefix is prepended to every environment override, e.g. GITOUT_TIMEOUT.
const EnvPrefix = "GITOUT"

// Config holds all configuration options for gitout.
type Config struct {
	Git     string        `mapstructure:"git"`
	Dir     string        `mapstructure:"dir"`
	Timeout time.Duration `mapstructure:"timeout"`
	Format  string        `mapstructure:"format"`
	Verbose bool          `mapstructure:"verbose"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Git:    "git",
		Dir:    ".",
		Format: FormatJSON,
	}
}

// Validate checks the settings that can not be checked by their type alone.
func (c Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("format must be %q or %q, got %q", FormatJSON, FormatYAML, c.Format)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if strings.TrimSpace(c.Git) == "" {
		return errors.New("git executable must not be empty")
	}
	return nil
}

// GitConfig returns the settings the git client needs.
func (c Config) GitConfig() git.Config {
	return git.Config{Git: c.Git, Dir: c.Dir, Timeout: c.Timeout}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/gitout/gitout.yaml, falling back to
// the user config directory of the platform.
func DefaultConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		base = dir
	}
	return filepath.Join(base, "gitout", "gitout.yaml")
}

// New returns a viper instance with defaults and environment overrides
// registered. Flags are bound by the caller before Load.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("git", d.Git)
	v.SetDefault("dir", d.Dir)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("format", d.Format)
	v.SetDefault("verbose", d.Verbose)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path into v and decodes the result. An empty
// path looks for DefaultConfigPath and tolerates its absence; an explicit path
// must exist.
func Load(v *viper.Viper, path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if explicit || !isNotExist(err) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
