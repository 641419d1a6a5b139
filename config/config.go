// Package config loads LinkPipe settings from an optional linkpipe.yaml,
// LINKPIPE_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Keys understood by Load. Command-line flags are bound to these.
const (
	KeyUserAgent    = "user_agent"
	KeyTimeout      = "timeout"
	KeyProbeMethod  = "probe_method"
	KeyMaxBodyBytes = "max_body_bytes"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
	KeyOutputDir    = "output_dir"
	KeyConcurrency  = "concurrency"
)

const envPrefix = "LINKPIPE"

// Config holds all configuration for the application.
type Config struct {
	UserAgent    string        `mapstructure:"user_agent"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ProbeMethod  string        `mapstructure:"probe_method"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	LogLevel     string        `mapstructure:"log_level"`
	LogFormat    string        `mapstructure:"log_format"`
	OutputDir    string        `mapstructure:"output_dir"`
	Concurrency  int           `mapstructure:"concurrency"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyUserAgent, "")
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyProbeMethod, http.MethodGet)
	v.SetDefault(KeyMaxBodyBytes, 5<<20)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyOutputDir, "")
	v.SetDefault(KeyConcurrency, 4)
}

// Load reads configuration into a Config. When configFile is empty,
// linkpipe.yaml is looked up in the working directory and in
// $HOME/.config/linkpipe, and a missing file is not an error.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("linkpipe")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/linkpipe")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
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

// Validate checks value ranges and normalizes the probe method and log
// format to their canonical case.
func (c *Config) Validate() error {
	c.ProbeMethod = strings.ToUpper(strings.TrimSpace(c.ProbeMethod))
	if c.ProbeMethod != http.MethodGet && c.ProbeMethod != http.MethodHead {
		return fmt.Errorf("%s must be GET or HEAD, got %q", KeyProbeMethod, c.ProbeMethod)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyTimeout, c.Timeout)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyMaxBodyBytes, c.MaxBodyBytes)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyConcurrency, c.Concurrency)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%s must be text or json, got %q", KeyLogFormat, c.LogFormat)
	}
	return nil
}
