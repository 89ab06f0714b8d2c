// Package config loads the effective settings for a run from defaults,
// an optional config.yaml and LATENCYMON_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Output names the two CSV files a run produces.
type Output struct {
	Detailed string `mapstructure:"detailed"`
	Summary  string `mapstructure:"summary"`
}

// Config holds everything the engine and its front ends need. DatabaseURL
// and Interval only matter to the API binary: an empty DatabaseURL keeps run
// history in memory, and a zero Interval disables scheduled runs.
type Config struct {
	Samples        int           `mapstructure:"samples"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Concurrency    int           `mapstructure:"concurrency"`
	SpoofUserAgent bool          `mapstructure:"spoof_user_agent"`
	Targets        []string      `mapstructure:"targets"`
	Output         Output        `mapstructure:"output"`
	LogDir         string        `mapstructure:"log_dir"`
	Addr           string        `mapstructure:"addr"`
	DatabaseURL    string        `mapstructure:"database_url"`
	Interval       time.Duration `mapstructure:"interval"`
}

// Load builds a Config. When path is empty it searches for config.yaml in
// the working directory and ./configs; a missing file is not an error, the
// defaults cover every key. An explicit path that cannot be read is fatal.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("configs")
	}
	v.SetEnvPrefix("LATENCYMON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("samples", 3)
	v.SetDefault("timeout", "6s")
	v.SetDefault("concurrency", 6)
	v.SetDefault("spoof_user_agent", false)
	v.SetDefault("targets", []string{})
	v.SetDefault("output.detailed", "api_latency_detailed.csv")
	v.SetDefault("output.summary", "api_latency_summary.csv")
	v.SetDefault("log_dir", "logs")
	v.SetDefault("addr", "127.0.0.1:8080")
	v.SetDefault("database_url", "")
	v.SetDefault("interval", "0s")
}

// Validate rejects settings no run could use.
func (c *Config) Validate() error {
	if c.Samples < 1 {
		return fmt.Errorf("samples must be at least 1, got %d", c.Samples)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Output.Detailed == "" {
		return errors.New("output.detailed is required")
	}
	if c.Output.Summary == "" {
		return errors.New("output.summary is required")
	}
	if c.LogDir == "" {
		return errors.New("log_dir is required")
	}
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %s", c.Interval)
	}
	return nil
}
