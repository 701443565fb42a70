// Package config loads tool configuration from a YAML file with
// STAMPEDE_* environment overrides. Load profiles declared here are
// validated eagerly so a malformed profile can never drive a run.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/stampede-dev/stampede/internal/loadshape"
)

// Config is the full tool configuration.
type Config struct {
	Target     TargetConfig                 `mapstructure:"target"`
	Engine     EngineConfig                 `mapstructure:"engine"`
	Exporter   ExporterConfig               `mapstructure:"exporter"`
	Log        LogConfig                    `mapstructure:"log"`
	HeaderSets map[string]map[string]string `mapstructure:"header_sets"`
	Schemas    map[string]string            `mapstructure:"schemas"`
	Profiles   map[string]ProfileConfig     `mapstructure:"profiles"`
}

// TargetConfig describes the system under test.
type TargetConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// EngineConfig locates the external load engine's web API.
type EngineConfig struct {
	URL string `mapstructure:"url"`
}

// ExporterConfig configures the Prometheus exporter.
type ExporterConfig struct {
	Listen       string        `mapstructure:"listen"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// LogConfig configures the logger.
type LogConfig struct {
	File    string `mapstructure:"file"`
	Verbose bool   `mapstructure:"verbose"`
}

// Load reads configuration from the given file (optional) and the
// environment, merges in the built-in profiles, and validates every
// declared profile.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("target.base_url", "")
	v.SetDefault("target.timeout", "30s")
	v.SetDefault("engine.url", "http://localhost:8089")
	v.SetDefault("exporter.listen", ":9646")
	v.SetDefault("exporter.poll_interval", "5s")
	v.SetDefault("log.file", "")
	v.SetDefault("log.verbose", false)

	v.SetEnvPrefix("STAMPEDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Built-in profiles fill in gaps; file-declared profiles win on
	// name conflicts.
	merged := BuiltinProfiles()
	for name, profile := range cfg.Profiles {
		merged[strings.ToUpper(name)] = profile
	}
	cfg.Profiles = merged

	for name, profile := range cfg.Profiles {
		if _, err := profile.Build(); err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
	}

	return cfg, nil
}

// Profile returns a named load profile, built and ready to sample.
func (c *Config) Profile(name string) (*loadshape.Profile, error) {
	profile, ok := c.Profiles[strings.ToUpper(name)]
	if !ok {
		return nil, fmt.Errorf("unknown profile: %s", name)
	}
	return profile.Build()
}

// ProfileNames returns the declared profile names.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	return names
}

// HeaderSet returns a named header set, or an error if undeclared.
func (c *Config) HeaderSet(name string) (map[string]string, error) {
	set, ok := c.HeaderSets[name]
	if !ok {
		return nil, fmt.Errorf("unknown header set: %s", name)
	}
	headers := make(map[string]string, len(set))
	for k, v := range set {
		headers[k] = v
	}
	return headers, nil
}
