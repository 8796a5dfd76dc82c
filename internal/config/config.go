// Package config provides configuration for the orchestrator.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Config holds the orchestrator configuration.
type Config struct {
	// Server settings
	HTTPPort int `koanf:"http_port"`

	// DataDir is the workspace directory holding state.json,
	// error-database.json and the knowledge notes.
	DataDir string `koanf:"data_dir"`

	// Automation defaults, overridable per startRun call.
	AutoResearchPrestep   bool `koanf:"auto_research_prestep"`
	EnableAutomationHooks bool `koanf:"enable_automation_hooks"`

	// Logging
	LogLevel string `koanf:"log_level"`
}

func defaults() Config {
	return Config{
		HTTPPort:              8118,
		DataDir:               ".specdev",
		AutoResearchPrestep:   true,
		EnableAutomationHooks: true,
		LogLevel:              "info",
	}
}

// Load reads configuration from an optional YAML file, then overrides with
// SPECDEV_-prefixed environment variables (SPECDEV_HTTP_PORT,
// SPECDEV_DATA_DIR, ...). A missing file is not an error.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err == nil {
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
			}
		}
	}

	if err := k.Load(env.Provider("SPECDEV_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SPECDEV_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid http_port %d", cfg.HTTPPort)
	}
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data_dir must not be empty")
	}
	return &cfg, nil
}
