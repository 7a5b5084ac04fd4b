// Package config loads mstnet's server configuration from an optional
// YAML file, with command-line flags overriding file values and
// built-in defaults underneath both, matching the
// flags-then-file-then-defaults precedence cmd/server/main.go wires up.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mode selects which concurrency core handles a SolveMST reply.
type Mode string

const (
	ModeLeaderFollowers Mode = "lf"
	ModePipeline        Mode = "pipeline"
)

// Config is the full set of server-tunable values.
type Config struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	LFWorkers       int    `yaml:"lf_workers"`
	PipelineStages  int    `yaml:"pipeline_stages"`
	DefaultMode     Mode   `yaml:"default_mode"`
	AdminAddr       string `yaml:"admin_addr"`
	LogLevel        string `yaml:"log_level"`
	LogFile         string `yaml:"log_file"`
}

// Default returns the built-in configuration used when no file is
// supplied and no flag overrides a field.
func Default() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           9000,
		LFWorkers:      4,
		PipelineStages: 5,
		DefaultMode:    ModeLeaderFollowers,
		AdminAddr:      ":8080",
		LogLevel:       "info",
	}
}

// Load reads path, if non-empty, and merges it over Default. A missing
// file at the default path is not an error; a missing file at an
// explicitly-requested path is.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ParseMode validates a --mode flag value.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLeaderFollowers, ModePipeline:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q, want %q or %q", s, ModeLeaderFollowers, ModePipeline)
	}
}
