package sched

import (
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml
type Config struct {
	Scale    int    `yaml:"scale"`     // 1000 (by default)
	TraceCSV string `yaml:"trace_csv"` // empty = no trace output
}

func defaultConfig() Config {
	return Config{
		Scale: 1000,
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// sanity clamps
	if cfg.Scale <= 0 {
		cfg.Scale = 1000
	}

	return cfg
}
