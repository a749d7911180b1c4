package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultDatabase is the Mongo database the original deployment used.
const DefaultDatabase = "patient_companion_assistant"

// Config holds everything the process needs at startup. Values come from an
// optional YAML file, then environment variables override field by field.
type Config struct {
	Addr   string       `yaml:"addr"`
	Mongo  MongoConfig  `yaml:"mongo"`
	Search SearchConfig `yaml:"search"`
}

// MongoConfig locates the document store.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// SearchConfig configures the completion relay. BaseURL and Model are
// optional; the relay falls back to the Perplexity defaults.
type SearchConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Load reads the config file at path (skipped when path is empty), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:  ":8080",
		Mongo: MongoConfig{Database: DefaultDatabase},
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	applyEnv(cfg)
	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("MONGODB_URI must be set")
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = DefaultDatabase
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("MONGODB_DATABASE"); v != "" {
		cfg.Mongo.Database = v
	}
	if v := os.Getenv("PERPLEXITY_API_KEY"); v != "" {
		cfg.Search.APIKey = v
	}
	if v := os.Getenv("PERPLEXITY_BASE_URL"); v != "" {
		cfg.Search.BaseURL = v
	}
	if v := os.Getenv("PERPLEXITY_MODEL"); v != "" {
		cfg.Search.Model = v
	}
}
