package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sadopc/chronoflow/internal/storage"
)

// Config defines application configuration.
type Config struct {
	DB      DBConfig      `yaml:"db"`
	Insight InsightConfig `yaml:"insight"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type InsightConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Load reads configuration from an optional YAML file and environment
// variables. Env values win over the file.
func Load() (Config, error) {
	dbPath, err := storage.DefaultPath()
	if err != nil {
		return Config{}, fmt.Errorf("resolve default db path: %w", err)
	}

	cfg := Config{
		DB: DBConfig{
			Path: dbPath,
		},
		Insight: InsightConfig{
			Model: "gemini-2.5-flash",
		},
	}

	if path := os.Getenv("CHRONOFLOW_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if path := os.Getenv("CHRONOFLOW_DB_PATH"); path != "" {
		cfg.DB.Path = path
	}
	if key := os.Getenv("CHRONOFLOW_API_KEY"); key != "" {
		cfg.Insight.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" && cfg.Insight.APIKey == "" {
		cfg.Insight.APIKey = key
	}
	if model := os.Getenv("CHRONOFLOW_INSIGHT_MODEL"); model != "" {
		cfg.Insight.Model = model
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
