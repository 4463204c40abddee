package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines daemon configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	DB      DBConfig      `yaml:"db"`
	Log     LogConfig     `yaml:"log"`
	Insight InsightConfig `yaml:"insight"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Mode selects the surface: "http" serves the browser RPC endpoint,
	// "stdio" serves the MCP assistant instead.
	Mode string `yaml:"mode"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type InsightConfig struct {
	// Endpoint of an OpenAI-compatible completion API. Empty disables
	// generation; insights come from the rule-based fallback.
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 7393,
			Mode: "http",
		},
		DB: DBConfig{
			Path: "focusd.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("FOCUSD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("FOCUSD_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("FOCUSD_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FOCUSD_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("FOCUSD_SERVER_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}
	if dbPath := os.Getenv("FOCUSD_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("FOCUSD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if endpoint := os.Getenv("FOCUSD_INSIGHT_ENDPOINT"); endpoint != "" {
		cfg.Insight.Endpoint = endpoint
	}
	if key := os.Getenv("FOCUSD_INSIGHT_API_KEY"); key != "" {
		cfg.Insight.APIKey = key
	}
	if model := os.Getenv("FOCUSD_INSIGHT_MODEL"); model != "" {
		cfg.Insight.Model = model
	}

	if cfg.Server.Mode != "http" && cfg.Server.Mode != "stdio" {
		return Config{}, fmt.Errorf("invalid server mode %q (want http or stdio)", cfg.Server.Mode)
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
