package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port            int              `json:"port"`
	UsersFile       string           `json:"users_file"`
	ProductsFile    string           `json:"products_file"`
	JWTSecret       string           `json:"jwt_secret"`
	SessionTTLHours int              `json:"session_ttl_hours"`
	MaxSessions     int              `json:"max_sessions"`
	CodeTTLSeconds  int              `json:"code_ttl_seconds"`
	CORSOrigins     []string         `json:"cors_origins"`
	LogConfig       logger.LogConfig `json:"log_config"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.UsersFile == "" {
		return nil, fmt.Errorf("users_file is required")
	}
	if cfg.ProductsFile == "" {
		return nil, fmt.Errorf("products_file is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.SessionTTLHours == 0 {
		cfg.SessionTTLHours = 72
	}
	if cfg.MaxSessions == 0 {
		cfg.MaxSessions = 4096
	}
	if cfg.CodeTTLSeconds == 0 {
		cfg.CodeTTLSeconds = 300
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	return &cfg, nil
}
