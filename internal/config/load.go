package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "PAUTA"

var keys = []string{
	"db_path", "user_id", "log_level", "log_format",
	"log_use_cases", "today", "projection_max_days",
}

// DefaultDir is the directory holding the database and config file.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pauta"
	}
	return filepath.Join(home, ".pauta")
}

// Load reads the configuration. When configPath is empty the file
// config.yaml in DefaultDir is used if present; an explicit path must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("db_path", filepath.Join(DefaultDir(), "pauta.db"))
	v.SetDefault("user_id", "default")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_use_cases", false)
	v.SetDefault("today", "")
	v.SetDefault("projection_max_days", 92)

	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(DefaultDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}
