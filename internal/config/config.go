// Package config loads runtime settings from defaults, an optional YAML
// file and PAUTA_* environment variables, in increasing precedence.
package config

// Config holds all runtime settings.
type Config struct {
	DBPath      string `mapstructure:"db_path" validate:"required"`
	UserID      string `mapstructure:"user_id" validate:"required"`
	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat   string `mapstructure:"log_format" validate:"required,oneof=text json"`
	LogUseCases bool   `mapstructure:"log_use_cases"`
	// Today pins the clock to a fixed date (YYYY-MM-DD). Empty means the
	// system clock.
	Today             string `mapstructure:"today" validate:"omitempty,datetime=2006-01-02"`
	ProjectionMaxDays int    `mapstructure:"projection_max_days" validate:"required,min=1,max=366"`
}
