package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string   `mapstructure:"PORT"`
	Env           string   `mapstructure:"ENV"`
	RedisAddr     string   `mapstructure:"REDIS_ADDR"`
	RedisPassword string   `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int      `mapstructure:"REDIS_DB"`
	SessionSecret string   `mapstructure:"SESSION_SECRET"`
	DefaultClinic string   `mapstructure:"DEFAULT_CLINIC"`
	CORSOrigins   []string `mapstructure:"CORS_ORIGINS"`

	TranscriptionEndpoint string `mapstructure:"TRANSCRIPTION_ENDPOINT"`
	TranscriptionAPIKey   string `mapstructure:"TRANSCRIPTION_API_KEY"`
	CompletionEndpoint    string `mapstructure:"COMPLETION_ENDPOINT"`
	CompletionAPIKey      string `mapstructure:"COMPLETION_API_KEY"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DEFAULT_CLINIC", "clinic1")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("REDIS_ADDR")
	v.BindEnv("REDIS_PASSWORD")
	v.BindEnv("REDIS_DB")
	v.BindEnv("SESSION_SECRET")
	v.BindEnv("DEFAULT_CLINIC")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("TRANSCRIPTION_ENDPOINT")
	v.BindEnv("TRANSCRIPTION_API_KEY")
	v.BindEnv("COMPLETION_ENDPOINT")
	v.BindEnv("COMPLETION_API_KEY")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Session tokens are
// signed with SESSION_SECRET, so production refuses to start without one.
// The transcription bridge is optional: when its endpoints are unset the
// dictation feature is disabled and doctors type notes by hand.
func (c *Config) Validate() error {
	if c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}
	if c.IsProduction() && c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required in production")
	}
	if c.TranscriptionEndpoint != "" && c.TranscriptionAPIKey == "" {
		return fmt.Errorf("TRANSCRIPTION_API_KEY is required when TRANSCRIPTION_ENDPOINT is set")
	}
	if c.CompletionEndpoint != "" && c.CompletionAPIKey == "" {
		return fmt.Errorf("COMPLETION_API_KEY is required when COMPLETION_ENDPOINT is set")
	}
	return nil
}
