package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName               string        `mapstructure:"app_name"`
	Env                   string        `mapstructure:"app_env"`
	LogLevel              string        `mapstructure:"log_level"`
	APIBaseURL            string        `mapstructure:"api_base_url"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	NotificationTTLMs     int64         `mapstructure:"notification_ttl_ms"`
	NotificationTTL       time.Duration `mapstructure:"-"`

	SettingsStore string `mapstructure:"settings_store"`
	SettingsPath  string `mapstructure:"settings_path"`
	SinksFile     string `mapstructure:"sinks_file"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "academy-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("api_base_url", "http://localhost:5000")
	v.SetDefault("request_timeout_seconds", 0)
	v.SetDefault("notification_ttl_ms", 5000)
	v.SetDefault("settings_store", "bbolt")
	v.SetDefault("settings_path", "./data/settings.db")
	v.SetDefault("sinks_file", "")

	v.SetEnvPrefix("academy")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}

	// zero leaves requests unbounded; a positive value is an explicit opt-in
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("invalid request_timeout_seconds (must not be negative)")
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second

	if c.NotificationTTLMs <= 0 {
		return fmt.Errorf("invalid notification_ttl_ms (must be positive milliseconds)")
	}
	c.NotificationTTL = time.Duration(c.NotificationTTLMs) * time.Millisecond

	c.SettingsStore = strings.ToLower(strings.TrimSpace(c.SettingsStore))
	c.SettingsPath = strings.TrimSpace(c.SettingsPath)
	c.SinksFile = strings.TrimSpace(c.SinksFile)
	return nil
}
