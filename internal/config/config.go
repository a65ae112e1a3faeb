package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Env         string `mapstructure:"ENV"`
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	AdminKey    string `mapstructure:"ADMIN_KEY"`
	CORSAllowed string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
}

// Load reads .env when present and overlays process environment variables.
// An empty DATABASE_URL selects the in-memory store.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
