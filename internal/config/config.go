package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the planner. Values are read by Viper
// from a config file or environment variables.
type Config struct {
	API APIConfig `mapstructure:"api"`
	Log LogConfig `mapstructure:"log"`
}

// APIConfig locates the remote plan store and carries the bearer credential
// issued by the auth collaborator.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment overrides: api.base_url -> API_BASE_URL, etc.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("api.base_url", "http://localhost:8000/api")
	viper.SetDefault("api.timeout", "15s")
	viper.SetDefault("log.level", "info")

	err = viper.ReadInConfig()
	// A missing config file is fine; env vars and defaults carry the day.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
