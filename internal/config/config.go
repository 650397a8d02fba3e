// Package config loads configuration from an optional YAML file and the
// environment. Environment variables win over file values.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// Port the HTTP server listens on.
	Port string `mapstructure:"port"`

	// AppEnv selects dev/production behavior (error details, pretty logs).
	AppEnv string `mapstructure:"app_env"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// DatabaseURL is a full DSN; when empty the DB block is assembled.
	DatabaseURL string `mapstructure:"database_url"`

	DB DBConfig `mapstructure:"db"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

func DefaultConfig() *Config {
	return &Config{
		Port:     "8080",
		AppEnv:   "development",
		LogLevel: "info",
		DB: DBConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "retail_sales",
			SSLMode: "disable",
		},
	}
}

// Load reads retailsales.yaml (or the given file) and the environment.
// A missing config file is not an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("retailsales")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"port", "app_env", "log_level", "database_url",
		"db.host", "db.port", "db.user", "db.password", "db.name", "db.sslmode",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

// DSN returns the Postgres connection string, preferring DATABASE_URL.
func (c *Config) DSN() string {
	if strings.TrimSpace(c.DatabaseURL) != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DB.Host, c.DB.User, c.DB.Password, c.DB.Name, c.DB.Port, c.DB.SSLMode)
}

// IsDev reports whether the process runs in development mode.
func (c *Config) IsDev() bool {
	env := strings.ToLower(c.AppEnv)
	return env == "" || env == "development" || env == "dev"
}
