package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Token struct {
		Secret string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	LogLevel string
}

// Load reads config from environment (LINKBOARD_ prefix) and optional linkboard.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LINKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("linkboard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Token.Secret = v.GetString("token.secret")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.LogLevel = v.GetString("log.level")

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("LINKBOARD_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("LINKBOARD_DB_DSN is required")
	}
	// A missing secret must never silently fall back to signing with "".
	if cfg.Token.Secret == "" {
		return nil, fmt.Errorf("LINKBOARD_TOKEN_SECRET is required")
	}

	return cfg, nil
}
