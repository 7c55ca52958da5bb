// designmecha-mes/config/config.go
package config

import (
	"log/slog"

	"github.com/spf13/viper"
)

// Settings holds everything the service reads from config.yaml or the
// environment (MES_* variables override the file).
type Settings struct {
	HTTPPort    string `mapstructure:"http_port"`
	DatabaseURL string `mapstructure:"database_url"`
	RedisAddr   string `mapstructure:"redis_addr"`
	JWTSecret   string `mapstructure:"jwt_secret"`
	ExportDir   string `mapstructure:"export_dir"`
}

var App Settings

// JwtKey is the HMAC key for operator tokens, derived from settings.
var JwtKey []byte

// Load reads config.yaml from the working directory and applies MES_*
// environment overrides. A missing file is fine: defaults plus environment
// are enough for development.
func Load() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("http_port", "8080")
	viper.SetDefault("database_url", "")
	viper.SetDefault("redis_addr", "")
	viper.SetDefault("jwt_secret", "")
	viper.SetDefault("export_dir", "uploads/exports")

	viper.SetEnvPrefix("mes")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("Failed to read config file", "error", err)
		}
	}

	if err := viper.Unmarshal(&App); err != nil {
		slog.Error("Failed to decode configuration", "error", err)
	}
	JwtKey = []byte(App.JWTSecret)
}
