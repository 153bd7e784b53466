package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MaxUploadSize is the fixed ceiling for uploaded images (16 MiB),
// enforced before any parsing happens.
const MaxUploadSize = 16 << 20

// Config represents the application configuration
type Config struct {
	LogLevel    string `mapstructure:"log_level"`
	Environment string `mapstructure:"environment"`

	Server ServerConfig `mapstructure:"server"`
	Upload UploadConfig `mapstructure:"upload"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// UploadConfig represents upload limits
type UploadConfig struct {
	MaxSize int64 `mapstructure:"max_size"`
}

// New creates a new configuration with default values
func New() *Config {
	return &Config{
		LogLevel:    "info",
		Environment: "development",
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Upload: UploadConfig{
			MaxSize: MaxUploadSize,
		},
	}
}

// Load reads configuration from an optional file and GEOPHOTO_* environment
// variables on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	cfg := New()
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("environment", cfg.Environment)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)
	v.SetDefault("upload.max_size", cfg.Upload.MaxSize)

	v.SetEnvPrefix("GEOPHOTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
