package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`

	Database struct {
		Driver       string `mapstructure:"driver"`
		DSN          string `mapstructure:"dsn"`
		Path         string `mapstructure:"path"`
		MaxIdleConns int    `mapstructure:"max_idle_conns"`
		MaxOpenConns int    `mapstructure:"max_open_conns"`
	} `mapstructure:"database"`

	Cache struct {
		TTL  time.Duration `mapstructure:"ttl"`
		Path string        `mapstructure:"path"`
	} `mapstructure:"cache"`

	Media struct {
		Root string `mapstructure:"root"`
	} `mapstructure:"media"`

	Auth struct {
		Secret   string        `mapstructure:"secret"`
		TokenTTL time.Duration `mapstructure:"token_ttl"`
		Issuer   string        `mapstructure:"issuer"`
	} `mapstructure:"auth"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Pretty bool   `mapstructure:"pretty"`
	} `mapstructure:"logging"`
}

// Load reads configuration from an optional YAML file, a .env file and
// YATUBE_* environment variables, in increasing order of precedence.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("yatube")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/yatube.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)

	v.SetDefault("cache.ttl", 20*time.Second)
	v.SetDefault("cache.path", "")

	v.SetDefault("media.root", "data/media")

	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.issuer", "yatube")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.pretty", true)
}

func validate(cfg *Config) error {
	switch cfg.Database.Driver {
	case "sqlite":
		if cfg.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
	case "postgres":
		if cfg.Database.DSN == "" {
			return fmt.Errorf("database dsn is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	if cfg.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive")
	}
	if cfg.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth token ttl must be positive")
	}
	return nil
}
