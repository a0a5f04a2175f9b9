// Package config loads the server configuration from an optional YAML file
// and TASK_MANAGER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "TASK_MANAGER"

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the full server configuration.
type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Log      Log
	Seed     Seed
}

type Server struct {
	Host string
	Port int
}

// Addr is the listen address.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type Database struct {
	Driver string
	URL    string
}

type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type Log struct {
	Level  string
	Format string
}

// Seed controls the bootstrap data. Statuses are only seeded when
// Production is false.
type Seed struct {
	Enabled    bool
	Production bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.production", false)
}

// Load reads configuration. With an empty path it looks for config.yaml in
// the working directory and /etc/task-manager and carries on without one.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/task-manager")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Server: Server{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		Database: Database{
			Driver: v.GetString("database.driver"),
			URL:    v.GetString("database.url"),
		},
		Auth: Auth{
			JWTSecret: v.GetString("auth.jwt_secret"),
			TokenTTL:  v.GetDuration("auth.token_ttl"),
		},
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Seed: Seed{
			Enabled:    v.GetBool("seed.enabled"),
			Production: v.GetBool("seed.production"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("database.url is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}
