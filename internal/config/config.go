// Package config loads settings for the API server and the web front end
// from the environment, optionally seeded by a .env file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/developia-II/feedback-collector/internal/logger"
)

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

var ErrMissingMongoURI = errors.New("MONGODB_URI is required")

type Config struct {
	Environment           Environment `mapstructure:"ENVIRONMENT"`
	LogLevel              string      `mapstructure:"LOG_LEVEL"`
	Port                  string      `mapstructure:"PORT"`
	FrontendURL           string      `mapstructure:"FRONTEND_URL"`
	StoreDriver           string      `mapstructure:"STORE_DRIVER"`
	MongoURI              string      `mapstructure:"MONGODB_URI"`
	DBName                string      `mapstructure:"DB_NAME"`
	RequestTimeoutSeconds int         `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	WebPort               string      `mapstructure:"WEB_PORT"`
	APIURL                string      `mapstructure:"API_URL"`

	dotenvLoaded bool
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// LoadServer loads the API server configuration. A missing store connection
// string is an error unless the in-memory store is selected.
func LoadServer() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.validateServer(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadWeb loads the web front end configuration.
func LoadWeb() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.validateCommon(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.APIURL == "" {
		return nil, errors.New("config validation failed: API_URL must not be empty")
	}
	return cfg, nil
}

func load() (*Config, error) {
	// Variables already in the process environment win over .env entries.
	dotenvErr := godotenv.Load()

	v := viper.New()
	v.SetDefault("ENVIRONMENT", string(EnvProduction))
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "5000")
	v.SetDefault("FRONTEND_URL", "*")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("DB_NAME", "feedback")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 10)
	v.SetDefault("WEB_PORT", "3000")
	v.SetDefault("API_URL", "http://localhost:5000/api/feedback")

	for _, key := range []string{
		"ENVIRONMENT", "LOG_LEVEL", "PORT", "FRONTEND_URL", "STORE_DRIVER",
		"MONGODB_URI", "DB_NAME", "REQUEST_TIMEOUT_SECONDS", "WEB_PORT", "API_URL",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}
	cfg.dotenvLoaded = dotenvErr == nil
	return &cfg, nil
}

// LoggerOptions maps the logging settings onto the logger package.
func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{Level: c.LogLevel, Environment: string(c.Environment)}
}

// LogSummary logs the effective settings with secrets masked. Call it after
// the logger is initialized from LoggerOptions.
func (c *Config) LogSummary() {
	log := logger.GetLogger()
	if !c.dotenvLoaded {
		log.Debug("No .env file found, using environment variables")
	}
	log.Infow("Configuration loaded",
		"environment", c.Environment,
		"log_level", c.LogLevel,
		"port", c.Port,
		"store_driver", c.StoreDriver,
		"db_name", c.DBName,
		"mongodb_uri", logger.MaskConnectionString(c.MongoURI),
	)
}

func (c *Config) validateCommon() error {
	switch c.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("invalid ENVIRONMENT %q", c.Environment)
	}
	if c.RequestTimeoutSeconds <= 0 {
		return errors.New("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

func (c *Config) validateServer() error {
	if err := c.validateCommon(); err != nil {
		return err
	}
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return ErrMissingMongoURI
		}
		if c.DBName == "" {
			return errors.New("DB_NAME must not be empty")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}
