package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"storefront"`
	ServerPort  string `env:"SERVER_PORT"  envDefault:"5001"`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT"   envDefault:"json"`

	DB struct {
		Driver      string `env:"DB_DRIVER"    envDefault:"sqlite"`
		DatabaseURL string `env:"DATABASE_URL"`
		SQLitePath  string `env:"SQLITE_PATH"  envDefault:"ecommerce.db"`
		Debug       bool   `env:"DB_DEBUG"`
	}

	Feed struct {
		URL            string        `env:"FEED_URL"              envDefault:"http://3.250.87.6:3000/freelancer/products"`
		Timeout        time.Duration `env:"FEED_TIMEOUT"          envDefault:"10s"`
		RefreshCron    string        `env:"FEED_REFRESH_CRON"`
		RefreshOnStart bool          `env:"FEED_REFRESH_ON_START"`
	}

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	Elastic struct {
		URL      string `env:"ES_URL"`
		User     string `env:"ES_USER"`
		Password string `env:"ES_PASSWORD"`
		Index    string `env:"ES_INDEX" envDefault:"products"`
	}
}

// Load reads .env when it exists and then the process environment.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	} else {
		log.Printf("notice: .env file not found, using system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.SQLitePath == "" {
			return fmt.Errorf("missing required env SQLITE_PATH")
		}
	case DriverPostgres:
		if c.DB.DatabaseURL == "" {
			return fmt.Errorf("missing required env DATABASE_URL")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.Feed.URL == "" {
		return fmt.Errorf("missing required env FEED_URL")
	}
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("FEED_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.ServerPort
}
