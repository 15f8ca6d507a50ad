package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	cfg := &Config{}
	require.NoError(t, env.Parse(cfg))
	cfg.DB.Driver = DriverSQLite
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "5001", cfg.ServerPort)
	assert.Equal(t, 10*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, "products", cfg.Elastic.Index)
	assert.Equal(t, ":5001", cfg.Addr())
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/shop")
	t.Setenv("FEED_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 3*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.DB.Driver = "oracle" }},
		{"postgres without url", func(c *Config) { c.DB.Driver = DriverPostgres; c.DB.DatabaseURL = "" }},
		{"sqlite without path", func(c *Config) { c.DB.SQLitePath = "" }},
		{"no feed url", func(c *Config) { c.Feed.URL = "" }},
		{"zero timeout", func(c *Config) { c.Feed.Timeout = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Config{}
			c.DB.Driver = DriverSQLite
			c.DB.SQLitePath = "x.db"
			c.Feed.URL = "http://feed"
			c.Feed.Timeout = time.Second
			tc.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
