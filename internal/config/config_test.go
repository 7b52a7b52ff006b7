package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MemoryDriverDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, DefaultUpstreamURL, cfg.Upstream.URL)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "store", cfg.Mongo.Database)
	assert.Equal(t, "products", cfg.Mongo.Collection)
	assert.Equal(t, []string{"*"}, cfg.Security.CORSOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("USER_NAME", "alice")
	t.Setenv("USER_PASS", "s3cret")
	t.Setenv("MONGO_HOST", "cluster0.example.net")
	t.Setenv("PORT", "8081")
	t.Setenv("REFRESH_INTERVAL", "5m")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "alice", cfg.Mongo.Username)
	assert.Equal(t, "s3cret", cfg.Mongo.Password)
	assert.Equal(t, "cluster0.example.net", cfg.Mongo.Host)
	assert.Equal(t, 5*time.Minute, cfg.Scheduler.Interval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSOrigins)
}

func TestLoad_YAMLFileBelowEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  driver: postgres
postgres:
  user: report
  host: db.local
  dbname: purchases
server:
  port: 9000
`), 0o600))

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "report", cfg.Postgres.User)
	assert.Equal(t, "db.local", cfg.Postgres.Host)
	assert.Equal(t, "5432", cfg.Postgres.Port)
	assert.Equal(t, 9100, cfg.Server.Port, "env wins over file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"memory ok", func(c *Config) { c.Store.Driver = "memory" }, false},
		{"unknown driver", func(c *Config) { c.Store.Driver = "redis" }, true},
		{"mongo without host or uri", func(c *Config) { c.Store.Driver = "mongo" }, true},
		{"mongo with uri", func(c *Config) {
			c.Store.Driver = "mongo"
			c.Mongo.URI = "mongodb://localhost:27017"
		}, false},
		{"mongo host without user", func(c *Config) {
			c.Store.Driver = "mongo"
			c.Mongo.Host = "cluster0.example.net"
		}, true},
		{"postgres incomplete", func(c *Config) {
			c.Store.Driver = "postgres"
			c.Postgres.User = "u"
		}, true},
		{"bad upstream url", func(c *Config) {
			c.Store.Driver = "memory"
			c.Upstream.URL = "not a url"
		}, true},
		{"bad port", func(c *Config) {
			c.Store.Driver = "memory"
			c.Server.Port = 0
		}, true},
		{"rate limit without window", func(c *Config) {
			c.Store.Driver = "memory"
			c.Security.RateLimitReqs = 10
			c.Security.RateLimitWindow = 0
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
