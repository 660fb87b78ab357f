package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv は読み込み対象の環境変数を空にします
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "SERVER_PORT", "DATABASE_URL", "REDIS_URL", "JWT_SECRET_KEY",
		"KAFKA_BROKERS", "LIVE_DIFFICULTY", "LIVE_STATE_BACKEND", "LIVE_STATE_TTL",
		"SESSION_CREATED_AT_TOLERANCE", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "easy", cfg.Live.Difficulty)
	assert.Equal(t, LiveStateMemory, cfg.Live.StateBackend)
	assert.Equal(t, 120*time.Second, cfg.Session.CreatedAtTolerance)
	assert.False(t, cfg.AuthEnabled())
	assert.False(t, cfg.UsePostgres())
	assert.False(t, cfg.UseRedis())
	assert.False(t, cfg.UseKafka())
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
live:
  difficulty: hard
  state_ttl: 2h
kafka:
  brokers: [kafka-1:9092, kafka-2:9092]
session:
  created_at_tolerance: 30s
`), 0o600))

	clearEnv(t)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "hard", cfg.Live.Difficulty)
	assert.Equal(t, 2*time.Hour, cfg.Live.StateTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.UseKafka())
	assert.Equal(t, 30*time.Second, cfg.Session.CreatedAtTolerance)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Security.CORSOrigins)
}

func TestLoad_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "eighty")
	t.Setenv("LIVE_STATE_TTL", "forever")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")
	assert.Contains(t, err.Error(), "LIVE_STATE_TTL")
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"redis backend without url", func(c *Config) { c.Live.StateBackend = LiveStateRedis }},
		{"unknown backend", func(c *Config) { c.Live.StateBackend = "etcd" }},
		{"short secret", func(c *Config) { c.JWT.SecretKey = "short" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"blank difficulty", func(c *Config) { c.Live.Difficulty = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	cfg.Redis.URL = "redis://localhost:6379/0"
	cfg.Live.StateBackend = LiveStateRedis
	assert.NoError(t, cfg.Validate())
}
