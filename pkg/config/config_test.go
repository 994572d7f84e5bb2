package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DBDriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 3, cfg.Ledger.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.Ledger.LockTimeout)
	assert.False(t, cfg.Ledger.EnforceCapacity)
	assert.Equal(t, EventsDriverLog, cfg.Events.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("DB_DRIVER", "MEMORY")
	t.Setenv("LEDGER_ENFORCE_CAPACITY", "true")
	t.Setenv("LEDGER_MAX_RETRIES", "5")
	t.Setenv("LEDGER_LOCK_TIMEOUT_MS", "750")
	t.Setenv("EVENTS_DRIVER", "redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DBDriverMemory, cfg.DB.Driver)
	assert.True(t, cfg.Ledger.EnforceCapacity)
	assert.Equal(t, 5, cfg.Ledger.MaxRetries)
	assert.Equal(t, 750*time.Millisecond, cfg.Ledger.LockTimeout)
	assert.Equal(t, EventsDriverRedis, cfg.Events.Driver)
	assert.Equal(t, 2, cfg.Events.RedisDB)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")
	_, err := Load()
	assert.ErrorContains(t, err, "DB_DRIVER")
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/w", DBName: "stock", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fw@db:5432/stock?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otra"
	assert.Equal(t, "postgres://otra", c.ConnectionString())
}
