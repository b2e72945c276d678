package database

import (
	"context"
	"testing"
	"time"

	"dinelt/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "postgres",
		Password:        "secret",
		Database:        "dinelt",
		MaxConnections:  20,
		MinConnections:  2,
		MaxConnLifetime: 600,
		MaxConnIdleTime: 120,
	}
}

func TestPoolConfig(t *testing.T) {
	cfg, err := poolConfig(testDatabaseConfig())
	require.NoError(t, err)

	assert.EqualValues(t, 20, cfg.MaxConns)
	assert.EqualValues(t, 2, cfg.MinConns)
	assert.Equal(t, 10*time.Minute, cfg.MaxConnLifetime)
	assert.Equal(t, 2*time.Minute, cfg.MaxConnIdleTime)
	assert.Equal(t, time.Minute, cfg.HealthCheckPeriod)
	assert.Equal(t, "dinelt", cfg.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, "dinelt", cfg.ConnConfig.Database)
}

func TestPoolConfig_KeepsDefaultIdleTime(t *testing.T) {
	dbCfg := testDatabaseConfig()
	dbCfg.MaxConnIdleTime = 0

	cfg, err := poolConfig(dbCfg)
	require.NoError(t, err)
	assert.Positive(t, cfg.MaxConnIdleTime)
}

func TestNewPool_GivesUpWhenUnreachable(t *testing.T) {
	dbCfg := testDatabaseConfig()
	// Nothing listens on port 1.
	dbCfg.Port = 1
	dbCfg.ConnectRetries = 1

	start := time.Now()
	pool, err := NewPool(context.Background(), dbCfg, zerolog.Nop())

	assert.Nil(t, pool)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.GreaterOrEqual(t, time.Since(start), firstRetryDelay)
}

func TestNewPool_StopsOnCancel(t *testing.T) {
	dbCfg := testDatabaseConfig()
	dbCfg.Port = 1
	dbCfg.ConnectRetries = 100

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	pool, err := NewPool(ctx, dbCfg, zerolog.Nop())

	assert.Nil(t, pool)
	require.Error(t, err)
}
