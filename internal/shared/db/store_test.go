package db

import (
	"testing"
	"time"

	"blogly/configs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLogLevel(t *testing.T) {
	cases := map[string]logger.LogLevel{
		"silent":  logger.Silent,
		" ERROR ": logger.Error,
		"info":    logger.Info,
		"warn":    logger.Warn,
		"":        logger.Warn,
		"verbose": logger.Warn,
	}
	for in, want := range cases {
		assert.Equal(t, want, logLevel(in), "level %q", in)
	}
}

func TestOpen_UnreachableFailsAfterRetries(t *testing.T) {
	cfg := &configs.Config{
		DatabaseURL: "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1",
		LogLevel:    "silent",
	}

	start := time.Now()
	store, err := Open(cfg, WithRetry(2, 10*time.Millisecond))
	require.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "db open")
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestOpenFromEnv_ReturnsConfigOnFailure(t *testing.T) {
	t.Setenv("BLOGLY_DATABASE_URL", "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1")
	t.Setenv("BLOGLY_DB_LOG_LEVEL", "silent")
	t.Setenv("BLOGLY_DB_REPLICAS", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	store, cfg, err := OpenFromEnv(WithRetry(1, 0))
	require.Error(t, err)
	assert.Nil(t, store)
	require.NotNil(t, cfg)
	assert.Contains(t, cfg.DatabaseURL, "127.0.0.1:1")
}
