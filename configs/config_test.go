package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{
		"BLOGLY_DATABASE_URL", "BLOGLY_DB_HOST", "BLOGLY_DB_PORT", "BLOGLY_DB_USER",
		"BLOGLY_DB_PASS", "BLOGLY_DB_NAME", "BLOGLY_DB_REPLICAS", "BLOGLY_DB_LOG_LEVEL",
		"BLOGLY_DB_MAX_OPEN_CONNS", "BLOGLY_DB_MAX_IDLE_CONNS", "BLOGLY_DB_CONN_MAX_LIFETIME",
		"BLOGLY_AUTO_MIGRATE", "OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "blogly", cfg.DBName)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 40, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxLifetime)
	assert.False(t, cfg.AutoMigrate)
	assert.Empty(t, cfg.ReplicaDSNs)
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=blogly sslmode=disable TimeZone=UTC",
		cfg.DSN())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("BLOGLY_DB_HOST", "db.internal")
	t.Setenv("BLOGLY_DB_NAME", "blogly_test")
	t.Setenv("BLOGLY_DB_REPLICAS", " postgres://r1/blogly , ,postgres://r2/blogly")
	t.Setenv("BLOGLY_DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("BLOGLY_DB_CONN_MAX_LIFETIME", "5m")
	t.Setenv("BLOGLY_AUTO_MIGRATE", "true")

	cfg := LoadConfig()

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 40, cfg.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
	assert.True(t, cfg.AutoMigrate)
	require.Equal(t, []string{"postgres://r1/blogly", "postgres://r2/blogly"}, cfg.ReplicaDSNs)
	assert.Contains(t, cfg.DSN(), "dbname=blogly_test")
}

func TestConfig_DatabaseURLWins(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://u:p@h:5432/db?sslmode=disable", DBHost: "ignored"}
	assert.Equal(t, "postgres://u:p@h:5432/db?sslmode=disable", cfg.DSN())
}
