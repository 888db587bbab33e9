// Package testutil provides a migrated Postgres store for package tests.
// When PG_DSN points at a shared database, run packages with -p 1.
package testutil

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"blogly/configs"
	"blogly/internal/migrate"
	"blogly/internal/shared/db"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	containerOnce sync.Once
	containerDSN  string
	containerErr  error
)

// DSN returns PG_DSN, or the DSN of a throwaway postgres container when
// PG_DSN is unset. The test is skipped when neither is available.
func DSN(t *testing.T) string {
	t.Helper()
	if dsn := os.Getenv("PG_DSN"); dsn != "" {
		return dsn
	}
	return startContainer(t)
}

// LaggingReplicaDSN points at the same database as dsn but with a
// search_path that holds no tables, so every read routed through it fails
// with "relation does not exist".
func LaggingReplicaDSN(dsn string) string {
	if !strings.Contains(dsn, "://") {
		return dsn + " search_path=lagging_replica"
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&search_path=lagging_replica"
	}
	return dsn + "?search_path=lagging_replica"
}

// OpenStore returns a migrated store on DSN(t). It is destructive: the
// public schema is dropped and re-created before migrating.
func OpenStore(t *testing.T, opts ...db.Option) *db.Store {
	t.Helper()

	store := open(t, config(DSN(t)), opts...)

	ctx := context.Background()
	require.NoError(t, store.Write(ctx).Exec("DROP SCHEMA IF EXISTS public CASCADE").Error)
	require.NoError(t, store.Write(ctx).Exec("CREATE SCHEMA public").Error)
	require.NoError(t, migrate.AutoMigrateAll(ctx, store), "migrate")

	return store
}

// OpenReplicatedStore migrates like OpenStore, then returns a second store
// on the same database with one read replica at replica(dsn) and, when
// otlpEndpoint is set, query tracing.
func OpenReplicatedStore(t *testing.T, replica func(dsn string) string, otlpEndpoint string, opts ...db.Option) *db.Store {
	t.Helper()

	OpenStore(t)
	dsn := DSN(t)
	cfg := config(dsn)
	cfg.ReplicaDSNs = []string{replica(dsn)}
	cfg.OTLPEndpoint = otlpEndpoint
	return open(t, cfg, opts...)
}

func config(dsn string) *configs.Config {
	return &configs.Config{
		DatabaseURL:  dsn,
		LogLevel:     "silent",
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	}
}

func open(t *testing.T, cfg *configs.Config, opts ...db.Option) *db.Store {
	t.Helper()
	opts = append([]db.Option{db.WithRetry(3, 500*time.Millisecond)}, opts...)
	store, err := db.Open(cfg, opts...)
	require.NoError(t, err, "open store")
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// startContainer starts one container per test binary. It is not
// terminated explicitly; the testcontainers reaper removes it when the
// process exits.
func startContainer(t *testing.T) string {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	containerOnce.Do(func() {
		ctx := context.Background()
		c, err := postgres.Run(
			ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("blogly_test"),
			postgres.WithUsername("blogly"),
			postgres.WithPassword("blogly"),
			postgres.BasicWaitStrategies(),
		)
		if err != nil {
			containerErr = err
			return
		}
		containerDSN, containerErr = c.ConnectionString(ctx, "sslmode=disable")
	})
	require.NoError(t, containerErr, "start postgres container")
	return containerDSN
}
