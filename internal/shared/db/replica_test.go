package db_test

import (
	"context"
	"errors"
	"testing"

	"blogly/internal/shared/db"
	"blogly/internal/tag"
	"blogly/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sameDSN(dsn string) string { return dsn }

func TestStore_ReplicaAndTracingRegistered(t *testing.T) {
	store := testutil.OpenReplicatedStore(t, sameDSN, "localhost:4318")

	assert.Contains(t, store.Base.Config.Plugins, "gorm:db_resolver")
	assert.Contains(t, store.Base.Config.Plugins, "otelgorm")
}

func TestStore_WriteThenReadThroughReplica(t *testing.T) {
	ctx := context.Background()
	store := testutil.OpenReplicatedStore(t, sameDSN, "")

	require.NoError(t, store.Write(ctx).Create(&tag.Tag{Name: "pets"}).Error)

	var got []tag.Tag
	require.NoError(t, store.Read(ctx).Find(&got).Error)
	require.Len(t, got, 1)
	assert.Equal(t, "pets", got[0].Name)
}

func TestStore_ReadRoutesToReplica(t *testing.T) {
	ctx := context.Background()
	store := testutil.OpenReplicatedStore(t, testutil.LaggingReplicaDSN, "")

	require.NoError(t, store.Write(ctx).Create(&tag.Tag{Name: "pets"}).Error)

	var n int64
	require.NoError(t, store.Write(ctx).Model(&tag.Tag{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	var got []tag.Tag
	assert.Error(t, store.Read(ctx).Find(&got).Error, "reads should go to the replica, which has no tags table")
}

func TestStore_TransactionReadsOwnWrites(t *testing.T) {
	ctx := context.Background()
	store := testutil.OpenReplicatedStore(t, testutil.LaggingReplicaDSN, "")
	rollback := errors.New("rollback")

	err := store.Transaction(ctx, func(tx *db.Store) error {
		repo := tag.NewRepository(tx)
		created := &tag.Tag{Name: "pets"}
		require.NoError(t, repo.Create(ctx, created))

		// GetByID reads through Read; inside the unit of work it must stay
		// on the transaction instead of going to the replica.
		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "pets", got.Name)
		return rollback
	})
	assert.ErrorIs(t, err, rollback)

	var n int64
	require.NoError(t, store.Write(ctx).Model(&tag.Tag{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestOpenFromEnv(t *testing.T) {
	dsn := testutil.DSN(t)
	t.Setenv("BLOGLY_DATABASE_URL", dsn)
	t.Setenv("BLOGLY_DB_REPLICAS", "")
	t.Setenv("BLOGLY_DB_LOG_LEVEL", "silent")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("BLOGLY_AUTO_MIGRATE", "true")

	store, cfg, err := db.OpenFromEnv(db.WithRetry(3, 0))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	assert.Equal(t, dsn, cfg.DatabaseURL)
	assert.True(t, cfg.AutoMigrate)
	assert.NoError(t, store.Base.Exec("SELECT 1").Error)
}
