package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSetAndGet(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	require.NoError(t, db.Set(ctx, "k1", []byte(`[1,2]`)))

	v, ok, err := db.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`[1,2]`), v)
}

func TestGet_Missing(t *testing.T) {
	db := openMemory(t)

	v, ok, err := db.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestSet_Overwrites(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	require.NoError(t, db.Set(ctx, "k", []byte("old")))
	require.NoError(t, db.Set(ctx, "k", []byte("new")))

	v, _, err := db.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", string(v))
}

func TestRemove(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	require.NoError(t, db.Set(ctx, "k", []byte("v")))
	require.NoError(t, db.Remove(ctx, "k"))
	require.NoError(t, db.Remove(ctx, "k"))

	_, ok, err := db.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slimtrack.db")
	ctx := context.Background()

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Set(ctx, "slimtrack_db_users", []byte(`[]`)))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	v, ok, err := db.Get(ctx, "slimtrack_db_users")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(v))
}
