package sqlxrepos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/recent"
	. "github.com/bantalo/reportcard/storage/database/sqlx"
	testutil "github.com/bantalo/reportcard/tests"
)

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore(openDB(t))

	_, err := store.Get(ctx, "slot")
	assert.Equal(t, core.ErrKeyNotFound, err)

	require.NoError(t, store.Set(ctx, "slot", "a"))
	require.NoError(t, store.Set(ctx, "slot", "b"))
	got, err := store.Get(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, "b", got)

	require.NoError(t, store.Delete(ctx, "slot"))
	require.NoError(t, store.Delete(ctx, "slot"))
	_, err = store.Get(ctx, "slot")
	assert.Equal(t, core.ErrKeyNotFound, err)
}

func TestKVStore_recentSearches(t *testing.T) {
	ctx := context.Background()
	cache := recent.NewCache(NewKVStore(openDB(t)), testutil.NewLogger())

	for _, name := range []string{"สมชาย ใจดี", "สมศรี ใจดี", "สมชาย ใจดี"} {
		_, err := cache.Push(ctx, name)
		require.NoError(t, err)
	}
	got, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"สมชาย ใจดี", "สมศรี ใจดี"}, got)
}
