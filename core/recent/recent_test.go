package recent_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bantalo/reportcard/core"
	. "github.com/bantalo/reportcard/core/recent"
	inmemdb "github.com/bantalo/reportcard/storage/database/inmem"
	testutil "github.com/bantalo/reportcard/tests"
)

func TestPush(t *testing.T) {
	tests := []struct {
		name string
		list []string
		push string
		want []string
	}{
		{"empty", nil, "A", []string{"A"}},
		{"front", []string{"A"}, "B", []string{"B", "A"}},
		{"already first", []string{"A", "B"}, "A", []string{"A", "B"}},
		{"moves to front", []string{"A", "B", "C"}, "C", []string{"C", "A", "B"}},
		{"evicts oldest", []string{"E", "D", "C", "B", "A"}, "F", []string{"F", "E", "D", "C", "B"}},
		{"full, already in", []string{"E", "D", "C", "B", "A"}, "A", []string{"A", "E", "D", "C", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Push(tt.list, tt.push))
		})
	}
}

func TestPush_idempotent(t *testing.T) {
	list := Push(Push([]string{"B", "C"}, "A"), "A")
	assert.Equal(t, []string{"A", "B", "C"}, list)
}

func TestPush_capacity(t *testing.T) {
	var list []string
	for _, name := range []string{"1", "2", "3", "4", "5", "6"} {
		list = Push(list, name)
	}
	assert.Len(t, list, Capacity)
	assert.NotContains(t, list, "1")
	assert.Equal(t, "6", list[0])
}

func TestPush_leavesInputUntouched(t *testing.T) {
	list := []string{"A", "B"}
	_ = Push(list, "B")
	assert.Equal(t, []string{"A", "B"}, list)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"absent", "", []string{}},
		{"empty", "[]", []string{}},
		{"list", `["สมชาย ใจดี","Nurul Huda"]`, []string{"สมชาย ใจดี", "Nurul Huda"}},
		{"not json", "{oops", []string{}},
		{"not a list", `{"a":1}`, []string{}},
		{"not strings", `[1,2]`, []string{}},
		{"null", "null", []string{}},
		{"duplicates", `["A","B","A"]`, []string{"A", "B"}},
		{"too long", `["1","2","3","4","5","6","7"]`, []string{"1", "2", "3", "4", "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.raw))
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	lists := [][]string{
		{},
		{"A"},
		{"สมชาย ใจดี", "สมหญิง รักเรียน", "Nurul \"Huda\"", "D", "E"},
	}
	for _, list := range lists {
		assert.Equal(t, list, Decode(Encode(list)))
	}
	assert.Equal(t, "[]", Encode(nil))
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	store := inmemdb.NewKVStore(inmemdb.Open())
	cache := NewCache(store, testutil.NewLogger())

	list, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, name := range []string{"A", "B", "A"} {
		_, err = cache.Push(ctx, name)
		require.NoError(t, err)
	}
	raw, err := store.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.Equal(t, `["A","B"]`, raw, "written through")

	require.NoError(t, cache.Clear(ctx))
	_, err = store.Get(ctx, StorageKey)
	assert.Equal(t, core.ErrKeyNotFound, errors.Cause(err))

	list, err = cache.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCache_malformedSlot(t *testing.T) {
	ctx := context.Background()
	store := inmemdb.NewKVStore(inmemdb.Open())
	require.NoError(t, store.Set(ctx, StorageKey, "not json"))
	cache := NewCache(store, testutil.NewLogger())

	list, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = cache.Push(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, list)
}
