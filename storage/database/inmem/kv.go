package inmemdb

import (
	"context"

	"github.com/bantalo/reportcard/core"
)

type kvStore struct {
	db *kvTable
}

var _ core.KVStore = (*kvStore)(nil) // interface compliance check

func NewKVStore(db *DB) core.KVStore {
	return &kvStore{db: db.kv}
}

func (kv *kvStore) Get(_ context.Context, key string) (string, error) {
	kv.db.RLock()
	defer kv.db.RUnlock()

	if val, ok := kv.db.table[key]; ok {
		return val, nil
	}
	return "", core.ErrKeyNotFound
}

func (kv *kvStore) Set(_ context.Context, key, value string) error {
	kv.db.Lock()
	defer kv.db.Unlock()
	kv.db.table[key] = value
	return nil
}

// Delete is a no-op for missing keys.
func (kv *kvStore) Delete(_ context.Context, key string) error {
	kv.db.Lock()
	defer kv.db.Unlock()
	delete(kv.db.table, key)
	return nil
}
