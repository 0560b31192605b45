package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/bantalo/reportcard/core"
)

var nowFunc = time.Now // mockable

type kvStore struct {
	db *sqlx.DB
}

var _ core.KVStore = (*kvStore)(nil) // interface compliance check

// NewKVStore keeps the slots in the kv table.
func NewKVStore(db *sqlx.DB) core.KVStore {
	return &kvStore{db: db}
}

func (store kvStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := store.db.GetContext(ctx, &value, store.db.Rebind(`SELECT value FROM kv WHERE slot = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", core.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "reading slot %q", key)
	}
	return value, nil
}

func (store kvStore) Set(ctx context.Context, key, value string) error {
	query := store.db.Rebind(`INSERT INTO kv (slot, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT (slot) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)
	if _, err := store.db.ExecContext(ctx, query, key, value, nowFunc().UTC()); err != nil {
		return errors.Wrapf(err, "writing slot %q", key)
	}
	return nil
}

func (store kvStore) Delete(ctx context.Context, key string) error {
	if _, err := store.db.ExecContext(ctx, store.db.Rebind(`DELETE FROM kv WHERE slot = ?`), key); err != nil {
		return errors.Wrapf(err, "deleting slot %q", key)
	}
	return nil
}
