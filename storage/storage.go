// Package storage opens the roster and key-value stores selected by the configuration.
package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/student"
	"github.com/bantalo/reportcard/storage/database"
	inmemdb "github.com/bantalo/reportcard/storage/database/inmem"
	sqlxrepos "github.com/bantalo/reportcard/storage/database/sqlx"
	rediskv "github.com/bantalo/reportcard/storage/kv/redis"
)

type Stores struct {
	Students student.Repository
	KV       core.KVStore
	DB       *sqlx.DB // nil with the memory engine

	closers []func() error
}

// Close releases the database and redis connections.
func (st *Stores) Close() error {
	var firstErr error
	for i := len(st.closers) - 1; i >= 0; i-- {
		if err := st.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Open sets up the stores: database.engine picks the roster store (memory, sqlite, postgres),
// kv.engine the store of the recent searches (memory, redis, sql).
// SQL databases are migrated to the latest version.
func Open(ctx context.Context, conf *core.Config) (*Stores, error) {
	st := new(Stores)
	var mem *inmemdb.DB

	switch conf.Database.Engine {
	case "", "memory":
		mem = inmemdb.Open()
		st.Students = inmemdb.NewStudentRepository(mem)
	default:
		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}
		st.DB = db
		st.closers = append(st.closers, db.Close)
		if err = database.Migrate(db); err != nil {
			_ = st.Close()
			return nil, err
		}
		st.Students = sqlxrepos.NewStudentRepository(db)
	}

	switch conf.KVEngine {
	case "", "memory":
		if mem == nil {
			mem = inmemdb.Open()
		}
		st.KV = inmemdb.NewKVStore(mem)
	case "redis":
		client, err := rediskv.Open(ctx, conf)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		st.closers = append(st.closers, client.Close)
		st.KV = rediskv.NewKVStore(client)
	case "sql":
		if st.DB == nil {
			return nil, errors.New("kv.engine sql needs a sql database.engine")
		}
		st.KV = sqlxrepos.NewKVStore(st.DB)
	default:
		_ = st.Close()
		return nil, errors.Errorf("unsupported kv engine %q", conf.KVEngine)
	}
	return st, nil
}
