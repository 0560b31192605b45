package database

import (
	"embed"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/bantalo/reportcard/core"
)

//go:embed migrations/*.sql
var migrations embed.FS

var gooseRunFunc = goose.Run // mockable

const defaultSQLiteDSN = "file:reportcard.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// engines maps database.engine to its database/sql driver and goose dialect.
var engines = map[string]struct{ driver, dialect string }{
	"postgres": {"postgres", "postgres"},
	"sqlite":   {"sqlite", "sqlite3"},
}

// Open connects to the configured SQL database (postgres or sqlite) and waits for it to be ready.
func Open(conf *core.Config) (*sqlx.DB, error) {
	engine, ok := engines[conf.Database.Engine]
	if !ok {
		return nil, errors.Errorf("unsupported database engine %q", conf.Database.Engine)
	}
	dsn := conf.Database.DSN
	if dsn == "" && conf.Database.Engine == "sqlite" {
		dsn = defaultSQLiteDSN
	}

	db, err := sqlx.Open(engine.driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if conf.Database.Engine == "sqlite" {
		db.SetMaxOpenConns(1) // one writer; keeps ":memory:" databases alive across queries
	}
	if err = ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// Migrate runs the embedded migrations up to the latest version.
func Migrate(db *sqlx.DB) error {
	return RunMigrations(db, "up")
}

// RunMigrations runs a goose command (up, down, status, version, redo...) against the embedded migrations.
func RunMigrations(db *sqlx.DB, command string, args ...string) error {
	dialect := db.DriverName()
	for _, engine := range engines {
		if engine.driver == db.DriverName() {
			dialect = engine.dialect
		}
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	if err := gooseRunFunc(command, db.DB, "migrations", args...); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
