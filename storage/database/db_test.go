package database

import (
	"database/sql"
	"testing"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bantalo/reportcard/core"
)

func sqliteConfig() *core.Config {
	return &core.Config{Database: core.DatabaseConfig{Engine: "sqlite", DSN: ":memory:"}}
}

func TestOpen_unsupportedEngine(t *testing.T) {
	_, err := Open(&core.Config{Database: core.DatabaseConfig{Engine: "mongo"}})
	assert.EqualError(t, err, `unsupported database engine "mongo"`)
}

func TestMigrate(t *testing.T) {
	db, err := Open(sqliteConfig())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db)) // already up to date

	var tables []string
	require.NoError(t, db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('student', 'kv') ORDER BY name`))
	assert.Equal(t, []string{"kv", "student"}, tables)
}

func TestMigrate_failure(t *testing.T) {
	var command string
	gooseRunFunc = func(cmd string, _ *sql.DB, dir string, _ ...string) error {
		command = cmd + " " + dir
		return errors.New("boom")
	}
	defer func() { gooseRunFunc = goose.Run }()

	db, err := Open(sqliteConfig())
	require.NoError(t, err)
	defer db.Close()
	assert.EqualError(t, Migrate(db), "migrating database: boom")
	assert.Equal(t, "up migrations", command)
}

func TestRunMigrations_down(t *testing.T) {
	db, err := Open(sqliteConfig())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, RunMigrations(db, "down"))

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'kv'`))
	assert.Equal(t, 0, n)
}
