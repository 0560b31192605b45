package main

import (
	"errors"

	"github.com/bantalo/reportcard/storage/database"
)

var runMigrationsFunc = database.RunMigrations // mockable

var errNoSQLDatabase = errors.New("migrate needs a sqlite or postgres database.engine")

func (cli *commandLine) migrate(args []string) error {
	if cli.stores.DB == nil {
		return errNoSQLDatabase
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return runMigrationsFunc(cli.stores.DB, args[0], arguments...)
}
