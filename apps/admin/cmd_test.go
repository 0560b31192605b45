package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/recent"
	"github.com/bantalo/reportcard/core/student"
	xlsxsvc "github.com/bantalo/reportcard/services/export/xlsx"
	"github.com/bantalo/reportcard/storage"
	testutil "github.com/bantalo/reportcard/tests"
)

func setup(t *testing.T, engine string) (*commandLine, *bytes.Buffer) {
	conf := &core.Config{CurrentYear: "2568", Database: core.DatabaseConfig{Engine: engine}}
	if engine == "sqlite" {
		conf.Database.DSN = ":memory:"
	}
	stores, err := storage.Open(context.Background(), conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stores.Close() })

	logger := testutil.NewLogger()
	validate, _ := testutil.NewValidator()
	cache := recent.NewCache(stores.KV, logger)
	svc := student.NewService(stores.Students, cache, validate, logger)

	var out bytes.Buffer
	return &commandLine{
		conf:     conf,
		out:      &out,
		stores:   stores,
		svc:      svc,
		recent:   cache,
		importer: xlsxsvc.NewImporter(svc, logger),
	}, &out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    string
}

func runCLITests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
			case tt.wantErrStr != "":
				assert.EqualError(t, err, tt.wantErrStr)
			default:
				assert.NoError(t, err)
			}
			if tt.wantOut != "" {
				assert.Contains(t, out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, out := setup(t, "sqlite")

	origRunMigrations := runMigrationsFunc
	runMigrationsFunc = func(db *sqlx.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}
	defer func() { runMigrationsFunc = origRunMigrations }()

	runCLITests(t, cli, out, []cliTest{
		{name: "no command", args: []string{}, wantErr: errHelp},
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
	})
}

func Test_commandLine_migrate_memory(t *testing.T) {
	cli, out := setup(t, "memory")
	runCLITests(t, cli, out, []cliTest{
		{name: "no sql database", args: []string{"migrate", "up"}, wantErr: errNoSQLDatabase},
	})
}

func Test_commandLine_roster(t *testing.T) {
	cli, out := setup(t, "sqlite")

	runCLITests(t, cli, out, []cliTest{
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "search: no query", args: []string{"search"}, wantErr: errHelp},
		{name: "search: empty roster", args: []string{"search", "-q", "สมชาย"}, wantErrStr: `ไม่พบข้อมูลนักเรียน: "สมชาย" ในปีการศึกษา 2568`},
		{name: "nextid: no class", args: []string{"nextid"}, wantErr: errHelp},
		{name: "nextid: unknown class", args: []string{"nextid", "-class", "ม.1"}, wantErrStr: `unknown grade level "ม.1"`},
		{name: "nextid: empty cohort", args: []string{"nextid", "-class", "ป.1"}, wantOut: "101\n"},
		{name: "seed", args: []string{"seed"}, wantOut: "enrolled 103 อาหมัด สาและ"},
		{name: "nextid", args: []string{"nextid", "-class", "ป.1"}, wantOut: "104\n"},
		{name: "nextid: other year", args: []string{"nextid", "-class", "ป.1", "-year", "2567"}, wantOut: "101\n"},
		{name: "search", args: []string{"search", "-q", "สมหญิง"}, wantOut: "102 สมหญิง รักเรียน (ป.1) 1/2568"},
		{name: "search: suggestions", args: []string{"search", "-q", "สมหญง"}, wantOut: "did you mean: [สมหญิง รักเรียน]\n",
			wantErrStr: `ไม่พบข้อมูลนักเรียน: "สมหญง" ในปีการศึกษา 2568`},
		{name: "clearrecent", args: []string{"clearrecent"}},
	})

	list, err := cli.recent.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func Test_commandLine_import(t *testing.T) {
	cli, out := setup(t, "memory")

	f := excelize.NewFile()
	for i, line := range [][]interface{}{
		{"ชื่อ", "นามสกุล", "คณิตศาสตร์"},
		{"มานะ", "อดทน", 81},
		{"", "", ""},
		{"ชูใจ", "", 64},
	} {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		line := line
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &line))
	}
	path := filepath.Join(t.TempDir(), "roster.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	runCLITests(t, cli, out, []cliTest{
		{name: "no file", args: []string{"import", "-class", "ป.4"}, wantErr: errHelp},
		{name: "missing file", args: []string{"import", "-class", "ป.4", "-file", path + ".nope"}, wantErrStr: "opening roster: open " + path + ".nope: no such file or directory"},
		{name: "unknown class", args: []string{"import", "-class", "ม.4", "-file", path}, wantErrStr: `unknown grade level "ม.4"`},
		{name: "import", args: []string{"import", "-class", "ป.4", "-file", path}, wantOut: "enrolled 401 มานะ อดทน\nskipped line 4: invalid lastName\n"},
	})

	roster, err := cli.stores.Students.ListByYear(context.Background(), "2568")
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.True(t, strings.HasPrefix(roster[0].ID, "4"))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
