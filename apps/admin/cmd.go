package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/recent"
	"github.com/bantalo/reportcard/core/student"
	xlsxsvc "github.com/bantalo/reportcard/services/export/xlsx"
	"github.com/bantalo/reportcard/storage"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf     *core.Config
	out      io.Writer
	stores   *storage.Stores
	svc      *student.Service
	recent   *recent.Cache
	importer *xlsxsvc.Importer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose command (up, down, status, version...) on the sql database")
	fmt.Fprintln(cli.out, "  search -q QUERY [-year YEAR] - find a student by id or name")
	fmt.Fprintln(cli.out, "  nextid -class CLASS [-year YEAR] - preview the next id of a cohort")
	fmt.Fprintln(cli.out, "  import -file FILE.xlsx -class CLASS [-year YEAR] - enrol the students of a roster workbook")
	fmt.Fprintln(cli.out, "  seed [-year YEAR] - enrol a demo cohort")
	fmt.Fprintln(cli.out, "  clearrecent - forget the recent searches")
}

func (cli *commandLine) newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	year := fs.String("year", cli.conf.CurrentYear, "The academic year (B.E.).")
	return fs, year
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	searchCmd, searchYear := cli.newFlagSet("search")
	searchQuery := searchCmd.String("q", "", "The student id or name.")

	nextIDCmd, nextIDYear := cli.newFlagSet("nextid")
	nextIDClass := nextIDCmd.String("class", "", "The grade level, e.g. ป.1")

	importCmd, importYear := cli.newFlagSet("import")
	importFile := importCmd.String("file", "", "The roster workbook: first name, last name, then one column per subject.")
	importClass := importCmd.String("class", "", "The grade level, e.g. ป.1")

	seedCmd, seedYear := cli.newFlagSet("seed")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "search":
		if err := searchCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *searchQuery == "" {
			searchCmd.Usage()
			return errHelp
		}
		return cli.search(*searchQuery, *searchYear)
	case "nextid":
		if err := nextIDCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *nextIDClass == "" {
			nextIDCmd.Usage()
			return errHelp
		}
		return cli.nextID(*nextIDClass, *nextIDYear)
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *importFile == "" || *importClass == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importRoster(*importFile, *importClass, *importYear)
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.seed(*seedYear)
	case "clearrecent":
		return cli.clearRecent()
	default:
		cli.printUsage()
		return errHelp
	}
}
