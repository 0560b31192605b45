package main

import (
	"context"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/recent"
	"github.com/bantalo/reportcard/core/student"
	xlsxsvc "github.com/bantalo/reportcard/services/export/xlsx"
	logsvc "github.com/bantalo/reportcard/services/logger"
	"github.com/bantalo/reportcard/storage"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	appLogger := logsvc.NewRollbarLogger(logger, conf)
	appLogger.Enable(!conf.Debug)

	// set up storage
	stores, err := storage.Open(context.Background(), conf)
	errAndDie(err)

	// set up services
	translator := core.NewTranslator()
	validate := validator.New()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)
	cache := recent.NewCache(stores.KV, appLogger)
	svc := student.NewService(stores.Students, cache, validate, appLogger)

	// start CLI
	cli := commandLine{
		conf:     conf,
		out:      os.Stdout,
		stores:   stores,
		svc:      svc,
		recent:   cache,
		importer: xlsxsvc.NewImporter(svc, appLogger),
	}
	err = cli.run(os.Args)
	if cErr := stores.Close(); cErr != nil {
		logger.Printf("closing storage: %v", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
