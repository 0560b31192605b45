package dig_container

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/bantalo/reportcard/apps/api/echo"
	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/analysis"
	"github.com/bantalo/reportcard/core/recent"
	"github.com/bantalo/reportcard/core/student"
	analysissvc "github.com/bantalo/reportcard/services/analysis"
	"github.com/bantalo/reportcard/services/analysis/gemini"
	xlsxsvc "github.com/bantalo/reportcard/services/export/xlsx"
	logsvc "github.com/bantalo/reportcard/services/logger"
	"github.com/bantalo/reportcard/storage"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newStores(conf *core.Config, loggerParam DBLoggerParam) (*storage.Stores, student.Repository, core.KVStore) {
	st, err := storage.Open(context.Background(), conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	return st, st.Students, st.KV
}

// newAnalyzer calls Gemini when an API key is configured, the console analyzer otherwise.
func newAnalyzer(conf *core.Config, logger core.Logger) analysis.Analyzer {
	if conf.Gemini.APIKey == "" {
		logger.Warn("no Gemini API key, analyses are written by the console analyzer")
		var out io.Writer = os.Stdout
		if !conf.Debug {
			out = io.Discard
		}
		return analysissvc.NewConsoleAnalyzer(out)
	}
	return gemini.NewService(conf)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)
	return validate
}

func newDeps(
	svc *student.Service,
	cache *recent.Cache,
	registry *analysis.Registry,
	importer *xlsxsvc.Importer,
	validate *validator.Validate,
	translator ut.Translator,
) *echoapi.Deps {
	return &echoapi.Deps{
		StudentSvc: svc,
		Recent:     cache,
		Analyses:   registry,
		Importer:   importer,
		Validate:   validate,
		Translator: translator,
	}
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStores))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(recent.NewCache))
	must(c.Provide(func(cache *recent.Cache) student.RecentSearches { return cache }))
	must(c.Provide(student.NewService))
	must(c.Provide(func(svc *student.Service) xlsxsvc.Enroller { return svc }))
	must(c.Provide(xlsxsvc.NewImporter))
	must(c.Provide(newAnalyzer))
	must(c.Provide(analysis.NewRegistry))
	must(c.Provide(newDeps))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
