package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/bantalo/reportcard/apps/api/echo"
	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/analysis"
	"github.com/bantalo/reportcard/core/recent"
	"github.com/bantalo/reportcard/core/student"
	analysissvc "github.com/bantalo/reportcard/services/analysis"
	xlsxsvc "github.com/bantalo/reportcard/services/export/xlsx"
	inmemdb "github.com/bantalo/reportcard/storage/database/inmem"
	testutil "github.com/bantalo/reportcard/tests"
)

var conf = &core.Config{
	AppName:     "ReportCard",
	SchoolName:  "โรงเรียนบ้านตะโละ",
	CurrentYear: "2568",
	TestMode:    true,
}

type app struct {
	*Server
	repo     student.Repository
	recent   *recent.Cache
	analyses *analysis.Registry
}

func setup(t *testing.T, analyzers ...analysis.Analyzer) app {
	// set up DB & repos
	db := inmemdb.Open()
	repo := inmemdb.NewStudentRepository(db)
	logger := testutil.NewLogger()
	cache := recent.NewCache(inmemdb.NewKVStore(db), logger)

	// set up services
	var analyzer analysis.Analyzer = analysissvc.NewConsoleAnalyzerMock()
	if len(analyzers) > 0 {
		analyzer = analyzers[0]
	}
	validate, translator := testutil.NewValidator()
	svc := student.NewService(repo, cache, validate, logger)

	// set up server
	analyses := analysis.NewRegistry(analyzer, conf, logger)
	server := NewServer(conf, logger, &Deps{
		StudentSvc: svc,
		Recent:     cache,
		Analyses:   analyses,
		Importer:   xlsxsvc.NewImporter(svc, logger),
		Validate:   validate,
		Translator: translator,
	})
	t.Cleanup(func() { _ = server.Shutdown(context.Background()) })
	return app{Server: server, repo: repo, recent: cache, analyses: analyses}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code)
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runTests(t *testing.T, a app, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			a.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
