package echoapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/analysis"
	"github.com/bantalo/reportcard/core/recent"
	"github.com/bantalo/reportcard/core/report/document"
	"github.com/bantalo/reportcard/core/student"
	xlsxsvc "github.com/bantalo/reportcard/services/export/xlsx"
)

const (
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	yearOptionsLen = 5
)

type studentApi struct {
	conf     *core.Config
	svc      *student.Service
	recent   *recent.Cache
	analyses *analysis.Registry
	importer *xlsxsvc.Importer
}

func registerStudentAPI(g *echo.Group, conf *core.Config, deps *Deps) {
	api := studentApi{
		conf:     conf,
		svc:      deps.StudentSvc,
		recent:   deps.Recent,
		analyses: deps.Analyses,
		importer: deps.Importer,
	}

	g.GET("/catalogue", api.catalogue)
	g.GET("/search", api.search)
	g.GET("/recent", api.recentSearches)
	g.DELETE("/recent", api.clearRecentSearches)

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.GET("/next-id", api.nextID)
	sg.GET("/export", api.exportRoster)
	sg.POST("/import", api.importRoster)

	// detail endpoints
	dg := sg.Group("/:uid")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/report", api.report)
	dg.GET("/report/export", api.exportReport)
}

type (
	CatalogueResponse struct {
		GradeLevels []string                       `json:"gradeLevels"`
		Grades      map[string]student.GradeConfig `json:"grades"`
		Director    string                         `json:"director"`
		Years       []string                       `json:"years"`
		CurrentYear string                         `json:"currentYear"`
	}

	NextIDResponse struct {
		ID string `json:"id"`
	}
)

// year reads the academic year query param, defaulting to the current year.
func (api *studentApi) year(ctx echo.Context) string {
	if year := core.CleanString(ctx.QueryParam("year")); year != "" {
		return year
	}
	return api.conf.CurrentYear
}

// Handlers

func (api *studentApi) catalogue(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, CatalogueResponse{
		GradeLevels: student.DefaultCatalogue.GradeLevels(),
		Grades:      student.DefaultCatalogue.Grades,
		Director:    student.DefaultCatalogue.Director,
		Years:       student.YearOptions(api.conf.CurrentYear, yearOptionsLen),
		CurrentYear: api.conf.CurrentYear,
	})
}

func (api *studentApi) search(ctx echo.Context) error {
	s, err := api.svc.Search(ctx.Request().Context(), ctx.QueryParam("q"), api.year(ctx))
	if err != nil {
		return errors.Wrap(err, "searching student")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) recentSearches(ctx echo.Context) error {
	list, err := api.recent.Load(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading recent searches")
	}
	return ctx.JSON(http.StatusOK, list)
}

func (api *studentApi) clearRecentSearches(ctx echo.Context) error {
	if err := api.recent.Clear(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "clearing recent searches")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) query(ctx echo.Context) error {
	filter := new(student.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []student.Student{})
	}

	students, err := api.svc.Cohort(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}

	s, err := api.svc.Enroll(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "enrolling student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *studentApi) nextID(ctx echo.Context) error {
	class := core.CleanString(ctx.QueryParam("class"))
	if !student.DefaultCatalogue.HasGradeLevel(class) {
		return core.NewFieldError("class", "unknown grade level")
	}

	id, err := api.svc.NextID(ctx.Request().Context(), class, api.year(ctx))
	if err != nil {
		return errors.Wrap(err, "allocating id")
	}
	return ctx.JSON(http.StatusOK, NextIDResponse{ID: id})
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	s, err := api.svc.Get(ctx.Request().Context(), ctx.Param("uid"))
	if err != nil {
		return errors.Wrap(err, "retrieving student")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) update(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}

	s, err := api.svc.Update(ctx.Request().Context(), ctx.Param("uid"), data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	api.analyses.Forget(s.UID) // the analysis was about the old scores
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	uid := ctx.Param("uid")
	if err := api.svc.Delete(ctx.Request().Context(), uid); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	api.analyses.Forget(uid)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) report(ctx echo.Context) error {
	s, err := api.svc.Get(ctx.Request().Context(), ctx.Param("uid"))
	if err != nil {
		return errors.Wrap(err, "retrieving student")
	}
	return ctx.JSON(http.StatusOK, document.Build(s, api.conf.SchoolName))
}

func (api *studentApi) exportReport(ctx echo.Context) error {
	s, err := api.svc.Get(ctx.Request().Context(), ctx.Param("uid"))
	if err != nil {
		return errors.Wrap(err, "retrieving student")
	}

	var buf bytes.Buffer
	if err = xlsxsvc.WriteDocument(&buf, document.Build(s, api.conf.SchoolName)); err != nil {
		return errors.Wrap(err, "exporting report")
	}
	return attachment(ctx, fmt.Sprintf("report-%s-%s.xlsx", s.AcademicYear, s.ID), buf.Bytes())
}

func (api *studentApi) exportRoster(ctx echo.Context) error {
	filter := new(student.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	if filter.AcademicYear == "" {
		filter.AcademicYear = api.conf.CurrentYear
	}

	students, err := api.svc.Cohort(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}

	var buf bytes.Buffer
	if err = xlsxsvc.WriteRoster(&buf, students); err != nil {
		return errors.Wrap(err, "exporting roster")
	}
	return attachment(ctx, fmt.Sprintf("roster-%s.xlsx", filter.AcademicYear), buf.Bytes())
}

func (api *studentApi) importRoster(ctx echo.Context) error {
	class := core.CleanString(ctx.QueryParam("class"))
	if !student.DefaultCatalogue.HasGradeLevel(class) {
		return core.NewFieldError("class", "unknown grade level")
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewFieldError("file", "a roster workbook is required")
	}
	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening upload")
	}
	defer func() { _ = f.Close() }()

	res, err := api.importer.Import(ctx.Request().Context(), f, class, api.year(ctx))
	if err != nil {
		return errors.Wrap(err, "importing roster")
	}
	return ctx.JSON(http.StatusOK, res)
}

func attachment(ctx echo.Context, name string, data []byte) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return ctx.Blob(http.StatusOK, xlsxMIME, data)
}
