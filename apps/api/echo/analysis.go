package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bantalo/reportcard/core/analysis"
	"github.com/bantalo/reportcard/core/student"
)

type analysisApi struct {
	svc      *student.Service
	analyses *analysis.Registry
}

func registerAnalysisAPI(g *echo.Group, deps *Deps) {
	api := analysisApi{svc: deps.StudentSvc, analyses: deps.Analyses}

	ag := g.Group("/students/:uid/analysis")
	ag.GET("", api.retrieve)
	ag.POST("", api.run)
	ag.DELETE("", api.reset)
}

// retrieve answers idle for a student never analyzed, without registering a requester.
func (api *analysisApi) retrieve(ctx echo.Context) error {
	s, err := api.svc.Get(ctx.Request().Context(), ctx.Param("uid"))
	if err != nil {
		return errors.Wrap(err, "retrieving student")
	}
	r, ok := api.analyses.Lookup(s.UID)
	if !ok {
		return ctx.JSON(http.StatusOK, analysis.Result{State: analysis.StateIdle})
	}
	return ctx.JSON(http.StatusOK, r.Result())
}

// run blocks until the analysis is done. A pending analysis answers 409, a failed one 502.
func (api *analysisApi) run(ctx echo.Context) error {
	s, err := api.svc.Get(ctx.Request().Context(), ctx.Param("uid"))
	if err != nil {
		return errors.Wrap(err, "retrieving student")
	}

	res, err := api.analyses.For(s.UID).Run(ctx.Request().Context(), s)
	if err != nil {
		return errors.Wrap(err, "analyzing student")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *analysisApi) reset(ctx echo.Context) error {
	s, err := api.svc.Get(ctx.Request().Context(), ctx.Param("uid"))
	if err != nil {
		return errors.Wrap(err, "retrieving student")
	}
	if r, ok := api.analyses.Lookup(s.UID); ok {
		if err = r.Reset(); err != nil {
			return errors.Wrap(err, "resetting analysis")
		}
	}
	return ctx.NoContent(http.StatusNoContent)
}
