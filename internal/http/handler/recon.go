package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"recondash/internal/config"
	"recondash/internal/model"
	"recondash/internal/pivot"
	"recondash/internal/service"
	"recondash/internal/view"
)

// ExceptionDisplayLimit caps exception rows when no page is requested.
const ExceptionDisplayLimit = 100

var errTolerance = fmt.Errorf("tol must be an integer between 0 and %d", config.MaxTolerancePct)

// tolerance parses the tol query value, falling back to def when empty.
func tolerance(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	tol, err := strconv.Atoi(raw)
	if err != nil || tol < 0 || tol > config.MaxTolerancePct {
		return 0, errTolerance
	}
	return tol, nil
}

type threeWayResponse struct {
	service.ThreeWayResult
	FilteredCount int       `json:"filtered_count"`
	Page          *pageInfo `json:"page,omitempty"`
}

type heatmapResponse struct {
	service.HeatmapResult
	FilteredCount int                `json:"filtered_count"`
	Page          *pageInfo          `json:"page,omitempty"`
	Grid          *pivot.HeatmapGrid `json:"grid,omitempty"`
}

type caseFlowResponse struct {
	service.CaseFlowResult
	FilteredCount int       `json:"filtered_count"`
	Page          *pageInfo `json:"page,omitempty"`
}

type exceptionsResponse struct {
	service.ExceptionsResult
	DisplayedCount int       `json:"displayed_count"`
	Page           *pageInfo `json:"page,omitempty"`
}

// KPI returns the dashboard summary ratios.
//
// @Summary KPI summary
// @Tags recon
// @Produce json
// @Success 200 {object} model.KPI
// @Failure 500 {object} errorPayload
// @Router /api/kpi [get]
func KPI(svc service.ReconService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.KPI(c.UserContext())
		if err != nil {
			return fetchFailed(c, log, "KPI", err)
		}
		return c.JSON(res)
	}
}

// ThreeWay returns the reconciliation rows classified at the requested tolerance.
//
// @Summary 3-way reconciliation
// @Tags recon
// @Produce json,text/csv
// @Param tol query int false "tolerance percentage (0-50)"
// @Param q query string false "search text"
// @Param sort query string false "sort column"
// @Param dir query string false "asc or desc"
// @Param page query int false "1-based page"
// @Param page_size query int false "rows per page"
// @Param format query string false "json or csv"
// @Success 200 {object} threeWayResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/3way [get]
func ThreeWay(svc service.ReconService, defaultTol int, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tol, err := tolerance(c.Query("tol"), defaultTol)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_TOLERANCE", err.Error())
		}
		p, err := tableParams(c)
		if err != nil {
			return badParams(c, err)
		}

		res, err := svc.ThreeWay(c.UserContext(), tol)
		if err != nil {
			return fetchFailed(c, log, "3-way reconciliation", err)
		}
		l, err := view.Apply(res.Rows, view.ThreeWayColumns, p)
		if err != nil {
			return badParams(c, err)
		}
		if p.Format == view.FormatCSV {
			return sendCSV(c, "3way.csv", l.Rows, view.ThreeWayColumns)
		}

		out := threeWayResponse{ThreeWayResult: *res, FilteredCount: l.FilteredCount, Page: pageOf(l.Page)}
		out.Rows = l.Rows
		return c.JSON(out)
	}
}

// Heatmap returns location by month stock and area totals.
//
// @Summary Location heatmap
// @Tags recon
// @Produce json,text/csv
// @Param layout query string false "grid adds the location by month matrix"
// @Param q query string false "search text"
// @Param sort query string false "sort column"
// @Param dir query string false "asc or desc"
// @Param page query int false "1-based page"
// @Param page_size query int false "rows per page"
// @Param format query string false "json or csv"
// @Success 200 {object} heatmapResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/heatmap [get]
func Heatmap(svc service.ReconService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		layout := c.Query("layout")
		if layout != "" && layout != "grid" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LAYOUT", "layout must be grid or empty")
		}
		p, err := tableParams(c)
		if err != nil {
			return badParams(c, err)
		}

		res, err := svc.Heatmap(c.UserContext())
		if err != nil {
			return fetchFailed(c, log, "heatmap", err)
		}
		l, err := view.Apply(res.Rows, view.HeatmapColumns, p)
		if err != nil {
			return badParams(c, err)
		}
		if p.Format == view.FormatCSV {
			return sendCSV(c, "heatmap.csv", l.Rows, view.HeatmapColumns)
		}

		out := heatmapResponse{HeatmapResult: *res, FilteredCount: l.FilteredCount, Page: pageOf(l.Page)}
		out.Rows = l.Rows
		if layout == "grid" {
			g := pivot.Grid(res.Rows)
			out.Grid = &g
		}
		return c.JSON(out)
	}
}

// CaseFlow returns the event history of one SKU or of every SKU.
//
// @Summary Case flow
// @Tags recon
// @Produce json,text/csv
// @Param sku query string false "SKU filter"
// @Param q query string false "search text"
// @Param sort query string false "sort column"
// @Param dir query string false "asc or desc"
// @Param page query int false "1-based page"
// @Param page_size query int false "rows per page"
// @Param format query string false "json or csv"
// @Success 200 {object} caseFlowResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/caseflow [get]
func CaseFlow(svc service.ReconService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := tableParams(c)
		if err != nil {
			return badParams(c, err)
		}

		res, err := svc.CaseFlow(c.UserContext(), c.Query("sku"))
		if err != nil {
			return fetchFailed(c, log, "case flow", err)
		}
		l, err := view.Apply(res.Rows, view.FlowColumns, p)
		if err != nil {
			return badParams(c, err)
		}
		if p.Format == view.FormatCSV {
			return sendCSV(c, "caseflow.csv", l.Rows, view.FlowColumns)
		}

		out := caseFlowResponse{CaseFlowResult: *res, FilteredCount: l.FilteredCount, Page: pageOf(l.Page)}
		out.Rows = l.Rows
		return c.JSON(out)
	}
}

// Exceptions returns mismatch candidates. Without page params at most
// ExceptionDisplayLimit rows are returned; stats always cover the full fetch.
//
// @Summary Exceptions
// @Tags recon
// @Produce json,text/csv
// @Param filter query string false "all, fail or pass"
// @Param q query string false "search text"
// @Param sort query string false "sort column"
// @Param dir query string false "asc or desc"
// @Param page query int false "1-based page"
// @Param page_size query int false "rows per page"
// @Param format query string false "json or csv"
// @Success 200 {object} exceptionsResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/exceptions [get]
func Exceptions(svc service.ReconService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := tableParams(c)
		if err != nil {
			return badParams(c, err)
		}

		res, err := svc.Exceptions(c.UserContext(), c.Query("filter"))
		if errors.Is(err, service.ErrInvalidFilter) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", err.Error())
		}
		if err != nil {
			return fetchFailed(c, log, "exceptions", err)
		}
		l, err := view.Apply(res.Rows, view.ExceptionColumns, p)
		if err != nil {
			return badParams(c, err)
		}
		if p.Format == view.FormatCSV {
			return sendCSV(c, "exceptions.csv", l.Rows, view.ExceptionColumns)
		}

		rows := l.Rows
		if l.Page == nil && len(rows) > ExceptionDisplayLimit {
			rows = rows[:ExceptionDisplayLimit]
		}
		out := exceptionsResponse{ExceptionsResult: *res, DisplayedCount: len(rows), Page: pageOf(l.Page)}
		out.Rows = rows
		out.FilteredCount = l.FilteredCount
		return c.JSON(out)
	}
}

// Dashboard returns every view at once. Each section carries its data or an error.
//
// @Summary Whole dashboard
// @Tags recon
// @Produce json
// @Param tol query int false "tolerance percentage (0-50)"
// @Success 200 {object} service.Dashboard
// @Failure 400 {object} errorPayload
// @Router /api/dashboard [get]
func Dashboard(svc service.ReconService, defaultTol int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tol, err := tolerance(c.Query("tol"), defaultTol)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_TOLERANCE", err.Error())
		}
		return c.JSON(svc.Dashboard(c.UserContext(), tol))
	}
}

// FlowStages lists the lifecycle stages.
//
// @Summary Flow stage catalogue
// @Tags recon
// @Produce json
// @Success 200 {array} model.FlowStage
// @Router /api/flow-stages [get]
func FlowStages() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(model.FlowStages)
	}
}
