package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"recondash/internal/model"
	"recondash/internal/pivot"
	"recondash/internal/recon"
	"recondash/internal/repository"
)

var (
	// ErrDataUnavailable wraps every repository failure.
	ErrDataUnavailable = errors.New("data unavailable")
	ErrInvalidFilter   = errors.New("filter must be one of all, fail, pass")
)

// ThreeWayResult is the 3-way reconciliation view. The counts cover the full
// data set while Rows is capped.
type ThreeWayResult struct {
	Tolerance      int                 `json:"tolerance"`
	Rows           []model.ThreeWayRow `json:"rows"`
	TotalCount     int                 `json:"total_count"`
	FailCount      int                 `json:"fail_count"`
	PassCount      int                 `json:"pass_count"`
	DisplayedCount int                 `json:"displayed_count"`
}

type HeatmapResult struct {
	Rows      []model.HeatmapCell     `json:"rows"`
	Locations []model.LocationSummary `json:"locations"`
	Stats     model.HeatmapStats      `json:"stats"`
}

type CaseFlowResult struct {
	SKU          *string                      `json:"sku"`
	Rows         []model.FlowEvent            `json:"rows"`
	GroupedBySKU map[string][]model.FlowEvent `json:"grouped_by_sku"`
	Stats        model.FlowStats              `json:"stats"`
}

// ExceptionsResult carries stats over the unfiltered fetch and the rows
// matching Filter.
type ExceptionsResult struct {
	Filter        string               `json:"filter"`
	Rows          []model.ExceptionRow `json:"rows"`
	Stats         model.ExceptionStats `json:"stats"`
	FilteredCount int                  `json:"filtered_count"`
}

// ReconService serves the dashboard views.
type ReconService interface {
	KPI(ctx context.Context) (*model.KPI, error)

	// ThreeWay classifies every reconciled SKU against tolPct.
	ThreeWay(ctx context.Context, tolPct int) (*ThreeWayResult, error)

	Heatmap(ctx context.Context) (*HeatmapResult, error)

	// CaseFlow returns the event history of one SKU, or of all SKUs when sku is empty.
	CaseFlow(ctx context.Context, sku string) (*CaseFlowResult, error)

	// Exceptions returns mismatch candidates matching filter (all, fail or pass).
	Exceptions(ctx context.Context, filter string) (*ExceptionsResult, error)

	// Dashboard runs every view concurrently. A failing view never fails the whole.
	Dashboard(ctx context.Context, tolPct int) *Dashboard
}

type reconService struct {
	repo repository.ReconRepository
	log  *zap.Logger
}

// NewReconService constructs a new ReconService.
func NewReconService(repo repository.ReconRepository, log *zap.Logger) ReconService {
	if log == nil {
		log = zap.NewNop()
	}
	return &reconService{repo: repo, log: log.Named("service")}
}

func unavailable(view string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDataUnavailable, view, err)
}

func (s *reconService) KPI(ctx context.Context) (*model.KPI, error) {
	counts, err := s.repo.KPICounts(ctx)
	if err != nil {
		return nil, unavailable("kpi", err)
	}
	kpi := recon.KPI(counts)
	return &kpi, nil
}

func (s *reconService) ThreeWay(ctx context.Context, tolPct int) (*ThreeWayResult, error) {
	rows, err := s.repo.ThreeWay(ctx, repository.ThreeWayLimit)
	if err != nil {
		return nil, unavailable("3way", err)
	}
	totals, err := s.repo.ThreeWayTotals(ctx)
	if err != nil {
		return nil, unavailable("3way", err)
	}
	if rows == nil {
		rows = []model.ThreeWayRow{}
	}
	recon.Classify(rows, float64(tolPct))
	return &ThreeWayResult{
		Tolerance:      tolPct,
		Rows:           rows,
		TotalCount:     totals.Total,
		FailCount:      totals.Fail,
		PassCount:      totals.Pass,
		DisplayedCount: len(rows),
	}, nil
}

func (s *reconService) Heatmap(ctx context.Context) (*HeatmapResult, error) {
	cells, err := s.repo.Heatmap(ctx, repository.HeatmapLimit)
	if err != nil {
		return nil, unavailable("heatmap", err)
	}
	if cells == nil {
		cells = []model.HeatmapCell{}
	}
	return &HeatmapResult{
		Rows:      cells,
		Locations: pivot.SummarizeLocations(cells),
		Stats:     pivot.HeatmapStats(cells),
	}, nil
}

func (s *reconService) CaseFlow(ctx context.Context, sku string) (*CaseFlowResult, error) {
	events, err := s.repo.CaseFlow(ctx, sku, repository.CaseFlowLimit)
	if err != nil {
		return nil, unavailable("caseflow", err)
	}
	if events == nil {
		events = []model.FlowEvent{}
	}
	res := &CaseFlowResult{
		Rows:         events,
		GroupedBySKU: pivot.GroupFlows(events),
		Stats:        pivot.FlowStats(events),
	}
	if sku != "" {
		res.SKU = &sku
	}
	return res, nil
}

func (s *reconService) Exceptions(ctx context.Context, filter string) (*ExceptionsResult, error) {
	if filter == "" {
		filter = recon.FilterAll
	}
	if !recon.ValidFilter(filter) {
		return nil, ErrInvalidFilter
	}
	rows, err := s.repo.Exceptions(ctx, repository.ExceptionLimit)
	if err != nil {
		return nil, unavailable("exceptions", err)
	}
	filtered := recon.FilterExceptions(rows, filter)
	return &ExceptionsResult{
		Filter:        filter,
		Rows:          filtered,
		Stats:         recon.ExceptionStats(rows),
		FilteredCount: len(filtered),
	}, nil
}
