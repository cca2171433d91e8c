// Package repository contains the read-only data access abstraction for
// reconciliation data. Implementations live in subpackages (e.g., sqlstore).
package repository

import (
	"context"

	"recondash/internal/model"
)

// Result-set caps. They bound response size and are not a completeness guarantee.
const (
	ThreeWayLimit  = 5000
	HeatmapLimit   = 10000
	CaseFlowLimit  = 10000
	ExceptionLimit = 1000
)

// ReconRepository runs the fixed aggregate queries behind every dashboard view.
// No business logic here: verdicts, ratios and groupings are derived by callers.
type ReconRepository interface {
	// KPICounts returns the raw counters of the KPI summary.
	KPICounts(ctx context.Context) (model.KPICounts, error)

	// ThreeWay returns up to limit rows ordered by descending absolute weight
	// error, then descending absolute volume error. Verdict fields are left empty.
	ThreeWay(ctx context.Context, limit int) ([]model.ThreeWayRow, error)

	// ThreeWayTotals counts every SKU, ignoring any cap.
	ThreeWayTotals(ctx context.Context) (model.ThreeWayTotals, error)

	// Heatmap returns per (location, month) totals ordered by location and month.
	Heatmap(ctx context.Context, limit int) ([]model.HeatmapCell, error)

	// CaseFlow returns events ordered by SKU then time. An empty sku means all SKUs.
	// Without an events dataset the events are reconstructed from first/last seen.
	CaseFlow(ctx context.Context, sku string, limit int) ([]model.FlowEvent, error)

	// Exceptions returns mismatch candidates ordered by descending absolute error.
	Exceptions(ctx context.Context, limit int) ([]model.ExceptionRow, error)

	// Capabilities reports which optional datasets are present.
	Capabilities(ctx context.Context) (model.Capabilities, error)
}
