package model

import "time"

// Verdicts and tolerance classifications of a reconciled SKU.
const (
	VerdictPass = "PASS"
	VerdictFail = "FAIL"

	ToleranceWithin      = "WITHIN_TOLERANCE"
	ToleranceGWExceeded  = "GW_TOLERANCE_EXCEEDED"
	ToleranceCBMExceeded = "CBM_TOLERANCE_EXCEEDED"
)

// Case-flow event sources.
const (
	SourceEvent     = "event"
	SourceSimulated = "simulated"
)

// KPICounts are the raw counters the KPI query returns.
type KPICounts struct {
	Total      int
	Mismatched int
	FlowStages int
	WithStock  int
	WithSQM    int
	Locations  int
}

// KPI is the dashboard summary record.
type KPI struct {
	Total         int     `json:"total"`
	MismatchPct   float64 `json:"mismatch_pct"`
	FlowCoverage  float64 `json:"flow_coverage"`
	StockCoverage float64 `json:"stock_coverage"`
	SQMCoverage   float64 `json:"sqm_coverage"`
	LocationCount int     `json:"location_count"`
}

// ThreeWayRow is one SKU of the 3-way reconciliation view.
// Verdict and ToleranceStatus are derived after the row is read.
type ThreeWayRow struct {
	SKU             string   `json:"SKU"`
	MatchStatus     string   `json:"inv_match_status"`
	StockQty        *float64 `json:"stock_qty"`
	ErrGW           float64  `json:"err_gw"`
	ErrCBM          float64  `json:"err_cbm"`
	GW              *float64 `json:"GW"`
	CBM             *float64 `json:"CBM"`
	FinalLocation   *string  `json:"Final_Location"`
	FlowCode        *int     `json:"flow_code"`
	Verdict         string   `json:"verdict"`
	ToleranceStatus string   `json:"tolerance_status"`
}

// ThreeWayTotals counts the full, uncapped reconciliation set.
type ThreeWayTotals struct {
	Total int
	Fail  int
	Pass  int
}

// HeatmapCell is the stock/area total of one location in one month.
type HeatmapCell struct {
	Location string  `json:"loc"`
	Month    string  `json:"ym"`
	Stock    float64 `json:"stock"`
	SQM      float64 `json:"sqm"`
	SKUCount int     `json:"sku_count"`
}

// LocationSummary aggregates all heatmap cells of one location.
type LocationSummary struct {
	Location     string  `json:"loc"`
	ActiveMonths int     `json:"active_months"`
	TotalStock   float64 `json:"total_stock"`
	TotalSQM     float64 `json:"total_sqm"`
	AvgStock     float64 `json:"avg_stock"`
	AvgSQM       float64 `json:"avg_sqm"`
}

// HeatmapStats summarizes the whole heatmap.
type HeatmapStats struct {
	TotalStock      float64 `json:"total_stock"`
	TotalSQM        float64 `json:"total_sqm"`
	UniqueLocations int     `json:"unique_locations"`
	UniqueMonths    int     `json:"unique_months"`
	TotalRecords    int     `json:"total_records"`
}

// FlowEvent is one step of a SKU case flow, real or reconstructed.
type FlowEvent struct {
	SKU            string    `json:"SKU"`
	StatusLocation *string   `json:"Status_Location"`
	FlowCode       *int      `json:"Flow_Code"`
	TS             time.Time `json:"ts"`
	SourceType     string    `json:"source_type"`
}

// FlowStats summarizes a set of case flows.
type FlowStats struct {
	TotalEvents     int     `json:"total_events"`
	UniqueSKUs      int     `json:"unique_skus"`
	CompletedFlows  int     `json:"completed_flows"`
	AvgEventsPerSKU float64 `json:"avg_events_per_sku"`
}

// ExceptionRow is one mismatch candidate of the exceptions view.
type ExceptionRow struct {
	SKU          string  `json:"SKU"`
	HVDCCode     *string `json:"hvdc_code_norm"`
	InvoiceCode  *string `json:"Invoice_RAW_CODE"`
	ErrGW        float64 `json:"Err_GW"`
	ErrCBM       float64 `json:"Err_CBM"`
	MatchStatus  string  `json:"Match_Status"`
	GWSumPicked  float64 `json:"GW_SumPicked"`
	CBMSumPicked float64 `json:"CBM_SumPicked"`
}

// ExceptionStats is computed over the full fetched exception set.
type ExceptionStats struct {
	Total        int     `json:"total"`
	FailCount    int     `json:"fail_count"`
	PassCount    int     `json:"pass_count"`
	AvgAbsErrGW  float64 `json:"avg_abs_err_gw"`
	AvgAbsErrCBM float64 `json:"avg_abs_err_cbm"`
}

// Capabilities records which optional datasets a backend exposes.
type Capabilities struct {
	Events     bool `json:"events"`
	Exceptions bool `json:"exceptions"`
}
