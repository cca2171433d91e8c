package model

import "time"

// Match statuses as written by the upstream reconciliation pipeline.
const (
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
	StatusUnknown = "UNKNOWN"
)

// SKU is one physical inventory unit from the sku_master dataset.
// This is a pure domain model with no database-specific dependencies or tags.
type SKU struct {
	SKU           string     `json:"SKU"`
	MatchStatus   string     `json:"inv_match_status"`
	StockQty      *float64   `json:"stock_qty"`
	ErrGW         *float64   `json:"err_gw"`
	ErrCBM        *float64   `json:"err_cbm"`
	GW            *float64   `json:"GW"`
	CBM           *float64   `json:"CBM"`
	FinalLocation *string    `json:"Final_Location"`
	FlowCode      *int       `json:"flow_code"`
	FirstSeen     *time.Time `json:"first_seen"`
	LastSeen      *time.Time `json:"last_seen"`
	SQM           *float64   `json:"sku_sqm"`
	HVDCCode      *string    `json:"hvdc_code_norm"`
}

// Event is one observed movement of a SKU.
type Event struct {
	SKU            string    `json:"SKU"`
	StatusLocation *string   `json:"Status_Location"`
	FlowCode       *int      `json:"Flow_Code"`
	TS             time.Time `json:"ts"`
}

// Exception is the invoice-matching outcome for a SKU. There is at most one per SKU.
type Exception struct {
	SKU          string   `json:"SKU"`
	HVDCCode     *string  `json:"hvdc_code_norm"`
	InvoiceCode  *string  `json:"Invoice_RAW_CODE"`
	ErrGW        *float64 `json:"Err_GW"`
	ErrCBM       *float64 `json:"Err_CBM"`
	MatchStatus  *string  `json:"Match_Status"`
	GWSumPicked  *float64 `json:"GW_SumPicked"`
	CBMSumPicked *float64 `json:"CBM_SumPicked"`
}
