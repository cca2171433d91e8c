// Package view binds the dashboard row types to the generic table.
package view

import (
	"recondash/internal/model"
	"recondash/internal/table"
)

// ThreeWayColumns are the columns of the reconciliation table.
var ThreeWayColumns = []table.Column[model.ThreeWayRow]{
	{Key: "SKU", Label: "SKU", Sortable: true, Value: func(r model.ThreeWayRow) any { return r.SKU }},
	{Key: "inv_match_status", Label: "Match Status", Sortable: true, Value: func(r model.ThreeWayRow) any { return r.MatchStatus }},
	{Key: "verdict", Label: "Verdict", Sortable: true, Value: func(r model.ThreeWayRow) any { return r.Verdict }},
	{Key: "tolerance_status", Label: "Tolerance", Sortable: true, Value: func(r model.ThreeWayRow) any { return r.ToleranceStatus }},
	{Key: "err_gw", Label: "Err GW", Sortable: true, Value: func(r model.ThreeWayRow) any { return r.ErrGW }},
	{Key: "err_cbm", Label: "Err CBM", Sortable: true, Value: func(r model.ThreeWayRow) any { return r.ErrCBM }},
	{Key: "GW", Label: "GW", Sortable: true, Value: func(r model.ThreeWayRow) any { return r.GW }},
	{Key: "CBM", Label: "CBM", Sortable: true, Value: func(r model.ThreeWayRow) any { return r.CBM }},
	{Key: "stock_qty", Label: "Stock Qty", Sortable: true, Value: func(r model.ThreeWayRow) any { return r.StockQty }},
	{Key: "Final_Location", Label: "Location", Sortable: true, Value: func(r model.ThreeWayRow) any { return r.FinalLocation }},
	{Key: "flow_code", Label: "Flow", Sortable: true, Value: func(r model.ThreeWayRow) any { return r.FlowCode }},
}

var HeatmapColumns = []table.Column[model.HeatmapCell]{
	{Key: "loc", Label: "Location", Sortable: true, Value: func(r model.HeatmapCell) any { return r.Location }},
	{Key: "ym", Label: "Month", Sortable: true, Value: func(r model.HeatmapCell) any { return r.Month }},
	{Key: "stock", Label: "Stock", Sortable: true, Value: func(r model.HeatmapCell) any { return r.Stock }},
	{Key: "sqm", Label: "SQM", Sortable: true, Value: func(r model.HeatmapCell) any { return r.SQM }},
	{Key: "sku_count", Label: "SKUs", Sortable: true, Value: func(r model.HeatmapCell) any { return r.SKUCount }},
}

var LocationColumns = []table.Column[model.LocationSummary]{
	{Key: "loc", Label: "Location", Sortable: true, Value: func(r model.LocationSummary) any { return r.Location }},
	{Key: "active_months", Label: "Active Months", Sortable: true, Value: func(r model.LocationSummary) any { return r.ActiveMonths }},
	{Key: "total_stock", Label: "Total Stock", Sortable: true, Value: func(r model.LocationSummary) any { return r.TotalStock }},
	{Key: "total_sqm", Label: "Total SQM", Sortable: true, Value: func(r model.LocationSummary) any { return r.TotalSQM }},
	{Key: "avg_stock", Label: "Avg Stock", Sortable: true, Value: func(r model.LocationSummary) any { return r.AvgStock }},
	{Key: "avg_sqm", Label: "Avg SQM", Sortable: true, Value: func(r model.LocationSummary) any { return r.AvgSQM }},
}

var FlowColumns = []table.Column[model.FlowEvent]{
	{Key: "SKU", Label: "SKU", Sortable: true, Value: func(r model.FlowEvent) any { return r.SKU }},
	{Key: "Status_Location", Label: "Location", Sortable: true, Value: func(r model.FlowEvent) any { return r.StatusLocation }},
	{Key: "Flow_Code", Label: "Flow", Sortable: true, Value: func(r model.FlowEvent) any { return r.FlowCode }},
	{Key: "ts", Label: "Timestamp", Sortable: true, Value: func(r model.FlowEvent) any { return r.TS }},
	{Key: "source_type", Label: "Source", Sortable: true, Value: func(r model.FlowEvent) any { return r.SourceType }},
}

var ExceptionColumns = []table.Column[model.ExceptionRow]{
	{Key: "SKU", Label: "SKU", Sortable: true, Value: func(r model.ExceptionRow) any { return r.SKU }},
	{Key: "hvdc_code_norm", Label: "HVDC Code", Sortable: true, Value: func(r model.ExceptionRow) any { return r.HVDCCode }},
	{Key: "Invoice_RAW_CODE", Label: "Invoice Code", Sortable: true, Value: func(r model.ExceptionRow) any { return r.InvoiceCode }},
	{Key: "Err_GW", Label: "Err GW", Sortable: true, Value: func(r model.ExceptionRow) any { return r.ErrGW }},
	{Key: "Err_CBM", Label: "Err CBM", Sortable: true, Value: func(r model.ExceptionRow) any { return r.ErrCBM }},
	{Key: "Match_Status", Label: "Match Status", Sortable: true, Value: func(r model.ExceptionRow) any { return r.MatchStatus }},
	{Key: "GW_SumPicked", Label: "GW Picked", Sortable: true, Value: func(r model.ExceptionRow) any { return r.GWSumPicked }},
	{Key: "CBM_SumPicked", Label: "CBM Picked", Sortable: true, Value: func(r model.ExceptionRow) any { return r.CBMSumPicked }},
}
