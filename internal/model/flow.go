package model

// FlowStage describes one position in the shipment lifecycle.
type FlowStage struct {
	Code        int    `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CompletedFlowCode marks delivery to site, the last stage of a flow.
const CompletedFlowCode = 4

// FlowStageCount is the number of distinct lifecycle stages.
const FlowStageCount = 5

// FlowStages lists every stage in lifecycle order.
var FlowStages = []FlowStage{
	{Code: 0, Name: "Pre-Arrival", Description: "Shipment not yet arrived at port"},
	{Code: 1, Name: "Port Arrival", Description: "Arrived at port"},
	{Code: 2, Name: "Warehouse", Description: "Received into warehouse"},
	{Code: 3, Name: "MOSB", Description: "In transit through the offshore supply base"},
	{Code: 4, Name: "Site Delivery", Description: "Delivered to site"},
}
