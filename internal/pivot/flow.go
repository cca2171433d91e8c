package pivot

import (
	"sort"

	"github.com/shopspring/decimal"

	"recondash/internal/model"
)

// SynthesizeFlow reconstructs case-flow events from first/last seen timestamps.
// The last-seen event is emitted only when it differs from first-seen.
func SynthesizeFlow(s model.SKU) []model.FlowEvent {
	out := make([]model.FlowEvent, 0, 2)
	if s.FirstSeen != nil {
		out = append(out, model.FlowEvent{
			SKU:            s.SKU,
			StatusLocation: s.FinalLocation,
			FlowCode:       s.FlowCode,
			TS:             *s.FirstSeen,
			SourceType:     model.SourceSimulated,
		})
	}
	if s.LastSeen != nil && (s.FirstSeen == nil || !s.LastSeen.Equal(*s.FirstSeen)) {
		out = append(out, model.FlowEvent{
			SKU:            s.SKU,
			StatusLocation: s.FinalLocation,
			FlowCode:       s.FlowCode,
			TS:             *s.LastSeen,
			SourceType:     model.SourceSimulated,
		})
	}
	return out
}

// GroupFlows groups events by SKU, each group stably sorted by ascending time.
func GroupFlows(events []model.FlowEvent) map[string][]model.FlowEvent {
	groups := make(map[string][]model.FlowEvent)
	for _, e := range events {
		groups[e.SKU] = append(groups[e.SKU], e)
	}
	for _, g := range groups {
		sort.SliceStable(g, func(i, j int) bool { return g[i].TS.Before(g[j].TS) })
	}
	return groups
}

// FlowStats summarizes grouped case flows.
func FlowStats(events []model.FlowEvent) model.FlowStats {
	groups := GroupFlows(events)
	st := model.FlowStats{
		TotalEvents: len(events),
		UniqueSKUs:  len(groups),
	}
	for _, g := range groups {
		for _, e := range g {
			if e.FlowCode != nil && *e.FlowCode == model.CompletedFlowCode {
				st.CompletedFlows++
				break
			}
		}
	}
	if st.UniqueSKUs > 0 {
		st.AvgEventsPerSKU, _ = decimal.NewFromInt(int64(st.TotalEvents)).
			Div(decimal.NewFromInt(int64(st.UniqueSKUs))).
			Round(2).
			Float64()
	}
	return st
}
