// Package pivot reshapes aggregate rows into heatmap and case-flow views.
package pivot

import (
	"sort"

	"github.com/shopspring/decimal"

	"recondash/internal/model"
	"recondash/internal/recon"
)

// SummarizeLocations aggregates cells per location, ordered by location.
func SummarizeLocations(cells []model.HeatmapCell) []model.LocationSummary {
	type acc struct {
		months map[string]struct{}
		stock  decimal.Decimal
		sqm    decimal.Decimal
	}
	byLoc := make(map[string]*acc)
	for _, c := range cells {
		a, ok := byLoc[c.Location]
		if !ok {
			a = &acc{months: make(map[string]struct{})}
			byLoc[c.Location] = a
		}
		a.months[c.Month] = struct{}{}
		a.stock = add(a.stock, c.Stock)
		a.sqm = add(a.sqm, c.SQM)
	}

	out := make([]model.LocationSummary, 0, len(byLoc))
	for loc, a := range byLoc {
		n := decimal.NewFromInt(int64(len(a.months)))
		s := model.LocationSummary{Location: loc, ActiveMonths: len(a.months)}
		s.TotalStock, _ = a.stock.Float64()
		s.TotalSQM, _ = a.sqm.Float64()
		s.AvgStock, _ = a.stock.Div(n).Round(2).Float64()
		s.AvgSQM, _ = a.sqm.Div(n).Round(2).Float64()
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

// add skips non-finite values.
func add(sum decimal.Decimal, v float64) decimal.Decimal {
	if !recon.Finite(v) {
		return sum
	}
	return sum.Add(decimal.NewFromFloat(v))
}

// HeatmapStats summarizes every cell.
func HeatmapStats(cells []model.HeatmapCell) model.HeatmapStats {
	locs := make(map[string]struct{})
	months := make(map[string]struct{})
	var stock, sqm decimal.Decimal
	for _, c := range cells {
		locs[c.Location] = struct{}{}
		months[c.Month] = struct{}{}
		stock = add(stock, c.Stock)
		sqm = add(sqm, c.SQM)
	}
	st := model.HeatmapStats{
		UniqueLocations: len(locs),
		UniqueMonths:    len(months),
		TotalRecords:    len(cells),
	}
	st.TotalStock, _ = stock.Float64()
	st.TotalSQM, _ = sqm.Float64()
	return st
}

// HeatmapGrid is a location by month matrix. Absent cells are nil.
type HeatmapGrid struct {
	Locations []string     `json:"locations"`
	Months    []string     `json:"months"`
	Stock     [][]*float64 `json:"stock"`
	SQM       [][]*float64 `json:"sqm"`
}

// Grid lays cells out by sorted location and month.
func Grid(cells []model.HeatmapCell) HeatmapGrid {
	locIdx := make(map[string]int)
	monIdx := make(map[string]int)
	for _, c := range cells {
		locIdx[c.Location] = 0
		monIdx[c.Month] = 0
	}
	g := HeatmapGrid{
		Locations: sortedKeys(locIdx),
		Months:    sortedKeys(monIdx),
	}
	for i, l := range g.Locations {
		locIdx[l] = i
	}
	for i, m := range g.Months {
		monIdx[m] = i
	}

	g.Stock = make([][]*float64, len(g.Locations))
	g.SQM = make([][]*float64, len(g.Locations))
	for i := range g.Locations {
		g.Stock[i] = make([]*float64, len(g.Months))
		g.SQM[i] = make([]*float64, len(g.Months))
	}
	for _, c := range cells {
		i, j := locIdx[c.Location], monIdx[c.Month]
		g.Stock[i][j] = addTo(g.Stock[i][j], c.Stock)
		g.SQM[i][j] = addTo(g.SQM[i][j], c.SQM)
	}
	return g
}

func addTo(p *float64, v float64) *float64 {
	if p == nil {
		return &v
	}
	sum := *p + v
	return &sum
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
