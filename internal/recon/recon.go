// Package recon derives reconciliation outcomes from raw mismatch fields.
package recon

import (
	"math"

	"github.com/shopspring/decimal"

	"recondash/internal/model"
)

// DefaultTolerancePct is used when no tolerance is configured.
const DefaultTolerancePct = 10

// Verdict is FAIL for every status other than PASS, including empty.
func Verdict(status string) string {
	if status == model.StatusPass {
		return model.VerdictPass
	}
	return model.VerdictFail
}

// Finite reports whether v is neither infinite nor NaN.
func Finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Exceeds reports whether |errVal| is above nominal*tolPct/100.
// A nil or non-finite nominal never exceeds. A non-finite error always does.
func Exceeds(errVal float64, nominal *float64, tolPct float64) bool {
	if nominal == nil || !Finite(*nominal) {
		return false
	}
	if !Finite(errVal) {
		return true
	}
	limit := decimal.NewFromFloat(*nominal).Mul(decimal.NewFromFloat(tolPct)).Div(decimal.NewFromInt(100))
	return decimal.NewFromFloat(math.Abs(errVal)).GreaterThan(limit)
}

// ToleranceStatus classifies a row. The weight check wins when both exceed.
func ToleranceStatus(errGW float64, gw *float64, errCBM float64, cbm *float64, tolPct float64) string {
	switch {
	case Exceeds(errGW, gw, tolPct):
		return model.ToleranceGWExceeded
	case Exceeds(errCBM, cbm, tolPct):
		return model.ToleranceCBMExceeded
	default:
		return model.ToleranceWithin
	}
}

// Percent returns part/whole*100 rounded to two decimals, or 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	p := decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(whole))).
		Round(2)
	f, _ := p.Float64()
	return f
}

// Round2 rounds half away from zero to two decimals. Non-finite values pass through.
func Round2(v float64) float64 {
	if !Finite(v) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// KPI turns raw counters into the summary record.
func KPI(c model.KPICounts) model.KPI {
	return model.KPI{
		Total:         c.Total,
		MismatchPct:   Percent(c.Mismatched, c.Total),
		FlowCoverage:  Percent(c.FlowStages, model.FlowStageCount),
		StockCoverage: Percent(c.WithStock, c.Total),
		SQMCoverage:   Percent(c.WithSQM, c.Total),
		LocationCount: c.Locations,
	}
}

// Classify fills Verdict and ToleranceStatus of every row in place.
func Classify(rows []model.ThreeWayRow, tolPct float64) {
	for i := range rows {
		r := &rows[i]
		r.Verdict = Verdict(r.MatchStatus)
		r.ToleranceStatus = ToleranceStatus(r.ErrGW, r.GW, r.ErrCBM, r.CBM, tolPct)
	}
}

// ExceptionStats is computed over the whole fetched set.
// Non-finite errors are left out of the averages.
func ExceptionStats(rows []model.ExceptionRow) model.ExceptionStats {
	st := model.ExceptionStats{Total: len(rows)}
	var gw, cbm mean
	for _, r := range rows {
		if Verdict(r.MatchStatus) == model.VerdictPass {
			st.PassCount++
		} else {
			st.FailCount++
		}
		gw.add(math.Abs(r.ErrGW))
		cbm.add(math.Abs(r.ErrCBM))
	}
	st.AvgAbsErrGW = gw.value()
	st.AvgAbsErrCBM = cbm.value()
	return st
}

type mean struct {
	sum decimal.Decimal
	n   int64
}

func (m *mean) add(v float64) {
	if !Finite(v) {
		return
	}
	m.sum = m.sum.Add(decimal.NewFromFloat(v))
	m.n++
}

func (m *mean) value() float64 {
	if m.n == 0 {
		return 0
	}
	f, _ := m.sum.Div(decimal.NewFromInt(m.n)).Round(2).Float64()
	return f
}

// Exception filters.
const (
	FilterAll  = "all"
	FilterFail = "fail"
	FilterPass = "pass"
)

// ValidFilter reports whether f is a known exceptions filter.
func ValidFilter(f string) bool {
	switch f {
	case FilterAll, FilterFail, FilterPass:
		return true
	}
	return false
}

// FilterExceptions returns a new slice with the rows matching f.
func FilterExceptions(rows []model.ExceptionRow, f string) []model.ExceptionRow {
	out := make([]model.ExceptionRow, 0, len(rows))
	for _, r := range rows {
		pass := Verdict(r.MatchStatus) == model.VerdictPass
		if f == FilterAll || f == "" || (f == FilterPass && pass) || (f == FilterFail && !pass) {
			out = append(out, r)
		}
	}
	return out
}
