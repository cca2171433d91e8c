package sqlstore

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"
)

// TimeLayout is how timestamps are written into TEXT columns.
const TimeLayout = "2006-01-02 15:04:05"

var timeLayouts = []string{
	TimeLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05-07:00",
	time.DateOnly,
}

// parseTime accepts the textual forms SQLite drivers and pgx produce.
func parseTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil, nil
	}
	s := strings.TrimSpace(ns.String)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized timestamp %q", s)
}

func nonFinite(v float64) bool {
	return math.IsInf(v, 0) || math.IsNaN(v)
}

// zeroNonFinite replaces inf and NaN with 0 and reports whether it did.
func zeroNonFinite(vs ...*float64) bool {
	found := false
	for _, v := range vs {
		if nonFinite(*v) {
			*v = 0
			found = true
		}
	}
	return found
}

// floatPtr treats inf and NaN like NULL.
func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid || nonFinite(n.Float64) {
		return nil
	}
	v := n.Float64
	return &v
}

func stringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
