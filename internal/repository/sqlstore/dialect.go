package sqlstore

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect captures the SQL differences between the supported engines.
type Dialect struct {
	Name string

	// TableExists takes one bind parameter, the table name, and yields a boolean.
	TableExists string

	numbered  bool
	monthExpr func(col string) string
}

// SQLite serves both the read-only server file and the embedded engine.
// strftime yields NULL for blank or unparseable text, so each column falls
// through to the next one.
var SQLite = Dialect{
	Name:        "sqlite",
	TableExists: `SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type IN ('table', 'view') AND lower(name) = lower(?))`,
	monthExpr: func(col string) string {
		return fmt.Sprintf("strftime('%%Y-%%m-01', NULLIF(TRIM(%s), ''))", col)
	},
}

var Postgres = Dialect{
	Name:        "postgres",
	TableExists: `SELECT to_regclass(?) IS NOT NULL`,
	numbered:    true,
	monthExpr: func(col string) string {
		return fmt.Sprintf("to_char(%s, 'YYYY-MM-01')", col)
	},
}

// DialectFor returns the dialect of a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case SQLite.Name:
		return SQLite, nil
	case Postgres.Name:
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported sql dialect %q", driver)
}

// Rebind rewrites ? placeholders into the dialect's form.
// Queries here never carry a literal question mark.
func (d Dialect) Rebind(q string) string {
	if !d.numbered {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DefaultMonth buckets SKUs without a usable timestamp.
const DefaultMonth = "2024-01-01"

// Month truncates the first usable timestamp of a SKU to the first of its
// month, trying first_seen, then last_seen, then DefaultMonth.
func (d Dialect) Month() string {
	return fmt.Sprintf("COALESCE(%s, %s, '%s')", d.monthExpr("first_seen"), d.monthExpr("last_seen"), DefaultMonth)
}
