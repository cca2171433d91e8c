// Package table implements search, sort, pagination and CSV export over
// in-memory row sets. Every function returns a new slice and leaves its
// input untouched.
package table

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultPageSize is used when a non-positive page size is requested.
const DefaultPageSize = 50

// Column describes one field of a row type.
type Column[T any] struct {
	Key      string
	Label    string
	Sortable bool
	Value    func(T) any
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection defaults to ascending for anything but "desc".
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// State is the current sort column and direction. An empty Key means unsorted.
type State struct {
	Key string
	Dir Direction
}

// Toggle flips the direction when key is already the sort column and
// otherwise switches to key ascending.
func (s State) Toggle(key string) State {
	if s.Key == key {
		if s.Dir == Asc {
			return State{Key: key, Dir: Desc}
		}
		return State{Key: key, Dir: Asc}
	}
	return State{Key: key, Dir: Asc}
}

// Find returns the column with the given key.
func Find[T any](cols []Column[T], key string) (Column[T], bool) {
	for _, c := range cols {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

// Keys lists the column keys in order.
func Keys[T any](cols []Column[T]) []string {
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	return keys
}

// Search keeps rows where any column's text contains q, ignoring case.
// A blank query keeps every row.
func Search[T any](rows []T, cols []Column[T], q string) []T {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return slices.Clone(rows)
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		for _, c := range cols {
			if strings.Contains(strings.ToLower(Format(c.Value(r))), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Sort orders rows stably by the state's column. Unknown or unsortable
// columns leave the order unchanged.
func Sort[T any](rows []T, cols []Column[T], st State) []T {
	out := slices.Clone(rows)
	if out == nil {
		out = []T{}
	}
	col, ok := Find(cols, st.Key)
	if !ok || !col.Sortable {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		c := Compare(col.Value(a), col.Value(b))
		if st.Dir == Desc {
			return -c
		}
		return c
	})
	return out
}

// Compare orders two cell values naturally. nil sorts first, numbers
// numerically, times chronologically, everything else by its text.
func Compare(a, b any) int {
	a, b = deref(a), deref(b)
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			return cmp.Compare(x, y)
		}
	}
	if x, ok := a.(time.Time); ok {
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	if x, ok := a.(bool); ok {
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(Format(a), Format(b))
}

// Page is one window of a row set.
type Page[T any] struct {
	Rows       []T `json:"rows"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalRows  int `json:"total_rows"`
}

// Paginate returns the 1-based page of rows, clamped to the valid range.
func Paginate[T any](rows []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (len(rows) + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	page = min(max(page, 1), pages)

	start := min((page-1)*size, len(rows))
	end := min(start+size, len(rows))
	return Page[T]{
		Rows:       append(make([]T, 0, end-start), rows[start:end]...),
		Page:       page,
		PageSize:   size,
		TotalPages: pages,
		TotalRows:  len(rows),
	}
}

// WriteCSV writes a header of column keys then one record per row.
func WriteCSV[T any](w io.Writer, rows []T, cols []Column[T]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Keys(cols)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(cols))
	for _, r := range rows {
		for i, c := range cols {
			record[i] = Format(c.Value(r))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Format renders a cell value as text. nil renders empty.
func Format(v any) string {
	switch x := deref(v).(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func deref(v any) any {
	switch x := v.(type) {
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *float64:
		if x == nil {
			return nil
		}
		return *x
	case *int:
		if x == nil {
			return nil
		}
		return *x
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	}
	return v
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}
