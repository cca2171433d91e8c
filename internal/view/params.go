package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"recondash/internal/table"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var ErrInvalidParam = errors.New("invalid parameter")

// Params are the table controls shared by every list view.
type Params struct {
	Query    string
	Sort     string
	Dir      table.Direction
	Page     int
	PageSize int
	Format   string
}

// Paged reports whether the caller asked for a page window.
func (p Params) Paged() bool {
	return p.Page > 0 || p.PageSize > 0
}

// ParseParams reads q, sort, dir, page, page_size and format through get.
func ParseParams(get func(key string) string) (Params, error) {
	p := Params{
		Query:  get("q"),
		Sort:   get("sort"),
		Dir:    table.ParseDirection(get("dir")),
		Format: strings.ToLower(get("format")),
	}
	if p.Format == "" {
		p.Format = FormatJSON
	}
	if p.Format != FormatJSON && p.Format != FormatCSV {
		return Params{}, fmt.Errorf("%w: format must be json or csv", ErrInvalidParam)
	}

	var err error
	if p.Page, err = atoiOpt(get("page")); err != nil || p.Page < 0 {
		return Params{}, fmt.Errorf("%w: page must be a positive integer", ErrInvalidParam)
	}
	if p.PageSize, err = atoiOpt(get("page_size")); err != nil || p.PageSize < 0 {
		return Params{}, fmt.Errorf("%w: page_size must be a positive integer", ErrInvalidParam)
	}
	return p, nil
}

func atoiOpt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// Listing is the result of applying Params to a row set.
type Listing[T any] struct {
	Rows          []T
	FilteredCount int
	Page          *table.Page[T]
}

// Apply searches, then sorts, then paginates when requested.
// Unknown sort keys are rejected.
func Apply[T any](rows []T, cols []table.Column[T], p Params) (Listing[T], error) {
	if p.Sort != "" {
		if _, ok := table.Find(cols, p.Sort); !ok {
			return Listing[T]{}, fmt.Errorf("%w: unknown sort column %q", ErrInvalidParam, p.Sort)
		}
	}
	out := table.Search(rows, cols, p.Query)
	out = table.Sort(out, cols, table.State{Key: p.Sort, Dir: p.Dir})

	l := Listing[T]{Rows: out, FilteredCount: len(out)}
	if p.Paged() && p.Format != FormatCSV {
		page := table.Paginate(out, p.Page, p.PageSize)
		l.Page = &page
		l.Rows = page.Rows
	}
	return l, nil
}
