package table

import (
	"bytes"
	"encoding/csv"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	SKU   string
	Loc   *string
	Qty   *float64
	Notes string
}

func sp(s string) *string { return &s }

func fp(f float64) *float64 { return &f }

var cols = []Column[row]{
	{Key: "SKU", Label: "SKU", Sortable: true, Value: func(r row) any { return r.SKU }},
	{Key: "loc", Label: "Location", Sortable: true, Value: func(r row) any { return r.Loc }},
	{Key: "qty", Label: "Qty", Sortable: true, Value: func(r row) any { return r.Qty }},
	{Key: "notes", Label: "Notes", Value: func(r row) any { return r.Notes }},
}

func rows() []row {
	return []row{
		{SKU: "S-3", Loc: sp("DSV Indoor"), Qty: fp(10), Notes: "ok"},
		{SKU: "S-1", Loc: nil, Qty: fp(2.5), Notes: "needs, review"},
		{SKU: "S-2", Loc: sp("MOSB"), Qty: nil, Notes: "said \"hold\""},
		{SKU: "S-4", Loc: sp("dsv outdoor"), Qty: fp(10), Notes: "line\nbreak"},
	}
}

func skus(rs []row) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.SKU
	}
	return out
}

func TestSearch(t *testing.T) {
	in := rows()

	assert.Equal(t, []string{"S-3", "S-4"}, skus(Search(in, cols, "DSV")))
	assert.Equal(t, []string{"S-3", "S-4"}, skus(Search(in, cols, "  dsv ")))
	assert.Equal(t, []string{"S-1"}, skus(Search(in, cols, "2.5")))
	assert.Len(t, Search(in, cols, ""), 4)
	assert.Empty(t, Search(in, cols, "nothing-matches"))

	assert.Equal(t, rows(), in, "input must not be mutated")
}

func TestSort(t *testing.T) {
	in := rows()

	t.Run("string ascending", func(t *testing.T) {
		got := Sort(in, cols, State{Key: "SKU", Dir: Asc})
		assert.Equal(t, []string{"S-1", "S-2", "S-3", "S-4"}, skus(got))
	})

	t.Run("numbers are stable and nil first", func(t *testing.T) {
		got := Sort(in, cols, State{Key: "qty", Dir: Asc})
		assert.Equal(t, []string{"S-2", "S-1", "S-3", "S-4"}, skus(got))
	})

	t.Run("descending keeps ties in input order", func(t *testing.T) {
		got := Sort(in, cols, State{Key: "qty", Dir: Desc})
		assert.Equal(t, []string{"S-3", "S-4", "S-1", "S-2"}, skus(got))
	})

	t.Run("unsortable column is a no-op", func(t *testing.T) {
		got := Sort(in, cols, State{Key: "notes", Dir: Asc})
		assert.Equal(t, skus(in), skus(got))
	})

	t.Run("unknown column is a no-op", func(t *testing.T) {
		got := Sort(in, cols, State{Key: "bogus", Dir: Desc})
		assert.Equal(t, skus(in), skus(got))
	})

	assert.Equal(t, rows(), in, "input must not be mutated")
}

func TestState_Toggle(t *testing.T) {
	var st State

	st = st.Toggle("SKU")
	assert.Equal(t, State{Key: "SKU", Dir: Asc}, st)

	st = st.Toggle("SKU")
	assert.Equal(t, State{Key: "SKU", Dir: Desc}, st)

	st = st.Toggle("SKU")
	assert.Equal(t, State{Key: "SKU", Dir: Asc}, st)

	st = st.Toggle("SKU").Toggle("qty")
	assert.Equal(t, State{Key: "qty", Dir: Asc}, st)
}

func TestState_ToggleSortReverses(t *testing.T) {
	in := rows()
	st := State{}.Toggle("SKU")

	asc := Sort(in, cols, st)
	st = st.Toggle("SKU")
	desc := Sort(in, cols, st)
	st = st.Toggle("SKU")
	again := Sort(in, cols, st)

	assert.Equal(t, []string{"S-1", "S-2", "S-3", "S-4"}, skus(asc))
	reversed := skus(asc)
	slices.Reverse(reversed)
	assert.Equal(t, reversed, skus(desc))
	assert.Equal(t, asc, again)

	for _, got := range [][]row{asc, desc, again} {
		assert.ElementsMatch(t, in, got, "sorting neither drops nor adds rows")
	}
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Desc, ParseDirection("DESC"))
	assert.Equal(t, Asc, ParseDirection("asc"))
	assert.Equal(t, Asc, ParseDirection(""))
}

func TestPaginate(t *testing.T) {
	data := make([]int, 120)
	for i := range data {
		data[i] = i
	}

	tests := []struct {
		name      string
		page      int
		size      int
		wantPage  int
		wantLen   int
		wantFirst int
		wantPages int
	}{
		{"first page default size", 1, 0, 1, 50, 0, 3},
		{"last partial page", 3, 50, 3, 20, 100, 3},
		{"page below range clamps", -4, 50, 1, 50, 0, 3},
		{"page above range clamps", 99, 50, 3, 20, 100, 3},
		{"custom size", 2, 100, 2, 20, 100, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(data, tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, 120, p.TotalRows)
			require.Len(t, p.Rows, tt.wantLen)
			assert.Equal(t, tt.wantFirst, p.Rows[0])
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]int(nil), 3, 10)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.TotalPages)
	assert.NotNil(t, p.Rows)
	assert.Empty(t, p.Rows)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	filtered := Search(rows(), cols, "s-")

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, filtered, cols))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(filtered)+1)

	assert.Equal(t, []string{"SKU", "loc", "qty", "notes"}, records[0])
	for i, r := range filtered {
		want := make([]string, len(cols))
		for j, c := range cols {
			want[j] = Format(c.Value(r))
		}
		if diff := cmp.Diff(want, records[i+1]); diff != "" {
			t.Errorf("record %d mismatch (-want +got):\n%s", i, diff)
		}
	}
	assert.Equal(t, "needs, review", records[2][3])
	assert.Equal(t, "said \"hold\"", records[3][3])
	assert.Equal(t, "", records[2][1])
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Equal(t, "", Format((*float64)(nil)))
	assert.Equal(t, "12.5", Format(fp(12.5)))
	assert.Equal(t, "3", Format(3))
	assert.Equal(t, "true", Format(true))
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, Compare(nil, (*string)(nil)))
	assert.Equal(t, -1, Compare(nil, 1))
	assert.Equal(t, 1, Compare(2, nil))
	assert.Equal(t, -1, Compare(2, 10))
	assert.Equal(t, -1, Compare(2, 10.5))
	assert.Equal(t, 1, Compare("b", "a"))
	assert.Equal(t, -1, Compare(false, true))
}
