package pivot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recondash/internal/model"
)

func ip(v int) *int { return &v }

func sp(v string) *string { return &v }

func tp(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestSynthesizeFlow(t *testing.T) {
	t.Run("distinct first and last seen", func(t *testing.T) {
		s := model.SKU{SKU: "A", FirstSeen: tp("2024-01-05"), LastSeen: tp("2024-03-01"), FlowCode: ip(2), FinalLocation: sp("DSV")}
		got := SynthesizeFlow(s)
		require.Len(t, got, 2)
		assert.Equal(t, *s.FirstSeen, got[0].TS)
		assert.Equal(t, *s.LastSeen, got[1].TS)
		for _, e := range got {
			assert.Equal(t, model.SourceSimulated, e.SourceType)
			assert.Equal(t, "DSV", *e.StatusLocation)
		}
	})

	t.Run("equal first and last seen", func(t *testing.T) {
		s := model.SKU{SKU: "A", FirstSeen: tp("2024-01-05"), LastSeen: tp("2024-01-05")}
		assert.Len(t, SynthesizeFlow(s), 1)
	})

	t.Run("only last seen", func(t *testing.T) {
		s := model.SKU{SKU: "A", LastSeen: tp("2024-01-05")}
		got := SynthesizeFlow(s)
		require.Len(t, got, 1)
		assert.Equal(t, *s.LastSeen, got[0].TS)
	})

	t.Run("no timestamps", func(t *testing.T) {
		assert.Empty(t, SynthesizeFlow(model.SKU{SKU: "A"}))
	})
}

func TestGroupFlows(t *testing.T) {
	events := []model.FlowEvent{
		{SKU: "B", TS: *tp("2024-02-01"), StatusLocation: sp("second")},
		{SKU: "A", TS: *tp("2024-03-01")},
		{SKU: "B", TS: *tp("2024-01-01")},
		{SKU: "A", TS: *tp("2024-01-01")},
		{SKU: "B", TS: *tp("2024-02-01"), StatusLocation: sp("third")},
	}
	groups := GroupFlows(events)

	require.Len(t, groups, 2)
	require.Len(t, groups["A"], 2)
	assert.True(t, groups["A"][0].TS.Before(groups["A"][1].TS))

	b := groups["B"]
	require.Len(t, b, 3)
	assert.Equal(t, *tp("2024-01-01"), b[0].TS)
	assert.Equal(t, "second", *b[1].StatusLocation)
	assert.Equal(t, "third", *b[2].StatusLocation)
}

func TestFlowStats(t *testing.T) {
	assert.Equal(t, model.FlowStats{}, FlowStats(nil))

	events := []model.FlowEvent{
		{SKU: "A", FlowCode: ip(1), TS: *tp("2024-01-01")},
		{SKU: "A", FlowCode: ip(4), TS: *tp("2024-02-01")},
		{SKU: "B", FlowCode: ip(2), TS: *tp("2024-01-01")},
		{SKU: "C", TS: *tp("2024-01-01")},
	}
	assert.Equal(t, model.FlowStats{
		TotalEvents:     4,
		UniqueSKUs:      3,
		CompletedFlows:  1,
		AvgEventsPerSKU: 1.33,
	}, FlowStats(events))
}
