package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-insights-go/internal/types"
)

func TestBuildLookupLastRowWins(t *testing.T) {
	lookup := BuildLookup([]types.OpportunityRecord{
		{OppID: "100", Total: 1000, OppStatus: "Open"},
		{OppID: "100", Total: 2500, OppStatus: "Won"},
		{OppID: "", Total: 99, OppStatus: "ignored"},
		{OppID: "200", Total: 400},
	})
	require.Len(t, lookup, 2)
	assert.Equal(t, OppInfo{Total: 2500, Status: "Won"}, lookup["100"])
	assert.Equal(t, OppInfo{Total: 400, Status: "Unknown"}, lookup["200"], "blank status reads as Unknown")
}

func TestEnrichLeftOuterJoin(t *testing.T) {
	lookup := BuildLookup([]types.OpportunityRecord{
		{OppID: "100", Total: 2500, OppStatus: "Won"},
	})
	activities := []types.ActivityRecord{
		{ActivID: "A-1", OppID: "100"},
		{ActivID: "A-2", OppID: "999"},
		{ActivID: "A-3", OppID: "100"},
	}

	enriched := Enrich(activities, lookup)
	require.Len(t, enriched, len(activities), "every activity survives exactly once")

	assert.Equal(t, "A-1", enriched[0].ActivID)
	assert.Equal(t, 2500.0, enriched[0].AdrmTotalValue)
	assert.Equal(t, "Won", enriched[0].OppStatus)

	assert.Equal(t, 0.0, enriched[1].AdrmTotalValue, "unmatched join key gets neutral defaults")
	assert.Equal(t, "N/A", enriched[1].OppStatus)

	assert.Equal(t, "A-3", enriched[2].ActivID, "activity order preserved")
	assert.Equal(t, 2500.0, enriched[2].AdrmTotalValue)
}

func TestEnrichEmptyInputs(t *testing.T) {
	assert.Empty(t, Enrich(nil, BuildLookup(nil)))
}
