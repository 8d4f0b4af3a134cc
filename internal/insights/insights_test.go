package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-insights-go/internal/types"
)

func act(oppID, manager, employee string, acv float64) types.EnrichedActivityRecord {
	return types.EnrichedActivityRecord{
		ActivityRecord: types.ActivityRecord{
			OppID:                oppID,
			ActivTeamManagerName: manager,
			ActivTeamEmplName:    employee,
			OppAcvUsdK:           acv,
		},
	}
}

func TestFilterByManagerAndEmployee(t *testing.T) {
	acts := []types.EnrichedActivityRecord{
		act("1", "Marta Diaz", "Luis Gomez", 10),
		act("2", "Pedro Sanz", "Luis Gomez", 20),
		act("3", "Marta Diaz", "Eva Ortiz", 30),
	}
	byManager := Filter(acts, ModeManager, "Marta Diaz")
	require.Len(t, byManager, 2)
	assert.Equal(t, "1", byManager[0].OppID)
	assert.Equal(t, "3", byManager[1].OppID)

	byEmployee := Filter(acts, ModeEmployee, "Luis Gomez")
	require.Len(t, byEmployee, 2)
	assert.Equal(t, "2", byEmployee[1].OppID)
}

func TestManagerOptions(t *testing.T) {
	acts := []types.ActivityRecord{
		{ActivTeamManagerName: "Zoe Lin"},
		{ActivTeamManagerName: "Ana Ruiz"},
		{ActivTeamManagerName: "Zoe Lin"},
		{ActivTeamManagerName: ""},
	}
	assert.Equal(t, []string{"Ana Ruiz", "Zoe Lin"}, ManagerOptions(acts))
	assert.Equal(t, []string{AllManagers, "Ana Ruiz", "Zoe Lin"}, ManagerFilterOptions(acts))
}

func TestEmployeeOptions(t *testing.T) {
	acts := []types.EnrichedActivityRecord{
		act("1", "Marta Diaz", "Luis Gomez", 0),
		act("2", "Pedro Sanz", "Eva Ortiz", 0),
	}
	details := []types.ActivityDetailRecord{
		{ActivTeamEmplName: "Noa Pons"},
	}

	under := EmployeeOptions(acts, details, "Marta Diaz")
	assert.Equal(t, []string{"Luis Gomez"}, under, "manager filter hides other teams and detail-only names")

	all := EmployeeOptions(acts, details, AllManagers)
	assert.Equal(t, []string{"Eva Ortiz", "Luis Gomez", "Noa Pons"}, all,
		"unfiltered view also draws employees from the detail sheet")

	assert.Equal(t, all, EmployeeOptions(acts, details, ""))
}

func TestDedupLogFirstWinsSortedByACV(t *testing.T) {
	filtered := []types.EnrichedActivityRecord{
		act("A", "", "", 100),
		act("B", "", "", 300),
		act("A", "", "", 999), // duplicate, dropped
		act("C", "", "", 300), // ties with B, keeps prior order
	}
	log := DedupLog(filtered)
	require.Len(t, log, 3)
	assert.Equal(t, "B", log[0].OppID)
	assert.Equal(t, "C", log[1].OppID)
	assert.Equal(t, "A", log[2].OppID)
	assert.Equal(t, 100.0, log[2].OppAcvUsdK, "first occurrence's values survive")

	seen := map[string]bool{}
	for _, row := range log {
		assert.False(t, seen[row.OppID], "log never contains the same opp twice")
		seen[row.OppID] = true
	}
}

func withStatus(rec types.EnrichedActivityRecord, total float64, status string) types.EnrichedActivityRecord {
	rec.AdrmTotalValue = total
	rec.OppStatus = status
	return rec
}

func TestComputeMetricsScenario(t *testing.T) {
	filtered := []types.EnrichedActivityRecord{
		withStatus(act("A", "", "", 100), 50000, "Booked"),
		withStatus(act("A", "", "", 999), 50000, "Booked"), // duplicate, first wins
		withStatus(act("B", "", "", 200), 10000, "Lost"),
	}
	m := ComputeMetrics(filtered)
	assert.Equal(t, 2, m.UniqueOppsCount)
	assert.Equal(t, 300.0, m.SupportedPipeline)
	assert.Equal(t, 50000.0, m.BookedValue)
	assert.Equal(t, 1, m.BookedOppsCount)
	assert.Equal(t, 0, m.LeanIXCount)
}

func TestComputeMetricsStatusCaseInsensitive(t *testing.T) {
	filtered := []types.EnrichedActivityRecord{
		withStatus(act("A", "", "", 1), 10, "WON"),
		withStatus(act("B", "", "", 1), 20, "won"),
		withStatus(act("C", "", "", 1), 30, "Booked"),
		withStatus(act("D", "", "", 1), 40, "Lost"),
	}
	m := ComputeMetrics(filtered)
	assert.Equal(t, 3, m.BookedOppsCount)
	assert.Equal(t, 60.0, m.BookedValue)
}

func TestComputeMetricsEmptySelection(t *testing.T) {
	assert.Equal(t, types.MetricSet{}, ComputeMetrics(nil))
}

// The LeanIX count runs over the filtered set before deduplication: a
// duplicate activity row can contribute the tag even though the metric map
// kept the first row. The asymmetry is deliberate.
func TestLeanIXCountUsesNonDedupedActivities(t *testing.T) {
	tagged := act("A", "", "", 999)
	tagged.ActivInitiative = LeanIXInitiative
	filtered := []types.EnrichedActivityRecord{
		act("A", "", "", 100), // first occurrence, no tag
		tagged,                // duplicate carrying the tag
		act("B", "", "", 200),
	}
	m := ComputeMetrics(filtered)
	assert.Equal(t, 2, m.UniqueOppsCount)
	assert.Equal(t, 1, m.LeanIXCount)
	assert.Equal(t, 300.0, m.SupportedPipeline, "dedup map still keeps the first occurrence's ACV")
}

func TestUniqueOppsCountMatchesDistinctIDs(t *testing.T) {
	filtered := []types.EnrichedActivityRecord{
		act("A", "", "", 1), act("B", "", "", 2), act("A", "", "", 3), act("C", "", "", 4),
	}
	distinct := map[string]struct{}{}
	for _, a := range filtered {
		distinct[a.OppID] = struct{}{}
	}
	assert.Equal(t, len(distinct), ComputeMetrics(filtered).UniqueOppsCount)
}

func TestDetailsForSelection(t *testing.T) {
	acts := []types.EnrichedActivityRecord{
		act("1", "Marta Diaz", "Luis Gomez", 0),
		act("2", "Marta Diaz", "Eva Ortiz", 0),
		act("3", "Pedro Sanz", "Noa Pons", 0),
	}
	details := []types.ActivityDetailRecord{
		{ActivTeamEmplName: "Luis Gomez", TimeRecordedHours: 1},
		{ActivTeamEmplName: "Eva Ortiz", TimeRecordedHours: 2},
		{ActivTeamEmplName: "Noa Pons", TimeRecordedHours: 3},
	}

	// manager mode resolves the manager to their employee set first
	forManager := DetailsForSelection(details, acts, ModeManager, "Marta Diaz")
	require.Len(t, forManager, 2)
	assert.Equal(t, "Luis Gomez", forManager[0].ActivTeamEmplName)
	assert.Equal(t, "Eva Ortiz", forManager[1].ActivTeamEmplName)

	forEmployee := DetailsForSelection(details, acts, ModeEmployee, "Noa Pons")
	require.Len(t, forEmployee, 1)
	assert.Equal(t, 3.0, forEmployee[0].TimeRecordedHours)
}
