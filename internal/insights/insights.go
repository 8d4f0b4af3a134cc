package insights

import (
	"sort"
	"strings"

	"sales-insights-go/internal/types"
)

// Mode selects whether the dashboard slices activities by team manager or
// by team employee.
type Mode string

const (
	ModeManager  Mode = "manager"
	ModeEmployee Mode = "employee"
)

// AllManagers is the synthetic unfiltered option offered by the manager
// selector on the employee view.
const AllManagers = "All Managers"

// LeanIXInitiative tags activities belonging to the LeanIX support program.
const LeanIXInitiative = "LeanIX"

// Filter retains the enriched activities whose manager name (ModeManager)
// or employee name (ModeEmployee) exactly equals the selected name. Names
// were trimmed at mapping time, so equality is safe here.
func Filter(activities []types.EnrichedActivityRecord, mode Mode, name string) []types.EnrichedActivityRecord {
	var out []types.EnrichedActivityRecord
	for _, act := range activities {
		switch mode {
		case ModeManager:
			if act.ActivTeamManagerName == name {
				out = append(out, act)
			}
		case ModeEmployee:
			if act.ActivTeamEmplName == name {
				out = append(out, act)
			}
		}
	}
	return out
}

// ManagerOptions returns the distinct non-empty manager names, sorted.
func ManagerOptions(activities []types.ActivityRecord) []string {
	set := map[string]struct{}{}
	for _, act := range activities {
		if act.ActivTeamManagerName != "" {
			set[act.ActivTeamManagerName] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// ManagerFilterOptions is ManagerOptions with the AllManagers option
// prepended, for the manager filter shown on the employee view.
func ManagerFilterOptions(activities []types.ActivityRecord) []string {
	return append([]string{AllManagers}, ManagerOptions(activities)...)
}

// EmployeeOptions returns the distinct employee names visible under the
// given manager filter, sorted. When no manager filter is active, employee
// names from the detail sheet are included too, since time tracking may
// cover employees with no logged activities.
func EmployeeOptions(activities []types.EnrichedActivityRecord, details []types.ActivityDetailRecord, managerFilter string) []string {
	unfiltered := managerFilter == "" || managerFilter == AllManagers
	set := map[string]struct{}{}
	for _, act := range activities {
		if !unfiltered && act.ActivTeamManagerName != managerFilter {
			continue
		}
		if act.ActivTeamEmplName != "" {
			set[act.ActivTeamEmplName] = struct{}{}
		}
	}
	if unfiltered {
		for _, d := range details {
			if d.ActivTeamEmplName != "" {
				set[d.ActivTeamEmplName] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

// DedupLog keeps the first occurrence of each opportunity ID within the
// filtered order and sorts the survivors descending by ACV. The sort is
// stable so equal ACVs keep their prior relative order.
func DedupLog(filtered []types.EnrichedActivityRecord) []types.EnrichedActivityRecord {
	seen := map[string]struct{}{}
	var out []types.EnrichedActivityRecord
	for _, act := range filtered {
		if _, ok := seen[act.OppID]; ok {
			continue
		}
		seen[act.OppID] = struct{}{}
		out = append(out, act)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OppAcvUsdK > out[j].OppAcvUsdK })
	return out
}

// ComputeMetrics derives the KPI block from a filtered activity slice.
//
// Unique opportunities are collected first-occurrence-wins, the opposite of
// the enrichment lookup's last-wins rule; the asymmetry is deliberate and
// changing either side changes the computed totals. The LeanIX count runs
// over the filtered set before deduplication, also deliberate.
func ComputeMetrics(filtered []types.EnrichedActivityRecord) types.MetricSet {
	if len(filtered) == 0 {
		return types.MetricSet{}
	}

	type oppEntry struct {
		acv       float64
		adrmTotal float64
		status    string
	}
	uniqueOpps := map[string]oppEntry{}
	order := []string{}
	for _, act := range filtered {
		if act.OppID == "" {
			continue
		}
		if _, ok := uniqueOpps[act.OppID]; ok {
			continue
		}
		uniqueOpps[act.OppID] = oppEntry{
			acv:       act.OppAcvUsdK,
			adrmTotal: act.AdrmTotalValue,
			status:    act.OppStatus,
		}
		order = append(order, act.OppID)
	}

	leanIXOpps := map[string]struct{}{}
	for _, act := range filtered {
		if act.ActivInitiative == LeanIXInitiative {
			leanIXOpps[act.OppID] = struct{}{}
		}
	}

	m := types.MetricSet{
		UniqueOppsCount: len(uniqueOpps),
		LeanIXCount:     len(leanIXOpps),
	}
	for _, id := range order {
		opp := uniqueOpps[id]
		m.SupportedPipeline += opp.acv
		if isBooked(opp.status) {
			m.BookedValue += opp.adrmTotal
			m.BookedOppsCount++
		}
	}
	return m
}

// DetailsForSelection narrows the detail records to the current selection.
// Detail rows carry no manager field, so ModeManager resolves the manager to
// their employee set through the filtered activities first.
func DetailsForSelection(details []types.ActivityDetailRecord, activities []types.EnrichedActivityRecord, mode Mode, name string) []types.ActivityDetailRecord {
	var out []types.ActivityDetailRecord
	if mode == ModeManager {
		employees := map[string]struct{}{}
		for _, act := range activities {
			if act.ActivTeamManagerName == name && act.ActivTeamEmplName != "" {
				employees[act.ActivTeamEmplName] = struct{}{}
			}
		}
		for _, d := range details {
			if _, ok := employees[d.ActivTeamEmplName]; ok {
				out = append(out, d)
			}
		}
		return out
	}
	for _, d := range details {
		if d.ActivTeamEmplName == name {
			out = append(out, d)
		}
	}
	return out
}

func isBooked(status string) bool {
	switch strings.ToLower(status) {
	case "booked", "won":
		return true
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
