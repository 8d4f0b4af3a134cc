package enrich

import "sales-insights-go/internal/types"

// OppInfo is the slice of opportunity data joined onto activities.
type OppInfo struct {
	Total  float64
	Status string
}

// BuildLookup indexes opportunities by ID. Duplicate IDs overwrite earlier
// entries (last row wins), so the lookup reflects the final state of the
// sheet. Rows without an ID are skipped. An empty status reads as "Unknown".
func BuildLookup(opps []types.OpportunityRecord) map[string]OppInfo {
	lookup := make(map[string]OppInfo, len(opps))
	for _, opp := range opps {
		if opp.OppID == "" {
			continue
		}
		status := opp.OppStatus
		if status == "" {
			status = "Unknown"
		}
		lookup[opp.OppID] = OppInfo{Total: opp.Total, Status: status}
	}
	return lookup
}

// Enrich left-joins the opportunity lookup onto every activity, preserving
// order. Every activity survives exactly once; unmatched IDs get a zero
// total and "N/A" status.
func Enrich(activities []types.ActivityRecord, lookup map[string]OppInfo) []types.EnrichedActivityRecord {
	out := make([]types.EnrichedActivityRecord, 0, len(activities))
	for _, act := range activities {
		enriched := types.EnrichedActivityRecord{
			ActivityRecord: act,
			AdrmTotalValue: 0,
			OppStatus:      "N/A",
		}
		if info, ok := lookup[act.OppID]; ok {
			enriched.AdrmTotalValue = info.Total
			enriched.OppStatus = info.Status
		}
		out = append(out, enriched)
	}
	return out
}
