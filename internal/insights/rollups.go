package insights

import (
	"fmt"
	"sort"

	"sales-insights-go/internal/enrich"
	"sales-insights-go/internal/types"
)

// OwnerCount is one bar of the opportunities-per-owner chart.
type OwnerCount struct {
	Name          string `json:"name"`
	Opportunities int    `json:"opportunities"`
}

// RegionValue is the summed opportunity total for one L3 region.
type RegionValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StatusCount is one slice of the status pie.
type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// OppHours joins summed recorded hours per opportunity with the account,
// description, value and status known for it.
type OppHours struct {
	OppID       string  `json:"oppId"`
	Name        string  `json:"name"`
	AcctName    string  `json:"acctName"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	TotalValue  float64 `json:"totalValue"`
	Status      string  `json:"status"`
}

// OwnerOppCounts counts unique opportunity IDs per owner, sorted descending,
// cut to topN (<=0 keeps everything). Owners missing on the row fall under
// "Unassigned". Ties break by name so the output is deterministic.
func OwnerOppCounts(opps []types.OpportunityRecord, topN int) []OwnerCount {
	byOwner := map[string]map[string]struct{}{}
	for _, opp := range opps {
		owner := opp.OppOwner
		if owner == "" {
			owner = "Unassigned"
		}
		if byOwner[owner] == nil {
			byOwner[owner] = map[string]struct{}{}
		}
		if opp.OppID != "" {
			byOwner[owner][opp.OppID] = struct{}{}
		}
	}
	out := make([]OwnerCount, 0, len(byOwner))
	for owner, ids := range byOwner {
		out = append(out, OwnerCount{Name: owner, Opportunities: len(ids)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Opportunities != out[j].Opportunities {
			return out[i].Opportunities > out[j].Opportunities
		}
		return out[i].Name < out[j].Name
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// RegionTotals sums the total monetary value per Region L3, sorted
// descending with name as tie-break.
func RegionTotals(opps []types.OpportunityRecord) []RegionValue {
	byRegion := map[string]float64{}
	for _, opp := range opps {
		region := opp.RegionL3Desc
		if region == "" {
			region = "Unknown"
		}
		byRegion[region] += opp.Total
	}
	out := make([]RegionValue, 0, len(byRegion))
	for region, value := range byRegion {
		out = append(out, RegionValue{Name: region, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// StatusCounts histograms opportunity statuses, blank statuses reading as
// "Unknown". Sorted descending by count, then name.
func StatusCounts(opps []types.OpportunityRecord) []StatusCount {
	counts := map[string]int{}
	for _, opp := range opps {
		status := opp.OppStatus
		if status == "" {
			status = "Unknown"
		}
		counts[status]++
	}
	out := make([]StatusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, StatusCount{Name: status, Value: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopOppsByHours sums recorded hours per opportunity across the given
// detail slice and joins on what the activity sheet knows about the
// opportunity (first activity wins) and what the ADRM sheet values it at
// (last row wins, same as enrichment). Sorted descending by hours.
func TopOppsByHours(details []types.ActivityDetailRecord, activities []types.ActivityRecord, opps []types.OpportunityRecord) []OppHours {
	type actInfo struct {
		description string
		acctName    string
	}
	infoByOpp := map[string]actInfo{}
	for _, act := range activities {
		if act.OppID == "" {
			continue
		}
		if _, ok := infoByOpp[act.OppID]; !ok {
			infoByOpp[act.OppID] = actInfo{description: act.OppDescription, acctName: act.AcctName}
		}
	}
	valueByOpp := enrich.BuildLookup(opps)

	hoursByOpp := map[string]float64{}
	order := []string{}
	for _, d := range details {
		if d.OppID == "" {
			continue
		}
		if _, ok := hoursByOpp[d.OppID]; !ok {
			order = append(order, d.OppID)
		}
		hoursByOpp[d.OppID] += d.TimeRecordedHours
	}

	out := make([]OppHours, 0, len(order))
	for _, id := range order {
		row := OppHours{
			OppID:       id,
			AcctName:    "Unknown Account",
			Description: fmt.Sprintf("Opp ID: %s", id),
			Hours:       hoursByOpp[id],
			Status:      "N/A",
		}
		if info, ok := infoByOpp[id]; ok {
			if info.acctName != "" {
				row.AcctName = info.acctName
			}
			if info.description != "" {
				row.Description = info.description
			}
		}
		if val, ok := valueByOpp[id]; ok {
			row.TotalValue = val.Total
			row.Status = val.Status
		}
		row.Name = row.AcctName + " - " + row.Description
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Hours > out[j].Hours })
	return out
}
