package schema

import (
	"math"
	"strconv"
	"strings"

	"sales-insights-go/internal/types"
)

// RawRow is one spreadsheet row keyed by column header. Headers are trimmed
// before lookup; unrecognized headers are dropped, missing ones leave the
// field at its zero value. A malformed cell never fails a row.
type RawRow map[string]string

var numberCleaner = strings.NewReplacer(`"`, "", `'`, "", ",", "")

// ParseNumber coerces a raw cell into a float. Empty, unparsable and NaN
// inputs all collapse to 0 so numeric fields stay total downstream. Quote
// characters and thousands-separator commas are stripped first.
func ParseNumber(value string) float64 {
	cleaned := strings.TrimSpace(numberCleaner.Replace(value))
	if cleaned == "" {
		return 0
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// MapOpportunityRow maps one ADRM sheet row onto the canonical opportunity
// shape. The opportunity ID keeps its string form so joins survive
// numeric-vs-text cell formatting differences between sheets.
func MapOpportunityRow(row RawRow) types.OpportunityRecord {
	var rec types.OpportunityRecord
	for header, value := range row {
		switch strings.TrimSpace(header) {
		case "Time CQn":
			rec.TimeCqn = value
		case "Year - Qtr":
			rec.YearQtr = value
		case "Region L1 Desc":
			rec.RegionL1Desc = value
		case "Region L2 Desc":
			rec.RegionL2Desc = value
		case "Region L3 Desc":
			rec.RegionL3Desc = value
		case "Region L4 Desc":
			rec.RegionL4Desc = value
		case "Region L5 Desc":
			rec.RegionL5Desc = value
		case "Company ID":
			rec.CompanyID = value
		case "Company Name":
			rec.CompanyName = value
		case "Opp Desc":
			rec.OppDesc = value
		case "Opp ID":
			rec.OppID = value
		case "Opp Status":
			rec.OppStatus = value
		case "Opp OFS Link":
			rec.OppOfsLink = value
		case "Source":
			rec.Source = value
		case "Opp Owner":
			rec.OppOwner = value
		case "BP Rev Party":
			rec.BpRevParty = value
		case "DRM Category":
			rec.DrmCategory = value
		case "ML CQ Dynamic":
			rec.MlCqDynamic = value
		case "Opp Phase":
			rec.OppPhase = value
		case "Quote Avg Net":
			rec.QuoteAvgNet = ParseNumber(value)
		case "Local AO Name":
			rec.LocalAoName = value
		case "Qualification Summary":
			rec.QualificationSummary = value
		case "Compelling Event":
			rec.CompellingEvent = value
		case "Funding Score":
			rec.FundingScore = value
		case "Stakeholder Score":
			rec.StakeholderScore = value
		case "Customer Challenge":
			rec.CustomerChallenge = value
		case "Business Value":
			rec.BusinessValue = value
		case "Solution & Differentiation":
			rec.SolutionAndDifferentiation = value
		case "Competition":
			rec.Competition = value
		case "Partners & Eco":
			rec.PartnersAndEco = value
		case "Close Plan":
			rec.ClosePlan = value
		case "Business Case":
			rec.BusinessCase = value
		case "BOM Confirmed":
			rec.BomConfirmed = value
		case "ADRM":
			rec.Adrm = ParseNumber(value)
		case "Upside":
			rec.Upside = ParseNumber(value)
		case "Total":
			rec.Total = ParseNumber(value)
		case "ADRM + Upside":
			rec.AdrmUpside = ParseNumber(value)
		}
	}
	return rec
}

// MapActivityRow maps one Actividades_2025 row. Employee and manager names
// are trimmed because they are group-by keys and trailing spaces would
// silently fragment the rollups.
func MapActivityRow(row RawRow) types.ActivityRecord {
	var rec types.ActivityRecord
	for header, value := range row {
		switch strings.TrimSpace(header) {
		case "Activ ID":
			rec.ActivID = value
		case "Activ Type":
			rec.ActivType = value
		case "Acct Name":
			rec.AcctName = value
		case "Opp ID":
			rec.OppID = value
		case "Opp Phase":
			rec.OppPhase = value
		case "Opp Description":
			rec.OppDescription = value
		case "Opp ACV USD K":
			rec.OppAcvUsdK = ParseNumber(value)
		case "Activ Status":
			rec.ActivStatus = value
		case "Activ Team Empl Name *":
			rec.ActivTeamEmplName = strings.TrimSpace(value)
		case "Activ Initiative *":
			rec.ActivInitiative = value
		case "Activ Initiative Category *":
			rec.ActivInitiativeCategory = value
		case "Activ Lead Manager Name":
			rec.ActivLeadManagerName = value
		case "Activ Team Manager Name *":
			rec.ActivTeamManagerName = strings.TrimSpace(value)
		case "Opp Close Quarter":
			rec.OppCloseQuarter = value
		case "Activ Create Date UTC":
			rec.ActivCreateDateUtc = value
		case "SBB Region L1":
			rec.SbbRegionL1 = value
		case "SBB Region L2":
			rec.SbbRegionL2 = value
		case "SBB Region L3":
			rec.SbbRegionL3 = value
		case "SBB Region L4":
			rec.SbbRegionL4 = value
		case "SBB Region L5":
			rec.SbbRegionL5 = value
		}
	}
	return rec
}

// MapDetailRow maps one Activities_2025_Details time-tracking row.
func MapDetailRow(row RawRow) types.ActivityDetailRecord {
	var rec types.ActivityDetailRecord
	for header, value := range row {
		switch strings.TrimSpace(header) {
		case "Empl Name":
			rec.ActivTeamEmplName = strings.TrimSpace(value)
		case "Opp ID":
			rec.OppID = value
		case "DATE UTC [mmm D, YYYY]":
			rec.ActivCreateDateUtc = value
		case "Time Recorded Hours":
			rec.TimeRecordedHours = ParseNumber(value)
		}
	}
	return rec
}
