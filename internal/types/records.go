package types

// OpportunityRecord is one row of the ADRM sheet. OppID is the join key
// shared with activity and detail records; monetary fields are already
// coerced by the schema mapper and never NaN.
type OpportunityRecord struct {
	TimeCqn                    string  `json:"timeCqn,omitempty"`
	YearQtr                    string  `json:"yearQtr,omitempty"`
	RegionL1Desc               string  `json:"regionL1Desc,omitempty"`
	RegionL2Desc               string  `json:"regionL2Desc,omitempty"`
	RegionL3Desc               string  `json:"regionL3Desc,omitempty"`
	RegionL4Desc               string  `json:"regionL4Desc,omitempty"`
	RegionL5Desc               string  `json:"regionL5Desc,omitempty"`
	CompanyID                  string  `json:"companyId,omitempty"`
	CompanyName                string  `json:"companyName,omitempty"`
	OppDesc                    string  `json:"oppDesc,omitempty"`
	OppID                      string  `json:"oppId"`
	OppStatus                  string  `json:"oppStatus,omitempty"`
	OppOfsLink                 string  `json:"oppOfsLink,omitempty"`
	Source                     string  `json:"source,omitempty"`
	OppOwner                   string  `json:"oppOwner,omitempty"`
	BpRevParty                 string  `json:"bpRevParty,omitempty"`
	DrmCategory                string  `json:"drmCategory,omitempty"`
	MlCqDynamic                string  `json:"mlCqDynamic,omitempty"`
	OppPhase                   string  `json:"oppPhase,omitempty"`
	QuoteAvgNet                float64 `json:"quoteAvgNet"`
	LocalAoName                string  `json:"localAoName,omitempty"`
	QualificationSummary       string  `json:"qualificationSummary,omitempty"`
	CompellingEvent            string  `json:"compellingEvent,omitempty"`
	FundingScore               string  `json:"fundingScore,omitempty"`
	StakeholderScore           string  `json:"stakeholderScore,omitempty"`
	CustomerChallenge          string  `json:"customerChallenge,omitempty"`
	BusinessValue              string  `json:"businessValue,omitempty"`
	SolutionAndDifferentiation string  `json:"solutionAndDifferentiation,omitempty"`
	Competition                string  `json:"competition,omitempty"`
	PartnersAndEco             string  `json:"partnersAndEco,omitempty"`
	ClosePlan                  string  `json:"closePlan,omitempty"`
	BusinessCase               string  `json:"businessCase,omitempty"`
	BomConfirmed               string  `json:"bomConfirmed,omitempty"`
	Adrm                       float64 `json:"adrm"`
	Upside                     float64 `json:"upside"`
	Total                      float64 `json:"total"`
	AdrmUpside                 float64 `json:"adrmUpside"`
}

// ActivityRecord is one row of the Actividades_2025 sheet. Several
// activities may reference the same OppID; the referenced opportunity is
// not required to exist in the ADRM sheet.
type ActivityRecord struct {
	ActivID                 string  `json:"activId,omitempty"`
	ActivType               string  `json:"activType,omitempty"`
	AcctName                string  `json:"acctName,omitempty"`
	OppID                   string  `json:"oppId"`
	OppPhase                string  `json:"oppPhase,omitempty"`
	OppDescription          string  `json:"oppDescription,omitempty"`
	OppAcvUsdK              float64 `json:"oppAcvUsdK"`
	ActivStatus             string  `json:"activStatus,omitempty"`
	ActivTeamEmplName       string  `json:"activTeamEmplName,omitempty"`
	ActivInitiative         string  `json:"activInitiative,omitempty"`
	ActivInitiativeCategory string  `json:"activInitiativeCategory,omitempty"`
	ActivLeadManagerName    string  `json:"activLeadManagerName,omitempty"`
	ActivTeamManagerName    string  `json:"activTeamManagerName,omitempty"`
	OppCloseQuarter         string  `json:"oppCloseQuarter,omitempty"`
	ActivCreateDateUtc      string  `json:"activCreateDateUtc,omitempty"`
	SbbRegionL1             string  `json:"sbbRegionL1,omitempty"`
	SbbRegionL2             string  `json:"sbbRegionL2,omitempty"`
	SbbRegionL3             string  `json:"sbbRegionL3,omitempty"`
	SbbRegionL4             string  `json:"sbbRegionL4,omitempty"`
	SbbRegionL5             string  `json:"sbbRegionL5,omitempty"`
}

// ActivityDetailRecord is one time-tracking row of the
// Activities_2025_Details sheet.
type ActivityDetailRecord struct {
	ActivTeamEmplName  string  `json:"activTeamEmplName,omitempty"`
	OppID              string  `json:"oppId"`
	ActivCreateDateUtc string  `json:"activCreateDateUtc,omitempty"`
	TimeRecordedHours  float64 `json:"timeRecordedHours"`
}

// EnrichedActivityRecord is an activity with the matching opportunity's
// total value and status attached. Unmatched activities carry 0 / "N/A".
type EnrichedActivityRecord struct {
	ActivityRecord
	AdrmTotalValue float64 `json:"adrmTotalValue"`
	OppStatus      string  `json:"oppStatus"`
}

// MetricSet is the KPI block for one manager/employee selection.
type MetricSet struct {
	UniqueOppsCount   int     `json:"uniqueOppsCount"`
	SupportedPipeline float64 `json:"supportedPipeline"`
	BookedValue       float64 `json:"bookedValue"`
	BookedOppsCount   int     `json:"bookedOppsCount"`
	LeanIXCount       int     `json:"leanIXCount"`
}

// Tables holds the three canonical record sequences produced by one
// ingestion, in sheet row order.
type Tables struct {
	Opportunities []OpportunityRecord    `json:"opportunityData"`
	Activities    []ActivityRecord       `json:"activityData"`
	Details       []ActivityDetailRecord `json:"activityDetailData"`
}
