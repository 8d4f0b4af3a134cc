package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumberIsTotal(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"1234", 1234},
		{"1,234", 1234},
		{"1,234,567.5", 1234567.5},
		{`"500"`, 500},
		{"'1,000'", 1000},
		{" 42.5 ", 42.5},
		{"-3", -3},
		{"abc", 0},
		{"12abc", 0},
		{"NaN", 0},
		{"Inf", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseNumber(tc.in), "input %q", tc.in)
	}
}

func TestMapOpportunityRow(t *testing.T) {
	rec := MapOpportunityRow(RawRow{
		"  Opp ID  ":     "12345",
		"Opp Status":     "Won",
		"Opp Owner":      "Ana Ruiz",
		"Region L3 Desc": "Iberia",
		"Total":          "1,250,000",
		"ADRM":           `"980000"`,
		"Upside":         "not-a-number",
		"ADRM + Upside":  "980000",
		"Quote Avg Net":  "",
		"Mystery Column": "dropped",
	})
	assert.Equal(t, "12345", rec.OppID)
	assert.Equal(t, "Won", rec.OppStatus)
	assert.Equal(t, "Ana Ruiz", rec.OppOwner)
	assert.Equal(t, "Iberia", rec.RegionL3Desc)
	assert.Equal(t, 1250000.0, rec.Total)
	assert.Equal(t, 980000.0, rec.Adrm)
	assert.Zero(t, rec.Upside, "malformed cell degrades to zero, never an error")
	assert.Zero(t, rec.QuoteAvgNet)
	assert.Empty(t, rec.CompanyName, "missing header leaves the field at its default")
}

func TestMapActivityRowTrimsGroupKeys(t *testing.T) {
	rec := MapActivityRow(RawRow{
		"Activ ID":                  "A-1",
		"Opp ID":                    "777",
		"Opp ACV USD K":             "1,500",
		"Activ Team Empl Name *":    "  Luis Gomez  ",
		"Activ Team Manager Name *": "Marta Diaz ",
		"Activ Initiative *":        "LeanIX",
	})
	require.Equal(t, "777", rec.OppID)
	assert.Equal(t, "Luis Gomez", rec.ActivTeamEmplName)
	assert.Equal(t, "Marta Diaz", rec.ActivTeamManagerName)
	assert.Equal(t, 1500.0, rec.OppAcvUsdK)
	assert.Equal(t, "LeanIX", rec.ActivInitiative)
}

func TestMapDetailRow(t *testing.T) {
	rec := MapDetailRow(RawRow{
		"Empl Name":              " Luis Gomez",
		"Opp ID":                 "777",
		"DATE UTC [mmm D, YYYY]": "Mar 5, 2025",
		"Time Recorded Hours":    "7.5",
	})
	assert.Equal(t, "Luis Gomez", rec.ActivTeamEmplName)
	assert.Equal(t, "777", rec.OppID)
	assert.Equal(t, "Mar 5, 2025", rec.ActivCreateDateUtc)
	assert.Equal(t, 7.5, rec.TimeRecordedHours)
}
