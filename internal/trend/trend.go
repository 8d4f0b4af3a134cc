package trend

import (
	"fmt"
	"sort"
	"time"

	"sales-insights-go/internal/types"
)

// MonthlyHours is one bucket of the hours-evolution series. Trend is nil
// when the series is too short for a fit.
type MonthlyHours struct {
	Name  string   `json:"name"`
	Key   string   `json:"key"`
	Hours float64  `json:"hours"`
	Index int      `json:"index"`
	Trend *float64 `json:"trend,omitempty"`
}

// Layouts accepted for detail-record timestamps. The sheet's own header
// announces "mmm D, YYYY", the rest cover the formats excelize reports for
// genuine date cells.
var dateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/06",
	"01-02-06",
	"2-Jan-06",
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthlySeries buckets the detail records by calendar month, sums recorded
// hours per bucket, and fits a least-squares line over the bucket index.
//
// Records with an unparsable timestamp are excluded rather than defaulted.
// The bucket key uses a zero-based, zero-padded month so lexicographic order
// equals chronological order. With fewer than two buckets, or a degenerate
// fit denominator, the series is returned without trend values; projections
// below zero are clamped since recorded hours cannot be negative.
func MonthlySeries(details []types.ActivityDetailRecord) []MonthlyHours {
	totals := map[string]float64{}
	for _, d := range details {
		t, ok := parseDate(d.ActivCreateDateUtc)
		if !ok {
			continue
		}
		key := fmt.Sprintf("%d-%02d", t.Year(), int(t.Month())-1)
		totals[key] += d.TimeRecordedHours
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]MonthlyHours, 0, len(keys))
	for i, key := range keys {
		var year, month0 int
		fmt.Sscanf(key, "%d-%d", &year, &month0)
		series = append(series, MonthlyHours{
			Name:  time.Month(month0 + 1).String()[:3],
			Key:   key,
			Hours: totals[key],
			Index: i,
		})
	}

	if len(series) < 2 {
		return series
	}

	var sumX, sumY, sumXY, sumX2 float64
	n := float64(len(series))
	for _, p := range series {
		x := float64(p.Index)
		sumX += x
		sumY += p.Hours
		sumXY += x * p.Hours
		sumX2 += x * x
	}
	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return series
	}
	slope := (n*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / n

	for i := range series {
		v := slope*float64(series[i].Index) + intercept
		if v < 0 {
			v = 0
		}
		t := v
		series[i].Trend = &t
	}
	return series
}
