package metrics

import (
	"metricshub/internal/models"
)

// CompareChange computes the percentage delta between a current and previous
// value. A previous of zero with a nonzero current reports +100 (an
// approximation, kept for parity with the dashboard contract); zero against
// zero is nil, meaning no signal rather than a real 0% change.
func CompareChange(current, previous float64) *float64 {
	if previous == 0 {
		if current == 0 {
			return nil
		}
		v := 100.0
		return &v
	}
	v := (current - previous) / previous * 100
	return &v
}

// ChangeSet carries per-metric period-over-period deltas. Nil means the
// metric had no signal in either period.
type ChangeSet struct {
	Impressions *float64 `json:"impressions"`
	Reach       *float64 `json:"reach"`
	Clicks      *float64 `json:"clicks"`
	Spend       *float64 `json:"spend"`
	CTR         *float64 `json:"ctr"`
	CPC         *float64 `json:"cpc"`
	CPM         *float64 `json:"cpm"`
	Leads       *float64 `json:"leads"`
	CPL         *float64 `json:"cpl"`
	Sales       *float64 `json:"sales"`
	CPS         *float64 `json:"cps"`
}

// ComparePeriods applies CompareChange to every metric of two aligned
// snapshots. Callers are responsible for fetching equal-length periods; no
// date validation happens here.
func ComparePeriods(current, previous models.MetricSet) ChangeSet {
	return ChangeSet{
		Impressions: CompareChange(float64(current.Impressions), float64(previous.Impressions)),
		Reach:       CompareChange(float64(current.Reach), float64(previous.Reach)),
		Clicks:      CompareChange(float64(current.Clicks), float64(previous.Clicks)),
		Spend:       CompareChange(current.Spend, previous.Spend),
		CTR:         CompareChange(current.CTR, previous.CTR),
		CPC:         CompareChange(current.CPC, previous.CPC),
		CPM:         CompareChange(current.CPM, previous.CPM),
		Leads:       CompareChange(float64(current.Leads), float64(previous.Leads)),
		CPL:         CompareChange(current.CPL, previous.CPL),
		Sales:       CompareChange(float64(current.Sales), float64(previous.Sales)),
		CPS:         CompareChange(current.CPS, previous.CPS),
	}
}
