package metrics

import (
	"sort"

	"metricshub/internal/models"
)

// MergeSparklines merges daily buckets from multiple sources into one series
// keyed by date, sorted ascending. Counters are summed per day.
func MergeSparklines(series ...[]models.SparklinePoint) []models.SparklinePoint {
	byDate := make(map[string]models.SparklinePoint)
	for _, s := range series {
		for _, p := range s {
			agg := byDate[p.Date]
			agg.Date = p.Date
			agg.Impressions += p.Impressions
			agg.Reach += p.Reach
			agg.Clicks += p.Clicks
			agg.Spend += p.Spend
			agg.Leads += p.Leads
			agg.Sales += p.Sales
			byDate[p.Date] = agg
		}
	}
	merged := make([]models.SparklinePoint, 0, len(byDate))
	for _, p := range byDate {
		merged = append(merged, p)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Date < merged[j].Date })
	return merged
}
