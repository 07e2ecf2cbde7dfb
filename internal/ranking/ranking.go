// Package ranking produces threshold-filtered top-N lists of ads or ad sets
// for one metric.
package ranking

import (
	"sort"

	"metricshub/internal/models"
	"metricshub/internal/objective"
)

// DefaultMinLeads is the minimum lead count an entity needs before it can be
// ranked. Low-volume entities produce statistically meaningless winners (one
// lead at R$1 CPL looks unbeatable), so they are excluded by default.
const DefaultMinLeads = 5

// DefaultTopN is the ranking list length.
const DefaultTopN = 5

// Candidate is one rankable entity, flattened from an ad or ad set.
type Candidate struct {
	Name    string
	Metrics models.MetricSet
}

// Result is a ranked list plus the filtered pool size before truncation.
// TotalAvailable lets callers render "showing 5 of N" and distinguish the
// below-threshold empty case from a truly empty pool.
type Result struct {
	Items          []models.RankingItem `json:"items"`
	TotalAvailable int                  `json:"total_available"`
}

// AdSetCandidates flattens all ad sets in a campaign collection.
func AdSetCandidates(campaigns []models.Campaign) []Candidate {
	var pool []Candidate
	for _, c := range campaigns {
		for _, as := range c.AdSets {
			pool = append(pool, Candidate{Name: as.Name, Metrics: as.Metrics})
		}
	}
	return pool
}

// AdCandidates flattens all ads in a campaign collection.
func AdCandidates(campaigns []models.Campaign) []Candidate {
	var pool []Candidate
	for _, c := range campaigns {
		for _, as := range c.AdSets {
			for _, ad := range as.Ads {
				pool = append(pool, Candidate{Name: ad.Name, Metrics: ad.Metrics})
			}
		}
	}
	return pool
}

// Rank filters the pool to entities with at least minLeads leads, sorts by
// the metric in the given order and truncates to topN. Exactly equal metric
// values keep their input order (stable sort); no secondary tie-break key is
// defined.
func Rank(pool []Candidate, metric models.MetricKey, order objective.SortOrder, minLeads, topN int) Result {
	if topN <= 0 {
		topN = DefaultTopN
	}

	filtered := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if c.Metrics.Leads >= minLeads {
			filtered = append(filtered, c)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i].Metrics.Value(metric), filtered[j].Metrics.Value(metric)
		if order == objective.Ascending {
			return a < b
		}
		return a > b
	})

	total := len(filtered)
	if len(filtered) > topN {
		filtered = filtered[:topN]
	}

	items := make([]models.RankingItem, 0, len(filtered))
	for _, c := range filtered {
		items = append(items, project(c, metric))
	}
	return Result{Items: items, TotalAvailable: total}
}

// RankByConfig runs both configured ranking metrics for a priority config.
func RankByConfig(pool []Candidate, cfg objective.MetricPriorityConfig, minLeads, topN int) map[models.MetricKey]Result {
	return map[models.MetricKey]Result{
		cfg.RankingMetrics.Primary:   Rank(pool, cfg.RankingMetrics.Primary, objective.OrderFor(cfg.RankingMetrics.Primary), minLeads, topN),
		cfg.RankingMetrics.Secondary: Rank(pool, cfg.RankingMetrics.Secondary, objective.OrderFor(cfg.RankingMetrics.Secondary), minLeads, topN),
	}
}

// project builds the display row: the ranked metric plus the two most
// relevant companion figures.
func project(c Candidate, metric models.MetricKey) models.RankingItem {
	item := models.RankingItem{
		Name:      c.Name,
		MainValue: c.Metrics.Value(metric),
	}
	switch metric {
	case models.MetricCPL, models.MetricLeads:
		item.SecondaryLabel, item.SecondaryValue = "leads", float64(c.Metrics.Leads)
		item.TertiaryLabel, item.TertiaryValue = "spend", c.Metrics.Spend
	case models.MetricCPS, models.MetricSales:
		item.SecondaryLabel, item.SecondaryValue = "sales", float64(c.Metrics.Sales)
		item.TertiaryLabel, item.TertiaryValue = "spend", c.Metrics.Spend
	case models.MetricCTR, models.MetricCPC, models.MetricClicks:
		item.SecondaryLabel, item.SecondaryValue = "clicks", float64(c.Metrics.Clicks)
		item.TertiaryLabel, item.TertiaryValue = "impressions", float64(c.Metrics.Impressions)
	default:
		item.SecondaryLabel, item.SecondaryValue = "impressions", float64(c.Metrics.Impressions)
		item.TertiaryLabel, item.TertiaryValue = "spend", c.Metrics.Spend
	}
	return item
}
