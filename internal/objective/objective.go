// Package objective classifies mixed-taxonomy campaign collections by their
// dominant objective and resolves the static metric-priority configuration
// that drives KPI and ranking display.
package objective

import (
	"metricshub/internal/models"
)

// Classification is the result of inspecting a campaign collection.
type Classification struct {
	DominantObjective models.CampaignObjective    `json:"dominant_objective"`
	Breakdown         []models.ObjectiveBreakdown `json:"breakdown"`
}

// Classify builds the per-objective spend breakdown and picks the dominant
// objective by largest summed spend. Google campaigns bucket under the
// Meta-style objective their channel type maps to, so mixed-platform accounts
// classify on one taxonomy. Exact ties resolve to the objective first
// encountered in input order, so the result is deterministic for a fixed
// input.
func Classify(campaigns []models.Campaign) Classification {
	var breakdown []models.ObjectiveBreakdown
	index := make(map[models.CampaignObjective]int)

	for _, c := range campaigns {
		obj := c.Objective
		if mapped, ok := GoogleChannelObjective[obj]; ok {
			obj = mapped
		}
		i, seen := index[obj]
		if !seen {
			index[obj] = len(breakdown)
			breakdown = append(breakdown, models.ObjectiveBreakdown{Objective: obj})
			i = len(breakdown) - 1
		}
		breakdown[i].Spend += c.Metrics.Spend
		breakdown[i].Campaigns++
	}

	var dominant models.CampaignObjective
	best := -1.0
	for _, row := range breakdown {
		if row.Spend > best {
			best = row.Spend
			dominant = row.Objective
		}
	}

	return Classification{DominantObjective: dominant, Breakdown: breakdown}
}

// SortOrder tells the ranking engine which direction "better" is for a
// metric.
type SortOrder string

const (
	Ascending  SortOrder = "asc"  // lower is better (costs)
	Descending SortOrder = "desc" // higher is better (volume, CTR)
)

// OrderFor resolves the sort direction for a metric. Cost metrics rank
// ascending; everything else descending.
func OrderFor(metric models.MetricKey) SortOrder {
	switch metric {
	case models.MetricCPL, models.MetricCPC, models.MetricCPM, models.MetricCPS, models.MetricSpend:
		return Ascending
	}
	return Descending
}

// RankingPair is the metric pair driving the top-N lists for one objective.
type RankingPair struct {
	Primary   models.MetricKey `json:"primary"`
	Secondary models.MetricKey `json:"secondary"`
}

// MetricPriorityConfig resolves which metrics matter most for one objective.
type MetricPriorityConfig struct {
	PrimaryMetric   models.MetricKey   `json:"primary_metric"`
	SecondaryMetric models.MetricKey   `json:"secondary_metric"`
	GoalMetric      models.MetricKey   `json:"goal_metric"`
	GoalLabel       string             `json:"goal_label"`
	RankingMetrics  RankingPair        `json:"ranking_metrics"`
	KPIPriority     []models.MetricKey `json:"kpi_priority"`
}

// DefaultConfig is the documented fallback for objectives with no mapping.
var DefaultConfig = MetricPriorityConfig{
	PrimaryMetric:   models.MetricClicks,
	SecondaryMetric: models.MetricCPC,
	GoalMetric:      models.MetricClicks,
	GoalLabel:       "Cliques",
	RankingMetrics:  RankingPair{Primary: models.MetricClicks, Secondary: models.MetricCPC},
	KPIPriority:     []models.MetricKey{models.MetricClicks, models.MetricCPC, models.MetricCTR, models.MetricSpend},
}

var leadsConfig = MetricPriorityConfig{
	PrimaryMetric:   models.MetricLeads,
	SecondaryMetric: models.MetricCPL,
	GoalMetric:      models.MetricLeads,
	GoalLabel:       "Leads",
	RankingMetrics:  RankingPair{Primary: models.MetricLeads, Secondary: models.MetricCPL},
	KPIPriority:     []models.MetricKey{models.MetricLeads, models.MetricCPL, models.MetricCTR, models.MetricSpend},
}

var salesConfig = MetricPriorityConfig{
	PrimaryMetric:   models.MetricSales,
	SecondaryMetric: models.MetricCPS,
	GoalMetric:      models.MetricSales,
	GoalLabel:       "Vendas",
	RankingMetrics:  RankingPair{Primary: models.MetricSales, Secondary: models.MetricCPS},
	KPIPriority:     []models.MetricKey{models.MetricSales, models.MetricCPS, models.MetricLeads, models.MetricSpend},
}

var trafficConfig = MetricPriorityConfig{
	PrimaryMetric:   models.MetricClicks,
	SecondaryMetric: models.MetricCPC,
	GoalMetric:      models.MetricClicks,
	GoalLabel:       "Cliques",
	RankingMetrics:  RankingPair{Primary: models.MetricClicks, Secondary: models.MetricCPC},
	KPIPriority:     []models.MetricKey{models.MetricClicks, models.MetricCPC, models.MetricCTR, models.MetricSpend},
}

var awarenessConfig = MetricPriorityConfig{
	PrimaryMetric:   models.MetricImpressions,
	SecondaryMetric: models.MetricCPM,
	GoalMetric:      models.MetricImpressions,
	GoalLabel:       "Impressões",
	RankingMetrics:  RankingPair{Primary: models.MetricImpressions, Secondary: models.MetricCPM},
	KPIPriority:     []models.MetricKey{models.MetricImpressions, models.MetricReach, models.MetricCPM, models.MetricSpend},
}

var engagementConfig = MetricPriorityConfig{
	PrimaryMetric:   models.MetricClicks,
	SecondaryMetric: models.MetricCTR,
	GoalMetric:      models.MetricClicks,
	GoalLabel:       "Interações",
	RankingMetrics:  RankingPair{Primary: models.MetricCTR, Secondary: models.MetricCPC},
	KPIPriority:     []models.MetricKey{models.MetricClicks, models.MetricCTR, models.MetricCPC, models.MetricSpend},
}

// priorityConfigs is the closed per-objective table. Google channel types
// share the config of the Meta objective they classify as (see
// GoogleChannelObjective), keeping the two taxonomies uniform downstream.
var priorityConfigs = map[models.CampaignObjective]MetricPriorityConfig{
	models.ObjectiveLeads:        leadsConfig,
	models.ObjectiveSales:        salesConfig,
	models.ObjectiveTraffic:      trafficConfig,
	models.ObjectiveAwareness:    awarenessConfig,
	models.ObjectiveEngagement:   engagementConfig,
	models.ObjectiveAppPromotion: engagementConfig,

	models.ObjectiveSearch:         leadsConfig,
	models.ObjectiveDisplay:        awarenessConfig,
	models.ObjectiveVideo:          awarenessConfig,
	models.ObjectiveShopping:       salesConfig,
	models.ObjectivePerformanceMax: salesConfig,
	models.ObjectiveDiscovery:      awarenessConfig,
	models.ObjectiveLocal:          trafficConfig,
	models.ObjectiveSmart:          leadsConfig,
}

// ResolveConfig looks up the metric-priority configuration for an objective.
// Unknown objectives resolve to DefaultConfig, never an error.
func ResolveConfig(obj models.CampaignObjective) MetricPriorityConfig {
	if cfg, ok := priorityConfigs[obj]; ok {
		return cfg
	}
	return DefaultConfig
}

// Category is the coarse objective bucket used for summary badges. It is a
// display grouping only and is deliberately separate from the
// metric-priority table.
type Category string

const (
	CategoryLeads      Category = "leads"
	CategoryTraffic    Category = "traffic"
	CategoryAwareness  Category = "awareness"
	CategoryEngagement Category = "engagement"
	CategorySales      Category = "sales"
)

var categories = map[models.CampaignObjective]Category{
	models.ObjectiveLeads:        CategoryLeads,
	models.ObjectiveSales:        CategorySales,
	models.ObjectiveTraffic:      CategoryTraffic,
	models.ObjectiveAwareness:    CategoryAwareness,
	models.ObjectiveEngagement:   CategoryEngagement,
	models.ObjectiveAppPromotion: CategoryEngagement,

	models.ObjectiveSearch:         CategoryLeads,
	models.ObjectiveDisplay:        CategoryAwareness,
	models.ObjectiveVideo:          CategoryAwareness,
	models.ObjectiveShopping:       CategorySales,
	models.ObjectivePerformanceMax: CategorySales,
	models.ObjectiveDiscovery:      CategoryAwareness,
	models.ObjectiveLocal:          CategoryTraffic,
	models.ObjectiveSmart:          CategoryLeads,
}

// CategoryOf buckets an objective for badge display. Unknown objectives fall
// into the traffic bucket, mirroring the default config.
func CategoryOf(obj models.CampaignObjective) Category {
	if c, ok := categories[obj]; ok {
		return c
	}
	return CategoryTraffic
}

// GoogleChannelObjective maps a Google advertising channel type to the
// closest Meta-style objective. Classify buckets Google spend through this
// table; the campaign itself keeps its native Google objective.
var GoogleChannelObjective = map[models.CampaignObjective]models.CampaignObjective{
	models.ObjectiveSearch:         models.ObjectiveLeads,
	models.ObjectiveDisplay:        models.ObjectiveAwareness,
	models.ObjectiveVideo:          models.ObjectiveAwareness,
	models.ObjectiveShopping:       models.ObjectiveSales,
	models.ObjectivePerformanceMax: models.ObjectiveSales,
	models.ObjectiveDiscovery:      models.ObjectiveAwareness,
	models.ObjectiveLocal:          models.ObjectiveTraffic,
	models.ObjectiveSmart:          models.ObjectiveLeads,
}
