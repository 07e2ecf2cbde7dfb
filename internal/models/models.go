package models

import (
	"math"
	"time"
)

// EntityStatus is the delivery status shared by campaigns, ad sets and ads.
type EntityStatus string

const (
	StatusActive  EntityStatus = "ACTIVE"
	StatusPaused  EntityStatus = "PAUSED"
	StatusDeleted EntityStatus = "DELETED"
)

// CampaignObjective is the closed objective taxonomy. Meta and Google values
// coexist in one enum because the classifier and ranking layers must treat
// them uniformly.
type CampaignObjective string

// Meta objectives.
const (
	ObjectiveLeads        CampaignObjective = "OUTCOME_LEADS"
	ObjectiveSales        CampaignObjective = "OUTCOME_SALES"
	ObjectiveTraffic      CampaignObjective = "OUTCOME_TRAFFIC"
	ObjectiveAwareness    CampaignObjective = "OUTCOME_AWARENESS"
	ObjectiveEngagement   CampaignObjective = "OUTCOME_ENGAGEMENT"
	ObjectiveAppPromotion CampaignObjective = "OUTCOME_APP_PROMOTION"
)

// Google advertising channel types, kept as native objectives.
const (
	ObjectiveSearch         CampaignObjective = "SEARCH"
	ObjectiveDisplay        CampaignObjective = "DISPLAY"
	ObjectiveVideo          CampaignObjective = "VIDEO"
	ObjectiveShopping       CampaignObjective = "SHOPPING"
	ObjectivePerformanceMax CampaignObjective = "PERFORMANCE_MAX"
	ObjectiveDiscovery      CampaignObjective = "DISCOVERY"
	ObjectiveLocal          CampaignObjective = "LOCAL"
	ObjectiveSmart          CampaignObjective = "SMART"
)

// MetricKey names one field of a MetricSet for ranking and KPI selection.
type MetricKey string

const (
	MetricImpressions MetricKey = "impressions"
	MetricReach       MetricKey = "reach"
	MetricClicks      MetricKey = "clicks"
	MetricSpend       MetricKey = "spend"
	MetricCTR         MetricKey = "ctr"
	MetricCPC         MetricKey = "cpc"
	MetricCPM         MetricKey = "cpm"
	MetricLeads       MetricKey = "leads"
	MetricCPL         MetricKey = "cpl"
	MetricSales       MetricKey = "sales"
	MetricCPS         MetricKey = "cps"
)

// BaseMetrics are the summable counters a MetricSet is derived from. Spend is
// always in major currency units; micros conversion happens in the adapters.
type BaseMetrics struct {
	Impressions int     `json:"impressions"`
	Reach       int     `json:"reach"`
	Clicks      int     `json:"clicks"`
	Spend       float64 `json:"spend"`
	Leads       int     `json:"leads"`
	Sales       int     `json:"sales"`
}

// Add returns the counter-wise sum of two base metric records.
func (b BaseMetrics) Add(o BaseMetrics) BaseMetrics {
	return BaseMetrics{
		Impressions: b.Impressions + o.Impressions,
		Reach:       b.Reach + o.Reach,
		Clicks:      b.Clicks + o.Clicks,
		Spend:       b.Spend + o.Spend,
		Leads:       b.Leads + o.Leads,
		Sales:       b.Sales + o.Sales,
	}
}

// MetricSet is the canonical metric record carried at every hierarchy level.
// The ratio fields are always recomputed from the base counters after
// aggregation, never summed or averaged directly.
type MetricSet struct {
	Impressions int     `json:"impressions"`
	Reach       int     `json:"reach"`
	Clicks      int     `json:"clicks"`
	Spend       float64 `json:"spend"`
	CTR         float64 `json:"ctr"`
	CPC         float64 `json:"cpc"`
	CPM         float64 `json:"cpm"`
	Leads       int     `json:"leads"`
	CPL         float64 `json:"cpl"`
	Sales       int     `json:"sales"`
	CPS         float64 `json:"cps"`
}

// Base extracts the summable counters.
func (m MetricSet) Base() BaseMetrics {
	return BaseMetrics{
		Impressions: m.Impressions,
		Reach:       m.Reach,
		Clicks:      m.Clicks,
		Spend:       m.Spend,
		Leads:       m.Leads,
		Sales:       m.Sales,
	}
}

// Value returns the named metric as a float for sorting and comparison.
func (m MetricSet) Value(key MetricKey) float64 {
	switch key {
	case MetricImpressions:
		return float64(m.Impressions)
	case MetricReach:
		return float64(m.Reach)
	case MetricClicks:
		return float64(m.Clicks)
	case MetricSpend:
		return m.Spend
	case MetricCTR:
		return m.CTR
	case MetricCPC:
		return m.CPC
	case MetricCPM:
		return m.CPM
	case MetricLeads:
		return float64(m.Leads)
	case MetricCPL:
		return m.CPL
	case MetricSales:
		return float64(m.Sales)
	case MetricCPS:
		return m.CPS
	}
	return 0
}

// Rounded returns a copy with currency and percent fields rounded to two
// decimal places. Only for the formatting boundary; aggregation keeps full
// precision.
func (m MetricSet) Rounded() MetricSet {
	m.Spend = round2(m.Spend)
	m.CTR = round2(m.CTR)
	m.CPC = round2(m.CPC)
	m.CPM = round2(m.CPM)
	m.CPL = round2(m.CPL)
	m.CPS = round2(m.CPS)
	return m
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Ad is the leaf of the campaign hierarchy.
type Ad struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Status  EntityStatus `json:"status"`
	Metrics MetricSet    `json:"metrics"`
}

// AdSet owns its ads. CampaignID is a non-owning back-reference used when
// flattening pools for rankings.
type AdSet struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Status     EntityStatus `json:"status"`
	CampaignID string       `json:"campaign_id"`
	Metrics    MetricSet    `json:"metrics"`
	Ads        []Ad         `json:"ads"`
}

// Campaign is the root of a per-source hierarchy for one date range.
type Campaign struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Status    EntityStatus      `json:"status"`
	Objective CampaignObjective `json:"objective"`
	Metrics   MetricSet         `json:"metrics"`
	AdSets    []AdSet           `json:"ad_sets"`
}

// ObjectiveBreakdown is one row per distinct objective in a campaign set.
type ObjectiveBreakdown struct {
	Objective CampaignObjective `json:"objective"`
	Spend     float64           `json:"spend"`
	Campaigns int               `json:"campaigns"`
}

// RankingItem is a display-ready projection of an ad or ad set for one
// ranking metric.
type RankingItem struct {
	Name           string  `json:"name"`
	MainValue      float64 `json:"main_value"`
	SecondaryLabel string  `json:"secondary_label"`
	SecondaryValue float64 `json:"secondary_value"`
	TertiaryLabel  string  `json:"tertiary_label"`
	TertiaryValue  float64 `json:"tertiary_value"`
}

// FunnelStage carries a stage value and its conversion rate against the
// previous stage (0-100; first stage is always 100).
type FunnelStage struct {
	Name           string  `json:"name"`
	Value          int     `json:"value"`
	ConversionRate float64 `json:"conversion_rate"`
}

// SparklinePoint is one daily bucket of base counters for trend charts.
type SparklinePoint struct {
	Date        string  `json:"date"`
	Impressions int     `json:"impressions"`
	Reach       int     `json:"reach"`
	Clicks      int     `json:"clicks"`
	Spend       float64 `json:"spend"`
	Leads       int     `json:"leads"`
	Sales       int     `json:"sales"`
}

// LeadsSnapshot is the CRM-side KPI view feeding the qualification funnel.
type LeadsSnapshot struct {
	Total      int `json:"total"`
	WithSurvey int `json:"with_survey"`
	Hot        int `json:"hot"`
	// Qualified is the true score-band count when the CRM supplies it;
	// nil means callers should fall back to the hot-leads estimate.
	Qualified *int `json:"qualified,omitempty"`
}

// DateRange is an inclusive day window.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Previous returns the equal-length window immediately preceding r, for
// period-over-period comparison.
func (r DateRange) Previous() DateRange {
	days := int(r.To.Sub(r.From).Hours()/24) + 1
	return DateRange{
		From: r.From.AddDate(0, 0, -days),
		To:   r.To.AddDate(0, 0, -days),
	}
}

// Contains reports whether t falls on a day inside the window.
func (r DateRange) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(r.From) && !day.After(r.To)
}
