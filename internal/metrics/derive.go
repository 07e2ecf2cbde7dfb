// Package metrics implements the normalization and aggregation core: deriving
// ratio metrics from base counters, rolling the campaign hierarchy up into
// totals and comparing aligned period snapshots. Everything here is pure;
// callers own fetching, storage and formatting.
package metrics

import (
	"math"

	"metricshub/internal/models"
)

// Derive computes the canonical MetricSet from summed base counters. Spend
// must already be in major currency units. Every ratio uses the
// zero-denominator-yields-zero policy: no NaN, no Inf, no panic. Values are
// kept at full precision; rounding is the formatting boundary's job.
func Derive(base models.BaseMetrics) models.MetricSet {
	return models.MetricSet{
		Impressions: base.Impressions,
		Reach:       base.Reach,
		Clicks:      base.Clicks,
		Spend:       base.Spend,
		CTR:         safeDivide(float64(base.Clicks), float64(base.Impressions)) * 100,
		CPC:         safeDivide(base.Spend, float64(base.Clicks)),
		CPM:         safeDivide(base.Spend, float64(base.Impressions)) * 1000,
		Leads:       base.Leads,
		CPL:         safeDivide(base.Spend, float64(base.Leads)),
		Sales:       base.Sales,
		CPS:         safeDivide(base.Spend, float64(base.Sales)),
	}
}

func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}
