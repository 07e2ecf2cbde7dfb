// Package funnel derives the acquisition and lead-qualification funnels.
package funnel

import (
	"metricshub/internal/models"
)

// Acquisition builds the five-stage ad funnel from account totals. The first
// stage is always 100%; each later stage converts against its predecessor,
// with a zero predecessor yielding 0.
func Acquisition(totals models.MetricSet) []models.FunnelStage {
	values := []struct {
		name  string
		value int
	}{
		{"Impressões", totals.Impressions},
		{"Alcance", totals.Reach},
		{"Cliques", totals.Clicks},
		{"Leads", totals.Leads},
		{"Vendas", totals.Sales},
	}
	stages := make([]models.FunnelStage, len(values))
	for i, v := range values {
		rate := 100.0
		if i > 0 {
			rate = conversionRate(v.value, values[i-1].value)
		}
		stages[i] = models.FunnelStage{Name: v.name, Value: v.value, ConversionRate: rate}
	}
	return stages
}

// EstimateQualifiedFromHot approximates the qualified-lead count as twice the
// hot-lead count. This is a labeled heuristic, not a true count of the
// mid-score band; prefer passing a real count to Qualification when the CRM
// supplies one.
func EstimateQualifiedFromHot(hot int) int {
	return hot * 2
}

// Qualification builds the lead-scoring funnel (Total, Surveyed, Qualified,
// Hot). When the snapshot carries no true qualified count and no override is
// given, the hot-leads estimate fills the gap.
func Qualification(leads models.LeadsSnapshot, qualifiedOverride *int) []models.FunnelStage {
	qualified := EstimateQualifiedFromHot(leads.Hot)
	if leads.Qualified != nil {
		qualified = *leads.Qualified
	}
	if qualifiedOverride != nil {
		qualified = *qualifiedOverride
	}

	values := []struct {
		name  string
		value int
	}{
		{"Total", leads.Total},
		{"Com pesquisa", leads.WithSurvey},
		{"Qualificados", qualified},
		{"Quentes", leads.Hot},
	}
	stages := make([]models.FunnelStage, len(values))
	for i, v := range values {
		rate := 100.0
		if i > 0 {
			rate = conversionRate(v.value, values[i-1].value)
		}
		stages[i] = models.FunnelStage{Name: v.name, Value: v.value, ConversionRate: rate}
	}
	return stages
}

func conversionRate(value, previous int) float64 {
	if previous == 0 {
		return 0
	}
	return float64(value) / float64(previous) * 100
}
