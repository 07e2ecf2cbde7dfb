package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metricshub/internal/models"
	"metricshub/internal/objective"
)

func candidate(name string, leads int, cpl float64) Candidate {
	return Candidate{Name: name, Metrics: models.MetricSet{Leads: leads, CPL: cpl, Spend: cpl * float64(leads)}}
}

func TestRankFiltersByMinLeads(t *testing.T) {
	pool := []Candidate{
		candidate("low", 3, 1),
		candidate("high", 10, 20),
		candidate("edge", 5, 15),
	}

	result := Rank(pool, models.MetricCPL, objective.Ascending, 5, 5)

	assert.Equal(t, 2, result.TotalAvailable)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "edge", result.Items[0].Name, "threshold is inclusive")
	assert.Equal(t, "high", result.Items[1].Name)
}

func TestRankTruncatesButReportsPoolSize(t *testing.T) {
	var pool []Candidate
	for i := 0; i < 8; i++ {
		pool = append(pool, candidate("c", 10, float64(i+1)))
	}

	result := Rank(pool, models.MetricCPL, objective.Ascending, 5, 5)

	assert.Len(t, result.Items, 5)
	assert.Equal(t, 8, result.TotalAvailable, "callers need 'showing 5 of 8'")
}

func TestRankBelowThresholdDistinctFromEmpty(t *testing.T) {
	pool := []Candidate{candidate("tiny", 1, 1)}

	filtered := Rank(pool, models.MetricCPL, objective.Ascending, 5, 5)
	assert.Empty(t, filtered.Items)
	assert.Zero(t, filtered.TotalAvailable)

	empty := Rank(nil, models.MetricCPL, objective.Ascending, 5, 5)
	assert.Empty(t, empty.Items)
	assert.Zero(t, empty.TotalAvailable)
}

func TestRankDescending(t *testing.T) {
	pool := []Candidate{
		{Name: "b", Metrics: models.MetricSet{Leads: 8}},
		{Name: "a", Metrics: models.MetricSet{Leads: 12}},
	}

	result := Rank(pool, models.MetricLeads, objective.Descending, 5, 5)

	require.Len(t, result.Items, 2)
	assert.Equal(t, "a", result.Items[0].Name)
	assert.Equal(t, 12.0, result.Items[0].MainValue)
}

func TestRankStableOnTies(t *testing.T) {
	pool := []Candidate{
		candidate("first", 6, 10),
		candidate("second", 6, 10),
		candidate("third", 6, 10),
	}

	result := Rank(pool, models.MetricCPL, objective.Ascending, 5, 5)

	require.Len(t, result.Items, 3)
	assert.Equal(t, "first", result.Items[0].Name)
	assert.Equal(t, "second", result.Items[1].Name)
	assert.Equal(t, "third", result.Items[2].Name)
}

func TestCandidatePools(t *testing.T) {
	campaigns := []models.Campaign{{
		AdSets: []models.AdSet{
			{Name: "AS1", Ads: []models.Ad{{Name: "A1"}, {Name: "A2"}}},
			{Name: "AS2", Ads: []models.Ad{{Name: "A3"}}},
		},
	}}

	assert.Len(t, AdSetCandidates(campaigns), 2)
	assert.Len(t, AdCandidates(campaigns), 3)
}

func TestRankByConfigRunsBothMetrics(t *testing.T) {
	pool := []Candidate{
		candidate("cheap", 6, 5),
		candidate("volume", 20, 15),
	}
	cfg := objective.ResolveConfig(models.ObjectiveLeads)

	results := RankByConfig(pool, cfg, DefaultMinLeads, DefaultTopN)

	require.Contains(t, results, models.MetricLeads)
	require.Contains(t, results, models.MetricCPL)
	assert.Equal(t, "volume", results[models.MetricLeads].Items[0].Name)
	assert.Equal(t, "cheap", results[models.MetricCPL].Items[0].Name)
}

func TestProjectionCompanionFields(t *testing.T) {
	pool := []Candidate{{Name: "x", Metrics: models.MetricSet{Leads: 7, CPL: 12.5, Spend: 87.5}}}

	result := Rank(pool, models.MetricCPL, objective.Ascending, 5, 5)

	require.Len(t, result.Items, 1)
	item := result.Items[0]
	assert.Equal(t, 12.5, item.MainValue)
	assert.Equal(t, "leads", item.SecondaryLabel)
	assert.Equal(t, 7.0, item.SecondaryValue)
	assert.Equal(t, "spend", item.TertiaryLabel)
}
