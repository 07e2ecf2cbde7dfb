package funnel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metricshub/internal/models"
)

func TestAcquisitionFirstStageAlwaysFull(t *testing.T) {
	stages := Acquisition(models.MetricSet{})

	require.Len(t, stages, 5)
	assert.Equal(t, 100.0, stages[0].ConversionRate)
	for _, s := range stages[1:] {
		assert.Zero(t, s.ConversionRate, "zero previous stage yields zero rate")
	}
}

func TestAcquisitionRates(t *testing.T) {
	stages := Acquisition(models.MetricSet{
		Impressions: 10000,
		Reach:       5000,
		Clicks:      500,
		Leads:       50,
		Sales:       5,
	})

	require.Len(t, stages, 5)
	assert.Equal(t, 100.0, stages[0].ConversionRate)
	assert.InDelta(t, 50.0, stages[1].ConversionRate, 1e-9)
	assert.InDelta(t, 10.0, stages[2].ConversionRate, 1e-9)
	assert.InDelta(t, 10.0, stages[3].ConversionRate, 1e-9)
	assert.InDelta(t, 10.0, stages[4].ConversionRate, 1e-9)
	assert.Equal(t, 10000, stages[0].Value)
	assert.Equal(t, 5, stages[4].Value)
}

func TestEstimateQualifiedFromHot(t *testing.T) {
	assert.Equal(t, 24, EstimateQualifiedFromHot(12))
	assert.Zero(t, EstimateQualifiedFromHot(0))
}

func TestQualificationUsesEstimateWhenNoTrueCount(t *testing.T) {
	stages := Qualification(models.LeadsSnapshot{Total: 100, WithSurvey: 60, Hot: 10}, nil)

	require.Len(t, stages, 4)
	assert.Equal(t, 100, stages[0].Value)
	assert.Equal(t, 60, stages[1].Value)
	assert.Equal(t, 20, stages[2].Value, "qualified approximated as hot*2")
	assert.Equal(t, 10, stages[3].Value)
	assert.InDelta(t, 60.0, stages[1].ConversionRate, 1e-9)
	assert.InDelta(t, 50.0, stages[3].ConversionRate, 1e-9)
}

func TestQualificationPrefersTrueCount(t *testing.T) {
	qualified := 35
	stages := Qualification(models.LeadsSnapshot{Total: 100, WithSurvey: 60, Hot: 10, Qualified: &qualified}, nil)
	assert.Equal(t, 35, stages[2].Value)

	override := 42
	stages = Qualification(models.LeadsSnapshot{Total: 100, Hot: 10, Qualified: &qualified}, &override)
	assert.Equal(t, 42, stages[2].Value, "explicit override wins over stored count")
}

func TestQualificationEmptySnapshot(t *testing.T) {
	stages := Qualification(models.LeadsSnapshot{}, nil)

	require.Len(t, stages, 4)
	assert.Equal(t, 100.0, stages[0].ConversionRate)
	for _, s := range stages[1:] {
		assert.Zero(t, s.ConversionRate)
	}
}
