package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metricshub/internal/models"
)

func TestCompareChangeEdges(t *testing.T) {
	assert.Nil(t, CompareChange(0, 0), "no signal in either period")

	up := CompareChange(5, 0)
	require.NotNil(t, up)
	assert.Equal(t, 100.0, *up)

	down := CompareChange(50, 100)
	require.NotNil(t, down)
	assert.Equal(t, -50.0, *down)

	flat := CompareChange(100, 100)
	require.NotNil(t, flat)
	assert.Zero(t, *flat)
}

func TestComparePeriodsPerField(t *testing.T) {
	current := Derive(models.BaseMetrics{Impressions: 2000, Clicks: 40, Spend: 100, Leads: 10})
	previous := Derive(models.BaseMetrics{Impressions: 1000, Clicks: 40, Spend: 50})

	changes := ComparePeriods(current, previous)

	require.NotNil(t, changes.Impressions)
	assert.InDelta(t, 100.0, *changes.Impressions, 1e-9)
	require.NotNil(t, changes.Clicks)
	assert.Zero(t, *changes.Clicks)
	require.NotNil(t, changes.Leads)
	assert.Equal(t, 100.0, *changes.Leads, "zero previous with signal reads as +100%")
	assert.Nil(t, changes.Sales, "zero in both periods has no signal")
	assert.Nil(t, changes.Reach)
}
