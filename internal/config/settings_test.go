package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metricshub/internal/goal"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
	assert.True(t, s.AlertsEnabled)
	assert.Equal(t, goal.PeriodMonthly, s.PeriodType)
}

func TestLoadSettingsFromFile(t *testing.T) {
	content := `monthly_goal: 120
thresholds:
  danger: 40
  warning: 70
  success: 100
period_type: weekly
alerts_enabled: false
campaign_period:
  start_date: 2025-06-01
  end_date: 2025-06-30
`
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 120.0, s.MonthlyGoal)
	assert.Equal(t, goal.Thresholds{Danger: 40, Warning: 70, Success: 100}, s.Thresholds)
	assert.Equal(t, goal.PeriodWeekly, s.PeriodType)
	assert.False(t, s.AlertsEnabled)
	require.NotNil(t, s.CampaignPeriod)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), s.CampaignPeriod.StartDate)
}

func TestLoadSettingsPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("monthly_goal: 50\n"), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 50.0, s.MonthlyGoal)
	assert.Equal(t, goal.Thresholds{Danger: 50, Warning: 80, Success: 100}, s.Thresholds, "unset keys keep defaults")
	assert.True(t, s.AlertsEnabled)
}

func TestLoadSettingsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{nope"), 0o644))

	_, err := LoadSettings(path)
	assert.Error(t, err)
}
