package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"metricshub/internal/goal"
)

// Settings is the goal/threshold configuration persisted by the settings
// store. The service only reads it.
type Settings struct {
	MonthlyGoal    float64              `yaml:"monthly_goal" json:"monthly_goal"`
	Thresholds     goal.Thresholds      `yaml:"thresholds" json:"thresholds"`
	PeriodType     goal.PeriodType      `yaml:"period_type" json:"period_type"`
	AlertsEnabled  bool                 `yaml:"alerts_enabled" json:"alerts_enabled"`
	CampaignPeriod *goal.CampaignPeriod `yaml:"campaign_period,omitempty" json:"campaign_period,omitempty"`
}

// DefaultSettings applies when no settings file exists yet.
func DefaultSettings() Settings {
	return Settings{
		MonthlyGoal:   0,
		Thresholds:    goal.Thresholds{Danger: 50, Warning: 80, Success: 100},
		PeriodType:    goal.PeriodMonthly,
		AlertsEnabled: true,
	}
}

// LoadSettings reads the YAML settings file. A missing file is not an error;
// defaults apply until the settings store writes one.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return DefaultSettings(), fmt.Errorf("failed to read settings: %w", err)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings: %w", err)
	}
	return s, nil
}
