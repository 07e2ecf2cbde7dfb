package goal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var thresholds = Thresholds{Danger: 50, Warning: 80, Success: 100}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestCustomPeriodBeforeStart(t *testing.T) {
	period := &CampaignPeriod{
		StartDate: date(2025, time.June, 10),
		EndDate:   date(2025, time.June, 19),
	}

	p := Evaluate(0, 100, thresholds, PeriodMonthly, period, date(2025, time.June, 1))

	assert.Zero(t, p.ExpectedPercent)
	assert.Equal(t, 10, p.TotalDays)
	assert.Zero(t, p.DaysElapsed)
	assert.Equal(t, 10, p.DaysRemaining)
}

func TestCustomPeriodAfterEnd(t *testing.T) {
	period := &CampaignPeriod{
		StartDate: date(2025, time.June, 10),
		EndDate:   date(2025, time.June, 19),
	}

	p := Evaluate(50, 100, thresholds, PeriodMonthly, period, date(2025, time.July, 1))

	assert.Equal(t, 100.0, p.ExpectedPercent)
	assert.Equal(t, 10, p.DaysElapsed)
	assert.Zero(t, p.DaysRemaining)
}

func TestCustomPeriodInsideCountsCurrentDay(t *testing.T) {
	period := &CampaignPeriod{
		StartDate: date(2025, time.June, 10),
		EndDate:   date(2025, time.June, 19),
	}

	p := Evaluate(30, 100, thresholds, PeriodMonthly, period, date(2025, time.June, 12))

	assert.Equal(t, 3, p.DaysElapsed, "the current day is elapsed")
	assert.Equal(t, 10, p.TotalDays)
	assert.Equal(t, 7, p.DaysRemaining)
	assert.InDelta(t, 30.0, p.ExpectedPercent, 1e-9)
	assert.InDelta(t, 100.0, p.ProgressRatio, 1e-9)
	assert.Equal(t, StatusSuccess, p.Status)
}

func TestUseCurrentMonthOverridesCustomDates(t *testing.T) {
	period := &CampaignPeriod{
		StartDate:       date(2025, time.January, 1),
		EndDate:         date(2025, time.January, 31),
		UseCurrentMonth: true,
	}

	// June 15 of a 30-day month: expected 50%.
	p := Evaluate(50, 100, thresholds, PeriodMonthly, period, date(2025, time.June, 15))

	assert.InDelta(t, 50.0, p.ExpectedPercent, 1e-9)
	assert.Equal(t, 30, p.TotalDays)
}

func TestMonthlyCalendarMath(t *testing.T) {
	p := Evaluate(25, 100, thresholds, PeriodMonthly, nil, date(2025, time.June, 15))

	assert.InDelta(t, 50.0, p.ExpectedPercent, 1e-9)
	assert.InDelta(t, 50.0, p.ProgressRatio, 1e-9)
	assert.Equal(t, StatusWarning, p.Status)
}

func TestWeeklyISOWeekday(t *testing.T) {
	// 2025-06-15 is a Sunday, mapped to 7/7.
	p := Evaluate(100, 100, thresholds, PeriodWeekly, nil, date(2025, time.June, 15))
	assert.InDelta(t, 100.0, p.ExpectedPercent, 1e-9)

	// 2025-06-16 is a Monday: 1/7.
	p = Evaluate(10, 100, thresholds, PeriodWeekly, nil, date(2025, time.June, 16))
	assert.InDelta(t, 100.0/7, p.ExpectedPercent, 1e-6)
}

func TestDailyHourMath(t *testing.T) {
	now := time.Date(2025, time.June, 15, 6, 30, 0, 0, time.UTC)
	p := Evaluate(25, 100, thresholds, PeriodDaily, nil, now)

	assert.InDelta(t, 25.0, p.ExpectedPercent, 1e-9) // 6/24
	assert.InDelta(t, 100.0, p.ProgressRatio, 1e-9)
}

func TestZeroExpectedFallsBackToActual(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 10, 0, 0, time.UTC)
	p := Evaluate(40, 100, thresholds, PeriodDaily, nil, now)

	assert.Zero(t, p.ExpectedPercent)
	assert.InDelta(t, 40.0, p.ProgressRatio, 1e-9, "raw actual share, no division by zero")
}

func TestStatusCutoffs(t *testing.T) {
	period := &CampaignPeriod{
		StartDate: date(2025, time.June, 1),
		EndDate:   date(2025, time.June, 10),
	}
	now := date(2025, time.June, 10) // expected 100%

	assert.Equal(t, StatusDanger, Evaluate(49, 100, thresholds, PeriodMonthly, period, now).Status)
	assert.Equal(t, StatusWarning, Evaluate(50, 100, thresholds, PeriodMonthly, period, now).Status)
	assert.Equal(t, StatusWarning, Evaluate(79, 100, thresholds, PeriodMonthly, period, now).Status)
	assert.Equal(t, StatusSuccess, Evaluate(80, 100, thresholds, PeriodMonthly, period, now).Status)
	assert.Equal(t, StatusSuccess, Evaluate(120, 100, thresholds, PeriodMonthly, period, now).Status)
}

func TestNonPositiveTargetIsNeutral(t *testing.T) {
	p := Evaluate(500, 0, thresholds, PeriodMonthly, nil, date(2025, time.June, 15))
	assert.Equal(t, StatusNeutral, p.Status)
	assert.Zero(t, p.ProgressPercent)

	p = Evaluate(500, -10, thresholds, PeriodMonthly, nil, date(2025, time.June, 15))
	assert.Equal(t, StatusNeutral, p.Status)
}
