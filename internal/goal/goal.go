// Package goal evaluates campaign goal progress against the elapsed share of
// a time window and maps the ratio to a traffic-light status.
package goal

import (
	"time"
)

// Status is the traffic-light result of a goal evaluation.
type Status string

const (
	StatusDanger  Status = "danger"
	StatusWarning Status = "warning"
	StatusSuccess Status = "success"
	StatusNeutral Status = "neutral"
)

// PeriodType selects the calendar window when no explicit campaign period is
// configured.
type PeriodType string

const (
	PeriodMonthly PeriodType = "monthly"
	PeriodWeekly  PeriodType = "weekly"
	PeriodDaily   PeriodType = "daily"
)

// Thresholds are the ascending progress-ratio cutoffs: below danger is
// danger, below warning is warning, everything else success.
type Thresholds struct {
	Danger  float64 `json:"danger" yaml:"danger"`
	Warning float64 `json:"warning" yaml:"warning"`
	Success float64 `json:"success" yaml:"success"`
}

// CampaignPeriod is an explicit goal window. UseCurrentMonth reverts to the
// calendar-month math even when dates are set.
type CampaignPeriod struct {
	StartDate       time.Time `json:"start_date" yaml:"start_date"`
	EndDate         time.Time `json:"end_date" yaml:"end_date"`
	UseCurrentMonth bool      `json:"use_current_month" yaml:"use_current_month"`
}

// Progress is the full evaluation result.
type Progress struct {
	Status          Status  `json:"status"`
	ProgressPercent float64 `json:"progress_percent"`
	ExpectedPercent float64 `json:"expected_percent"`
	ProgressRatio   float64 `json:"progress_ratio"`
	DaysElapsed     int     `json:"days_elapsed"`
	TotalDays       int     `json:"total_days"`
	DaysRemaining   int     `json:"days_remaining"`
}

// Evaluate computes actual versus expected progress at the instant now. The
// clock is an explicit input so the function stays a pure mapping. The status
// compares the actual/expected ratio, not the raw percent-of-target, against
// the thresholds; a non-positive target is always neutral.
func Evaluate(current, target float64, th Thresholds, period PeriodType, campaignPeriod *CampaignPeriod, now time.Time) Progress {
	p := Progress{Status: StatusNeutral}

	actual := 0.0
	if target > 0 {
		actual = current / target
	}
	p.ProgressPercent = actual * 100

	expected := 0.0
	if campaignPeriod != nil && !campaignPeriod.UseCurrentMonth && !campaignPeriod.StartDate.IsZero() && !campaignPeriod.EndDate.IsZero() {
		expected, p.DaysElapsed, p.TotalDays, p.DaysRemaining = customPeriodProgress(campaignPeriod.StartDate, campaignPeriod.EndDate, now)
	} else {
		expected, p.DaysElapsed, p.TotalDays, p.DaysRemaining = calendarProgress(period, now)
	}
	p.ExpectedPercent = expected * 100

	// Zero expected progress would divide by zero; fall back to the raw
	// actual share so early-window evaluations still return a number.
	if expected > 0 {
		p.ProgressRatio = actual / expected * 100
	} else {
		p.ProgressRatio = actual * 100
	}

	if target <= 0 {
		return p
	}

	switch {
	case p.ProgressRatio < th.Danger:
		p.Status = StatusDanger
	case p.ProgressRatio < th.Warning:
		p.Status = StatusWarning
	default:
		p.Status = StatusSuccess
	}
	return p
}

// customPeriodProgress evaluates an explicit date window. The current day
// counts as elapsed.
func customPeriodProgress(start, end, now time.Time) (expected float64, elapsed, total, remaining int) {
	start = dayOf(start)
	end = dayOf(end)
	day := dayOf(now)

	total = int(end.Sub(start).Hours()/24) + 1
	switch {
	case day.Before(start):
		return 0, 0, total, total
	case day.After(end):
		return 1, total, total, 0
	default:
		elapsed = int(day.Sub(start).Hours()/24) + 1
		remaining = total - elapsed
		return float64(elapsed) / float64(total), elapsed, total, remaining
	}
}

func calendarProgress(period PeriodType, now time.Time) (expected float64, elapsed, total, remaining int) {
	switch period {
	case PeriodWeekly:
		// ISO-style weekday: Monday=1 .. Sunday=7.
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return float64(weekday) / 7, weekday, 7, 7 - weekday
	case PeriodDaily:
		hour := now.Hour()
		return float64(hour) / 24, 0, 1, 1
	default:
		day := now.Day()
		daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
		return float64(day) / float64(daysInMonth), day, daysInMonth, daysInMonth - day
	}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
