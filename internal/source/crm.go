package source

import (
	"encoding/json"

	"metricshub/internal/models"
)

// hotScoreMin is the lead score at which a lead counts as hot.
const hotScoreMin = 80

// CRM normalizes the leads feed into the qualification-funnel KPI snapshot.
type CRM struct {
	// Window filters leads by created_at; zero means no filtering. The same
	// permissive policy as the CSV adapter applies to unparseable dates.
	Window models.DateRange
}

func (CRM) Name() string { return "crm" }

func (c CRM) Snapshot(raw []byte) (models.LeadsSnapshot, error) {
	var payload models.CRMPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return models.LeadsSnapshot{}, unavailable(c.Name(), "malformed payload: %w", err)
	}

	var snap models.LeadsSnapshot
	for _, lead := range payload.Leads {
		if !c.Window.From.IsZero() && !c.Window.To.IsZero() {
			if created, ok := parseDate(lead.CreatedAt); ok && !c.Window.Contains(created) {
				continue
			}
		}
		snap.Total++
		if lead.Surveyed {
			snap.WithSurvey++
		}
		if lead.Score >= hotScoreMin {
			snap.Hot++
		}
	}
	return snap, nil
}
