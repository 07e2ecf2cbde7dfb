package export

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"metricshub/internal/client"
	"metricshub/internal/ingest"
	"metricshub/internal/metrics"
	"metricshub/internal/models"
	"metricshub/internal/objective"
	"metricshub/internal/ranking"
)

// ReportSummary is the flattened numeric summary the report-text generator
// consumes. It carries no hierarchy, only account-level figures.
type ReportSummary struct {
	RunID             string                   `json:"run_id"`
	From              string                   `json:"from"`
	To                string                   `json:"to"`
	Totals            models.MetricSet         `json:"totals"`
	ReachIsAdditive   bool                     `json:"reach_is_additive"`
	DominantObjective models.CampaignObjective `json:"dominant_objective"`
	Category          objective.Category       `json:"category"`
	CampaignCount     int                      `json:"campaign_count"`
	Changes           metrics.ChangeSet        `json:"changes"`
	Leads             models.LeadsSnapshot     `json:"leads"`
	// Rankings holds the top ad sets for both configured ranking metrics of
	// the dominant objective.
	Rankings map[models.MetricKey]ranking.Result `json:"rankings"`
}

// Summarize flattens a snapshot into the report contract. Totals are rounded
// here because this is a formatting boundary.
func Summarize(snap ingest.DashboardSnapshot) ReportSummary {
	return ReportSummary{
		RunID:             snap.RunID,
		From:              snap.Window.From.Format("2006-01-02"),
		To:                snap.Window.To.Format("2006-01-02"),
		Totals:            snap.Totals.Rounded(),
		ReachIsAdditive:   true,
		DominantObjective: snap.Classification.DominantObjective,
		Category:          objective.CategoryOf(snap.Classification.DominantObjective),
		CampaignCount:     len(snap.Campaigns),
		Changes:           snap.Changes,
		Leads:             snap.Leads,
		Rankings: ranking.RankByConfig(ranking.AdSetCandidates(snap.Campaigns),
			snap.Config, ranking.DefaultMinLeads, ranking.DefaultTopN),
	}
}

// Exporter posts HMAC-SHA256-signed report summaries to the sink.
type Exporter struct {
	secret     string
	httpClient *client.HTTPClient
	logger     *logrus.Logger
}

func NewExporter(secret string, httpClient *client.HTTPClient, logger *logrus.Logger) *Exporter {
	return &Exporter{
		secret:     secret,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (e *Exporter) ExportSummary(ctx context.Context, sinkURL string, summary ReportSummary) error {
	body, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	signature := e.sign(body)
	if err := e.httpClient.Post(ctx, sinkURL, body, signature); err != nil {
		e.logger.WithError(err).Error("Failed to export summary")
		return fmt.Errorf("failed to export summary: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"run_id": summary.RunID,
		"from":   summary.From,
		"to":     summary.To,
	}).Info("Successfully exported report summary")
	return nil
}

func (e *Exporter) sign(body []byte) string {
	h := hmac.New(sha256.New, []byte(e.secret))
	h.Write(body)
	return "sha256=" + hex.EncodeToString(h.Sum(nil))
}
