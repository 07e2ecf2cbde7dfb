package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"metricshub/internal/config"
	"metricshub/internal/export"
	"metricshub/internal/funnel"
	"metricshub/internal/goal"
	"metricshub/internal/ingest"
	"metricshub/internal/models"
	"metricshub/internal/objective"
	"metricshub/internal/observability"
	"metricshub/internal/ranking"
	"metricshub/internal/source"
	"metricshub/internal/storage"
)

type Handler struct {
	config       *config.Config
	settings     config.Settings
	orchestrator *ingest.Orchestrator
	store        *storage.MemoryStore
	exporter     *export.Exporter
	logger       *logrus.Logger
}

func New(cfg *config.Config, settings config.Settings, orchestrator *ingest.Orchestrator,
	store *storage.MemoryStore, exporter *export.Exporter, logger *logrus.Logger) *Handler {
	return &Handler{
		config:       cfg,
		settings:     settings,
		orchestrator: orchestrator,
		store:        store,
		exporter:     exporter,
		logger:       logger,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "metricshub",
	})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.store.HasData() {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"has_data":    true,
			"last_ingest": h.store.GetLastIngestTime().Format(time.RFC3339),
		})
	} else {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "not ready",
			"has_data": false,
			"message":  "No data ingested yet",
		})
	}
}

// IngestData runs a full fetch cycle for the requested window and stores the
// resulting snapshot.
func (h *Handler) IngestData(c *gin.Context) {
	window, err := parseWindow(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	activeOnly := c.Query("active_only") == "true"

	h.logger.WithFields(logrus.Fields{
		"from":        window.From.Format("2006-01-02"),
		"to":          window.To.Format("2006-01-02"),
		"active_only": activeOnly,
	}).Info("Starting data ingestion")

	snap, err := h.orchestrator.Run(c.Request.Context(), window, activeOnly)
	if err != nil {
		observability.CountIngest("error")
		h.logger.WithError(err).Error("Ingest run failed")
		status := http.StatusInternalServerError
		if _, ok := err.(*source.UnavailableError); ok {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	observability.CountIngest("ok")
	h.store.StoreSnapshot(snap)
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"run_id":       snap.RunID,
		"campaigns":    len(snap.Campaigns),
		"processed_at": snap.FetchedAt.Format(time.RFC3339),
	})
}

// GetDashboard returns the latest snapshot shaped for the dashboard: the
// hierarchy, rounded totals, sparkline, classification and period deltas.
func (h *Handler) GetDashboard(c *gin.Context) {
	snap, ok := h.store.Snapshot()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data ingested yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":             snap.RunID,
		"campaigns":          snap.Campaigns,
		"totals":             snap.Totals.Rounded(),
		"reach_is_additive":  true,
		"sparkline_data":     snap.Sparkline,
		"dominant_objective": snap.Classification.DominantObjective,
		"category":           objective.CategoryOf(snap.Classification.DominantObjective),
		"breakdown":          snap.Classification.Breakdown,
		"metric_priority":    snap.Config,
		"changes":            snap.Changes,
		"alerts":             h.alerts(snap),
		"fetched_at":         snap.FetchedAt.Format(time.RFC3339),
	})
}

// GetRankings returns top-N lists for the requested pool level and metric.
// The metric defaults to the primary ranking metric of the dominant
// objective's priority config.
func (h *Handler) GetRankings(c *gin.Context) {
	snap, ok := h.store.Snapshot()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data ingested yet"})
		return
	}

	var pool []ranking.Candidate
	switch c.DefaultQuery("level", "adsets") {
	case "ads":
		pool = ranking.AdCandidates(snap.Campaigns)
	case "adsets":
		pool = ranking.AdSetCandidates(snap.Campaigns)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "level must be ads or adsets"})
		return
	}

	metric := models.MetricKey(c.DefaultQuery("metric", string(snap.Config.RankingMetrics.Primary)))
	topN := atoiDefault(c.Query("top"), ranking.DefaultTopN)
	minLeads := atoiDefault(c.Query("min_leads"), h.config.MinLeads)

	result := ranking.Rank(pool, metric, objective.OrderFor(metric), minLeads, topN)
	c.JSON(http.StatusOK, gin.H{
		"metric":          metric,
		"sort_order":      objective.OrderFor(metric),
		"min_leads":       minLeads,
		"items":           result.Items,
		"total_available": result.TotalAvailable,
	})
}

func (h *Handler) GetAcquisitionFunnel(c *gin.Context) {
	snap, ok := h.store.Snapshot()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data ingested yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stages": funnel.Acquisition(snap.Totals)})
}

// GetQualificationFunnel accepts an optional qualified= override carrying a
// true qualified-lead count; without it the hot-leads estimate applies.
func (h *Handler) GetQualificationFunnel(c *gin.Context) {
	snap, ok := h.store.Snapshot()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data ingested yet"})
		return
	}

	var override *int
	estimated := snap.Leads.Qualified == nil
	if q := c.Query("qualified"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "qualified must be a non-negative integer"})
			return
		}
		override = &v
		estimated = false
	}

	c.JSON(http.StatusOK, gin.H{
		"stages":              funnel.Qualification(snap.Leads, override),
		"qualified_estimated": estimated,
	})
}

// GetGoalStatus evaluates the configured goal against the snapshot's goal
// metric.
func (h *Handler) GetGoalStatus(c *gin.Context) {
	snap, ok := h.store.Snapshot()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data ingested yet"})
		return
	}

	current := snap.Totals.Value(snap.Config.GoalMetric)
	progress := goal.Evaluate(current, h.settings.MonthlyGoal, h.settings.Thresholds,
		h.settings.PeriodType, h.settings.CampaignPeriod, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"goal_metric": snap.Config.GoalMetric,
		"goal_label":  snap.Config.GoalLabel,
		"current":     current,
		"target":      h.settings.MonthlyGoal,
		"progress":    progress,
	})
}

func (h *Handler) GetReportSummary(c *gin.Context) {
	snap, ok := h.store.Snapshot()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data ingested yet"})
		return
	}
	c.JSON(http.StatusOK, export.Summarize(snap))
}

func (h *Handler) ExportData(c *gin.Context) {
	snap, ok := h.store.Snapshot()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data ingested yet"})
		return
	}
	if h.config.SinkURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no sink configured"})
		return
	}

	summary := export.Summarize(snap)
	if err := h.exporter.ExportSummary(c.Request.Context(), h.config.SinkURL, summary); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "exported", "run_id": summary.RunID})
}

// alerts derives goal alerts for the dashboard when enabled. Delivery is the
// UI's concern; this only surfaces the condition.
func (h *Handler) alerts(snap ingest.DashboardSnapshot) []gin.H {
	if !h.settings.AlertsEnabled || h.settings.MonthlyGoal <= 0 {
		return nil
	}
	current := snap.Totals.Value(snap.Config.GoalMetric)
	progress := goal.Evaluate(current, h.settings.MonthlyGoal, h.settings.Thresholds,
		h.settings.PeriodType, h.settings.CampaignPeriod, time.Now())

	switch progress.Status {
	case goal.StatusDanger, goal.StatusWarning:
		return []gin.H{{
			"type":       "goal_pace",
			"status":     progress.Status,
			"goal_label": snap.Config.GoalLabel,
			"ratio":      progress.ProgressRatio,
		}}
	}
	return nil
}

func parseWindow(from, to string) (models.DateRange, error) {
	if from == "" || to == "" {
		// Default to the current calendar month.
		now := time.Now().UTC()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return models.DateRange{From: start, To: end}, nil
	}
	f, err := time.Parse("2006-01-02", from)
	if err != nil {
		return models.DateRange{}, errInvalidDate
	}
	t, err := time.Parse("2006-01-02", to)
	if err != nil {
		return models.DateRange{}, errInvalidDate
	}
	if t.Before(f) {
		return models.DateRange{}, errWindowOrder
	}
	return models.DateRange{From: f, To: t}, nil
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
