// Package ingest orchestrates the per-fetch cycle: all configured sources
// are fetched concurrently, current and previous periods in parallel, and
// the joined result is normalized and aggregated into one immutable
// snapshot. The computation core never sees a partially fetched hierarchy.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"metricshub/internal/client"
	"metricshub/internal/config"
	"metricshub/internal/metrics"
	"metricshub/internal/models"
	"metricshub/internal/objective"
	"metricshub/internal/source"
)

// DashboardSnapshot is the canonical per-fetch result consumed by the
// dashboard and report collaborators. A new snapshot replaces the previous
// one atomically; nothing is mutated in place.
type DashboardSnapshot struct {
	RunID          string                         `json:"run_id"`
	Window         models.DateRange               `json:"window"`
	Campaigns      []models.Campaign              `json:"campaigns"`
	Totals         models.MetricSet               `json:"totals"`
	Sparkline      []models.SparklinePoint        `json:"sparkline_data"`
	Classification objective.Classification       `json:"classification"`
	Config         objective.MetricPriorityConfig `json:"metric_priority"`
	Changes        metrics.ChangeSet              `json:"changes"`
	Leads          models.LeadsSnapshot           `json:"leads"`
	FetchedAt      time.Time                      `json:"fetched_at"`
}

type Orchestrator struct {
	cfg    *config.Config
	client *client.HTTPClient
	logger *logrus.Logger
}

func New(cfg *config.Config, httpClient *client.HTTPClient, logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{cfg: cfg, client: httpClient, logger: logger}
}

// Run fetches both periods, normalizes and aggregates. activeOnly restricts
// every rollup to ACTIVE entities before summation.
func (o *Orchestrator) Run(ctx context.Context, window models.DateRange, activeOnly bool) (DashboardSnapshot, error) {
	runID := uuid.NewString()
	log := o.logger.WithField("run_id", runID)

	var (
		wg                sync.WaitGroup
		current, previous periodData
		currErr, prevErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currErr = o.fetchPeriod(ctx, window)
	}()
	go func() {
		defer wg.Done()
		previous, prevErr = o.fetchPeriod(ctx, window.Previous())
	}()
	wg.Wait()

	if currErr != nil {
		return DashboardSnapshot{}, currErr
	}
	if prevErr != nil {
		// The previous period is comparison-only; losing it degrades the
		// deltas but not the dashboard.
		log.WithError(prevErr).Warn("Previous period fetch failed, comparisons unavailable")
		previous = periodData{}
	}

	campaigns := current.campaigns
	if activeOnly {
		campaigns = metrics.FilterActive(campaigns)
	}

	totals := metrics.Aggregate(campaigns, false)
	previousTotals := metrics.Aggregate(previous.campaigns, activeOnly)
	classification := objective.Classify(campaigns)

	log.WithFields(logrus.Fields{
		"campaigns":          len(campaigns),
		"dominant_objective": classification.DominantObjective,
		"spend":              totals.Spend,
	}).Info("Ingest run complete")

	return DashboardSnapshot{
		RunID:          runID,
		Window:         window,
		Campaigns:      campaigns,
		Totals:         totals,
		Sparkline:      current.sparkline,
		Classification: classification,
		Config:         objective.ResolveConfig(classification.DominantObjective),
		Changes:        metrics.ComparePeriods(totals, previousTotals),
		Leads:          current.leads,
		FetchedAt:      time.Now().UTC(),
	}, nil
}

type periodData struct {
	campaigns []models.Campaign
	sparkline []models.SparklinePoint
	leads     models.LeadsSnapshot
}

// fetchPeriod fans out one request per configured source and joins the
// results. A failed configured source aborts the whole period with its typed
// error; an unconfigured source simply contributes nothing.
func (o *Orchestrator) fetchPeriod(ctx context.Context, window models.DateRange) (periodData, error) {
	type adapterResult struct {
		campaigns []models.Campaign
		sparkline []models.SparklinePoint
		err       error
	}

	var (
		wg           sync.WaitGroup
		meta, google adapterResult
		sheet        adapterResult
		leads        models.LeadsSnapshot
		leadsErr     error
	)

	if o.cfg.MetaAPIURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw, err := o.client.Fetch(ctx, windowURL(o.cfg.MetaAPIURL, window))
			if err != nil {
				meta.err = &source.UnavailableError{Source: "meta", Err: err}
				return
			}
			meta.campaigns, meta.sparkline, meta.err = source.Meta{}.Normalize(raw)
		}()
	}

	if o.cfg.GoogleAdsAPIURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw, err := o.client.Fetch(ctx, windowURL(o.cfg.GoogleAdsAPIURL, window))
			if err != nil {
				google.err = &source.UnavailableError{Source: "google_ads", Err: err}
				return
			}
			google.campaigns, google.sparkline, google.err = source.GoogleAPI{}.Normalize(raw)
		}()
	}

	if o.cfg.GoogleCSVURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw, err := o.client.Fetch(ctx, o.cfg.GoogleCSVURL)
			if err != nil {
				sheet.err = &source.UnavailableError{Source: "google_csv", Err: err}
				return
			}
			adapter := source.GoogleCSV{Window: window}
			sheet.campaigns, sheet.sparkline, sheet.err = adapter.Normalize(raw)
		}()
	}

	if o.cfg.CRMAPIURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw, err := o.client.Fetch(ctx, windowURL(o.cfg.CRMAPIURL, window))
			if err != nil {
				leadsErr = &source.UnavailableError{Source: "crm", Err: err}
				return
			}
			leads, leadsErr = source.CRM{Window: window}.Snapshot(raw)
		}()
	}

	wg.Wait()

	for _, err := range []error{meta.err, google.err, sheet.err, leadsErr} {
		if err != nil {
			return periodData{}, err
		}
	}

	var campaigns []models.Campaign
	campaigns = append(campaigns, meta.campaigns...)
	campaigns = append(campaigns, google.campaigns...)
	campaigns = append(campaigns, sheet.campaigns...)

	return periodData{
		campaigns: campaigns,
		sparkline: metrics.MergeSparklines(meta.sparkline, google.sparkline, sheet.sparkline),
		leads:     leads,
	}, nil
}

// windowURL appends the date window as from/to query parameters.
func windowURL(base string, window models.DateRange) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sfrom=%s&to=%s", base, sep,
		window.From.Format("2006-01-02"), window.To.Format("2006-01-02"))
}
