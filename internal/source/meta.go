package source

import (
	"encoding/json"

	"metricshub/internal/metrics"
	"metricshub/internal/models"
)

// leadActionTypes are the Meta action-type aliases that all mean "a lead
// happened". The Graph API reports the same conversion under different tags
// depending on where the pixel fired.
var leadActionTypes = map[string]bool{
	"lead":                             true,
	"onsite_conversion.lead_grouped":   true,
	"offsite_conversion.fb_pixel_lead": true,
	"leadgen_grouped":                  true,
}

var saleActionTypes = map[string]bool{
	"purchase":                             true,
	"omni_purchase":                        true,
	"offsite_conversion.fb_pixel_purchase": true,
}

// Meta normalizes the nested Graph API account export into the canonical
// hierarchy. Numeric fields arrive as strings and default to 0 when absent;
// the campaign objective passes through Meta's native enum unchanged.
type Meta struct{}

func (Meta) Name() string { return "meta" }

// Normalize parses and converts a Meta payload. Only a malformed document is
// an error; an account with zero campaigns is valid empty data.
func (m Meta) Normalize(raw []byte) ([]models.Campaign, []models.SparklinePoint, error) {
	var payload models.MetaPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, unavailable(m.Name(), "malformed payload: %w", err)
	}

	campaigns := make([]models.Campaign, 0, len(payload.Campaigns))
	var spark []models.SparklinePoint

	for _, rc := range payload.Campaigns {
		campaign := models.Campaign{
			ID:        rc.ID,
			Name:      rc.Name,
			Status:    metaStatus(rc.EffectiveStatus, rc.Status),
			Objective: models.CampaignObjective(rc.Objective),
		}
		for _, ras := range rc.AdSets {
			adSet := models.AdSet{
				ID:         ras.ID,
				Name:       ras.Name,
				Status:     metaStatus(ras.EffectiveStatus, ras.Status),
				CampaignID: rc.ID,
			}
			for _, ra := range ras.Ads {
				adSet.Ads = append(adSet.Ads, models.Ad{
					ID:      ra.ID,
					Name:    ra.Name,
					Status:  metaStatus(ra.EffectiveStatus, ra.Status),
					Metrics: metrics.Derive(metaBase(ra.Insights)),
				})
			}
			adSet.Metrics = metrics.RollUpAds(adSet.Ads)
			if len(adSet.Ads) == 0 {
				// Ad sets without ad-level insights carry their own summary.
				adSet.Metrics = metrics.Derive(metaBase(ras.Insights))
			}
			campaign.AdSets = append(campaign.AdSets, adSet)
		}
		campaign.Metrics = metrics.RollUpAdSets(campaign.AdSets)
		if len(campaign.AdSets) == 0 {
			campaign.Metrics = metrics.Derive(metaBase(rc.Insights))
		}
		campaigns = append(campaigns, campaign)

		for _, row := range rc.Insights.Data {
			if row.DateStart == "" {
				continue
			}
			base := rowBase(row)
			spark = append(spark, models.SparklinePoint{
				Date:        row.DateStart,
				Impressions: base.Impressions,
				Reach:       base.Reach,
				Clicks:      base.Clicks,
				Spend:       base.Spend,
				Leads:       base.Leads,
				Sales:       base.Sales,
			})
		}
	}

	return campaigns, metrics.MergeSparklines(spark), nil
}

// metaBase extracts summable counters from the first insight row, the
// summary row the Graph API puts at insights.data[0].
func metaBase(in models.MetaInsights) models.BaseMetrics {
	if len(in.Data) == 0 {
		return models.BaseMetrics{}
	}
	return rowBase(in.Data[0])
}

func rowBase(row models.MetaInsightRow) models.BaseMetrics {
	return models.BaseMetrics{
		Impressions: parseInt(row.Impressions),
		Reach:       parseInt(row.Reach),
		Clicks:      parseInt(row.Clicks),
		Spend:       parseFloat(row.Spend),
		Leads:       sumActions(row.Actions, leadActionTypes),
		Sales:       sumActions(row.Actions, saleActionTypes),
	}
}

func sumActions(actions []models.MetaAction, aliases map[string]bool) int {
	total := 0
	for _, a := range actions {
		if aliases[a.ActionType] {
			total += parseInt(a.Value)
		}
	}
	return total
}

// metaStatus prefers effective_status, which folds in parent pauses and
// review states, over the configured status.
func metaStatus(effective, configured string) models.EntityStatus {
	s := effective
	if s == "" {
		s = configured
	}
	switch s {
	case "ACTIVE":
		return models.StatusActive
	case "DELETED", "ARCHIVED":
		return models.StatusDeleted
	default:
		return models.StatusPaused
	}
}
