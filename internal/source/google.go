package source

import (
	"encoding/json"
	"math"

	"metricshub/internal/metrics"
	"metricshub/internal/models"
)

const microsPerUnit = 1_000_000

// GoogleAPI normalizes the flat GAQL result rows (campaign, ad_group and
// ad_group_ad level) into the canonical hierarchy. Cost arrives in micros
// and is converted to currency units before metric derivation; leads are the
// conversions metric rounded to the nearest integer. The campaign keeps its
// native advertising channel type as objective.
type GoogleAPI struct{}

func (GoogleAPI) Name() string { return "google_ads" }

func (g GoogleAPI) Normalize(raw []byte) ([]models.Campaign, []models.SparklinePoint, error) {
	var payload models.GooglePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, unavailable(g.Name(), "malformed payload: %w", err)
	}

	// Campaign rows may arrive date-segmented; accumulate per campaign and
	// keep the daily buckets for the sparkline.
	type campaignAcc struct {
		campaign models.Campaign
		base     models.BaseMetrics
		adSets   []*adSetAcc
		index    map[string]*adSetAcc
	}
	byCampaign := make(map[string]*campaignAcc)
	var order []string
	var spark []models.SparklinePoint

	for _, row := range payload.Campaigns {
		acc, ok := byCampaign[row.Campaign.ID]
		if !ok {
			acc = &campaignAcc{
				campaign: models.Campaign{
					ID:        row.Campaign.ID,
					Name:      row.Campaign.Name,
					Status:    googleStatus(row.Campaign.Status),
					Objective: models.CampaignObjective(row.Campaign.AdvertisingChannelType),
				},
				index: make(map[string]*adSetAcc),
			}
			byCampaign[row.Campaign.ID] = acc
			order = append(order, row.Campaign.ID)
		}
		base := googleBase(row.Metrics)
		acc.base = acc.base.Add(base)

		if row.Segments.Date != "" {
			spark = append(spark, models.SparklinePoint{
				Date:        row.Segments.Date,
				Impressions: base.Impressions,
				Clicks:      base.Clicks,
				Spend:       base.Spend,
				Leads:       base.Leads,
			})
		}
	}

	for _, row := range payload.AdGroups {
		acc, ok := byCampaign[row.Campaign.ID]
		if !ok {
			continue // ad group for a campaign outside the result set
		}
		as, seen := acc.index[row.AdGroup.ID]
		if !seen {
			as = &adSetAcc{adSet: models.AdSet{
				ID:         row.AdGroup.ID,
				Name:       row.AdGroup.Name,
				Status:     googleStatus(row.AdGroup.Status),
				CampaignID: row.Campaign.ID,
			}}
			acc.index[row.AdGroup.ID] = as
			acc.adSets = append(acc.adSets, as)
		}
		as.base = as.base.Add(googleBase(row.Metrics))
	}

	for _, row := range payload.Ads {
		acc, ok := byCampaign[row.Campaign.ID]
		if !ok {
			continue
		}
		as, seen := acc.index[row.AdGroup.ID]
		if !seen {
			as = &adSetAcc{adSet: models.AdSet{
				ID:         row.AdGroup.ID,
				Name:       row.AdGroup.Name,
				Status:     googleStatus(row.AdGroup.Status),
				CampaignID: row.Campaign.ID,
			}}
			acc.index[row.AdGroup.ID] = as
			acc.adSets = append(acc.adSets, as)
		}
		name := row.AdGroupAd.Ad.Name
		if name == "" {
			name = row.AdGroupAd.Ad.ID
		}
		as.adSet.Ads = append(as.adSet.Ads, models.Ad{
			ID:      row.AdGroupAd.Ad.ID,
			Name:    name,
			Status:  googleStatus(row.AdGroupAd.Status),
			Metrics: metrics.Derive(googleBase(row.Metrics)),
		})
	}

	campaigns := make([]models.Campaign, 0, len(order))
	for _, id := range order {
		acc := byCampaign[id]
		for _, as := range acc.adSets {
			if len(as.adSet.Ads) > 0 {
				as.adSet.Metrics = metrics.RollUpAds(as.adSet.Ads)
			} else {
				as.adSet.Metrics = metrics.Derive(as.base)
			}
			acc.campaign.AdSets = append(acc.campaign.AdSets, as.adSet)
		}
		if len(acc.campaign.AdSets) > 0 {
			acc.campaign.Metrics = metrics.RollUpAdSets(acc.campaign.AdSets)
		} else {
			acc.campaign.Metrics = metrics.Derive(acc.base)
		}
		campaigns = append(campaigns, acc.campaign)
	}

	return campaigns, metrics.MergeSparklines(spark), nil
}

type adSetAcc struct {
	adSet models.AdSet
	base  models.BaseMetrics
}

func googleBase(m models.GoogleMetrics) models.BaseMetrics {
	return models.BaseMetrics{
		Impressions: parseInt(m.Impressions),
		Clicks:      parseInt(m.Clicks),
		Spend:       float64(parseInt(m.CostMicros)) / microsPerUnit,
		Leads:       int(math.Round(m.Conversions)),
	}
}

func googleStatus(s string) models.EntityStatus {
	switch s {
	case "ENABLED":
		return models.StatusActive
	case "REMOVED":
		return models.StatusDeleted
	default:
		return models.StatusPaused
	}
}
