package metrics

import (
	"metricshub/internal/models"
)

// RollUpAds sums ad-level base counters and rederives the ratio metrics for
// the owning ad set.
func RollUpAds(ads []models.Ad) models.MetricSet {
	var base models.BaseMetrics
	for _, ad := range ads {
		base = base.Add(ad.Metrics.Base())
	}
	return Derive(base)
}

// RollUpAdSets sums ad-set-level base counters and rederives the ratio
// metrics for the owning campaign.
func RollUpAdSets(adSets []models.AdSet) models.MetricSet {
	var base models.BaseMetrics
	for _, as := range adSets {
		base = base.Add(as.Metrics.Base())
	}
	return Derive(base)
}

// Aggregate rolls a campaign collection (possibly spanning sources) into
// account-wide totals. When activeOnly is set, entities are filtered by
// status before any summation so a paused parent never hides active children
// and vice versa.
//
// Reach across platforms counts the same user more than once; any combined
// reach figure is additive, not deduplicated, and responses must label it so.
func Aggregate(campaigns []models.Campaign, activeOnly bool) models.MetricSet {
	if activeOnly {
		campaigns = FilterActive(campaigns)
	}
	var base models.BaseMetrics
	for _, c := range campaigns {
		base = base.Add(c.Metrics.Base())
	}
	return Derive(base)
}

// Rebuild recomputes every rollup level of a hierarchy from its leaves,
// restoring the ratio-from-counters invariant after any filtering. Entities
// without children keep their own summary metrics; some providers report
// campaign-level figures with no ad breakdown.
func Rebuild(campaigns []models.Campaign) []models.Campaign {
	out := make([]models.Campaign, len(campaigns))
	for i, c := range campaigns {
		for j := range c.AdSets {
			if len(c.AdSets[j].Ads) > 0 {
				c.AdSets[j].Metrics = RollUpAds(c.AdSets[j].Ads)
			}
		}
		if len(c.AdSets) > 0 {
			c.Metrics = RollUpAdSets(c.AdSets)
		}
		out[i] = c
	}
	return out
}

// FilterActive returns a copy of the hierarchy restricted to ACTIVE entities
// at every level, with all rollups recomputed from the surviving leaves.
func FilterActive(campaigns []models.Campaign) []models.Campaign {
	var filtered []models.Campaign
	for _, c := range campaigns {
		if c.Status != models.StatusActive {
			continue
		}
		var adSets []models.AdSet
		for _, as := range c.AdSets {
			if as.Status != models.StatusActive {
				continue
			}
			var ads []models.Ad
			for _, ad := range as.Ads {
				if ad.Status == models.StatusActive {
					ads = append(ads, ad)
				}
			}
			// An ad set whose ads were all filtered away must not keep the
			// pre-filter rollup.
			if len(as.Ads) > 0 && len(ads) == 0 {
				as.Metrics = models.MetricSet{}
			}
			as.Ads = ads
			adSets = append(adSets, as)
		}
		if len(c.AdSets) > 0 && len(adSets) == 0 {
			c.Metrics = models.MetricSet{}
		}
		c.AdSets = adSets
		filtered = append(filtered, c)
	}
	return Rebuild(filtered)
}
