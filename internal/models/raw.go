package models

// Raw provider payload shapes, as delivered by the upstream fetch proxies.
// Meta returns every numeric as a string; Google Ads returns integer metrics
// as strings and money as micros. Adapters own all parsing and unit
// conversion.

// MetaPayload is the nested Graph API export for one ad account.
type MetaPayload struct {
	Campaigns []MetaCampaign `json:"data"`
}

type MetaCampaign struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Status          string       `json:"status"`
	EffectiveStatus string       `json:"effective_status,omitempty"`
	Objective       string       `json:"objective"`
	Insights        MetaInsights `json:"insights"`
	AdSets          []MetaAdSet  `json:"adsets"`
}

type MetaAdSet struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Status          string       `json:"status"`
	EffectiveStatus string       `json:"effective_status,omitempty"`
	CampaignID      string       `json:"campaign_id"`
	Insights        MetaInsights `json:"insights"`
	Ads             []MetaAd     `json:"ads"`
}

type MetaAd struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Status          string       `json:"status"`
	EffectiveStatus string       `json:"effective_status,omitempty"`
	AdSetID         string       `json:"adset_id"`
	Insights        MetaInsights `json:"insights"`
}

type MetaInsights struct {
	Data []MetaInsightRow `json:"data"`
}

type MetaInsightRow struct {
	Impressions       string       `json:"impressions"`
	Reach             string       `json:"reach"`
	Clicks            string       `json:"clicks"`
	Spend             string       `json:"spend"`
	CTR               string       `json:"ctr"`
	CPC               string       `json:"cpc"`
	CPM               string       `json:"cpm"`
	Actions           []MetaAction `json:"actions"`
	CostPerActionType []MetaAction `json:"cost_per_action_type"`
	DateStart         string       `json:"date_start"`
	DateStop          string       `json:"date_stop"`
}

type MetaAction struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// GooglePayload bundles the three GAQL result sets the fetch proxy runs for
// one customer (campaign, ad_group and ad_group_ad level).
type GooglePayload struct {
	Campaigns []GoogleCampaignRow `json:"campaigns"`
	AdGroups  []GoogleAdGroupRow  `json:"ad_groups"`
	Ads       []GoogleAdRow       `json:"ads"`
}

type GoogleCampaignRow struct {
	Campaign GoogleCampaign `json:"campaign"`
	Metrics  GoogleMetrics  `json:"metrics"`
	Segments GoogleSegments `json:"segments"`
}

type GoogleAdGroupRow struct {
	AdGroup  GoogleAdGroup  `json:"adGroup"`
	Campaign GoogleCampaign `json:"campaign"`
	Metrics  GoogleMetrics  `json:"metrics"`
}

type GoogleAdRow struct {
	AdGroupAd GoogleAdGroupAd `json:"adGroupAd"`
	AdGroup   GoogleAdGroup   `json:"adGroup"`
	Campaign  GoogleCampaign  `json:"campaign"`
	Metrics   GoogleMetrics   `json:"metrics"`
}

type GoogleCampaign struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Status                 string `json:"status"`
	AdvertisingChannelType string `json:"advertisingChannelType"`
}

type GoogleAdGroup struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type GoogleAdGroupAd struct {
	Status string   `json:"status"`
	Ad     GoogleAd `json:"ad"`
}

type GoogleAd struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GoogleMetrics holds GAQL metrics. Integer fields arrive as strings.
type GoogleMetrics struct {
	Impressions string  `json:"impressions"`
	Clicks      string  `json:"clicks"`
	CostMicros  string  `json:"costMicros"`
	Conversions float64 `json:"conversions"`
	CTR         float64 `json:"ctr"`
	AverageCPC  string  `json:"averageCpc"`
	AverageCPM  string  `json:"averageCpm"`
}

type GoogleSegments struct {
	Date string `json:"date"`
}

// CRMPayload is the leads feed from the CRM collaborator.
type CRMPayload struct {
	Leads []CRMLead `json:"leads"`
}

type CRMLead struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Score     int    `json:"score"`
	Surveyed  bool   `json:"surveyed"`
	CreatedAt string `json:"created_at"`
}
