package source

import (
	"encoding/csv"
	"io"
	"strings"

	"metricshub/internal/metrics"
	"metricshub/internal/models"
)

// keepUnparseableDates preserves the permissive inclusion policy: a row
// whose date is absent or unparseable stays in the date-filtered result.
// This avoids silent data loss from locale surprises at the cost of possible
// over-counting across period boundaries. Flip to false only with product
// confirmation.
const keepUnparseableDates = true

// GoogleCSV normalizes a Google Ads report export. The parser sniffs the
// delimiter (comma or semicolon), accepts English and Portuguese headers and
// both 1.234,56 and 1,234.56 numerics, and groups rows into the hierarchy by
// id columns when present, falling back to name-synthesized composite keys.
type GoogleCSV struct {
	// Window filters rows by their date column; zero means no filtering.
	Window models.DateRange
}

func (GoogleCSV) Name() string { return "google_csv" }

// columns maps the normalized header of each known column to its role.
var columns = map[string]string{
	"campaign_id":    "campaign_id",
	"id_da_campanha": "campaign_id",
	"campanha_id":    "campaign_id",

	"campaign":         "campaign_name",
	"campaign_name":    "campaign_name",
	"campanha":         "campaign_name",
	"nome_da_campanha": "campaign_name",

	"campaign_type":            "campaign_type",
	"tipo_de_campanha":         "campaign_type",
	"advertising_channel_type": "campaign_type",

	"ad_group_id":          "ad_group_id",
	"grupo_de_anuncios_id": "ad_group_id",

	"ad_group":             "ad_group_name",
	"ad_group_name":        "ad_group_name",
	"grupo_de_anuncios":    "ad_group_name",
	"conjunto_de_anuncios": "ad_group_name",

	"ad_id":      "ad_id",
	"anuncio_id": "ad_id",

	"ad":              "ad_name",
	"ad_name":         "ad_name",
	"anuncio":         "ad_name",
	"nome_do_anuncio": "ad_name",

	"date": "date",
	"day":  "date",
	"data": "date",
	"dia":  "date",

	"impressions": "impressions",
	"impressoes":  "impressions",
	"impr":        "impressions",

	"clicks":  "clicks",
	"cliques": "clicks",

	"cost":        "cost",
	"custo":       "cost",
	"spend":       "cost",
	"valor_gasto": "cost",

	"conversions": "conversions",
	"conversoes":  "conversions",
	"leads":       "conversions",

	"status":             "status",
	"campaign_state":     "status",
	"estado_da_campanha": "status",
	"estado":             "status",
}

func (g GoogleCSV) Normalize(raw []byte) ([]models.Campaign, []models.SparklinePoint, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, nil, unavailable(g.Name(), "empty CSV")
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, unavailable(g.Name(), "unreadable header row: %w", err)
	}

	roles := make([]string, len(headers))
	known := 0
	for i, h := range headers {
		if role, ok := columns[normalizeHeader(h)]; ok {
			roles[i] = role
			known++
		}
	}
	if known == 0 {
		return nil, nil, unavailable(g.Name(), "no recognizable columns in header")
	}

	builder := newCSVBuilder()
	var spark []models.SparklinePoint
	rows := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		fields := make(map[string]string)
		for i, val := range row {
			if i < len(roles) && roles[i] != "" {
				fields[roles[i]] = strings.TrimSpace(val)
			}
		}
		if len(fields) == 0 {
			continue
		}
		rows++

		date, parsed := parseDate(fields["date"])
		inWindow := true
		if !g.Window.From.IsZero() && !g.Window.To.IsZero() {
			if parsed {
				inWindow = g.Window.Contains(date)
			} else {
				inWindow = keepUnparseableDates
			}
		}
		if !inWindow {
			continue
		}

		base := models.BaseMetrics{
			Impressions: int(parseLocalizedNumber(fields["impressions"])),
			Clicks:      int(parseLocalizedNumber(fields["clicks"])),
			Spend:       parseLocalizedNumber(fields["cost"]),
			Leads:       int(parseLocalizedNumber(fields["conversions"]) + 0.5),
		}
		builder.add(fields, base)

		if parsed {
			spark = append(spark, models.SparklinePoint{
				Date:        date.Format("2006-01-02"),
				Impressions: base.Impressions,
				Clicks:      base.Clicks,
				Spend:       base.Spend,
				Leads:       base.Leads,
			})
		}
	}

	if rows == 0 {
		return nil, nil, unavailable(g.Name(), "CSV has a header but no data rows")
	}

	return builder.campaigns(), metrics.MergeSparklines(spark), nil
}

// sniffDelimiter picks comma or semicolon by whichever dominates the header
// line. Sheets exports from pt-BR locales use semicolons.
func sniffDelimiter(text string) rune {
	header := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		header = text[:i]
	}
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

var headerReplacer = strings.NewReplacer(
	"ã", "a", "á", "a", "â", "a", "à", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"õ", "o", "ó", "o", "ô", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = headerReplacer.Replace(h)
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	h = strings.ReplaceAll(h, ".", "_")
	return h
}

// csvBuilder accumulates date-bucketed rows into the campaign > ad set > ad
// tree. Keys are synthesized from ids when present, names otherwise, so
// exports without id columns still group correctly.
type csvBuilder struct {
	order []string
	byKey map[string]*csvCampaign
}

type csvCampaign struct {
	campaign models.Campaign
	order    []string
	adSets   map[string]*csvAdSet
}

type csvAdSet struct {
	adSet models.AdSet
	order []string
	ads   map[string]*models.Ad
	bases map[string]models.BaseMetrics
}

func newCSVBuilder() *csvBuilder {
	return &csvBuilder{byKey: make(map[string]*csvCampaign)}
}

func (b *csvBuilder) add(fields map[string]string, base models.BaseMetrics) {
	campaignKey := firstNonEmpty(fields["campaign_id"], fields["campaign_name"], "unknown")
	adSetKey := firstNonEmpty(fields["ad_group_id"], fields["ad_group_name"], campaignKey)
	adKey := firstNonEmpty(fields["ad_id"], fields["ad_name"], adSetKey)

	c, ok := b.byKey[campaignKey]
	if !ok {
		c = &csvCampaign{
			campaign: models.Campaign{
				ID:        campaignKey,
				Name:      firstNonEmpty(fields["campaign_name"], campaignKey),
				Status:    csvStatus(fields["status"]),
				Objective: csvObjective(fields["campaign_type"]),
			},
			adSets: make(map[string]*csvAdSet),
		}
		b.byKey[campaignKey] = c
		b.order = append(b.order, campaignKey)
	}

	as, ok := c.adSets[adSetKey]
	if !ok {
		as = &csvAdSet{
			adSet: models.AdSet{
				ID:         adSetKey,
				Name:       firstNonEmpty(fields["ad_group_name"], adSetKey),
				Status:     csvStatus(fields["status"]),
				CampaignID: campaignKey,
			},
			ads:   make(map[string]*models.Ad),
			bases: make(map[string]models.BaseMetrics),
		}
		c.adSets[adSetKey] = as
		c.order = append(c.order, adSetKey)
	}

	if _, seen := as.ads[adKey]; !seen {
		as.ads[adKey] = &models.Ad{
			ID:     adKey,
			Name:   firstNonEmpty(fields["ad_name"], adKey),
			Status: csvStatus(fields["status"]),
		}
		as.order = append(as.order, adKey)
	}
	as.bases[adKey] = as.bases[adKey].Add(base)
}

func (b *csvBuilder) campaigns() []models.Campaign {
	out := make([]models.Campaign, 0, len(b.order))
	for _, ck := range b.order {
		c := b.byKey[ck]
		for _, ak := range c.order {
			as := c.adSets[ak]
			for _, adk := range as.order {
				ad := *as.ads[adk]
				ad.Metrics = metrics.Derive(as.bases[adk])
				as.adSet.Ads = append(as.adSet.Ads, ad)
			}
			as.adSet.Metrics = metrics.RollUpAds(as.adSet.Ads)
			c.campaign.AdSets = append(c.campaign.AdSets, as.adSet)
		}
		c.campaign.Metrics = metrics.RollUpAdSets(c.campaign.AdSets)
		out = append(out, c.campaign)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func csvStatus(s string) models.EntityStatus {
	switch strings.ToLower(s) {
	case "", "enabled", "active", "ativada", "ativado", "ativa":
		return models.StatusActive
	case "removed", "removida", "removido":
		return models.StatusDeleted
	default:
		return models.StatusPaused
	}
}

func csvObjective(s string) models.CampaignObjective {
	switch strings.ToLower(headerReplacer.Replace(s)) {
	case "display":
		return models.ObjectiveDisplay
	case "video":
		return models.ObjectiveVideo
	case "shopping":
		return models.ObjectiveShopping
	case "performance_max", "performance max", "maximo desempenho":
		return models.ObjectivePerformanceMax
	case "discovery", "demand gen":
		return models.ObjectiveDiscovery
	case "local":
		return models.ObjectiveLocal
	case "smart", "inteligente":
		return models.ObjectiveSmart
	default:
		// Search is the overwhelmingly common export type and the safest
		// default when the column is missing.
		return models.ObjectiveSearch
	}
}
