package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metricshub/internal/models"
)

func TestGoogleCSVNormalizeEnglishComma(t *testing.T) {
	raw := "campaign_id,campaign,ad_group_id,ad_group,ad_id,ad,date,impressions,clicks,cost,conversions,status\n" +
		"c1,Search BR,g1,Grupo 1,a1,RSA 1,2025-06-01,\"1,000\",25,30.50,3,enabled\n" +
		"c1,Search BR,g1,Grupo 1,a1,RSA 1,2025-06-02,500,15,19.50,2,enabled\n"

	campaigns, spark, err := GoogleCSV{}.Normalize([]byte(raw))
	require.NoError(t, err)
	require.Len(t, campaigns, 1)

	c := campaigns[0]
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, "Search BR", c.Name)
	assert.Equal(t, models.ObjectiveSearch, c.Objective)
	assert.Equal(t, 1500, c.Metrics.Impressions)
	assert.Equal(t, 40, c.Metrics.Clicks)
	assert.InDelta(t, 50.0, c.Metrics.Spend, 1e-9)
	assert.Equal(t, 5, c.Metrics.Leads)
	assert.InDelta(t, 10.0, c.Metrics.CPL, 1e-9)

	require.Len(t, c.AdSets, 1)
	require.Len(t, c.AdSets[0].Ads, 1)
	assert.Equal(t, 1500, c.AdSets[0].Ads[0].Metrics.Impressions, "same ad across dates accumulates")

	require.Len(t, spark, 2)
	assert.Equal(t, "2025-06-01", spark[0].Date)
	assert.Equal(t, 1000, spark[0].Impressions)
}

func TestGoogleCSVNormalizePortugueseSemicolon(t *testing.T) {
	raw := "Campanha;Grupo de anúncios;Anúncio;Dia;Impressões;Cliques;Custo;Conversões;Estado\n" +
		"Campanha Verão;Grupo A;Anúncio 1;01/06/2025;1234;56;1.234,56;7;Ativada\n"

	campaigns, _, err := GoogleCSV{}.Normalize([]byte(raw))
	require.NoError(t, err)
	require.Len(t, campaigns, 1)

	c := campaigns[0]
	assert.Equal(t, "Campanha Verão", c.Name, "name-synthesized key when id columns are absent")
	assert.Equal(t, models.StatusActive, c.Status)
	assert.Equal(t, 1234, c.Metrics.Impressions)
	assert.Equal(t, 56, c.Metrics.Clicks)
	assert.InDelta(t, 1234.56, c.Metrics.Spend, 1e-9)
	assert.Equal(t, 7, c.Metrics.Leads)
}

func TestGoogleCSVWindowKeepsUnparseableDates(t *testing.T) {
	window := models.DateRange{
		From: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	raw := "campaign,date,impressions,clicks,cost,conversions\n" +
		"In Window,2025-06-15,100,10,5.00,1\n" +
		"Bad Date,totally-not-a-date,200,20,10.00,2\n" +
		"Out Of Window,2025-05-01,400,40,20.00,4\n"

	campaigns, _, err := GoogleCSV{Window: window}.Normalize([]byte(raw))
	require.NoError(t, err)

	names := make([]string, 0, len(campaigns))
	for _, c := range campaigns {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"In Window", "Bad Date"}, names,
		"unparseable dates stay, valid out-of-range dates drop")
}

func TestGoogleCSVCompositeKeyGrouping(t *testing.T) {
	// Rows without ad group or ad columns fall back to the campaign key, so a
	// campaign-level export still produces a complete single-branch hierarchy.
	raw := "campaign,impressions,clicks,cost,conversions\n" +
		"Solo,100,10,5.00,1\n" +
		"Solo,300,20,15.00,2\n"

	campaigns, _, err := GoogleCSV{}.Normalize([]byte(raw))
	require.NoError(t, err)
	require.Len(t, campaigns, 1)

	c := campaigns[0]
	require.Len(t, c.AdSets, 1)
	assert.Equal(t, "Solo", c.AdSets[0].Name)
	require.Len(t, c.AdSets[0].Ads, 1)
	assert.Equal(t, 400, c.Metrics.Impressions)
	assert.Equal(t, 3, c.Metrics.Leads)
}

func TestGoogleCSVEmptyInput(t *testing.T) {
	cases := map[string]string{
		"empty file":      "",
		"header only":     "campaign,impressions,clicks\n",
		"unknown columns": "foo,bar,baz\n1,2,3\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := GoogleCSV{}.Normalize([]byte(raw))

			var srcErr *UnavailableError
			require.ErrorAs(t, err, &srcErr)
			assert.Equal(t, "google_csv", srcErr.Source)
		})
	}
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ',', sniffDelimiter("a,b,c\n1,2,3"))
	assert.Equal(t, ';', sniffDelimiter("a;b;c\n1;2;3"))
	assert.Equal(t, ',', sniffDelimiter("single"))
}

func TestCSVObjective(t *testing.T) {
	assert.Equal(t, models.ObjectivePerformanceMax, csvObjective("Máximo desempenho"))
	assert.Equal(t, models.ObjectiveVideo, csvObjective("Video"))
	assert.Equal(t, models.ObjectiveSearch, csvObjective(""))
	assert.Equal(t, models.ObjectiveSearch, csvObjective("whatever"))
}
