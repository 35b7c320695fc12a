package charts

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glytehq/glyte-engine/pkg/profiler"
)

func TestFormatTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ad_spend", "Ad Spend"},
		{"adSpend", "Ad Spend"},
		{"leads", "Leads"},
		{"campaign_name", "Campaign Name"},
		{"spend", "Spend"},
		{"ROI", "ROI"},
	}
	for _, tt := range tests {
		if got := FormatTitle(tt.in); got != tt.want {
			t.Errorf("FormatTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func campaignProfile() *profiler.TableProfile {
	mean := 42.5
	return &profiler.TableProfile{
		TableName: "campaigns",
		RowCount:  48,
		Columns: []profiler.ColumnProfile{
			{Name: "date", Type: profiler.TypeTemporal, DistinctCount: 48, TotalCount: 48, Min: "2024-01-01", Max: "2024-02-17"},
			{Name: "campaign", Type: profiler.TypeCategorical, DistinctCount: 4, TotalCount: 48},
			{Name: "leads", Type: profiler.TypeNumeric, DistinctCount: 30, TotalCount: 48, Min: 0.0, Max: 120.0, Mean: &mean},
			{Name: "spend", Type: profiler.TypeNumeric, DistinctCount: 44, TotalCount: 48, Min: 10.0, Max: 950.0, Mean: &mean},
		},
	}
}

func chartsOfType(charts []Recommendation, ct ChartType) []Recommendation {
	var out []Recommendation
	for _, c := range charts {
		if c.Type == ct {
			out = append(out, c)
		}
	}
	return out
}

func TestRecommendCampaignDataset(t *testing.T) {
	charts := Recommend(campaignProfile())

	kpis := chartsOfType(charts, TypeKPI)
	require.Len(t, kpis, 2)
	assert.Equal(t, "Leads", kpis[0].Title)
	assert.Equal(t, `SELECT SUM("leads") as value FROM "campaigns"`, kpis[0].Query)
	assert.Equal(t, 3, kpis[0].Width)
	assert.InDelta(t, 0.85, kpis[0].Confidence, 1e-9)

	lines := chartsOfType(charts, TypeLine)
	require.Len(t, lines, 1)
	assert.Equal(t, "Leads Over Time", lines[0].Title)
	assert.Equal(t, "date", lines[0].XColumn)
	assert.Equal(t, []string{"leads", "spend"}, lines[0].YColumns)
	assert.InDelta(t, 0.9, lines[0].Confidence, 1e-9)
	assert.Contains(t, lines[0].Query, `GROUP BY "date"`)

	bars := chartsOfType(charts, TypeHorizontalBar)
	require.Len(t, bars, 1)
	assert.Equal(t, "Leads by Campaign", bars[0].Title)
	assert.InDelta(t, 0.8, bars[0].Confidence, 1e-9)

	// The donut uses the second numeric column.
	donuts := chartsOfType(charts, TypeDonut)
	require.Len(t, donuts, 1)
	assert.Equal(t, "Spend by Campaign", donuts[0].Title)

	tables := chartsOfType(charts, TypeTable)
	require.Len(t, tables, 1)
	assert.Equal(t, 12, tables[0].Width)
	assert.Equal(t, "Campaigns Details", tables[0].Title)
	assert.Contains(t, tables[0].Query, `GROUP BY "campaign"`)
	assert.Contains(t, tables[0].Query, `ORDER BY SUM("leads") DESC`)

	// Sequential chart IDs.
	for i, c := range charts {
		assert.Equal(t, fmt.Sprintf("chart-%d", i+1), c.ID)
	}
}

func TestRecommendKPIConfidenceSignals(t *testing.T) {
	constant := profiler.ColumnProfile{Name: "fee", Type: profiler.TypeNumeric, Min: 5.0, Max: 5.0}
	assert.InDelta(t, 0.5, kpiConfidence(constant, 100), 1e-9, "no variance lowers confidence")

	sparse := profiler.ColumnProfile{Name: "bonus", Type: profiler.TypeNumeric, Min: 0.0, Max: 10.0, NullCount: 80}
	assert.InDelta(t, 0.5, kpiConfidence(sparse, 100), 1e-9, "mostly-null column lowers confidence")

	healthy := profiler.ColumnProfile{Name: "spend", Type: profiler.TypeNumeric, Min: 0.0, Max: 10.0, NullCount: 3}
	assert.InDelta(t, 0.85, kpiConfidence(healthy, 100), 1e-9)
}

func TestRecommendExcludesIdentifierColumns(t *testing.T) {
	profile := &profiler.TableProfile{
		TableName: "orders",
		RowCount:  100,
		Columns: []profiler.ColumnProfile{
			{Name: "email", Type: profiler.TypeCategorical, DistinctCount: 10},
			{Name: "order_ref", Type: profiler.TypeCategorical, DistinctCount: 95},
			{Name: "status", Type: profiler.TypeCategorical, DistinctCount: 3},
			{Name: "amount", Type: profiler.TypeNumeric, DistinctCount: 70, Min: 1.0, Max: 900.0},
		},
	}
	charts := Recommend(profile)

	for _, c := range charts {
		assert.NotEqual(t, "email", c.XColumn, "columns named email are never dimensions")
		assert.NotEqual(t, "order_ref", c.XColumn, "near-unique columns are never dimensions")
	}

	bars := chartsOfType(charts, TypeHorizontalBar)
	require.NotEmpty(t, bars)
	assert.Equal(t, "status", bars[0].XColumn)
}

func TestRecommendCountChartsWithoutNumerics(t *testing.T) {
	profile := &profiler.TableProfile{
		TableName: "attendees",
		RowCount:  500,
		Columns: []profiler.ColumnProfile{
			{Name: "country", Type: profiler.TypeCategorical, DistinctCount: 12},
			{Name: "company", Type: profiler.TypeText, DistinctCount: 320},
		},
	}
	charts := Recommend(profile)

	kpis := chartsOfType(charts, TypeKPI)
	require.Len(t, kpis, 2)
	assert.Equal(t, "Total Records", kpis[0].Title)
	assert.Equal(t, `SELECT COUNT(*) as value FROM "attendees"`, kpis[0].Query)
	assert.Equal(t, "Unique Country", kpis[1].Title)

	bars := chartsOfType(charts, TypeHorizontalBar)
	require.Len(t, bars, 2)
	assert.Contains(t, bars[0].Query, "COUNT(*)")
	assert.Equal(t, "Top 10 Company", bars[1].Title)
	assert.Contains(t, bars[1].Query, "LIMIT 10")
}

func TestBuildSummaryTableQueryFallsBackToPreview(t *testing.T) {
	noCats := &profiler.TableProfile{
		TableName: "metrics",
		Columns: []profiler.ColumnProfile{
			{Name: "value", Type: profiler.TypeNumeric},
		},
	}
	assert.Equal(t, `SELECT * FROM "metrics" LIMIT 50`, buildSummaryTableQuery(noCats))

	noNums := &profiler.TableProfile{
		TableName: "tags",
		Columns: []profiler.ColumnProfile{
			{Name: "tag", Type: profiler.TypeCategorical, DistinctCount: 5},
		},
	}
	assert.Equal(t, `SELECT * FROM "tags" LIMIT 50`, buildSummaryTableQuery(noNums))
}

func TestRecommendIsDeterministic(t *testing.T) {
	first := Recommend(campaignProfile())
	second := Recommend(campaignProfile())
	assert.Equal(t, first, second)
}
