package profiler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/store"
)

// columnFixture drives the mock store's answers for a single column.
type columnFixture struct {
	meta     store.ColumnMeta
	distinct int
	nulls    int
	total    int
	min      any
	max      any
	mean     float64
	samples  []string
	statsErr error
}

func fixtureStore(t *testing.T, table string, rowCount int, cols []columnFixture) *store.Mock {
	t.Helper()
	byName := make(map[string]columnFixture, len(cols))
	metas := make([]store.ColumnMeta, 0, len(cols))
	for _, c := range cols {
		byName[c.meta.Name] = c
		metas = append(metas, c.meta)
	}
	return &store.Mock{
		ColumnsFunc: func(ctx context.Context, tbl string) ([]store.ColumnMeta, error) {
			if tbl != table {
				return nil, errors.New("unexpected table")
			}
			return metas, nil
		},
		RowCountFunc: func(ctx context.Context, tbl string) (int, error) {
			return rowCount, nil
		},
		QueryFunc: func(ctx context.Context, sql string) ([]map[string]any, error) {
			col, ok := matchColumn(sql, byName)
			if !ok {
				return nil, errors.New("no fixture matches query: " + sql)
			}
			switch {
			case strings.Contains(sql, "COUNT(DISTINCT"):
				if col.statsErr != nil {
					return nil, col.statsErr
				}
				return []map[string]any{{
					"distinct_count": int64(col.distinct),
					"null_count":     int64(col.nulls),
					"total_count":    int64(col.total),
				}}, nil
			case strings.Contains(sql, "AVG("):
				return []map[string]any{{
					"min_val": col.min, "max_val": col.max, "mean_val": col.mean,
				}}, nil
			case strings.Contains(sql, "MIN("):
				return []map[string]any{{"min_val": col.min, "max_val": col.max}}, nil
			case strings.Contains(sql, "SELECT DISTINCT"):
				rows := make([]map[string]any, 0, len(col.samples))
				for _, s := range col.samples {
					rows = append(rows, map[string]any{"val": s})
				}
				return rows, nil
			}
			return nil, errors.New("unrecognized query: " + sql)
		},
	}
}

func matchColumn(sql string, byName map[string]columnFixture) (columnFixture, bool) {
	for name, c := range byName {
		if strings.Contains(sql, `"`+name+`"`) {
			return c, true
		}
	}
	return columnFixture{}, false
}

func TestProfileTable(t *testing.T) {
	mock := fixtureStore(t, "campaigns", 48, []columnFixture{
		{
			meta:    store.ColumnMeta{Name: "date", DataType: "TEXT"},
			distinct: 48, nulls: 0, total: 48,
			min: "2024-01-01", max: "2024-02-17",
			samples: []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"},
		},
		{
			meta:    store.ColumnMeta{Name: "campaign", DataType: "TEXT"},
			distinct: 4, nulls: 0, total: 48,
			samples: []string{"Brand", "Display", "Search", "Social"},
		},
		{
			meta:    store.ColumnMeta{Name: "leads", DataType: "INTEGER"},
			distinct: 30, nulls: 2, total: 48,
			min: int64(0), max: int64(120), mean: 42.5,
			samples: []string{"0", "12", "15", "20", "25"},
		},
	})

	p := New(mock, zap.NewNop())
	profile, err := p.Profile(context.Background(), "campaigns")
	require.NoError(t, err)

	assert.Equal(t, "campaigns", profile.TableName)
	assert.Equal(t, 48, profile.RowCount)
	require.Len(t, profile.Columns, 3)

	// Column order follows table metadata order even though stats run
	// concurrently.
	assert.Equal(t, "date", profile.Columns[0].Name)
	assert.Equal(t, "campaign", profile.Columns[1].Name)
	assert.Equal(t, "leads", profile.Columns[2].Name)

	date := profile.Columns[0]
	assert.Equal(t, TypeTemporal, date.Type)
	assert.Equal(t, "2024-01-01", date.Min)
	assert.Equal(t, "2024-02-17", date.Max)
	assert.Nil(t, date.Mean)

	campaign := profile.Columns[1]
	assert.Equal(t, TypeCategorical, campaign.Type)
	assert.Equal(t, 4, campaign.DistinctCount)
	assert.Equal(t, []string{"Brand", "Display", "Search", "Social"}, campaign.SampleValues)

	leads := profile.Columns[2]
	assert.Equal(t, TypeNumeric, leads.Type)
	assert.Equal(t, 2, leads.NullCount)
	assert.Equal(t, float64(0), leads.Min)
	assert.Equal(t, float64(120), leads.Max)
	require.NotNil(t, leads.Mean)
	assert.InDelta(t, 42.5, *leads.Mean, 1e-9)
}

func TestProfileRefinesHighCardinalityCategorical(t *testing.T) {
	mock := fixtureStore(t, "contacts", 100, []columnFixture{
		{
			meta:    store.ColumnMeta{Name: "full_name", DataType: "TEXT"},
			distinct: 97, nulls: 0, total: 100,
			samples: []string{"Ada", "Ben", "Cara", "Dan", "Eve"},
		},
		{
			// 40 distinct is under the 50 threshold; stays categorical.
			meta:    store.ColumnMeta{Name: "city", DataType: "TEXT"},
			distinct: 40, nulls: 0, total: 100,
			samples: []string{"Austin", "Berlin", "Cork", "Denver", "Essen"},
		},
	})

	p := New(mock, zap.NewNop())
	profile, err := p.Profile(context.Background(), "contacts")
	require.NoError(t, err)

	assert.Equal(t, TypeText, profile.Columns[0].Type, "near-unique text column should be demoted from categorical")
	assert.Equal(t, TypeCategorical, profile.Columns[1].Type)
}

func TestProfileSparseColumnUsesNonNullBase(t *testing.T) {
	// 60 distinct over 300 rows would stay categorical, but with 200
	// nulls only 100 values exist, so 60 exceeds half the non-null base.
	mock := fixtureStore(t, "leads", 300, []columnFixture{
		{
			meta:    store.ColumnMeta{Name: "referrer", DataType: "TEXT"},
			distinct: 60, nulls: 200, total: 300,
			samples: []string{"a", "b", "c", "d", "e"},
		},
	})

	p := New(mock, zap.NewNop())
	profile, err := p.Profile(context.Background(), "leads")
	require.NoError(t, err)
	assert.Equal(t, TypeText, profile.Columns[0].Type)
}

func TestProfileColumnStatFailureIsIsolated(t *testing.T) {
	mock := fixtureStore(t, "orders", 10, []columnFixture{
		{
			meta:     store.ColumnMeta{Name: "broken", DataType: "TEXT"},
			statsErr: errors.New("disk I/O error"),
		},
		{
			meta:    store.ColumnMeta{Name: "status", DataType: "TEXT"},
			distinct: 3, nulls: 0, total: 10,
			samples: []string{"done", "open", "shipped"},
		},
	})

	p := New(mock, zap.NewNop())
	profile, err := p.Profile(context.Background(), "orders")
	require.NoError(t, err, "one failing column must not abort the table profile")

	broken := profile.Columns[0]
	assert.NotEmpty(t, broken.StatsError)
	assert.Equal(t, 0, broken.DistinctCount)

	status := profile.Columns[1]
	assert.Empty(t, status.StatsError)
	assert.Equal(t, 3, status.DistinctCount)
}

func TestProfileIsDeterministic(t *testing.T) {
	mock := fixtureStore(t, "campaigns", 48, []columnFixture{
		{
			meta:    store.ColumnMeta{Name: "campaign", DataType: "TEXT"},
			distinct: 4, nulls: 0, total: 48,
			samples: []string{"Brand", "Display", "Search", "Social"},
		},
		{
			meta:    store.ColumnMeta{Name: "spend", DataType: "REAL"},
			distinct: 44, nulls: 0, total: 48,
			min: 10.0, max: 950.0, mean: 310.2,
			samples: []string{"10", "100", "110", "120", "130"},
		},
	})

	p := New(mock, zap.NewNop())
	first, err := p.Profile(context.Background(), "campaigns")
	require.NoError(t, err)
	second, err := p.Profile(context.Background(), "campaigns")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
