package relationships

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/apperrors"
	"github.com/glytehq/glyte-engine/pkg/store"
)

func TestNameSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    columnMeta
		b    columnMeta
		want float64
	}{
		{
			"exact match",
			columnMeta{table: "orders", column: "status"},
			columnMeta{table: "shipments", column: "status"},
			1.0,
		},
		{
			"exact match across naming styles",
			columnMeta{table: "orders", column: "customer_id"},
			columnMeta{table: "invoices", column: "CustomerID"},
			1.0,
		},
		{
			"foreign key pattern",
			columnMeta{table: "orders", column: "customer_id"},
			columnMeta{table: "customers", column: "id"},
			0.9,
		},
		{
			"foreign key pattern reversed sides",
			columnMeta{table: "customers", column: "id"},
			columnMeta{table: "orders", column: "customer_id"},
			0.9,
		},
		{
			"plural table singularized",
			columnMeta{table: "companies", column: "id"},
			columnMeta{table: "contacts", column: "company_id"},
			0.9,
		},
		{
			"partial overlap",
			columnMeta{table: "a", column: "country"},
			columnMeta{table: "b", column: "country_code"},
			0.5,
		},
		{
			"no similarity",
			columnMeta{table: "a", column: "amount"},
			columnMeta{table: "b", column: "status"},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nameSimilarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("nameSimilarity(%s.%s, %s.%s) = %v, want %v",
					tt.a.table, tt.a.column, tt.b.table, tt.b.column, got, tt.want)
			}
		})
	}
}

func TestTypeCompatibility(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"INTEGER", "INTEGER", 1.0},
		{"INTEGER", "BIGINT", 0.9},
		{"VARCHAR", "TEXT", 0.9},
		{"INTEGER", "TEXT", 0.3},
		{"REAL", "DATE", 0.3},
	}
	for _, tt := range tests {
		got := typeCompatibility(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("typeCompatibility(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

// relationshipFixture answers the detector's queries for an orders/customers
// pair: orders.customer_id fully covered by customers.id, orders.id only
// partially overlapping.
func relationshipFixture() *store.Mock {
	return &store.Mock{
		ColumnsFunc: func(ctx context.Context, table string) ([]store.ColumnMeta, error) {
			switch table {
			case "orders":
				return []store.ColumnMeta{
					{Name: "id", DataType: "INTEGER"},
					{Name: "customer_id", DataType: "INTEGER"},
					{Name: "amount", DataType: "REAL"},
				}, nil
			case "customers":
				return []store.ColumnMeta{
					{Name: "id", DataType: "INTEGER"},
					{Name: "name", DataType: "TEXT"},
				}, nil
			}
			return nil, apperrors.ErrTableNotFound
		},
		QueryFunc: func(ctx context.Context, sql string) ([]map[string]any, error) {
			switch {
			case strings.Contains(sql, "LEFT JOIN") && strings.Contains(sql, `a."customer_id"`):
				return []map[string]any{{"a_distinct": int64(3), "b_distinct": int64(3), "overlap": int64(3)}}, nil
			case strings.Contains(sql, "LEFT JOIN") && strings.Contains(sql, `a."id"`):
				return []map[string]any{{"a_distinct": int64(5), "b_distinct": int64(3), "overlap": int64(3)}}, nil
			case strings.Contains(sql, "MAX(cnt)") && strings.Contains(sql, `"orders"`) && strings.Contains(sql, `"customer_id"`):
				return []map[string]any{{"max_count": int64(2)}}, nil
			case strings.Contains(sql, "MAX(cnt)"):
				return []map[string]any{{"max_count": int64(1)}}, nil
			}
			return nil, errors.New("unexpected query: " + sql)
		},
	}
}

func TestDetectOrdersCustomers(t *testing.T) {
	d := NewDetector(relationshipFixture(), zap.NewNop())
	suggestions, err := d.Detect(context.Background(), []string{"orders", "customers"})
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	// Strongest first: the foreign key with full overlap.
	fk := suggestions[0]
	assert.Equal(t, "orders", fk.FromTable)
	assert.Equal(t, "customer_id", fk.FromColumn)
	assert.Equal(t, "customers", fk.ToTable)
	assert.Equal(t, "id", fk.ToColumn)
	assert.InDelta(t, 0.97, fk.Confidence, 1e-9)
	assert.Equal(t, OneToMany, fk.Cardinality)
	assert.Equal(t, SourceAuto, fk.Source)
	assert.Contains(t, fk.Reason, "Column name match")
	assert.Contains(t, fk.Reason, "100% value overlap")
	assert.Contains(t, fk.Reason, "Same data type")
	require.NotNil(t, fk.Details)
	assert.InDelta(t, 0.9, fk.Details.NameSimilarity, 1e-9)
	assert.InDelta(t, 1.0, fk.Details.ValueOverlap, 1e-9)

	idPair := suggestions[1]
	assert.Equal(t, "id", idPair.FromColumn)
	assert.Equal(t, "id", idPair.ToColumn)
	assert.InDelta(t, 0.84, idPair.Confidence, 1e-9)
	assert.Equal(t, OneToOne, idPair.Cardinality)
}

func TestDetectRequiresTwoTables(t *testing.T) {
	d := NewDetector(&store.Mock{}, zap.NewNop())
	_, err := d.Detect(context.Background(), []string{"orders"})
	assert.ErrorIs(t, err, apperrors.ErrNotEnoughTables)
}

func TestDetectFailedOverlapDegradesToZero(t *testing.T) {
	mock := relationshipFixture()
	inner := mock.QueryFunc
	mock.QueryFunc = func(ctx context.Context, sql string) ([]map[string]any, error) {
		if strings.Contains(sql, "LEFT JOIN") {
			return nil, errors.New("join too large")
		}
		return inner(ctx, sql)
	}

	d := NewDetector(mock, zap.NewNop())
	suggestions, err := d.Detect(context.Background(), []string{"orders", "customers"})
	require.NoError(t, err)

	// With zero overlap only the nameSim >= 0.9 pairs survive.
	for _, s := range suggestions {
		assert.GreaterOrEqual(t, s.Details.NameSimilarity, 0.9)
		assert.Zero(t, s.Details.ValueOverlap)
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	d := NewDetector(relationshipFixture(), zap.NewNop())
	first, err := d.Detect(context.Background(), []string{"orders", "customers"})
	require.NoError(t, err)
	second, err := d.Detect(context.Background(), []string{"orders", "customers"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDedupeRemovesReversePairs(t *testing.T) {
	candidates := []Suggestion{
		{FromTable: "a", FromColumn: "x", ToTable: "b", ToColumn: "y", Confidence: 0.9},
		{FromTable: "b", FromColumn: "y", ToTable: "a", ToColumn: "x", Confidence: 0.8},
		{FromTable: "a", FromColumn: "z", ToTable: "b", ToColumn: "y", Confidence: 0.7},
	}
	out := dedupe(candidates)
	require.Len(t, out, 2)
	assert.Equal(t, 0.9, out[0].Confidence)
	assert.Equal(t, "z", out[1].FromColumn)
}
