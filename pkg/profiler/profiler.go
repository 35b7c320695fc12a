package profiler

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/glytehq/glyte-engine/pkg/sqlutil"
	"github.com/glytehq/glyte-engine/pkg/store"
)

// maxSampleValues is how many distinct non-null values are collected per
// column for LLM context and UI hints.
const maxSampleValues = 5

// maxConcurrentColumns bounds how many per-column stat queries run at once.
const maxConcurrentColumns = 4

// Profiler computes table profiles from storage state. Each call recomputes
// from scratch; there is no caching.
type Profiler struct {
	store  store.Store
	logger *zap.Logger
}

// New creates a Profiler over the given store.
func New(st store.Store, logger *zap.Logger) *Profiler {
	return &Profiler{store: st, logger: logger.Named("profiler")}
}

// Profile reads column metadata and row data for a table and returns its
// profile. A statistics failure on one column does not abort the others: the
// affected column carries a StatsError and zeroed counts.
func (p *Profiler) Profile(ctx context.Context, table string) (*TableProfile, error) {
	cols, err := p.store.Columns(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("read column metadata for %s: %w", table, err)
	}

	rowCount, err := p.store.RowCount(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("count rows in %s: %w", table, err)
	}

	// Per-column stat queries are independent; run them concurrently and
	// write results by index to preserve table column order.
	profiles := make([]ColumnProfile, len(cols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentColumns)

	for i, col := range cols {
		g.Go(func() error {
			profiles[i] = p.profileColumn(gctx, table, col)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &TableProfile{TableName: table, RowCount: rowCount, Columns: profiles}, nil
}

func (p *Profiler) profileColumn(ctx context.Context, table string, col store.ColumnMeta) ColumnProfile {
	profile := ColumnProfile{
		Name:         col.Name,
		Type:         ClassifyColumn(col.DataType, col.Name),
		SampleValues: []string{},
	}

	qCol := sqlutil.QuoteIdent(col.Name)
	qTable := sqlutil.QuoteIdent(table)

	rows, err := p.store.Query(ctx, fmt.Sprintf(`
		SELECT
			COUNT(DISTINCT %[1]s) AS distinct_count,
			COUNT(*) - COUNT(%[1]s) AS null_count,
			COUNT(*) AS total_count
		FROM %[2]s`, qCol, qTable))
	if err != nil || len(rows) == 0 {
		p.logger.Warn("column stats failed",
			zap.String("table", table),
			zap.String("column", col.Name),
			zap.Error(err))
		profile.StatsError = fmt.Sprintf("stats unavailable: %v", err)
		return profile
	}

	profile.DistinctCount = toInt(rows[0]["distinct_count"])
	profile.NullCount = toInt(rows[0]["null_count"])
	profile.TotalCount = toInt(rows[0]["total_count"])

	// High-cardinality string columns are not useful as chart dimensions.
	// Use the non-null count for sparse columns.
	nonNull := profile.TotalCount - profile.NullCount
	cardinalityBase := profile.TotalCount
	if nonNull > 0 {
		cardinalityBase = nonNull
	}
	if profile.Type == TypeCategorical &&
		profile.DistinctCount > 50 &&
		float64(profile.DistinctCount) > float64(cardinalityBase)*0.5 {
		profile.Type = TypeText
	}

	switch profile.Type {
	case TypeNumeric:
		p.numericStats(ctx, qTable, qCol, &profile)
	case TypeTemporal:
		p.temporalStats(ctx, qTable, qCol, &profile)
	}

	// Sample collection degrades to an empty list rather than flagging the
	// whole column.
	samples, err := p.store.Query(ctx, fmt.Sprintf(`
		SELECT DISTINCT CAST(%[1]s AS TEXT) AS val
		FROM %[2]s
		WHERE %[1]s IS NOT NULL
		ORDER BY val
		LIMIT %[3]d`, qCol, qTable, maxSampleValues))
	if err != nil {
		p.logger.Debug("sample collection failed",
			zap.String("table", table),
			zap.String("column", col.Name),
			zap.Error(err))
	} else {
		for _, row := range samples {
			profile.SampleValues = append(profile.SampleValues, toString(row["val"]))
		}
	}

	return profile
}

func (p *Profiler) numericStats(ctx context.Context, qTable, qCol string, profile *ColumnProfile) {
	rows, err := p.store.Query(ctx, fmt.Sprintf(`
		SELECT MIN(%[1]s) AS min_val, MAX(%[1]s) AS max_val, AVG(%[1]s) AS mean_val
		FROM %[2]s`, qCol, qTable))
	if err != nil || len(rows) == 0 {
		profile.StatsError = fmt.Sprintf("numeric stats unavailable: %v", err)
		return
	}
	profile.Min = toFloat(rows[0]["min_val"])
	profile.Max = toFloat(rows[0]["max_val"])
	mean := toFloat(rows[0]["mean_val"])
	profile.Mean = &mean
}

func (p *Profiler) temporalStats(ctx context.Context, qTable, qCol string, profile *ColumnProfile) {
	rows, err := p.store.Query(ctx, fmt.Sprintf(`
		SELECT CAST(MIN(%[1]s) AS TEXT) AS min_val, CAST(MAX(%[1]s) AS TEXT) AS max_val
		FROM %[2]s`, qCol, qTable))
	if err != nil || len(rows) == 0 {
		profile.StatsError = fmt.Sprintf("temporal stats unavailable: %v", err)
		return
	}
	profile.Min = toString(rows[0]["min_val"])
	profile.Max = toString(rows[0]["max_val"])
}
