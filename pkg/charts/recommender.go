package charts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/glytehq/glyte-engine/pkg/profiler"
	"github.com/glytehq/glyte-engine/pkg/sqlutil"
)

var (
	identifierNameRe = regexp.MustCompile(`(?i)^(id|uuid|_id|key|email|url|linkedin|phone|address)$`)
	personNameRe     = regexp.MustCompile(`(?i)^(first.?name|last.?name|full.?name)$`)
)

// isIdentifier reports whether a column is ID-like and therefore useless as
// a chart dimension: near-unique, or named like a key or personal field.
func isIdentifier(c profiler.ColumnProfile, rowCount int) bool {
	return float64(c.DistinctCount) > float64(rowCount)*0.8 ||
		identifierNameRe.MatchString(c.Name) ||
		personNameRe.MatchString(c.Name)
}

// kpiConfidence scores a sum KPI by data quality: columns with no variance
// or mostly nulls get the low score.
func kpiConfidence(num profiler.ColumnProfile, rowCount int) float64 {
	hasVariance := num.Min != num.Max
	notSparse := float64(num.NullCount) < float64(rowCount)*0.5
	if hasVariance && notSparse {
		return 0.85
	}
	return 0.5
}

// Recommend generates charts for a single table using type-driven rules:
// KPIs for numeric totals, a line chart when a temporal column exists, bar
// and donut breakdowns over low-cardinality categoricals, Top 10 charts for
// high-cardinality ones, and a closing summary table.
func Recommend(profile *profiler.TableProfile) []Recommendation {
	var charts []Recommendation
	var ids idGen

	temporals := profile.ColumnsOfType(profiler.TypeTemporal)
	numerics := profile.ColumnsOfType(profiler.TypeNumeric)

	var categoricals, highCardCategoricals []profiler.ColumnProfile
	for _, c := range profile.Columns {
		if isIdentifier(c, profile.RowCount) {
			continue
		}
		switch {
		case c.Type == profiler.TypeCategorical && c.DistinctCount >= 2 && c.DistinctCount <= 20:
			categoricals = append(categoricals, c)
		case (c.Type == profiler.TypeCategorical || c.Type == profiler.TypeText) && c.DistinctCount > 20:
			highCardCategoricals = append(highCardCategoricals, c)
		}
	}

	table := profile.TableName
	qTable := sqlutil.QuoteIdent(table)

	// KPI cards for the leading numeric columns.
	for _, num := range head(numerics, 4) {
		charts = append(charts, Recommendation{
			ID:         ids.next(),
			Type:       TypeKPI,
			Title:      FormatTitle(num.Name),
			Query:      fmt.Sprintf(`SELECT SUM(%s) as value FROM %s`, sqlutil.QuoteIdent(num.Name), qTable),
			Width:      3,
			Confidence: kpiConfidence(num, profile.RowCount),
			Reason:     fmt.Sprintf("Shows total %s across all %d rows", FormatTitle(num.Name), profile.RowCount),
		})
	}

	// Temporal plus numeric makes a line chart.
	if len(temporals) > 0 && len(numerics) > 0 {
		timeCol := temporals[0]
		yNumerics := head(numerics, 2)
		sums := make([]string, len(yNumerics))
		yNames := make([]string, len(yNumerics))
		for i, n := range yNumerics {
			q := sqlutil.QuoteIdent(n.Name)
			sums[i] = fmt.Sprintf(`SUM(%s) as %s`, q, q)
			yNames[i] = n.Name
		}
		qTime := sqlutil.QuoteIdent(timeCol.Name)
		charts = append(charts, Recommendation{
			ID:    ids.next(),
			Type:  TypeLine,
			Title: FormatTitle(yNumerics[0].Name) + " Over Time",
			Query: fmt.Sprintf(`SELECT %s, %s FROM %s GROUP BY %s ORDER BY %s`,
				qTime, strings.Join(sums, ", "), qTable, qTime, qTime),
			XColumn:    timeCol.Name,
			YColumns:   yNames,
			Width:      6,
			Confidence: 0.9,
			Reason:     fmt.Sprintf("%s trend over %s", FormatTitle(yNumerics[0].Name), FormatTitle(timeCol.Name)),
		})
	}

	// First low-cardinality categorical against the top metric.
	if len(categoricals) > 0 && len(numerics) > 0 {
		cat := categoricals[0]
		num := numerics[0]
		qCat := sqlutil.QuoteIdent(cat.Name)
		qNum := sqlutil.QuoteIdent(num.Name)
		charts = append(charts, Recommendation{
			ID:    ids.next(),
			Type:  TypeHorizontalBar,
			Title: fmt.Sprintf("%s by %s", FormatTitle(num.Name), FormatTitle(cat.Name)),
			Query: fmt.Sprintf(`SELECT %s, SUM(%s) as %s FROM %s GROUP BY %s ORDER BY SUM(%s) DESC`,
				qCat, qNum, qNum, qTable, qCat, qNum),
			XColumn:    cat.Name,
			YColumns:   []string{num.Name},
			Width:      6,
			Confidence: 0.8,
			Reason: fmt.Sprintf("Compares %s across %d %s categories",
				FormatTitle(num.Name), cat.DistinctCount, FormatTitle(cat.Name)),
		})
	}

	// Two categoricals make a grouped bar.
	if len(categoricals) >= 2 && len(numerics) > 0 {
		cat1 := categoricals[0]
		cat2 := categoricals[1]
		num := numerics[0]
		qCat1 := sqlutil.QuoteIdent(cat1.Name)
		qCat2 := sqlutil.QuoteIdent(cat2.Name)
		qNum := sqlutil.QuoteIdent(num.Name)
		charts = append(charts, Recommendation{
			ID:    ids.next(),
			Type:  TypeBar,
			Title: fmt.Sprintf("%s by %s", FormatTitle(num.Name), FormatTitle(cat2.Name)),
			Query: fmt.Sprintf(`SELECT %s, %s, SUM(%s) as %s FROM %s GROUP BY %s, %s ORDER BY %s`,
				qCat2, qCat1, qNum, qNum, qTable, qCat2, qCat1, qCat2),
			XColumn:    cat2.Name,
			YColumns:   []string{num.Name},
			GroupBy:    cat1.Name,
			Width:      6,
			Confidence: 0.7,
			Reason: fmt.Sprintf("Groups %s by %s and %s (%d x %d combinations)",
				FormatTitle(num.Name), FormatTitle(cat2.Name), FormatTitle(cat1.Name),
				cat2.DistinctCount, cat1.DistinctCount),
		})
	}

	// High-cardinality categoricals become Top 10 charts.
	if len(numerics) > 0 {
		for _, cat := range head(highCardCategoricals, 2) {
			num := numerics[0]
			qCat := sqlutil.QuoteIdent(cat.Name)
			qNum := sqlutil.QuoteIdent(num.Name)
			charts = append(charts, Recommendation{
				ID:    ids.next(),
				Type:  TypeHorizontalBar,
				Title: fmt.Sprintf("Top 10 %s by %s", FormatTitle(cat.Name), FormatTitle(num.Name)),
				Query: fmt.Sprintf(`SELECT %s, SUM(%s) as %s FROM %s WHERE %s IS NOT NULL AND %s != '' GROUP BY %s ORDER BY SUM(%s) DESC LIMIT 10`,
					qCat, qNum, qNum, qTable, qCat, qCat, qCat, qNum),
				XColumn:    cat.Name,
				YColumns:   []string{num.Name},
				Width:      6,
				Confidence: 0.75,
				Reason: fmt.Sprintf("Top 10 from %d unique %s values by %s",
					cat.DistinctCount, FormatTitle(cat.Name), FormatTitle(num.Name)),
			})
		}
	}

	// A small categorical makes a donut over the last numeric.
	if len(numerics) > 0 {
		if donutCat, ok := findDonutCategorical(categoricals); ok {
			num := numerics[0]
			if len(numerics) > 1 {
				num = numerics[1]
			}
			qCat := sqlutil.QuoteIdent(donutCat.Name)
			qNum := sqlutil.QuoteIdent(num.Name)
			charts = append(charts, Recommendation{
				ID:    ids.next(),
				Type:  TypeDonut,
				Title: fmt.Sprintf("%s by %s", FormatTitle(num.Name), FormatTitle(donutCat.Name)),
				Query: fmt.Sprintf(`SELECT %s, SUM(%s) as %s FROM %s GROUP BY %s ORDER BY SUM(%s) DESC`,
					qCat, qNum, qNum, qTable, qCat, qNum),
				XColumn:    donutCat.Name,
				YColumns:   []string{num.Name},
				Width:      6,
				Confidence: 0.75,
				Reason: fmt.Sprintf("Distribution of %s across %d %s segments",
					FormatTitle(num.Name), donutCat.DistinctCount, FormatTitle(donutCat.Name)),
			})
		}
	}

	// Without numeric columns, fall back to COUNT-based charts.
	if len(numerics) == 0 && (len(categoricals) > 0 || len(highCardCategoricals) > 0) {
		charts = append(charts, countBasedCharts(profile, &ids, categoricals, highCardCategoricals, temporals)...)
	}

	charts = append(charts, Recommendation{
		ID:         ids.next(),
		Type:       TypeTable,
		Title:      FormatTitle(table) + " Details",
		Query:      buildSummaryTableQuery(profile),
		Width:      12,
		Confidence: 0.6,
		Reason:     fmt.Sprintf("Summary table with %d columns", len(profile.Columns)),
	})

	return charts
}

func countBasedCharts(
	profile *profiler.TableProfile,
	ids *idGen,
	categoricals, highCardCategoricals, temporals []profiler.ColumnProfile,
) []Recommendation {
	var charts []Recommendation
	qTable := sqlutil.QuoteIdent(profile.TableName)

	charts = append(charts, Recommendation{
		ID:         ids.next(),
		Type:       TypeKPI,
		Title:      "Total Records",
		Query:      fmt.Sprintf(`SELECT COUNT(*) as value FROM %s`, qTable),
		Width:      3,
		Confidence: 0.9,
		Reason:     "Total row count for " + FormatTitle(profile.TableName),
	})

	var firstDimension *profiler.ColumnProfile
	if len(categoricals) > 0 {
		firstDimension = &categoricals[0]
	} else if len(highCardCategoricals) > 0 {
		firstDimension = &highCardCategoricals[0]
	}
	if firstDimension != nil {
		qDim := sqlutil.QuoteIdent(firstDimension.Name)
		charts = append(charts, Recommendation{
			ID:    ids.next(),
			Type:  TypeKPI,
			Title: "Unique " + FormatTitle(firstDimension.Name),
			Query: fmt.Sprintf(`SELECT COUNT(DISTINCT %s) as value FROM %s WHERE %s IS NOT NULL AND %s != ''`,
				qDim, qTable, qDim, qDim),
			Width:      3,
			Confidence: 0.8,
			Reason: fmt.Sprintf("Distinct count of %s (%d unique values)",
				FormatTitle(firstDimension.Name), firstDimension.DistinctCount),
		})
	}

	for _, cat := range head(categoricals, 2) {
		qCat := sqlutil.QuoteIdent(cat.Name)
		charts = append(charts, Recommendation{
			ID:    ids.next(),
			Type:  TypeHorizontalBar,
			Title: "Records by " + FormatTitle(cat.Name),
			Query: fmt.Sprintf(`SELECT %s, COUNT(*) as "Count" FROM %s WHERE %s IS NOT NULL AND %s != '' GROUP BY %s ORDER BY COUNT(*) DESC`,
				qCat, qTable, qCat, qCat, qCat),
			XColumn:    cat.Name,
			YColumns:   []string{"Count"},
			Width:      6,
			Confidence: 0.8,
			Reason: fmt.Sprintf("Record count breakdown by %s (%d categories)",
				FormatTitle(cat.Name), cat.DistinctCount),
		})
	}

	for _, cat := range head(highCardCategoricals, 2) {
		qCat := sqlutil.QuoteIdent(cat.Name)
		charts = append(charts, Recommendation{
			ID:    ids.next(),
			Type:  TypeHorizontalBar,
			Title: "Top 10 " + FormatTitle(cat.Name),
			Query: fmt.Sprintf(`SELECT %s, COUNT(*) as "Count" FROM %s WHERE %s IS NOT NULL AND %s != '' GROUP BY %s ORDER BY COUNT(*) DESC LIMIT 10`,
				qCat, qTable, qCat, qCat, qCat),
			XColumn:    cat.Name,
			YColumns:   []string{"Count"},
			Width:      6,
			Confidence: 0.75,
			Reason: fmt.Sprintf("Top 10 from %d unique %s values",
				cat.DistinctCount, FormatTitle(cat.Name)),
		})
	}

	if donutCat, ok := findDonutCategorical(categoricals); ok && donutCat.Name != categoricals[0].Name {
		qCat := sqlutil.QuoteIdent(donutCat.Name)
		charts = append(charts, Recommendation{
			ID:    ids.next(),
			Type:  TypeDonut,
			Title: "Distribution by " + FormatTitle(donutCat.Name),
			Query: fmt.Sprintf(`SELECT %s, COUNT(*) as "Count" FROM %s WHERE %s IS NOT NULL AND %s != '' GROUP BY %s ORDER BY COUNT(*) DESC`,
				qCat, qTable, qCat, qCat, qCat),
			XColumn:    donutCat.Name,
			YColumns:   []string{"Count"},
			Width:      6,
			Confidence: 0.7,
			Reason: fmt.Sprintf("Proportional split across %d %s values",
				donutCat.DistinctCount, FormatTitle(donutCat.Name)),
		})
	}

	if len(temporals) > 0 {
		timeCol := temporals[0]
		qTime := sqlutil.QuoteIdent(timeCol.Name)
		charts = append(charts, Recommendation{
			ID:    ids.next(),
			Type:  TypeLine,
			Title: "Records Over Time",
			Query: fmt.Sprintf(`SELECT %s, COUNT(*) as "Count" FROM %s GROUP BY %s ORDER BY %s`,
				qTime, qTable, qTime, qTime),
			XColumn:    timeCol.Name,
			YColumns:   []string{"Count"},
			Width:      6,
			Confidence: 0.85,
			Reason:     "Record count trend over " + FormatTitle(timeCol.Name),
		})
	}

	return charts
}

// buildSummaryTableQuery aggregates the leading categoricals and numerics;
// without both it falls back to a row preview.
func buildSummaryTableQuery(profile *profiler.TableProfile) string {
	cats := profile.ColumnsOfType(profiler.TypeCategorical)
	nums := profile.ColumnsOfType(profiler.TypeNumeric)
	qTable := sqlutil.QuoteIdent(profile.TableName)

	if len(cats) == 0 {
		return fmt.Sprintf(`SELECT * FROM %s LIMIT 50`, qTable)
	}

	groupCols := make([]string, 0, 2)
	for _, c := range head(cats, 2) {
		groupCols = append(groupCols, sqlutil.QuoteIdent(c.Name))
	}
	aggCols := make([]string, 0, 5)
	for _, c := range head(nums, 5) {
		q := sqlutil.QuoteIdent(c.Name)
		aggCols = append(aggCols, fmt.Sprintf(`SUM(%s) as %s`, q, q))
	}
	if len(aggCols) == 0 {
		return fmt.Sprintf(`SELECT * FROM %s LIMIT 50`, qTable)
	}

	firstAgg := fmt.Sprintf(`SUM(%s)`, sqlutil.QuoteIdent(nums[0].Name))
	return fmt.Sprintf(`SELECT %s, %s FROM %s GROUP BY %s ORDER BY %s DESC`,
		strings.Join(groupCols, ", "), strings.Join(aggCols, ", "),
		qTable, strings.Join(groupCols, ", "), firstAgg)
}

func findDonutCategorical(categoricals []profiler.ColumnProfile) (profiler.ColumnProfile, bool) {
	for _, c := range categoricals {
		if c.DistinctCount >= 2 && c.DistinctCount <= 8 {
			return c, true
		}
	}
	return profiler.ColumnProfile{}, false
}

func head(cols []profiler.ColumnProfile, n int) []profiler.ColumnProfile {
	if len(cols) <= n {
		return cols
	}
	return cols[:n]
}
