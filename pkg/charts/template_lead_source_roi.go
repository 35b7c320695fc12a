package charts

import (
	"fmt"
	"regexp"

	"github.com/glytehq/glyte-engine/pkg/profiler"
	"github.com/glytehq/glyte-engine/pkg/sqlutil"
)

var (
	sourceColsRe  = regexp.MustCompile(`(?i)^(source|lead.?source|referral|origin|acquisition)$`)
	costColsRe    = regexp.MustCompile(`(?i)^(cost|spend|budget|investment|ad.?spend|cpa|cpc)$`)
	revenueColsRe = regexp.MustCompile(`(?i)^(revenue|income|value|amount|deal.?value|ltv|arpu|mrr)$`)
)

// leadSourceROITemplate serves datasets with acquisition source, cost and
// revenue columns.
type leadSourceROITemplate struct{}

func (leadSourceROITemplate) ID() string   { return "lead-source-roi" }
func (leadSourceROITemplate) Name() string { return "Lead Source ROI" }
func (leadSourceROITemplate) Description() string {
	return "Best for data with source, cost, and revenue columns. Shows ROI KPIs, source comparison, and efficiency metrics."
}

func (leadSourceROITemplate) Match(profile *profiler.TableProfile) Match {
	var hasSource, hasCost, hasRevenue bool
	for _, c := range profile.Columns {
		if sourceColsRe.MatchString(c.Name) {
			hasSource = true
		}
		if costColsRe.MatchString(c.Name) {
			hasCost = true
		}
		if revenueColsRe.MatchString(c.Name) {
			hasRevenue = true
		}
	}

	switch {
	case hasSource && hasCost && hasRevenue:
		return Match{Score: 0.9, Confidence: 0.9, Reason: "Source + cost + revenue columns make an ROI analysis"}
	case hasSource && (hasCost || hasRevenue):
		return Match{Score: 0.7, Confidence: 0.7, Reason: "Source column + partial financial data"}
	default:
		return Match{Score: 0, Confidence: 0, Reason: "No source/ROI pattern"}
	}
}

func (leadSourceROITemplate) Generate(profile *profiler.TableProfile) []Recommendation {
	var charts []Recommendation
	var ids idGen
	qTable := sqlutil.QuoteIdent(profile.TableName)

	var sourceCol, costCol, revenueCol, temporal *profiler.ColumnProfile
	for i := range profile.Columns {
		c := &profile.Columns[i]
		if sourceCol == nil && sourceColsRe.MatchString(c.Name) {
			sourceCol = c
		}
		if costCol == nil && costColsRe.MatchString(c.Name) {
			costCol = c
		}
		if revenueCol == nil && revenueColsRe.MatchString(c.Name) {
			revenueCol = c
		}
		if temporal == nil && c.Type == profiler.TypeTemporal {
			temporal = c
		}
	}
	qSource := sqlutil.QuoteIdent(sourceCol.Name)

	if revenueCol != nil {
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeKPI, Title: "Total " + FormatTitle(revenueCol.Name),
			Query:      fmt.Sprintf(`SELECT SUM(%s) as value FROM %s`, sqlutil.QuoteIdent(revenueCol.Name), qTable),
			Width:      3,
			Confidence: 0.9,
			Reason:     "Total revenue/value",
		})
	}
	if costCol != nil {
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeKPI, Title: "Total " + FormatTitle(costCol.Name),
			Query:      fmt.Sprintf(`SELECT SUM(%s) as value FROM %s`, sqlutil.QuoteIdent(costCol.Name), qTable),
			Width:      3,
			Confidence: 0.9,
			Reason:     "Total cost/spend",
		})
	}
	if costCol != nil && revenueCol != nil {
		qRev := sqlutil.QuoteIdent(revenueCol.Name)
		qCost := sqlutil.QuoteIdent(costCol.Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeKPI, Title: "ROI",
			Query: fmt.Sprintf(`SELECT ROUND((SUM(%s) - SUM(%s)) / NULLIF(SUM(%s), 0) * 100, 1) as value FROM %s`,
				qRev, qCost, qCost, qTable),
			Width:      3,
			Confidence: 0.85,
			Reason:     "Return on investment percentage",
		})
	}
	charts = append(charts, Recommendation{
		ID: ids.next(), Type: TypeKPI, Title: "Total Records",
		Query:      fmt.Sprintf(`SELECT COUNT(*) as value FROM %s`, qTable),
		Width:      3,
		Confidence: 0.8,
		Reason:     "Record count",
	})

	if revenueCol != nil {
		qRev := sqlutil.QuoteIdent(revenueCol.Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeHorizontalBar,
			Title: fmt.Sprintf("%s by %s", FormatTitle(revenueCol.Name), FormatTitle(sourceCol.Name)),
			Query: fmt.Sprintf(`SELECT %s, SUM(%s) as %s FROM %s GROUP BY %s ORDER BY SUM(%s) DESC`,
				qSource, qRev, qRev, qTable, qSource, qRev),
			XColumn:    sourceCol.Name,
			YColumns:   []string{revenueCol.Name},
			Width:      6,
			Confidence: 0.9,
			Reason:     "Revenue breakdown by source",
		})
	}

	if costCol != nil {
		qCost := sqlutil.QuoteIdent(costCol.Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeHorizontalBar,
			Title: fmt.Sprintf("%s by %s", FormatTitle(costCol.Name), FormatTitle(sourceCol.Name)),
			Query: fmt.Sprintf(`SELECT %s, SUM(%s) as %s FROM %s GROUP BY %s ORDER BY SUM(%s) DESC`,
				qSource, qCost, qCost, qTable, qSource, qCost),
			XColumn:    sourceCol.Name,
			YColumns:   []string{costCol.Name},
			Width:      6,
			Confidence: 0.85,
			Reason:     "Cost breakdown by source",
		})
	}

	charts = append(charts, Recommendation{
		ID: ids.next(), Type: TypeDonut,
		Title: "Records by " + FormatTitle(sourceCol.Name),
		Query: fmt.Sprintf(`SELECT %s, COUNT(*) as "Count" FROM %s WHERE %s IS NOT NULL GROUP BY %s ORDER BY COUNT(*) DESC`,
			qSource, qTable, qSource, qSource),
		XColumn:    sourceCol.Name,
		YColumns:   []string{"Count"},
		Width:      6,
		Confidence: 0.8,
		Reason:     "Source distribution",
	})

	if temporal != nil && revenueCol != nil {
		qTime := sqlutil.QuoteIdent(temporal.Name)
		qRev := sqlutil.QuoteIdent(revenueCol.Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeLine,
			Title: FormatTitle(revenueCol.Name) + " Over Time",
			Query: fmt.Sprintf(`SELECT %s, SUM(%s) as %s FROM %s GROUP BY %s ORDER BY %s`,
				qTime, qRev, qRev, qTable, qTime, qTime),
			XColumn:    temporal.Name,
			YColumns:   []string{revenueCol.Name},
			Width:      6,
			Confidence: 0.85,
			Reason:     "Revenue trend",
		})
	}

	charts = append(charts, Recommendation{
		ID: ids.next(), Type: TypeTable,
		Title:      FormatTitle(profile.TableName) + " Details",
		Query:      fmt.Sprintf(`SELECT * FROM %s LIMIT 50`, qTable),
		Width:      12,
		Confidence: 0.7,
		Reason:     "Source performance details",
	})

	return charts
}
