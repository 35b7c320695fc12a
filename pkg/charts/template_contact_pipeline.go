package charts

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/glytehq/glyte-engine/pkg/profiler"
	"github.com/glytehq/glyte-engine/pkg/sqlutil"
)

var (
	contactColsRe = regexp.MustCompile(`(?i)^(email|name|first.?name|last.?name|full.?name|phone|contact)$`)
	statusColsRe  = regexp.MustCompile(`(?i)^(status|stage|pipeline|funnel|lead.?status|deal.?stage)$`)
	segmentColsRe = regexp.MustCompile(`(?i)^(tier|icp.?tier|segment|category|grade|type|group|region|country|source|channel)$`)

	keyColRe = regexp.MustCompile(`(?i)^(id|uuid|_id|key)$`)
	urlColRe = regexp.MustCompile(`(?i)url|link|linkedin|website|href`)

	emailColRe    = regexp.MustCompile(`(?i)email`)
	companyColRe  = regexp.MustCompile(`(?i)company|org|employer`)
	coverageColRe = regexp.MustCompile(`(?i)email|domain|phone|linkedin|url|website`)
)

// contactPipelineTemplate serves contact and lead lists: segment breakdowns,
// top companies and titles, and coverage KPIs.
type contactPipelineTemplate struct{}

func (contactPipelineTemplate) ID() string   { return "contact-pipeline" }
func (contactPipelineTemplate) Name() string { return "Contact Pipeline" }
func (contactPipelineTemplate) Description() string {
	return "Best for contact/lead lists. Shows segment breakdowns, top companies, job titles, and coverage metrics."
}

func (contactPipelineTemplate) Match(profile *profiler.TableProfile) Match {
	var hasContact, hasStatus, hasSegment bool
	for _, c := range profile.Columns {
		if contactColsRe.MatchString(c.Name) {
			hasContact = true
		}
		if statusColsRe.MatchString(c.Name) {
			hasStatus = true
		}
		if segmentColsRe.MatchString(c.Name) {
			hasSegment = true
		}
	}

	switch {
	case hasContact && hasStatus:
		return Match{Score: 0.85, Confidence: 0.85, Reason: "Contact + status/stage column detected"}
	case hasContact && hasSegment:
		return Match{Score: 0.8, Confidence: 0.8, Reason: "Contact + segment/tier column detected"}
	case hasContact:
		return Match{Score: 0.6, Confidence: 0.6, Reason: "Contact column found"}
	default:
		return Match{Score: 0, Confidence: 0, Reason: "No contact columns"}
	}
}

func contactIdentifier(c profiler.ColumnProfile, rowCount int) bool {
	if keyColRe.MatchString(c.Name) || urlColRe.MatchString(c.Name) {
		return true
	}
	return float64(c.DistinctCount) > float64(rowCount)*0.8
}

func (contactPipelineTemplate) Generate(profile *profiler.TableProfile) []Recommendation {
	var charts []Recommendation
	var ids idGen
	table := profile.TableName
	qTable := sqlutil.QuoteIdent(table)

	var lowCard, highCard []profiler.ColumnProfile
	var statusCol, segmentCol, emailCol, companyCol, temporal *profiler.ColumnProfile
	var coverageCols []profiler.ColumnProfile
	numCols := profile.ColumnsOfType(profiler.TypeNumeric)

	for i := range profile.Columns {
		c := &profile.Columns[i]
		categoric := c.Type == profiler.TypeCategorical || c.Type == profiler.TypeText
		if categoric && !contactIdentifier(*c, profile.RowCount) {
			if c.DistinctCount >= 2 && c.DistinctCount <= 20 {
				lowCard = append(lowCard, *c)
			} else if c.DistinctCount > 20 && float64(c.DistinctCount) <= float64(profile.RowCount)*0.8 {
				highCard = append(highCard, *c)
			}
		}
		if coverageColRe.MatchString(c.Name) && c.NullCount > 0 {
			coverageCols = append(coverageCols, *c)
		}
		if statusCol == nil && statusColsRe.MatchString(c.Name) {
			statusCol = c
		}
		if segmentCol == nil && segmentColsRe.MatchString(c.Name) {
			segmentCol = c
		}
		if emailCol == nil && emailColRe.MatchString(c.Name) {
			emailCol = c
		}
		if companyCol == nil && companyColRe.MatchString(c.Name) && !urlColRe.MatchString(c.Name) {
			companyCol = c
		}
		if temporal == nil && c.Type == profiler.TypeTemporal {
			temporal = c
		}
	}

	charts = append(charts, Recommendation{
		ID: ids.next(), Type: TypeKPI, Title: "Total Contacts",
		Query:      fmt.Sprintf(`SELECT COUNT(*) as value FROM %s`, qTable),
		Width:      3,
		Confidence: 0.9,
		Reason:     "Total record count",
	})

	if emailCol != nil {
		qEmail := sqlutil.QuoteIdent(emailCol.Name)
		reason := "Unique email count"
		if emailCol.NullCount > 0 {
			reason = fmt.Sprintf("%d contacts missing email (%d%% coverage)",
				emailCol.NullCount, coveragePercent(emailCol.NullCount, profile.RowCount))
		}
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeKPI, Title: "With Email",
			Query: fmt.Sprintf(`SELECT COUNT(DISTINCT %s) as value FROM %s WHERE %s IS NOT NULL AND %s != ''`,
				qEmail, qTable, qEmail, qEmail),
			Width:      3,
			Confidence: 0.85,
			Reason:     reason,
		})
	}

	if companyCol != nil {
		qCompany := sqlutil.QuoteIdent(companyCol.Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeKPI, Title: "Unique Companies",
			Query: fmt.Sprintf(`SELECT COUNT(DISTINCT %s) as value FROM %s WHERE %s IS NOT NULL AND %s != ''`,
				qCompany, qTable, qCompany, qCompany),
			Width:      3,
			Confidence: 0.8,
			Reason:     fmt.Sprintf("Distinct company count from %q", companyCol.Name),
		})
	}

	primarySegment := segmentCol
	if primarySegment == nil {
		primarySegment = statusCol
	}
	if primarySegment != nil {
		qSeg := sqlutil.QuoteIdent(primarySegment.Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeKPI, Title: FormatTitle(primarySegment.Name) + " Groups",
			Query: fmt.Sprintf(`SELECT COUNT(DISTINCT %s) as value FROM %s WHERE %s IS NOT NULL`,
				qSeg, qTable, qSeg),
			Width:      3,
			Confidence: 0.75,
			Reason:     fmt.Sprintf("Number of distinct %s values", FormatTitle(primarySegment.Name)),
		})
	} else if len(coverageCols) > 0 {
		covCol := coverageCols[0]
		qCov := sqlutil.QuoteIdent(covCol.Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeKPI, Title: "With " + FormatTitle(covCol.Name),
			Query: fmt.Sprintf(`SELECT COUNT(%s) as value FROM %s WHERE %s IS NOT NULL AND %s != ''`,
				qCov, qTable, qCov, qCov),
			Width:      3,
			Confidence: 0.7,
			Reason: fmt.Sprintf("%d missing out of %d (%d%% coverage)",
				covCol.NullCount, profile.RowCount, coveragePercent(covCol.NullCount, profile.RowCount)),
		})
	}

	breakdownCol := statusCol
	if breakdownCol == nil {
		breakdownCol = segmentCol
	}
	if breakdownCol == nil && len(lowCard) > 0 {
		breakdownCol = &lowCard[0]
	}
	if breakdownCol != nil {
		qBreak := sqlutil.QuoteIdent(breakdownCol.Name)
		countQuery := fmt.Sprintf(`SELECT %s, COUNT(*) as "Count" FROM %s WHERE %s IS NOT NULL GROUP BY %s ORDER BY "Count" DESC`,
			qBreak, qTable, qBreak, qBreak)

		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeHorizontalBar,
			Title:      "Contacts by " + FormatTitle(breakdownCol.Name),
			Query:      countQuery,
			XColumn:    breakdownCol.Name,
			YColumns:   []string{"Count"},
			Width:      6,
			Confidence: 0.9,
			Reason: fmt.Sprintf("Distribution across %d %s values",
				breakdownCol.DistinctCount, FormatTitle(breakdownCol.Name)),
		})
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeDonut,
			Title:      "Distribution by " + FormatTitle(breakdownCol.Name),
			Query:      countQuery,
			XColumn:    breakdownCol.Name,
			YColumns:   []string{"Count"},
			Width:      6,
			Confidence: 0.85,
			Reason:     "Proportional view of " + FormatTitle(breakdownCol.Name),
		})
	}

	for _, c := range lowCard {
		if breakdownCol != nil && c.Name == breakdownCol.Name {
			continue
		}
		qCol := sqlutil.QuoteIdent(c.Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeHorizontalBar,
			Title: "Contacts by " + FormatTitle(c.Name),
			Query: fmt.Sprintf(`SELECT %s, COUNT(*) as "Count" FROM %s WHERE %s IS NOT NULL GROUP BY %s ORDER BY "Count" DESC`,
				qCol, qTable, qCol, qCol),
			XColumn:    c.Name,
			YColumns:   []string{"Count"},
			Width:      6,
			Confidence: 0.75,
			Reason: fmt.Sprintf("Distribution across %d %s values",
				c.DistinctCount, FormatTitle(c.Name)),
		})
		break
	}

	for _, cat := range head(highCard, 2) {
		qCat := sqlutil.QuoteIdent(cat.Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeHorizontalBar,
			Title: "Top 10 " + FormatTitle(cat.Name),
			Query: fmt.Sprintf(`SELECT %s, COUNT(*) as "Count" FROM %s WHERE %s IS NOT NULL AND %s != '' GROUP BY %s ORDER BY "Count" DESC LIMIT 10`,
				qCat, qTable, qCat, qCat, qCat),
			XColumn:    cat.Name,
			YColumns:   []string{"Count"},
			Width:      6,
			Confidence: 0.8,
			Reason: fmt.Sprintf("Most common %s values (%d total)",
				FormatTitle(cat.Name), cat.DistinctCount),
		})
	}

	if len(numCols) > 0 && breakdownCol != nil {
		num := numCols[0]
		qNum := sqlutil.QuoteIdent(num.Name)
		qBreak := sqlutil.QuoteIdent(breakdownCol.Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeBar,
			Title: fmt.Sprintf("%s by %s", FormatTitle(num.Name), FormatTitle(breakdownCol.Name)),
			Query: fmt.Sprintf(`SELECT %s, SUM(%s) as %s FROM %s GROUP BY %s ORDER BY SUM(%s) DESC`,
				qBreak, qNum, qNum, qTable, qBreak, qNum),
			XColumn:    breakdownCol.Name,
			YColumns:   []string{num.Name},
			Width:      6,
			Confidence: 0.75,
			Reason:     fmt.Sprintf("Metric %q segmented by %s", num.Name, FormatTitle(breakdownCol.Name)),
		})
	}

	if temporal != nil {
		qTime := sqlutil.QuoteIdent(temporal.Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeLine,
			Title: "Contacts Over Time",
			Query: fmt.Sprintf(`SELECT %s, COUNT(*) as "Count" FROM %s GROUP BY %s ORDER BY %s`,
				qTime, qTable, qTime, qTime),
			XColumn:    temporal.Name,
			YColumns:   []string{"Count"},
			Width:      6,
			Confidence: 0.8,
			Reason:     fmt.Sprintf("Timeline from %q", temporal.Name),
		})
	}

	// The summary table keeps people-readable columns and drops URLs.
	var tableCols []string
	for _, c := range profile.Columns {
		if urlColRe.MatchString(c.Name) && !emailColRe.MatchString(c.Name) {
			continue
		}
		tableCols = append(tableCols, sqlutil.QuoteIdent(c.Name))
		if len(tableCols) == 8 {
			break
		}
	}
	tableQuery := fmt.Sprintf(`SELECT * FROM %s LIMIT 50`, qTable)
	if len(tableCols) > 0 && len(tableCols) < len(profile.Columns) {
		tableQuery = fmt.Sprintf(`SELECT %s FROM %s LIMIT 50`, strings.Join(tableCols, ", "), qTable)
	}
	charts = append(charts, Recommendation{
		ID: ids.next(), Type: TypeTable,
		Title:      FormatTitle(table) + " Details",
		Query:      tableQuery,
		Width:      12,
		Confidence: 0.7,
		Reason:     fmt.Sprintf("Summary of %d contact records", profile.RowCount),
	})

	return charts
}

func coveragePercent(nullCount, rowCount int) int {
	if rowCount == 0 {
		return 0
	}
	return int(math.Round((1 - float64(nullCount)/float64(rowCount)) * 100))
}
