package charts

import (
	"fmt"
	"regexp"

	"github.com/glytehq/glyte-engine/pkg/profiler"
	"github.com/glytehq/glyte-engine/pkg/sqlutil"
)

var channelColsRe = regexp.MustCompile(`(?i)^(channel|source|medium|campaign|utm.?source|utm.?medium|platform|ad.?group)$`)

// channelComparisonTemplate serves marketing data keyed by channel or
// source with one or more numeric metrics.
type channelComparisonTemplate struct{}

func (channelComparisonTemplate) ID() string   { return "channel-comparison" }
func (channelComparisonTemplate) Name() string { return "Channel Comparison" }
func (channelComparisonTemplate) Description() string {
	return "Best for marketing data with channel/source columns and numeric metrics. Shows grouped bars, donuts, and trends."
}

func (channelComparisonTemplate) Match(profile *profiler.TableProfile) Match {
	hasChannel := false
	for _, c := range profile.Columns {
		if channelColsRe.MatchString(c.Name) {
			hasChannel = true
			break
		}
	}
	numericCount := len(profile.ColumnsOfType(profiler.TypeNumeric))

	switch {
	case hasChannel && numericCount >= 2:
		return Match{
			Score:      0.85,
			Confidence: 0.85,
			Reason:     fmt.Sprintf("Channel/source column + %d metrics makes a channel comparison", numericCount),
		}
	case hasChannel:
		return Match{Score: 0.65, Confidence: 0.65, Reason: "Channel column found, limited metrics"}
	default:
		return Match{Score: 0, Confidence: 0, Reason: "No channel/source columns"}
	}
}

func (channelComparisonTemplate) Generate(profile *profiler.TableProfile) []Recommendation {
	var charts []Recommendation
	var ids idGen
	qTable := sqlutil.QuoteIdent(profile.TableName)
	numerics := profile.ColumnsOfType(profiler.TypeNumeric)

	var channelCol profiler.ColumnProfile
	for _, c := range profile.Columns {
		if channelColsRe.MatchString(c.Name) {
			channelCol = c
			break
		}
	}
	qChannel := sqlutil.QuoteIdent(channelCol.Name)

	for _, num := range head(numerics, 4) {
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeKPI,
			Title:      "Total " + FormatTitle(num.Name),
			Query:      fmt.Sprintf(`SELECT SUM(%s) as value FROM %s`, sqlutil.QuoteIdent(num.Name), qTable),
			Width:      3,
			Confidence: 0.85,
			Reason:     fmt.Sprintf("Aggregate %q", num.Name),
		})
	}

	if len(numerics) > 0 {
		qNum := sqlutil.QuoteIdent(numerics[0].Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeHorizontalBar,
			Title: fmt.Sprintf("%s by %s", FormatTitle(numerics[0].Name), FormatTitle(channelCol.Name)),
			Query: fmt.Sprintf(`SELECT %s, SUM(%s) as %s FROM %s GROUP BY %s ORDER BY SUM(%s) DESC`,
				qChannel, qNum, qNum, qTable, qChannel, qNum),
			XColumn:    channelCol.Name,
			YColumns:   []string{numerics[0].Name},
			Width:      6,
			Confidence: 0.9,
			Reason:     "Primary metric by channel",
		})
	}

	charts = append(charts, Recommendation{
		ID: ids.next(), Type: TypeDonut,
		Title: FormatTitle(channelCol.Name) + " Distribution",
		Query: fmt.Sprintf(`SELECT %s, COUNT(*) as "Count" FROM %s WHERE %s IS NOT NULL GROUP BY %s ORDER BY COUNT(*) DESC`,
			qChannel, qTable, qChannel, qChannel),
		XColumn:    channelCol.Name,
		YColumns:   []string{"Count"},
		Width:      6,
		Confidence: 0.8,
		Reason:     "Channel proportions",
	})

	if len(numerics) >= 2 {
		qNum := sqlutil.QuoteIdent(numerics[1].Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeBar,
			Title: fmt.Sprintf("%s by %s", FormatTitle(numerics[1].Name), FormatTitle(channelCol.Name)),
			Query: fmt.Sprintf(`SELECT %s, SUM(%s) as %s FROM %s GROUP BY %s ORDER BY SUM(%s) DESC`,
				qChannel, qNum, qNum, qTable, qChannel, qNum),
			XColumn:    channelCol.Name,
			YColumns:   []string{numerics[1].Name},
			Width:      6,
			Confidence: 0.75,
			Reason:     "Secondary metric by channel",
		})
	}

	temporals := profile.ColumnsOfType(profiler.TypeTemporal)
	if len(temporals) > 0 && len(numerics) > 0 {
		qTime := sqlutil.QuoteIdent(temporals[0].Name)
		qNum := sqlutil.QuoteIdent(numerics[0].Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeLine,
			Title: FormatTitle(numerics[0].Name) + " Over Time",
			Query: fmt.Sprintf(`SELECT %s, SUM(%s) as %s FROM %s GROUP BY %s ORDER BY %s`,
				qTime, qNum, qNum, qTable, qTime, qTime),
			XColumn:    temporals[0].Name,
			YColumns:   []string{numerics[0].Name},
			Width:      6,
			Confidence: 0.85,
			Reason:     "Temporal trend of primary metric",
		})
	}

	charts = append(charts, Recommendation{
		ID: ids.next(), Type: TypeTable,
		Title:      FormatTitle(profile.TableName) + " Details",
		Query:      fmt.Sprintf(`SELECT * FROM %s LIMIT 50`, qTable),
		Width:      12,
		Confidence: 0.7,
		Reason:     "Channel data preview (first 50 rows)",
	})

	return charts
}
