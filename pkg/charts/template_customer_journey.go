package charts

import (
	"fmt"
	"regexp"

	"github.com/glytehq/glyte-engine/pkg/profiler"
	"github.com/glytehq/glyte-engine/pkg/sqlutil"
)

var (
	eventColsRe = regexp.MustCompile(`(?i)^(event|action|activity|type|event.?type|event.?name|step)$`)
	userColsRe  = regexp.MustCompile(`(?i)^(user.?id|customer.?id|account.?id|contact.?id|member.?id|session.?id)$`)
)

// customerJourneyTemplate serves event streams: rows with a timestamp, an
// event type and a user identifier.
type customerJourneyTemplate struct{}

func (customerJourneyTemplate) ID() string   { return "customer-journey" }
func (customerJourneyTemplate) Name() string { return "Customer Journey" }
func (customerJourneyTemplate) Description() string {
	return "Best for event/activity data with temporal, event type, and user ID columns. Shows timeline, funnel, and conversion charts."
}

func (customerJourneyTemplate) Match(profile *profiler.TableProfile) Match {
	var hasTemporal, hasEvent, hasUser bool
	for _, c := range profile.Columns {
		if c.Type == profiler.TypeTemporal {
			hasTemporal = true
		}
		if eventColsRe.MatchString(c.Name) {
			hasEvent = true
		}
		if userColsRe.MatchString(c.Name) {
			hasUser = true
		}
	}

	switch {
	case hasTemporal && hasEvent && hasUser:
		return Match{Score: 0.9, Confidence: 0.9, Reason: "Temporal + event + user ID columns make a customer journey"}
	case hasTemporal && hasEvent:
		return Match{Score: 0.7, Confidence: 0.7, Reason: "Temporal + event columns (no explicit user ID)"}
	default:
		return Match{Score: 0, Confidence: 0, Reason: "No event/journey pattern"}
	}
}

func (customerJourneyTemplate) Generate(profile *profiler.TableProfile) []Recommendation {
	var charts []Recommendation
	var ids idGen
	qTable := sqlutil.QuoteIdent(profile.TableName)

	var temporal, eventCol, userCol *profiler.ColumnProfile
	for i := range profile.Columns {
		c := &profile.Columns[i]
		if temporal == nil && c.Type == profiler.TypeTemporal {
			temporal = c
		}
		if eventCol == nil && eventColsRe.MatchString(c.Name) {
			eventCol = c
		}
		if userCol == nil && userColsRe.MatchString(c.Name) {
			userCol = c
		}
	}

	charts = append(charts, Recommendation{
		ID: ids.next(), Type: TypeKPI, Title: "Total Events",
		Query:      fmt.Sprintf(`SELECT COUNT(*) as value FROM %s`, qTable),
		Width:      3,
		Confidence: 0.9,
		Reason:     "Total event count",
	})

	if userCol != nil {
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeKPI, Title: "Unique Users",
			Query: fmt.Sprintf(`SELECT COUNT(DISTINCT %s) as value FROM %s`,
				sqlutil.QuoteIdent(userCol.Name), qTable),
			Width:      3,
			Confidence: 0.9,
			Reason:     "Distinct user count",
		})
	}

	if eventCol != nil {
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeKPI, Title: "Event Types",
			Query: fmt.Sprintf(`SELECT COUNT(DISTINCT %s) as value FROM %s`,
				sqlutil.QuoteIdent(eventCol.Name), qTable),
			Width:      3,
			Confidence: 0.8,
			Reason:     "Distinct event types",
		})
	}

	if temporal != nil {
		qTime := sqlutil.QuoteIdent(temporal.Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeLine, Title: "Events Over Time",
			Query: fmt.Sprintf(`SELECT %s, COUNT(*) as "Count" FROM %s GROUP BY %s ORDER BY %s`,
				qTime, qTable, qTime, qTime),
			XColumn:    temporal.Name,
			YColumns:   []string{"Count"},
			Width:      6,
			Confidence: 0.9,
			Reason:     fmt.Sprintf("Event frequency over %q", temporal.Name),
		})
	}

	if eventCol != nil {
		qEvent := sqlutil.QuoteIdent(eventCol.Name)
		charts = append(charts, Recommendation{
			ID: ids.next(), Type: TypeHorizontalBar,
			Title: "Events by " + FormatTitle(eventCol.Name),
			Query: fmt.Sprintf(`SELECT %s, COUNT(*) as "Count" FROM %s WHERE %s IS NOT NULL GROUP BY %s ORDER BY COUNT(*) DESC`,
				qEvent, qTable, qEvent, qEvent),
			XColumn:    eventCol.Name,
			YColumns:   []string{"Count"},
			Width:      6,
			Confidence: 0.85,
			Reason:     "Event type distribution",
		})

		if userCol != nil {
			qUser := sqlutil.QuoteIdent(userCol.Name)
			charts = append(charts, Recommendation{
				ID: ids.next(), Type: TypeBar,
				Title: "Users per " + FormatTitle(eventCol.Name),
				Query: fmt.Sprintf(`SELECT %s, COUNT(DISTINCT %s) as "Users" FROM %s WHERE %s IS NOT NULL GROUP BY %s ORDER BY "Users" DESC`,
					qEvent, qUser, qTable, qEvent, qEvent),
				XColumn:    eventCol.Name,
				YColumns:   []string{"Users"},
				Width:      6,
				Confidence: 0.8,
				Reason:     "Unique users reaching each event type",
			})
		}
	}

	tableQuery := fmt.Sprintf(`SELECT * FROM %s LIMIT 50`, qTable)
	if temporal != nil {
		tableQuery = fmt.Sprintf(`SELECT * FROM %s ORDER BY %s DESC LIMIT 50`,
			qTable, sqlutil.QuoteIdent(temporal.Name))
	}
	charts = append(charts, Recommendation{
		ID: ids.next(), Type: TypeTable,
		Title:      FormatTitle(profile.TableName) + " Details",
		Query:      tableQuery,
		Width:      12,
		Confidence: 0.7,
		Reason:     "Timeline view of events (most recent first)",
	})

	return charts
}
