// Package charts turns table profiles into dashboard chart recommendations,
// either through a matched dashboard template or the generic rule set.
package charts

import (
	"fmt"
	"regexp"
	"strings"
)

// ChartType names a renderable widget kind.
type ChartType string

const (
	TypeKPI           ChartType = "kpi"
	TypeLine          ChartType = "line"
	TypeBar           ChartType = "bar"
	TypeHorizontalBar ChartType = "horizontal-bar"
	TypeDonut         ChartType = "donut"
	TypeTable         ChartType = "table"
)

// Recommendation is a single suggested chart. Width is in grid columns out
// of 12.
type Recommendation struct {
	ID         string    `json:"id"`
	Type       ChartType `json:"type"`
	Title      string    `json:"title"`
	Query      string    `json:"query"`
	XColumn    string    `json:"xColumn,omitempty"`
	YColumns   []string  `json:"yColumns,omitempty"`
	GroupBy    string    `json:"groupBy,omitempty"`
	Width      int       `json:"width"`
	Confidence float64   `json:"confidence,omitempty"`
	Reason     string    `json:"reason,omitempty"`
}

// idGen hands out sequential chart IDs within one recommendation run.
type idGen struct {
	n int
}

func (g *idGen) next() string {
	g.n++
	return fmt.Sprintf("chart-%d", g.n)
}

var camelBoundaryRe = regexp.MustCompile(`([a-z])([A-Z])`)

// FormatTitle turns a column or table name into a display title:
// "ad_spend" and "adSpend" both become "Ad Spend".
func FormatTitle(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	s = camelBoundaryRe.ReplaceAllString(s, "$1 $2")

	var b strings.Builder
	b.Grow(len(s))
	prevIsWord := false
	for _, r := range s {
		isWord := r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if isWord && !prevIsWord && r >= 'a' && r <= 'z' {
			r = r - 'a' + 'A'
		}
		b.WriteRune(r)
		prevIsWord = isWord
	}
	return b.String()
}
