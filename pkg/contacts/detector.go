// Package contacts detects whether an ingested table looks like a contact
// list by inspecting its column headers.
package contacts

import (
	"math"
	"regexp"
	"strings"
)

// Confidence thresholds for acting on a detection.
const (
	// ConfidenceSuggest is the score at or above which classification
	// should be offered to the user.
	ConfidenceSuggest = 0.7
	// ConfidenceAuto is the score at or above which classification can
	// run without asking.
	ConfidenceAuto = 0.9
)

// isContactThreshold is the minimum score for a positive detection.
const isContactThreshold = 0.4

// DetectionResult maps detected columns to their contact roles. Column
// fields are empty when no header matched the role.
type DetectionResult struct {
	IsContact      bool    `json:"isContact"`
	Confidence     float64 `json:"confidence"`
	TitleColumn    string  `json:"titleColumn"`
	CompanyColumn  string  `json:"companyColumn"`
	EmailColumn    string  `json:"emailColumn"`
	LinkedInColumn string  `json:"linkedinColumn"`
}

type columnRole int

const (
	roleNone columnRole = iota
	roleTitle
	roleCompany
	roleEmail
	roleLinkedIn
)

// signal is one family of header patterns. Each signal contributes its
// weight at most once, on the first matching column.
type signal struct {
	patterns []*regexp.Regexp
	weight   float64
	mapTo    columnRole
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

var signals = []signal{
	// Strong signals identify columns only contact exports have.
	{compile(`^e[-_ ]?mail$`, `^email[-_ ]?address$`), 0.3, roleEmail},
	{compile(`^linkedin$`, `^linkedin[-_ ]?url$`, `^linkedin[-_ ]?profile$`, `^linkedinurl$`), 0.3, roleLinkedIn},
	{compile(`^job[-_ ]?title$`, `^title$`, `^position$`, `^role$`, `^jobtitle$`, `^designation$`), 0.3, roleTitle},
	{compile(`^company$`, `^company[-_ ]?name$`, `^companyname$`, `^organization$`, `^organisation$`, `^employer$`), 0.3, roleCompany},

	// Medium signals are person-shaped but appear in other datasets too.
	{compile(`^name$`, `^full[-_ ]?name$`, `^fullname$`, `^contact[-_ ]?name$`), 0.15, roleNone},
	{compile(`^first[-_ ]?name$`, `^firstname$`, `^given[-_ ]?name$`), 0.15, roleNone},
	{compile(`^last[-_ ]?name$`, `^lastname$`, `^surname$`, `^family[-_ ]?name$`), 0.15, roleNone},
	{compile(`^phone$`, `^phone[-_ ]?number$`, `^mobile$`, `^tel$`, `^telephone$`), 0.15, roleNone},
	{compile(`^position$`, `^job[-_ ]?function$`), 0.15, roleTitle},

	// Weak signals are common in many business datasets.
	{compile(`^country$`, `^location$`, `^region$`), 0.05, roleNone},
	{compile(`^city$`, `^state$`, `^address$`), 0.05, roleNone},
	{compile(`^website$`, `^url$`, `^domain$`), 0.05, roleNone},
	{compile(`^industry$`, `^sector$`), 0.05, roleNone},
}

// Detect scores a set of column headers for contact-likeness.
func Detect(columns []string) DetectionResult {
	var result DetectionResult
	confidence := 0.0

	normalized := make([]string, len(columns))
	for i, c := range columns {
		normalized[i] = strings.TrimSpace(c)
	}

	for _, sig := range signals {
	columnLoop:
		for _, col := range normalized {
			for _, p := range sig.patterns {
				if p.MatchString(col) {
					confidence += sig.weight
					setRole(&result, sig.mapTo, col)
					break columnLoop
				}
			}
		}
	}

	confidence = math.Min(confidence, 1.0)
	result.Confidence = math.Round(confidence*100) / 100
	result.IsContact = confidence >= isContactThreshold
	return result
}

// setRole records the first column seen for a role; later matches do not
// overwrite it.
func setRole(r *DetectionResult, role columnRole, col string) {
	switch role {
	case roleTitle:
		if r.TitleColumn == "" {
			r.TitleColumn = col
		}
	case roleCompany:
		if r.CompanyColumn == "" {
			r.CompanyColumn = col
		}
	case roleEmail:
		if r.EmailColumn == "" {
			r.EmailColumn = col
		}
	case roleLinkedIn:
		if r.LinkedInColumn == "" {
			r.LinkedInColumn = col
		}
	}
}
