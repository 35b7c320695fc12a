package icp

import (
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	chiefPrefixRe   = regexp2.MustCompile(`^Chief\s+`, regexp2.IgnoreCase)
	truncatedOffiRe = regexp2.MustCompile(`\bOffi\w*$`, regexp2.None)
	ccoRe           = regexp2.MustCompile(`\bCCO\b`, regexp2.IgnoreCase)
	whitespaceRe    = regexp2.MustCompile(`\s+`, regexp2.None)
)

// MatchesExclude reports whether a title belongs to a role out of scope for
// outreach, such as marketing, compliance, sales or junior positions.
func MatchesExclude(title string) bool {
	if title == "" {
		return false
	}

	if matchAny(exemptPatterns, title) {
		return false
	}

	if matchAny(ctoPatterns, title) {
		if !matchAny(ctoKeepPatterns, title) {
			return true
		}
		// Dual role like "CEO & CTO" falls through to tier matching.
	}

	// A title that is nothing but "Director" carries no usable signal.
	normalized, _ := whitespaceRe.Replace(title, " ", -1, -1)
	if strings.EqualFold(strings.TrimSpace(normalized), "director") {
		return true
	}

	return matchAny(excludePatterns, title)
}

// TierFor classifies a job title into a tier. The company name only matters
// for founders, whose industry can disqualify them. The second return value
// is false when the title is not in scope.
func TierFor(title, company string) (Tier, bool) {
	if strings.TrimSpace(title) == "" {
		return "", false
	}

	// Some data sources truncate titles at around 20 characters, leaving
	// fragments like "Chief Executive Offi".
	if ok, _ := chiefPrefixRe.MatchString(title); ok {
		repaired, err := truncatedOffiRe.Replace(title, "Officer", -1, -1)
		if err == nil {
			title = repaired
		}
	}

	if MatchesExclude(title) {
		return "", false
	}

	titleUpper := strings.ToUpper(title)

	// CCO is ambiguous: Chief Compliance Officer is excluded, Chief
	// Commercial Officer is a decision maker. A bare CCO is assumed
	// commercial.
	hasCCO, _ := ccoRe.MatchString(title)
	if hasCCO || strings.Contains(titleUpper, "CHIEF C") {
		if strings.Contains(titleUpper, "COMPLIANCE") {
			return "", false
		}
		if strings.Contains(titleUpper, "COMMERCIAL") {
			return Tier1, true
		}
		if hasCCO {
			return Tier1, true
		}
	}

	// Tier 1.5 before Tier 1: "Finance Director" must not be swallowed by
	// broader patterns.
	if matchAny(tier1Point5Patterns, title) {
		return Tier1Point5, true
	}

	if matchAny(tier1Patterns, title) {
		if strings.Contains(titleUpper, "FOUNDER") && founderIndustryExcluded(company) {
			return "", false
		}
		return Tier1, true
	}

	if matchAny(igamingPatterns, title) {
		return TierIGaming, true
	}

	if matchAny(tier2Patterns, title) {
		return Tier2, true
	}

	if matchAny(tier3Patterns, title) {
		return Tier3, true
	}

	if matchAny(boardPatterns, title) {
		return TierBoard, true
	}

	if matchAny(genericDirectorHeadPatterns, title) {
		return Tier2, true
	}

	return "", false
}

func founderIndustryExcluded(company string) bool {
	companyLower := strings.ToLower(company)
	for _, industry := range nonRelevantIndustries {
		if strings.Contains(companyLower, industry) {
			return true
		}
	}
	return false
}

// ClassifyContacts runs TierFor over a batch of rows. titleCol names the
// column holding the job title; companyCol may be empty.
func ClassifyContacts(rows []ContactRow, titleCol, companyCol string) ClassificationResult {
	result := ClassificationResult{
		Total:    len(rows),
		Tiers:    make(map[Tier]int, len(AllTiers)),
		Rows:     []ClassifiedContact{},
		Rejected: []ContactRow{},
	}
	for _, tier := range AllTiers {
		result.Tiers[tier] = 0
	}

	for _, row := range rows {
		title := row[titleCol]
		company := ""
		if companyCol != "" {
			company = row[companyCol]
		}

		if tier, ok := TierFor(title, company); ok {
			result.Tiers[tier]++
			result.Rows = append(result.Rows, ClassifiedContact{Row: row, Tier: tier})
		} else {
			result.Rejected = append(result.Rejected, row)
		}
	}

	result.Classified = len(result.Rows)
	result.Excluded = len(result.Rejected)
	return result
}
