// Package icp classifies contact job titles into outreach priority tiers.
//
// Tier structure:
//   - Tier 1: decision makers (CEO, CFO, COO, CRO, MD, President, Founders)
//   - Tier 1.5: payment and finance owners (Head of Payments, Finance Director)
//   - Tier 2: influencers and scouts (Account Director, VP Partnerships)
//   - Tier 3: VP/EVP/Deputy roles
//   - iGaming: casino and betting directors
//   - Board: board members and chairs, low priority
package icp

// Tier is an outreach priority bucket.
type Tier string

const (
	Tier1       Tier = "Tier 1"
	Tier1Point5 Tier = "Tier 1.5"
	Tier2       Tier = "Tier 2"
	Tier3       Tier = "Tier 3"
	TierIGaming Tier = "iGaming"
	TierBoard   Tier = "Board"
)

// AllTiers lists every tier in priority order.
var AllTiers = []Tier{Tier1, Tier1Point5, Tier2, Tier3, TierIGaming, TierBoard}

// ContactRow is a single contact record keyed by column name.
type ContactRow map[string]string

// ClassifiedContact is a contact that matched a tier.
type ClassifiedContact struct {
	Row  ContactRow `json:"row"`
	Tier Tier       `json:"icpTier"`
}

// ClassificationResult summarizes a batch classification run.
type ClassificationResult struct {
	Total      int                 `json:"total"`
	Classified int                 `json:"classified"`
	Excluded   int                 `json:"excluded"`
	Tiers      map[Tier]int        `json:"tiers"`
	Rows       []ClassifiedContact `json:"rows"`
	Rejected   []ContactRow        `json:"rejectedRows"`
}
