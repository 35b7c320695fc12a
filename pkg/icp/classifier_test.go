package icp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForDecisionMakers(t *testing.T) {
	tier1Titles := []string{
		"CEO", "Chief Executive Officer", "CFO", "Chief Financial Officer",
		"COO", "Chief Operating Officer", "CRO", "Chief Revenue Officer",
		"CGO", "CDO", "Managing Director", "Managing Partner",
		"President", "Executive Director", "General Director",
		"General Manager", "GM", "Founder", "Co-Founder",
		"Cofounder", "Founding Partner", "Owner", "CSO",
	}
	for _, title := range tier1Titles {
		t.Run(title, func(t *testing.T) {
			tier, ok := TierFor(title, "")
			if !ok || tier != Tier1 {
				t.Errorf("TierFor(%q) = (%q, %v), want Tier 1", title, tier, ok)
			}
		})
	}
}

func TestTierForPaymentAndFinanceOwners(t *testing.T) {
	tier15Titles := []string{
		"Head of Payments", "Payment Director", "Director of Payment",
		"Head of PSP", "PSP Director", "FinOps Director",
		"Head of Finance", "Finance Director", "Director of Finance",
		"Head of Treasury", "Treasury Director", "Head of Financial Operations",
	}
	for _, title := range tier15Titles {
		t.Run(title, func(t *testing.T) {
			tier, ok := TierFor(title, "")
			if !ok || tier != Tier1Point5 {
				t.Errorf("TierFor(%q) = (%q, %v), want Tier 1.5", title, tier, ok)
			}
		})
	}
}

func TestTierForInfluencers(t *testing.T) {
	tier2Titles := []string{
		"Account Director", "VP Partnerships",
		"Vice President of Partnerships", "Operations Director",
		"Director of Operations", "Regional Director",
		"Business Development Director", "Director of Business Development",
		"Partnership Director", "Country Manager", "Regional Manager",
		// Generic director and head-of fallbacks
		"IT Director", "Head of Risk",
	}
	for _, title := range tier2Titles {
		t.Run(title, func(t *testing.T) {
			tier, ok := TierFor(title, "")
			if !ok || tier != Tier2 {
				t.Errorf("TierFor(%q) = (%q, %v), want Tier 2", title, tier, ok)
			}
		})
	}
}

func TestTierForVPAndDeputy(t *testing.T) {
	tier3Titles := []string{
		"Vice President", "VP", "SVP", "Senior Vice President",
		"EVP", "Executive Vice President",
		"Deputy General Manager", "Deputy Vice President", "Deputy Director",
	}
	for _, title := range tier3Titles {
		t.Run(title, func(t *testing.T) {
			tier, ok := TierFor(title, "")
			if !ok || tier != Tier3 {
				t.Errorf("TierFor(%q) = (%q, %v), want Tier 3", title, tier, ok)
			}
		})
	}
}

// Deputy C-suite titles land in Tier 1 because the bare C-suite pattern has
// priority over the deputy patterns.
func TestTierForDeputyCSuite(t *testing.T) {
	for _, title := range []string{"Deputy CEO", "Deputy CFO", "Deputy COO", "Deputy Managing Director"} {
		tier, ok := TierFor(title, "")
		if !ok || tier != Tier1 {
			t.Errorf("TierFor(%q) = (%q, %v), want Tier 1", title, tier, ok)
		}
	}
}

func TestTierForIGaming(t *testing.T) {
	igamingTitles := []string{
		"Betting Director", "iGaming Director", "Head of Casino",
		"Head of Gaming", "Head of Betting", "Head of iGaming",
		"Casino Director", "Director of Casino", "SVP iGaming",
	}
	for _, title := range igamingTitles {
		t.Run(title, func(t *testing.T) {
			tier, ok := TierFor(title, "")
			if !ok || tier != TierIGaming {
				t.Errorf("TierFor(%q) = (%q, %v), want iGaming", title, tier, ok)
			}
		})
	}
}

func TestTierForBoard(t *testing.T) {
	boardTitles := []string{
		"Chairman", "Chairperson", "Board Member",
		"Board Director", "Member of the Board",
	}
	for _, title := range boardTitles {
		t.Run(title, func(t *testing.T) {
			tier, ok := TierFor(title, "")
			if !ok || tier != TierBoard {
				t.Errorf("TierFor(%q) = (%q, %v), want Board", title, tier, ok)
			}
		})
	}
}

func TestTierForExclusions(t *testing.T) {
	excluded := []string{
		"CTO", "Chief Technology Officer",
		"CMO", "Marketing Director", "VP of Marketing", "Head of Marketing",
		"Chief People Officer", "General Counsel", "Head of Compliance",
		"Analyst", "Consultant", "Software Engineer", "Account Manager",
		"Sales Manager", "Intern", "Junior Developer",
		"Director",
	}
	for _, title := range excluded {
		t.Run(title, func(t *testing.T) {
			if tier, ok := TierFor(title, ""); ok {
				t.Errorf("TierFor(%q) = %q, want no tier", title, tier)
			}
		})
	}
}

func TestTierForDualRoleCTO(t *testing.T) {
	for _, title := range []string{"CEO & CTO", "Co-Founder & CTO"} {
		tier, ok := TierFor(title, "")
		if !ok || tier != Tier1 {
			t.Errorf("TierFor(%q) = (%q, %v), want Tier 1", title, tier, ok)
		}
	}
}

func TestTierForFounderIndustryFilter(t *testing.T) {
	if tier, ok := TierFor("Founder", "Digital Marketing Agency"); ok {
		t.Errorf("marketing agency founder classified as %q, want no tier", tier)
	}
	if tier, ok := TierFor("Founder", "Creative Agency"); ok {
		t.Errorf("creative agency founder classified as %q, want no tier", tier)
	}
	if tier, ok := TierFor("Founder", "PayTech Solutions"); !ok || tier != Tier1 {
		t.Errorf("fintech founder = (%q, %v), want Tier 1", tier, ok)
	}
	if tier, ok := TierFor("Founder", "Kea Banking"); !ok || tier != Tier1 {
		t.Errorf("banking founder = (%q, %v), want Tier 1", tier, ok)
	}
}

func TestTierForEdgeCases(t *testing.T) {
	t.Run("blank titles", func(t *testing.T) {
		if _, ok := TierFor("", ""); ok {
			t.Error("empty title should not classify")
		}
		if _, ok := TierFor("  ", ""); ok {
			t.Error("whitespace title should not classify")
		}
	})

	t.Run("truncated C-suite titles are repaired", func(t *testing.T) {
		tier, ok := TierFor("Chief Executive Offi", "")
		assert.True(t, ok)
		assert.Equal(t, Tier1, tier)
		tier, ok = TierFor("Chief Financial Offic", "")
		assert.True(t, ok)
		assert.Equal(t, Tier1, tier)
	})

	t.Run("CCO disambiguation", func(t *testing.T) {
		tier, ok := TierFor("CCO", "")
		assert.True(t, ok)
		assert.Equal(t, Tier1, tier)
		_, ok = TierFor("Chief Compliance Officer", "")
		assert.False(t, ok)
		tier, ok = TierFor("Chief Commercial Officer", "")
		assert.True(t, ok)
		assert.Equal(t, Tier1, tier)
	})

	t.Run("case insensitive", func(t *testing.T) {
		tier, _ := TierFor("ceo", "")
		assert.Equal(t, Tier1, tier)
		tier, _ = TierFor("MANAGING DIRECTOR", "")
		assert.Equal(t, Tier1, tier)
		tier, _ = TierFor("head of payments", "")
		assert.Equal(t, Tier1Point5, tier)
	})

	t.Run("president qualifiers", func(t *testing.T) {
		tier, _ := TierFor("President", "")
		assert.Equal(t, Tier1, tier)
		tier, _ = TierFor("Vice President of Finance", "")
		assert.NotEqual(t, Tier1, tier)
	})

	t.Run("general manager qualifiers", func(t *testing.T) {
		tier, _ := TierFor("General Manager", "")
		assert.Equal(t, Tier1, tier)
		tier, _ = TierFor("Deputy General Manager", "")
		assert.Equal(t, Tier3, tier)
	})
}

func TestMatchesExcludeExemptions(t *testing.T) {
	assert.False(t, MatchesExclude("Country Manager"))
	assert.False(t, MatchesExclude("Regional Manager"))
	assert.False(t, MatchesExclude("General Manager"))
	assert.True(t, MatchesExclude("Marketing Manager"))
}

func TestClassifyContacts(t *testing.T) {
	rows := []ContactRow{
		{"title": "CEO", "company": "Acme Gaming"},
		{"title": "Head of Payments", "company": "Acme Gaming"},
		{"title": "Marketing Director", "company": "Acme Gaming"},
		{"title": "Casino Director", "company": "Lucky Ltd"},
		{"title": "Founder", "company": "Creative Agency"},
		{"title": "", "company": "Acme Gaming"},
	}

	result := ClassifyContacts(rows, "title", "company")

	assert.Equal(t, 6, result.Total)
	assert.Equal(t, 3, result.Classified)
	assert.Equal(t, 3, result.Excluded)
	assert.Equal(t, 1, result.Tiers[Tier1])
	assert.Equal(t, 1, result.Tiers[Tier1Point5])
	assert.Equal(t, 1, result.Tiers[TierIGaming])
	assert.Equal(t, 0, result.Tiers[Tier2])

	assert.Equal(t, Tier1, result.Rows[0].Tier)
	assert.Equal(t, "CEO", result.Rows[0].Row["title"])
	assert.Len(t, result.Rejected, 3)
}
