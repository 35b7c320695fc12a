package icp

import "github.com/dlclark/regexp2"

// Title matching needs lookbehind and lookahead (e.g. President that is not
// Vice President), which the standard regexp package does not support.

func compileAll(patterns []string) []*regexp2.Regexp {
	out := make([]*regexp2.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp2.MustCompile(p, regexp2.IgnoreCase)
	}
	return out
}

func matchAny(res []*regexp2.Regexp, s string) bool {
	for _, re := range res {
		if ok, _ := re.MatchString(s); ok {
			return true
		}
	}
	return false
}

var tier1Patterns = compileAll([]string{
	// C-suite abbreviations. CCO is handled separately: it is ambiguous
	// between Commercial (in) and Compliance (out).
	`\bCEO\b`, `\bCFO\b`, `\bCOO\b`, `\bCIO\b`, `\bCRO\b`,
	`\bCGO\b`, `\bCBDO\b`, `\bCBO\b`, `\bCAO\b`, `\bCMD\b`, `\bCDO\b`,

	`\bChief\s+Executive\s+Officer\b`,
	`\bChief\s+Financial\s+Officer\b`,
	`\bChief\s+Operating\s+Officer\b`,
	`\bChief\s+Information\s+Officer\b`,
	`\bChief\s+Revenue\s+Officer\b`,
	`\bChief\s+Commercial\s+Officer\b`,
	`\bChief\s+Growth\s+Officer\b`,
	`\bChief\s+Business\s+Development\s+Officer\b`,
	`\bChief\s+Digital\s+Officer\b`,
	`\bChief\s+Gaming\s+Officer\b`,

	// Generic Chief * Officer, excluding support functions.
	`\bChief\s+(?!Compliance|Marketing|People|Human|Talent)\w+\s+Officer\b`,

	`\bManaging\s+Director\b`,
	`\bManaging\s+Partner\b`,
	`(?<!Vice )(?<!Deputy )\bPresident\b`,
	`\bExecutive\s+Director\b`,
	`\bGeneral\s+Director\b`,
	`(?<!Deputy )\bGeneral\s+Manager\b`,
	`\bGM\b`,
	`\bCSO\b`,

	`\bFounder\b`, `\bCo-Founder\b`, `\bCofounder\b`, `\bFounding\s+Partner\b`,

	`\bOwner\b`,
})

var tier1Point5Patterns = compileAll([]string{
	`\bHead\s+of\s+Payments?\b`,
	`\bPayments?\s+Director\b`,
	`\bDirector\s+of\s+Payments?\b`,
	`\bHead\s+of\s+PSP\b`,
	`\bPSP\s+Director\b`,
	`\bFinOps\s+Director\b`,
	`\bHead\s+of\s+Finance\b`,
	`\bFinance\s+Director\b`,
	`\bDirector\s+of\s+Finance\b`,
	`\bHead\s+of\s+Treasury\b`,
	`\bTreasury\s+Director\b`,
	`\bHead\s+of\s+Financial\s+Operations\b`,
})

var tier2Patterns = compileAll([]string{
	`\bAccount\s+Director\b`,
	`\bVP\s+(?:of\s+)?Partnerships?\b`,
	`\bVice\s+President\s+(?:of\s+)?Partnerships?\b`,
	`\bOperations\s+Director\b`,
	`\bDirector\s+of\s+Operations\b`,
	`\bRegional\s+Director\b`,
	`\bBusiness\s+Development\s+Director\b`,
	`\bDirector\s+of\s+Business\s+Development\b`,
	`\bPartnership\s+Director\b`,
	`\bDirector\s+of\s+Partnerships?\b`,
	`\bCountry\s+Manager\b`,
	`\bRegional\s+Manager\b`,
})

var tier3Patterns = compileAll([]string{
	`\bVice\s+President\b`,
	`\bVP\b`,
	`\bSVP\b`, `\bSenior\s+Vice\s+President\b`,
	`\bEVP\b`, `\bExecutive\s+Vice\s+President\b`,

	`\bDeputy\s+General\s+Manager\b`,
	`\bDeputy\s+Vice\s+President\b`,
	`\bDeputy\s+Director\b`,
	`\bDeputy\s+CEO\b`,
	`\bDeputy\s+CFO\b`,
	`\bDeputy\s+COO\b`,
	`\bDeputy\s+Managing\s+Director\b`,
})

var igamingPatterns = compileAll([]string{
	`\bBetting\s+Director\b`,
	`\biGaming\s+Director\b`,
	`\bGambling\s+Director\b`,
	`\bGaming\s+Director\b`,
	`\bHead\s+of\s+Casino\b`,
	`\bHead\s+of\s+Gaming\b`,
	`\bHead\s+of\s+Betting\b`,
	`\bHead\s+of\s+iGaming\b`,
	`\bSlot\s+Director\b`,
	`\bSVP\s+iGaming\b`,
	`\bSVP\s+iLottery\b`,
	`\bCasino\s+Director\b`,
	`\bDirector\s+of\s+Casino\b`,
	`\bDirector\s+of\s+Gaming\b`,
	`\bDirector\s+of\s+iGaming\b`,
})

var boardPatterns = compileAll([]string{
	`\bChairman\b`, `\bChairperson\b`, `\bChairwoman\b`,
	`\bVice\s+Chairman\b`,
	`\bBoard\s+Member\b`,
	`\bBoard\s+Director\b`,
	`\bMember\s+of\s+(?:the\s+)?Board\b`,
})

// Generic director or head-of titles fall back to Tier 2 when nothing more
// specific matched.
var genericDirectorHeadPatterns = compileAll([]string{
	`\bDirector\b`,
	`\bHead\s+of\b`,
	`\bGlobal\s+Head\b`,
	`\bRegional\s+Head\b`,
	`\bSenior\s+Director\b`,
})

var excludePatterns = compileAll([]string{
	// Marketing
	`\bCMO\b`, `\bChief\s+Marketing\s+Officer\b`,
	`\bHead\s+of\s+Marketing\b`, `\bMarketing\s+Director\b`,
	`\bDirector\s+of\s+Marketing\b`,
	`\bHead\s+of\s+Growth\b`, `\bHead\s+of\s+Brand\b`,
	`\bGrowth\s+Director\b`, `\bBrand\s+Director\b`,
	`\bMarketing\s+Manager\b`, `\bGrowth\s+Manager\b`,
	`\bVP\s+(?:of\s+)?Marketing\b`, `\bVP\s+(?:of\s+)?Growth\b`,

	// Compliance
	`\bCompliance\b`,
	`\bChief\s+Compliance\s+Officer\b`,
	`\bHead\s+of\s+Compliance\b`,
	`\bRegulatory\b`,
	`\bResponsible\s+Gaming\b`,

	// Client/customer facing
	`\bClient\b`,
	`\bCustomer\b`,

	// Policy, product, research
	`\bPolicy\b`,
	`\bProducts?\b`,
	`\bResearch\b`,

	// Creative
	`\bArt\s+Director\b`,
	`\bCreative\s+Director\b`,

	// Engineering and tech
	`\bHead\s+of\s+Engineering\b`,
	`\bEngineering\s+Director\b`,
	`\bDirector\s+of\s+Engineering\b`,

	// SEO/CRM
	`\bHead\s+of\s+SEO\b`,
	`\bSEO\s+Director\b`,
	`\bDirector\s+of\s+SEO\b`,
	`\bHead\s+of\s+CRM\b`,
	`\bCRM\s+Director\b`,
	`\bDirector\s+of\s+CRM\b`,

	// Design
	`\bHead\s+of\s+Design\b`,
	`\bDesign\s+Director\b`,
	`\bDirector\s+of\s+Design\b`,

	// Events
	`\bHead\s+of\s+Events?\b`,
	`\bEvents?\s+Director\b`,
	`\bDirector\s+of\s+Events?\b`,

	// Project and delivery
	`\bHead\s+of\s+Project\b`,
	`\bProject\s+Director\b`,
	`\bDirector\s+of\s+Project\b`,

	// Studio
	`\bStudio\s+Director\b`,
	`\bHead\s+of\s+Studio\b`,
	`\bDirector\s+of\s+Studio\b`,

	// R&D
	`\bR&D\s+Director\b`,
	`\bHead\s+of\s+R&D\b`,
	`\bDirector\s+of\s+R&D\b`,
	`\bR\s*&\s*D\b`,

	// Acquisition, retention, performance marketing
	`\bHead\s+of\s+Acquisition\b`,
	`\bAcquisition\s+Director\b`,
	`\bDirector\s+of\s+Acquisition\b`,
	`\bHead\s+of\s+Retention\b`,
	`\bRetention\s+Director\b`,
	`\bDirector\s+of\s+Retention\b`,
	`\bHead\s+of\s+Performance\b`,
	`\bPerformance\s+Director\b`,
	`\bDirector\s+of\s+Performance\b`,

	// Digital
	`\bHead\s+of\s+Digital\b`,
	`\bDigital\s+Director\b`,
	`\bDirector\s+of\s+Digital\b`,

	// Sales
	`\bSales\b`,
	`\bAccount\s+Manager\b`,
	`\bAccount\s+Executive\b`,
	`\bKey\s+Account\b`,

	// Risk, legal, HR, IT
	`\bRisk\s+Management\b`,
	`\bRisk\s+Officer\b`,
	`\bChief\s+Risk\s+Officer\b`,
	`\bLegal\b`,
	`\bGeneral\s+Counsel\b`,
	`\bHR\b`, `\bHuman\s+Resources\b`,
	`\bChief\s+People\s+Officer\b`,
	`\bChief\s+Human\s+Resources\b`,
	`\bIT\b(?!\s*Director)`, `\bInformation\s+Technology\b`,
	`\bRecruitment\b`, `\bRecruiter\b`, `\bTalent\s+Acquisition\b`,

	// Spanish
	`\bSeguridad\b`,

	// Non-decision makers
	`\bAnalyst\b`,
	`\bAssociate\b`,
	`\bConsultant\b`,
	`\bSupport\b`,
	`\bAssistant\b`,
	`\bIntern\b`,
	`\bTrainee\b`,
	`\bJunior\b`,
	`\bCoordinator\b`,
	`\bSpecialist\b`,
	`\bAgent\b`,
	`\bAttendee\b`,
	`\bVisitor\b`,
	`\bDelegate\b`,
	`\bRepresentative\b`,

	// Generic exclusions
	`\bManager\b(?!\s*Director)`,
	`\bEngineer\b`,
	`\bDeveloper\b`,
	`\bDesigner\b`,
	`\bArchitect\b(?!\s*Director)`,
	`\bProgrammer\b`,
	`\bTester\b`,
	`\bQA\b`,
	`\bWriter\b`,
	`\bEditor\b`,
	`\bContent\b`,
	`\bCommunity\b`,
	`\bSocial\s+Media\b`,
	`\bInfluencer\b`,
	`\bAmbassador\b`,
	`\bStudent\b`,
	`\bProfessor\b`,
	`\bTeacher\b`,
	`\bAcademic\b`,
	`\bAccountant\b`,
	`\bBookkeeper\b`,
	`\bSecretary\b`,
	`\bReceptionist\b`,
	`\bAdmin\b(?!istrator)`,
})

// CTO titles are excluded on their own, but kept when the contact also holds
// a decision-maker role ("CEO & CTO").
var ctoPatterns = compileAll([]string{
	`\bCTO\b`, `\bChief\s+Technology\s+Officer\b`, `\bChief\s+Technical\s+Officer\b`,
})

var ctoKeepPatterns = compileAll([]string{
	`\bCEO\b`, `\bCFO\b`, `\bCOO\b`, `\bFounder\b`, `Co.Founder`,
})

// These specific Manager titles are in scope despite the generic Manager
// exclusion.
var exemptPatterns = compileAll([]string{
	`\bGeneral\s+Manager\b`,
	`\bCountry\s+Manager\b`,
	`\bRegional\s+Manager\b`,
})

// Founders from these industries are out of scope.
var nonRelevantIndustries = []string{
	"marketing", "media", "advertising", "agency", "creative",
	"pr ", "public relations", "social media", "content",
}
