package charts

import "github.com/glytehq/glyte-engine/pkg/profiler"

// Match scores how well a profile fits a template. Score 0 means the
// template does not apply.
type Match struct {
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// Template is a curated dashboard layout for a recognizable data shape.
type Template interface {
	ID() string
	Name() string
	Description() string
	Match(profile *profiler.TableProfile) Match
	Generate(profile *profiler.TableProfile) []Recommendation
}

// Selection is the winning template for a profile.
type Selection struct {
	Template   Template `json:"-"`
	TemplateID string   `json:"templateId"`
	Score      float64  `json:"score"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason"`
}

// Templates holds every known template in evaluation order. The single
// dataset fallback always matches at 0.5 and must stay last so specialized
// templates win ties against it.
var Templates = []Template{
	contactPipelineTemplate{},
	channelComparisonTemplate{},
	customerJourneyTemplate{},
	leadSourceROITemplate{},
	singleDatasetTemplate{},
}

// SelectTemplate picks the best template for a profile. A later template
// must score strictly higher to displace an earlier one, so ties resolve to
// the first match in registry order.
func SelectTemplate(profile *profiler.TableProfile) Selection {
	var best Selection
	for i, template := range Templates {
		m := template.Match(profile)
		if i == 0 || m.Score > best.Score {
			best = Selection{
				Template:   template,
				TemplateID: template.ID(),
				Score:      m.Score,
				Confidence: m.Confidence,
				Reason:     m.Reason,
			}
		}
	}
	return best
}
