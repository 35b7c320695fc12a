package charts

import "github.com/glytehq/glyte-engine/pkg/profiler"

// singleDatasetTemplate is the fallback: it matches any profile at 0.5 and
// delegates to the generic recommender.
type singleDatasetTemplate struct{}

func (singleDatasetTemplate) ID() string   { return "single-dataset" }
func (singleDatasetTemplate) Name() string { return "Single Dataset" }
func (singleDatasetTemplate) Description() string {
	return "General-purpose dashboard for any dataset. Auto-generates charts based on column types."
}

func (singleDatasetTemplate) Match(*profiler.TableProfile) Match {
	return Match{Score: 0.5, Confidence: 0.5, Reason: "Default template, fits any dataset"}
}

func (singleDatasetTemplate) Generate(profile *profiler.TableProfile) []Recommendation {
	return Recommend(profile)
}
