// Package relationships infers join relationships between ingested tables
// by combining column name heuristics with measured value overlap.
package relationships

// Cardinality describes how rows relate across a suggested join.
type Cardinality string

const (
	OneToOne   Cardinality = "one-to-one"
	OneToMany  Cardinality = "one-to-many"
	ManyToMany Cardinality = "many-to-many"
)

// Source records how a suggestion was produced.
type Source string

const (
	SourceAuto        Source = "auto"
	SourceAISuggested Source = "ai-suggested"
)

// Details exposes the raw signals behind a suggestion for UI display.
type Details struct {
	NameSimilarity float64     `json:"nameSimilarity"`
	ValueOverlap   float64     `json:"valueOverlap"`
	SampleMatches  int         `json:"sampleMatches"`
	FromTable      string      `json:"fromTable"`
	FromColumn     string      `json:"fromColumn"`
	ToTable        string      `json:"toTable"`
	ToColumn       string      `json:"toColumn"`
	Cardinality    Cardinality `json:"cardinality"`
}

// Suggestion is a candidate relationship between two columns.
type Suggestion struct {
	FromTable   string      `json:"fromTable"`
	FromColumn  string      `json:"fromColumn"`
	ToTable     string      `json:"toTable"`
	ToColumn    string      `json:"toColumn"`
	Confidence  float64     `json:"confidence"`
	Reason      string      `json:"reason"`
	Cardinality Cardinality `json:"cardinality"`
	Details     *Details    `json:"details,omitempty"`
	Source      Source      `json:"source,omitempty"`
}
