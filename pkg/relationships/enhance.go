package relationships

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/llm"
	"github.com/glytehq/glyte-engine/pkg/sqlutil"
)

// LLM review only touches the ambiguous middle of the confidence range;
// strong and weak candidates keep their heuristic scores.
const (
	enhanceMinConfidence = 0.3
	enhanceMaxConfidence = 0.8
	maxAdjustment        = 0.2
	notRealPenalty       = 0.15
	enhanceSampleLimit   = 5
)

type assessment struct {
	Index      int     `json:"index"`
	IsReal     bool    `json:"isReal"`
	Adjustment float64 `json:"adjustment"`
	Reasoning  string  `json:"reasoning"`
}

// EnhanceWithLLM asks the model to review ambiguous candidates and adjusts
// their confidence in place. It never fails the pipeline: on any model or
// parse error the heuristic scores are returned untouched.
func (d *Detector) EnhanceWithLLM(ctx context.Context, client llm.Client, candidates []Suggestion) []Suggestion {
	if client == nil {
		return candidates
	}

	var ambiguousIdx []int
	for i, c := range candidates {
		if c.Confidence >= enhanceMinConfidence && c.Confidence <= enhanceMaxConfidence {
			ambiguousIdx = append(ambiguousIdx, i)
		}
	}
	if len(ambiguousIdx) == 0 {
		return candidates
	}

	var lines []string
	for _, idx := range ambiguousIdx {
		c := candidates[idx]
		samplesA := d.sampleValues(ctx, c.FromTable, c.FromColumn)
		samplesB := d.sampleValues(ctx, c.ToTable, c.ToColumn)
		lines = append(lines, fmt.Sprintf(
			"- %s.%s (samples: %s) <-> %s.%s (samples: %s) | heuristic confidence: %v | reason: %s",
			c.FromTable, c.FromColumn, orNone(samplesA),
			c.ToTable, c.ToColumn, orNone(samplesB),
			c.Confidence, c.Reason))
	}

	prompt := fmt.Sprintf(`You are a data analyst. Given these candidate column relationships between database tables, determine which are REAL foreign key relationships and which are false positives.

For each pair, respond with a JSON array. Each entry: {"index": N, "isReal": true/false, "adjustment": -0.2 to +0.2, "reasoning": "brief explanation"}

Candidates:
%s

Respond with ONLY the JSON array, no markdown.`, strings.Join(lines, "\n"))

	response, err := client.GenerateResponse(ctx, prompt, "", 0)
	if err != nil || strings.TrimSpace(response) == "" {
		d.logger.Warn("relationship review skipped", zap.Error(err))
		return candidates
	}

	assessments, err := llm.ParseJSONResponse[[]assessment](response)
	if err != nil {
		d.logger.Warn("relationship review unparseable, keeping heuristic scores", zap.Error(err))
		return candidates
	}

	for _, a := range assessments {
		if a.Index < 0 || a.Index >= len(ambiguousIdx) {
			continue
		}
		c := &candidates[ambiguousIdx[a.Index]]

		adj := math.Max(-maxAdjustment, math.Min(maxAdjustment, a.Adjustment))
		penalty := 0.0
		if !a.IsReal {
			penalty = -notRealPenalty
		}
		c.Confidence = round2(math.Max(0, math.Min(1, c.Confidence+adj+penalty)))
		c.Reason = c.Reason + " | AI: " + a.Reasoning
		c.Source = SourceAISuggested
	}

	return candidates
}

func (d *Detector) sampleValues(ctx context.Context, table, column string) []string {
	sql := fmt.Sprintf(
		`SELECT DISTINCT %[1]s AS v FROM %[2]s WHERE %[1]s IS NOT NULL LIMIT %[3]d`,
		sqlutil.QuoteIdent(column), sqlutil.QuoteIdent(table), enhanceSampleLimit)
	rows, err := d.store.Query(ctx, sql)
	if err != nil {
		return nil
	}
	samples := make([]string, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, fmt.Sprintf("%v", row["v"]))
	}
	return samples
}

func orNone(samples []string) string {
	if len(samples) == 0 {
		return "none"
	}
	return strings.Join(samples, ", ")
}
