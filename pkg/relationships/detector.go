package relationships

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jinzhu/inflection"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/glytehq/glyte-engine/pkg/apperrors"
	"github.com/glytehq/glyte-engine/pkg/sqlutil"
	"github.com/glytehq/glyte-engine/pkg/store"
)

// Confidence weights for the composite score.
const (
	weightNameSimilarity    = 0.3
	weightValueOverlap      = 0.4
	weightTypeCompatibility = 0.2
	weightCardinality       = 0.1
)

// minConfidence is the score below which candidates are dropped.
const minConfidence = 0.3

// maxConcurrentPairs bounds how many candidate pairs are scored at once.
const maxConcurrentPairs = 4

// Detector scores column pairs across tables and suggests joins.
type Detector struct {
	store  store.Store
	logger *zap.Logger
}

// NewDetector creates a Detector over the given store.
func NewDetector(st store.Store, logger *zap.Logger) *Detector {
	return &Detector{store: st, logger: logger.Named("relationships")}
}

type columnMeta struct {
	table  string
	column string
	dtype  string
}

type candidatePair struct {
	a columnMeta
	b columnMeta
}

// Detect compares every column pair across every table pair and returns
// suggestions ordered by confidence. At least two tables are required.
func (d *Detector) Detect(ctx context.Context, tables []string) ([]Suggestion, error) {
	if len(tables) < 2 {
		return nil, apperrors.ErrNotEnoughTables
	}

	columnsByTable := make(map[string][]columnMeta, len(tables))
	for _, table := range tables {
		cols, err := d.store.Columns(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("read columns for %s: %w", table, err)
		}
		metas := make([]columnMeta, len(cols))
		for i, c := range cols {
			metas[i] = columnMeta{table: table, column: c.Name, dtype: c.DataType}
		}
		columnsByTable[table] = metas
	}

	// Pairs with no name similarity produce too many false positives and
	// are skipped outright.
	var pairs []candidatePair
	for i := 0; i < len(tables); i++ {
		for j := i + 1; j < len(tables); j++ {
			for _, colA := range columnsByTable[tables[i]] {
				for _, colB := range columnsByTable[tables[j]] {
					if nameSimilarity(colA, colB) > 0 {
						pairs = append(pairs, candidatePair{a: colA, b: colB})
					}
				}
			}
		}
	}

	// Score pairs concurrently into an index-addressed slice so the result
	// order does not depend on scheduling.
	results := make([]*Suggestion, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPairs)
	for i, pair := range pairs {
		g.Go(func() error {
			results[i] = d.scorePair(gctx, pair)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make([]Suggestion, 0, len(results))
	for _, s := range results {
		if s != nil {
			candidates = append(candidates, *s)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	return dedupe(candidates), nil
}

// scorePair evaluates one column pair and returns nil when it falls below
// the confidence cutoff.
func (d *Detector) scorePair(ctx context.Context, pair candidatePair) *Suggestion {
	nameSim := nameSimilarity(pair.a, pair.b)
	typeCompat := typeCompatibility(pair.a.dtype, pair.b.dtype)

	overlap := d.valueOverlap(ctx, pair.a, pair.b)
	if overlap == 0 && nameSim < 0.9 {
		return nil
	}

	cardA := d.columnCardinality(ctx, pair.a)
	cardB := d.columnCardinality(ctx, pair.b)
	cardinality := resolveCardinality(cardA.unique, cardB.unique)
	clarity := 0.5
	if cardA.unique || cardB.unique {
		clarity = 1.0
	}

	confidence := weightNameSimilarity*nameSim +
		weightValueOverlap*overlap +
		weightTypeCompatibility*typeCompat +
		weightCardinality*clarity
	if confidence < minConfidence {
		return nil
	}

	var reasons []string
	if nameSim >= 0.9 {
		reasons = append(reasons, "Column name match")
	} else if nameSim >= 0.5 {
		reasons = append(reasons, "Partial name match")
	}
	if overlap > 0 {
		reasons = append(reasons, fmt.Sprintf("%d%% value overlap", int(math.Round(overlap*100))))
	}
	if typeCompat >= 0.9 {
		reasons = append(reasons, "Same data type")
	}
	reason := strings.Join(reasons, " + ")
	if reason == "" {
		reason = "Weak match"
	}

	maxGroup := cardA.maxCount
	if maxGroup == 0 {
		maxGroup = 1
	}

	return &Suggestion{
		FromTable:   pair.a.table,
		FromColumn:  pair.a.column,
		ToTable:     pair.b.table,
		ToColumn:    pair.b.column,
		Confidence:  round2(confidence),
		Reason:      reason,
		Cardinality: cardinality,
		Source:      SourceAuto,
		Details: &Details{
			NameSimilarity: nameSim,
			ValueOverlap:   overlap,
			SampleMatches:  int(math.Round(overlap * float64(maxGroup))),
			FromTable:      pair.a.table,
			FromColumn:     pair.a.column,
			ToTable:        pair.b.table,
			ToColumn:       pair.b.column,
			Cardinality:    cardinality,
		},
	}
}

// valueOverlap measures the share of distinct values on the from side that
// also appear on the to side. Query failures count as zero overlap.
func (d *Detector) valueOverlap(ctx context.Context, a, b columnMeta) float64 {
	qColA := sqlutil.QuoteIdent(a.column)
	qColB := sqlutil.QuoteIdent(b.column)
	sql := fmt.Sprintf(`
		SELECT
			COUNT(DISTINCT a.%[1]s) AS a_distinct,
			COUNT(DISTINCT b.%[2]s) AS b_distinct,
			COUNT(DISTINCT CASE WHEN b.%[2]s IS NOT NULL THEN a.%[1]s END) AS overlap
		FROM %[3]s a
		LEFT JOIN %[4]s b ON CAST(a.%[1]s AS TEXT) = CAST(b.%[2]s AS TEXT)
		WHERE a.%[1]s IS NOT NULL`,
		qColA, qColB, sqlutil.QuoteIdent(a.table), sqlutil.QuoteIdent(b.table))

	rows, err := d.store.Query(ctx, sql)
	if err != nil || len(rows) == 0 {
		d.logger.Debug("overlap query failed",
			zap.String("from", a.table+"."+a.column),
			zap.String("to", b.table+"."+b.column),
			zap.Error(err))
		return 0
	}

	aDistinct := toFloat(rows[0]["a_distinct"])
	if aDistinct <= 0 {
		return 0
	}
	return toFloat(rows[0]["overlap"]) / aDistinct
}

type cardinalityInfo struct {
	maxCount int
	unique   bool
}

// columnCardinality finds the largest group size for a column's values. A
// failed query yields a non-unique zero result so the score degrades
// instead of erroring.
func (d *Detector) columnCardinality(ctx context.Context, col columnMeta) cardinalityInfo {
	sql := fmt.Sprintf(`
		SELECT MAX(cnt) AS max_count FROM (
			SELECT %[1]s, COUNT(*) AS cnt FROM %[2]s GROUP BY %[1]s
		) grouped`,
		sqlutil.QuoteIdent(col.column), sqlutil.QuoteIdent(col.table))

	rows, err := d.store.Query(ctx, sql)
	if err != nil || len(rows) == 0 {
		return cardinalityInfo{}
	}
	maxCount := int(toFloat(rows[0]["max_count"]))
	return cardinalityInfo{maxCount: maxCount, unique: maxCount <= 1}
}

func resolveCardinality(fromUnique, toUnique bool) Cardinality {
	switch {
	case fromUnique && toUnique:
		return OneToOne
	case fromUnique || toUnique:
		return OneToMany
	default:
		return ManyToMany
	}
}

// --- Name and type heuristics ---

func normalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, strings.ToLower(name))
}

// nameSimilarity scores how strongly two column names suggest a join: 1.0
// for an exact match, 0.9 for a foreign key pattern like orders.customer_id
// matching customers.id, 0.5 for a partial overlap, 0 otherwise.
func nameSimilarity(a, b columnMeta) float64 {
	normA := normalizeName(a.column)
	normB := normalizeName(b.column)

	if normA == normB {
		return 1.0
	}

	tableANorm := normalizeName(inflection.Singular(strings.ToLower(a.table)))
	tableBNorm := normalizeName(inflection.Singular(strings.ToLower(b.table)))

	if normA == tableBNorm+"id" && normB == "id" {
		return 0.9
	}
	if normB == tableANorm+"id" && normA == "id" {
		return 0.9
	}
	if normA == "id" && strings.HasSuffix(normB, "id") && strings.HasPrefix(normB, tableANorm) {
		return 0.9
	}
	if normB == "id" && strings.HasSuffix(normA, "id") && strings.HasPrefix(normA, tableBNorm) {
		return 0.9
	}

	if strings.Contains(normA, normB) || strings.Contains(normB, normA) {
		return 0.5
	}

	return 0
}

var (
	numericTypeNames = []string{"integer", "int", "bigint", "smallint", "tinyint", "hugeint"}
	textTypeNames    = []string{"varchar", "text", "string"}
)

// typeCompatibility scores whether two declared types can join cleanly:
// 1.0 identical, 0.9 same family, 0.3 mixed (joinable via CAST).
func typeCompatibility(typeA, typeB string) float64 {
	normA := strings.ToLower(typeA)
	normB := strings.ToLower(typeB)

	if normA == normB {
		return 1.0
	}

	containsAny := func(s string, names []string) bool {
		for _, n := range names {
			if strings.Contains(s, n) {
				return true
			}
		}
		return false
	}

	if containsAny(normA, numericTypeNames) && containsAny(normB, numericTypeNames) {
		return 0.9
	}
	if containsAny(normA, textTypeNames) && containsAny(normB, textTypeNames) {
		return 0.9
	}
	return 0.3
}

// dedupe removes reverse duplicates, keeping the higher-confidence entry.
// Input must already be sorted by confidence descending.
func dedupe(candidates []Suggestion) []Suggestion {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		forward := c.FromTable + "." + c.FromColumn + "-" + c.ToTable + "." + c.ToColumn
		reverse := c.ToTable + "." + c.ToColumn + "-" + c.FromTable + "." + c.FromColumn
		if _, ok := seen[forward]; ok {
			continue
		}
		if _, ok := seen[reverse]; ok {
			continue
		}
		seen[forward] = struct{}{}
		out = append(out, c)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	case int:
		return float64(x)
	default:
		return 0
	}
}
