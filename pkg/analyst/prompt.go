// Package analyst builds the system prompts and SQL guardrails for the
// conversational data analyst.
package analyst

import (
	"fmt"
	"strings"

	"github.com/glytehq/glyte-engine/pkg/profiler"
	"github.com/glytehq/glyte-engine/pkg/sqlutil"
)

// PromptConfig carries per-dashboard settings into prompt construction.
type PromptConfig struct {
	Title                 string
	ExcludedColumns       []string
	LeadGenMode           bool
	ClassificationVersion string
}

// BuildSystemPrompt renders the analyst system prompt: the table schema
// with per-column descriptions, common metrics, worked SQL examples, and
// the honesty rules that stop the model from answering with unrelated
// queries.
func BuildSystemPrompt(cfg PromptConfig, profile *profiler.TableProfile) string {
	visible := visibleColumns(cfg, profile)

	var schemaLines []string
	for _, col := range visible.Columns {
		schemaLines = append(schemaLines, fmt.Sprintf("  %s (%s): %s", col.Name, col.Type, describeColumn(col)))
	}

	prompt := fmt.Sprintf(`You are an expert data analyst assistant. You are honest, precise, and helpful.

Always respond in the same language as the user's message.

TABLE: %q
DATA: %s - %d rows, %d columns.

COLUMNS:
%s

METRICS:
%s

DECISION RULES (follow strictly):

1. HONEST FIRST: If the data CANNOT answer the question - say so clearly. Do NOT show an unrelated query pretending it answers the question.
   - Example: user asks about "people" but data only has aggregate metrics: return type "answer", explain what data is missing, and tell them exactly what CSV columns to upload (e.g., "Upload a contacts CSV with Name, Company, Email, Conference columns. Click '+ Add CSV' at the top.").

2. RELEVANT ALTERNATIVE: Only offer an alternative SQL query if it genuinely answers a closely related question. The alternative must be clearly labeled as different from what was asked.
   - Example: user asks "best ROI" and data has Revenue and Spend: this IS answerable, return SQL.
   - Example: user asks "who are my customers" and data only has campaign names: do NOT return a list of campaigns as if they were customers.

3. DIRECT ANSWER: When you CAN answer with SQL, return type "sql" with a brief insight explaining the result.

4. ACTIONABLE GUIDANCE: When returning type "answer", always include:
   - What this dataset actually contains (1 sentence)
   - What specific data/columns are missing
   - What to do: "Upload a CSV with [specific columns]. Use the '+ Add CSV' button."

SQL RULES:
- SQLite syntax only. Use only columns and tables from the schema above.
- For dates: strftime('%%Y-%%m', "col")
- Alias all computed columns with readable names.
- ROUND numeric results to appropriate precision.
- Only SELECT statements. No INSERT, UPDATE, DELETE, DROP, CREATE.
- NEVER silently drop a filter. If a filter column doesn't exist, use type "answer".
- No markdown code fences, no semicolons, no trailing text.

%s`,
		profile.TableName,
		cfg.Title, profile.RowCount, len(profile.Columns),
		strings.Join(schemaLines, "\n"),
		commonMetrics(visible),
		sqlExamples(visible))

	if cfg.LeadGenMode {
		prompt += BuildLeadGenContext(profile.TableName, classificationVersion(cfg))
	}
	return prompt
}

// BuildAgentPrompt is the leaner prompt for agentic mode, where the model
// discovers data through tools instead of worked examples.
func BuildAgentPrompt(cfg PromptConfig, profile *profiler.TableProfile) string {
	visible := visibleColumns(cfg, profile)

	var schemaLines []string
	for _, col := range visible.Columns {
		schemaLines = append(schemaLines, fmt.Sprintf("  %s (%s): %s", col.Name, col.Type, describeColumn(col)))
	}

	prompt := fmt.Sprintf(`You are an expert data analyst. You explore data using tools, then answer questions precisely.

Always respond in the same language as the user's message.

PRIMARY TABLE: %q
DATA: %s - %d rows, %d columns.

COLUMNS:
%s

WORKFLOW:
1. ALWAYS call sampleData first to see actual rows before writing any SQL.
2. Use getDistinctValues to check what categories/filter values exist.
3. Use runQuery to execute SQL and examine results.
4. If a query fails, read the error message and fix the query.
5. After getting results, present a clear answer with the key finding.

RULES:
- SQLite SQL syntax. Only SELECT statements.
- ROUND numeric results. Alias computed columns with readable names.
- If data CANNOT answer the question - say so clearly, explain what columns/data are missing, and suggest: "Upload a CSV with [specific columns] using the '+ Add CSV' button."
- Do NOT pretend unrelated data answers the question.

RESPONSE FORMAT:
- Keep your final answer concise: 2-3 sentences with the key insight.
- Do NOT include markdown tables in your response - the data is displayed separately as interactive charts and tables.
- Use plain text with line breaks. You may use **bold** for emphasis.
- Focus on the INSIGHT (what the data means), not repeating raw numbers.
- Example good response: "Tier 1 dominates the contact base at 88%%, with 5,593 contacts. The remaining tiers combined account for only 12%%, suggesting a strong focus on high-priority accounts."
- Example bad response: "| Tier | Count | ... |" (don't repeat the data as a table)`,
		profile.TableName,
		cfg.Title, profile.RowCount, len(profile.Columns),
		strings.Join(schemaLines, "\n"))

	if cfg.LeadGenMode {
		prompt += BuildLeadGenContext(profile.TableName, classificationVersion(cfg))
	}
	return prompt
}

// BuildLeadGenContext is appended to the system prompt when the dataset has
// ICP classifications, pointing the model at the enriched view.
func BuildLeadGenContext(tableName, version string) string {
	return fmt.Sprintf(`
LEAD GEN MODE ACTIVE (ICP Classification %s):
This dataset contains classified contacts with ICP tiers.

Available tiers:
- Tier 1: Decision Makers (CEO, CFO, COO, CRO, MD, President, Founder, Owner)
- Tier 1.5: Payment & Finance Owners (Head of Payments, Finance Director, Treasury)
- Tier 2: Influencers/Scouts (Operations Director, BD Director, Regional Director, generic Director/Head)
- Tier 3: VP/EVP/Deputy (VP, SVP, EVP, Deputy roles)
- iGaming: Casino/Betting Directors (context-dependent)
- Board: Low priority (Chairman, Board Member)

IMPORTANT: Use the %q view instead of %q for ICP-aware queries.
The enriched view includes an "icp_tier" column.

Example queries:
Q: How many ICP contacts?
SQL: SELECT COUNT(*) as icp_contacts FROM %[2]q WHERE icp_tier IS NOT NULL

Q: Tier breakdown
SQL: SELECT icp_tier, COUNT(*) as count FROM %[2]q WHERE icp_tier IS NOT NULL GROUP BY icp_tier ORDER BY count DESC

Q: ICP contacts with email
SQL: SELECT COUNT(*) as ready_for_outreach FROM %[2]q WHERE icp_tier IS NOT NULL AND email IS NOT NULL AND email != ''

Q: Top companies by Tier 1
SQL: SELECT "companyName", COUNT(*) as count FROM %[2]q WHERE icp_tier = 'Tier 1' GROUP BY "companyName" ORDER BY count DESC LIMIT 10
`, version, tableName+"_enriched", tableName)
}

// GenerateStarterQuestions proposes up to four opening questions derived
// from the profile's column mix.
func GenerateStarterQuestions(profile *profiler.TableProfile) []string {
	questions := []string{"How many total records?"}

	cats := profile.ColumnsOfType(profiler.TypeCategorical)
	nums := profile.ColumnsOfType(profiler.TypeNumeric)
	temporals := profile.ColumnsOfType(profiler.TypeTemporal)

	if len(cats) > 0 && len(nums) > 0 {
		questions = append(questions, fmt.Sprintf("%s by %s", nums[0].Name, cats[0].Name))
	}
	if len(temporals) > 0 && len(nums) > 0 {
		questions = append(questions, fmt.Sprintf("%s trend over time", nums[0].Name))
	}
	if len(cats) > 0 {
		questions = append(questions, fmt.Sprintf("Top %s values", cats[0].Name))
	}

	if len(questions) > 4 {
		questions = questions[:4]
	}
	return questions
}

func visibleColumns(cfg PromptConfig, profile *profiler.TableProfile) *profiler.TableProfile {
	if len(cfg.ExcludedColumns) == 0 {
		return profile
	}
	excluded := make(map[string]struct{}, len(cfg.ExcludedColumns))
	for _, name := range cfg.ExcludedColumns {
		excluded[name] = struct{}{}
	}
	filtered := *profile
	filtered.Columns = nil
	for _, col := range profile.Columns {
		if _, ok := excluded[col.Name]; !ok {
			filtered.Columns = append(filtered.Columns, col)
		}
	}
	return &filtered
}

func describeColumn(col profiler.ColumnProfile) string {
	switch col.Type {
	case profiler.TypeNumeric:
		mean := "N/A"
		if col.Mean != nil {
			mean = fmt.Sprintf("%.1f", *col.Mean)
		}
		return fmt.Sprintf("Numeric. Range: %v to %v, Mean: %s", col.Min, col.Max, mean)
	case profiler.TypeTemporal:
		return fmt.Sprintf("Date/time. Range: %v to %v", col.Min, col.Max)
	case profiler.TypeCategorical:
		return fmt.Sprintf("Categorical (%d unique). Sample: %s", col.DistinctCount, strings.Join(col.SampleValues, ", "))
	case profiler.TypeBoolean:
		return "Boolean"
	case profiler.TypeText:
		return fmt.Sprintf("Free text (%d unique)", col.DistinctCount)
	default:
		return fmt.Sprintf("%d unique values", col.DistinctCount)
	}
}

func commonMetrics(profile *profiler.TableProfile) string {
	var lines []string
	nums := profile.ColumnsOfType(profiler.TypeNumeric)
	cats := profile.ColumnsOfType(profiler.TypeCategorical)

	for _, col := range nums {
		q := sqlutil.QuoteIdent(col.Name)
		lines = append(lines, fmt.Sprintf("  Total %s: SUM(%s)", col.Name, q))
		lines = append(lines, fmt.Sprintf("  Average %s: ROUND(AVG(%s), 2)", col.Name, q))
	}

	if len(nums) > 0 {
		qNum := sqlutil.QuoteIdent(nums[0].Name)
		for _, cat := range cats {
			lines = append(lines, fmt.Sprintf("  %s by %s: SUM(%s) ... GROUP BY %s",
				nums[0].Name, cat.Name, qNum, sqlutil.QuoteIdent(cat.Name)))
		}
	}

	if len(lines) == 0 {
		return "  (no standard metrics - derive from columns above)"
	}
	return strings.Join(lines, "\n")
}

func sqlExamples(profile *profiler.TableProfile) string {
	type example struct {
		q   string
		sql string
	}
	qTable := sqlutil.QuoteIdent(profile.TableName)
	examples := []example{
		{"How many records?", fmt.Sprintf(`SELECT COUNT(*) as total_records FROM %s`, qTable)},
	}

	cats := profile.ColumnsOfType(profiler.TypeCategorical)
	nums := profile.ColumnsOfType(profiler.TypeNumeric)
	temporals := profile.ColumnsOfType(profiler.TypeTemporal)

	if len(cats) > 0 && len(nums) > 0 {
		cat, num := cats[0], nums[0]
		alias := "total_" + strings.ReplaceAll(strings.ToLower(num.Name), " ", "_")
		examples = append(examples, example{
			q: fmt.Sprintf("%s by %s", num.Name, cat.Name),
			sql: fmt.Sprintf(`SELECT %s, SUM(%s) as %s FROM %s GROUP BY %s ORDER BY %s DESC`,
				sqlutil.QuoteIdent(cat.Name), sqlutil.QuoteIdent(num.Name), alias,
				qTable, sqlutil.QuoteIdent(cat.Name), alias),
		})
	}

	if len(temporals) > 0 && len(nums) > 0 {
		examples = append(examples, example{
			q: fmt.Sprintf("%s over time", nums[0].Name),
			sql: fmt.Sprintf(`SELECT strftime('%%Y-%%m', %s) as month, SUM(%s) as total FROM %s GROUP BY month ORDER BY month`,
				sqlutil.QuoteIdent(temporals[0].Name), sqlutil.QuoteIdent(nums[0].Name), qTable),
		})
	}

	if len(cats) > 0 {
		examples = append(examples, example{
			q: fmt.Sprintf("Top 5 %s", cats[0].Name),
			sql: fmt.Sprintf(`SELECT %s, COUNT(*) as count FROM %s GROUP BY %s ORDER BY count DESC LIMIT 5`,
				sqlutil.QuoteIdent(cats[0].Name), qTable, sqlutil.QuoteIdent(cats[0].Name)),
		})
	}

	var parts []string
	for _, e := range examples {
		parts = append(parts, fmt.Sprintf("Q: %s\nSQL: %s", e.q, e.sql))
	}
	return strings.Join(parts, "\n\n")
}

func classificationVersion(cfg PromptConfig) string {
	if cfg.ClassificationVersion == "" {
		return "1.0"
	}
	return cfg.ClassificationVersion
}
