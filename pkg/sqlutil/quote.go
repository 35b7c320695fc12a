// Package sqlutil provides SQL quoting and validation utilities shared by the
// profiler, relationship detector, and analyst guardrails.
package sqlutil

import "strings"

// QuoteIdent quotes a SQL identifier (table or column name), escaping embedded
// double quotes by doubling them. Works for both SQLite and PostgreSQL.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
