package sqlutil

import (
	"errors"
	"fmt"
	"strings"

	libinjection "github.com/corazawaf/libinjection-go"
)

var (
	// ErrMultipleStatements indicates the query contains multiple SQL statements.
	ErrMultipleStatements = errors.New("multiple SQL statements not allowed")

	// ErrNotSelect indicates the query is not a plain SELECT (or WITH ... SELECT).
	ErrNotSelect = errors.New("only SELECT statements are permitted")

	// ErrEmptyQuery indicates an empty or whitespace-only query.
	ErrEmptyQuery = errors.New("empty SQL query")
)

// ValidateSelect checks that a query is a single SELECT statement and returns
// the normalized form (trailing semicolon stripped). Queries produced by the
// analyst layer or submitted through the chat endpoints pass through here
// before reaching the store.
func ValidateSelect(sqlQuery string) (string, error) {
	normalized := stripTrailingSemicolon(strings.TrimSpace(sqlQuery))
	if normalized == "" {
		return "", ErrEmptyQuery
	}

	if hasSemicolonOutsideStrings(normalized) {
		return "", ErrMultipleStatements
	}

	upper := strings.ToUpper(normalized)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return "", ErrNotSelect
	}

	return normalized, nil
}

// CheckInjection screens a user-supplied value for SQL injection patterns
// using libinjection. Returns an error naming the fingerprint when a pattern
// is detected, nil otherwise. Only string filter values need screening;
// identifiers go through QuoteIdent instead.
func CheckInjection(name, value string) error {
	isSQLi, fingerprint := libinjection.IsSQLi(value)
	if isSQLi {
		return fmt.Errorf("value for %q matched injection fingerprint %s", name, string(fingerprint))
	}
	return nil
}

// hasSemicolonOutsideStrings returns true if the SQL contains a semicolon
// outside of string literals, which after normalization means multiple
// statements.
func hasSemicolonOutsideStrings(sqlQuery string) bool {
	const (
		stateNormal = iota
		stateSingleQuote
		stateDoubleQuote
	)

	state := stateNormal
	prevChar := rune(0)

	for _, char := range sqlQuery {
		switch state {
		case stateNormal:
			switch char {
			case ';':
				return true
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			}
		case stateSingleQuote:
			// Handles both backslash escape (\') and SQL standard escape ('').
			// A doubled quote exits and immediately re-enters the string state.
			if char == '\'' && prevChar != '\\' {
				state = stateNormal
			}
		case stateDoubleQuote:
			if char == '"' && prevChar != '\\' {
				state = stateNormal
			}
		}
		prevChar = char
	}

	return false
}

func stripTrailingSemicolon(sqlQuery string) string {
	sqlQuery = strings.TrimRight(sqlQuery, " \t\n\r")
	if strings.HasSuffix(sqlQuery, ";") {
		sqlQuery = strings.TrimRight(strings.TrimSuffix(sqlQuery, ";"), " \t\n\r")
	}
	return sqlQuery
}
