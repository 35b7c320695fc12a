package handlers

import (
	"net/http"
	"regexp"

	"go.uber.org/zap"
)

// tableNamePattern matches identifiers the engine accepts as table names.
// Quoting happens downstream; rejecting everything else up front keeps
// crafted path segments out of generated SQL.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseTableName extracts and validates the table name from the request path.
// Returns the name and true on success, or "" and false after writing an
// error response.
// Expects path parameter: table
func ParseTableName(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (string, bool) {
	name := r.PathValue("table")
	if !tableNamePattern.MatchString(name) {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_table_name", "Invalid table name"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return "", false
	}
	return name, true
}
