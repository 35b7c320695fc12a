package profiler

import (
	"regexp"
	"strings"
)

var (
	temporalNamePattern = regexp.MustCompile(`(?i)date|time|month|year|created|updated`)
	textNamePattern     = regexp.MustCompile(`(?i)url|link|email|website|domain`)
)

// ClassifyColumn assigns a semantic type from the declared data type, falling
// back to the column name only when the declared type is a generic string.
// Row data is never consulted, so classification is deterministic for a given
// schema.
func ClassifyColumn(dataType, name string) ColumnType {
	dtype := strings.ToUpper(dataType)

	// Stage A: declared type
	if strings.Contains(dtype, "DATE") || strings.Contains(dtype, "TIMESTAMP") || strings.Contains(dtype, "TIME") {
		return TypeTemporal
	}
	if strings.Contains(dtype, "INT") ||
		strings.Contains(dtype, "FLOAT") ||
		strings.Contains(dtype, "DOUBLE") ||
		strings.Contains(dtype, "DECIMAL") ||
		strings.Contains(dtype, "NUMERIC") ||
		strings.Contains(dtype, "REAL") {
		return TypeNumeric
	}
	if strings.Contains(dtype, "BOOL") {
		return TypeBoolean
	}

	// Stage B: generic string type, classify by name
	if temporalNamePattern.MatchString(name) {
		return TypeTemporal
	}
	if textNamePattern.MatchString(name) {
		return TypeText
	}
	return TypeCategorical
}
