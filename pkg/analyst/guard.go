package analyst

import (
	"fmt"
	"strings"

	"github.com/glytehq/glyte-engine/pkg/sqlutil"
)

// GuardSQL cleans and validates model-generated SQL before execution. It
// strips markdown fences and enforces a single read-only statement.
func GuardSQL(raw string) (string, error) {
	cleaned := stripFences(raw)

	validated, err := sqlutil.ValidateSelect(cleaned)
	if err != nil {
		return "", fmt.Errorf("generated SQL rejected: %w", err)
	}

	return validated, nil
}

// stripFences removes markdown code fences the model sometimes wraps SQL in
// despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```sql")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
