package logging

import (
	"strings"
	"testing"
)

func TestSanitizeConnectionString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		leak  string
	}{
		{"keyword password", "host=db;user=glyte;password=hunter2", "hunter2"},
		{"url credentials", "postgres://glyte:hunter2@db:5432/glyte", "hunter2"},
		{"api key", "endpoint=https://api.example.com&api_key=sk12345678abcdef", "sk12345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeConnectionString(tt.input)
			if strings.Contains(got, tt.leak) {
				t.Errorf("sanitized string still contains %q: %s", tt.leak, got)
			}
			if !strings.Contains(got, RedactedText) {
				t.Errorf("expected redaction marker in %s", got)
			}
		})
	}

	if got := SanitizeConnectionString(""); got != "" {
		t.Errorf("empty input should stay empty, got %q", got)
	}
}

func TestTruncateQuery(t *testing.T) {
	short := "SELECT 1"
	if got := TruncateQuery(short); got != short {
		t.Errorf("short query modified: %q", got)
	}

	long := strings.Repeat("SELECT ", 100)
	got := TruncateQuery(long)
	if len(got) != MaxQueryLogLength+3 {
		t.Errorf("truncated length = %d, want %d", len(got), MaxQueryLogLength+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("truncated query missing ellipsis")
	}
}
