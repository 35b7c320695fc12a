package profiler

import "testing"

func TestClassifyColumn(t *testing.T) {
	tests := []struct {
		name     string
		dataType string
		colName  string
		want     ColumnType
	}{
		{"declared date", "DATE", "anything", TypeTemporal},
		{"declared timestamp", "TIMESTAMP", "x", TypeTemporal},
		{"declared timestamptz lowercase", "timestamp with time zone", "x", TypeTemporal},
		{"declared integer", "INTEGER", "leads", TypeNumeric},
		{"declared real", "REAL", "spend", TypeNumeric},
		{"declared double precision", "double precision", "amount", TypeNumeric},
		{"declared decimal", "DECIMAL(10,2)", "price", TypeNumeric},
		{"declared boolean", "BOOLEAN", "active", TypeBoolean},
		{"name says date", "TEXT", "created_date", TypeTemporal},
		{"name says created", "VARCHAR", "createdAt", TypeTemporal},
		{"name says year", "TEXT", "fiscal_year", TypeTemporal},
		{"name says email", "TEXT", "email", TypeText},
		{"name says url", "TEXT", "profile_url", TypeText},
		{"name says website", "VARCHAR", "company_website", TypeText},
		{"plain text falls back to categorical", "TEXT", "campaign", TypeCategorical},
		{"unknown type falls back to categorical", "BLOB", "payload", TypeCategorical},
		{"declared type wins over name", "INTEGER", "year", TypeNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyColumn(tt.dataType, tt.colName)
			if got != tt.want {
				t.Errorf("ClassifyColumn(%q, %q) = %q, want %q", tt.dataType, tt.colName, got, tt.want)
			}
		})
	}
}
