package sqlutil

import (
	"errors"
	"testing"
)

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "my_table", `"my_table"`},
		{"embedded quote", `my"table`, `"my""table"`},
		{"spaces", "First Name", `"First Name"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuoteIdent(tt.input); got != tt.expected {
				t.Errorf("QuoteIdent(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidateSelect(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"plain select", "SELECT 1", "SELECT 1", nil},
		{"trailing semicolon stripped", "SELECT 1;", "SELECT 1", nil},
		{"with cte", "WITH t AS (SELECT 1) SELECT * FROM t", "WITH t AS (SELECT 1) SELECT * FROM t", nil},
		{"lowercase", "select * from orders", "select * from orders", nil},
		{"empty", "   ", "", ErrEmptyQuery},
		{"multiple statements", "SELECT 1; DROP TABLE users", "", ErrMultipleStatements},
		{"insert rejected", "INSERT INTO t VALUES (1)", "", ErrNotSelect},
		{"drop rejected", "DROP TABLE users", "", ErrNotSelect},
		{"semicolon inside literal ok", "SELECT * FROM t WHERE note = 'a;b'", "SELECT * FROM t WHERE note = 'a;b'", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateSelect(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateSelect(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ValidateSelect(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCheckInjection(t *testing.T) {
	if err := CheckInjection("customer_id", "12345"); err != nil {
		t.Errorf("clean value flagged: %v", err)
	}
	if err := CheckInjection("search", "'; DROP TABLE users--"); err == nil {
		t.Error("injection attempt not flagged")
	}
}
