// Package profiler computes per-column semantic types and statistics for
// stored tables. Profiles drive template selection, chart recommendation, and
// relationship detection.
package profiler

// ColumnType is the semantic classification of a column. The five types are
// mutually exclusive and assigned once per profiling pass.
type ColumnType string

const (
	TypeTemporal    ColumnType = "temporal"
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeText        ColumnType = "text"
	TypeBoolean     ColumnType = "boolean"
)

// ColumnProfile holds the semantic type and statistics of one table column.
// Min and Max are float64 for numeric columns and string for temporal ones;
// Mean is present only for numeric columns. Profiles are immutable once
// returned.
type ColumnProfile struct {
	Name          string     `json:"name"`
	Type          ColumnType `json:"type"`
	DistinctCount int        `json:"distinctCount"`
	NullCount     int        `json:"nullCount"`
	TotalCount    int        `json:"totalCount"`
	Min           any        `json:"min,omitempty"`
	Max           any        `json:"max,omitempty"`
	Mean          *float64   `json:"mean,omitempty"`
	SampleValues  []string   `json:"sampleValues"`

	// StatsError records a per-column statistics failure. When set, the
	// counts are zero because they could not be computed, not because the
	// column is empty. Downstream consumers use this to distinguish "no
	// signal" from "error computing signal".
	StatsError string `json:"statsError,omitempty"`
}

// TableProfile is the profile of one table. Columns preserves the underlying
// table's physical column order.
type TableProfile struct {
	TableName string          `json:"tableName"`
	RowCount  int             `json:"rowCount"`
	Columns   []ColumnProfile `json:"columns"`
}

// ColumnsOfType returns the columns with the given semantic type, in table
// order.
func (p *TableProfile) ColumnsOfType(t ColumnType) []ColumnProfile {
	var out []ColumnProfile
	for _, c := range p.Columns {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// Column returns the profile for a named column, or nil if absent.
func (p *TableProfile) Column(name string) *ColumnProfile {
	for i := range p.Columns {
		if p.Columns[i].Name == name {
			return &p.Columns[i]
		}
	}
	return nil
}
