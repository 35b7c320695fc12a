// Package store defines the storage collaborator contract the analytical core
// depends on. Implementations live in the sqlite and postgres subpackages.
package store

import "context"

// ColumnMeta describes one column of a stored table, in physical order.
type ColumnMeta struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
}

// IngestResult reports the outcome of loading a file into a table.
type IngestResult struct {
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

// Store is the SQL-queryable storage engine the profiler, relationship
// detector, and chart layer read from. Implementations own their connections
// and must be closed when done.
type Store interface {
	// Query runs a read query and returns rows as field-keyed records.
	// Numeric and date coercion is the implementation's responsibility.
	Query(ctx context.Context, sqlQuery string) ([]map[string]any, error)

	// Columns returns column metadata for a table, ordered by physical
	// position. Returns apperrors.ErrTableNotFound for unknown tables.
	Columns(ctx context.Context, table string) ([]ColumnMeta, error)

	// Tables lists user tables, excluding internal metadata tables.
	Tables(ctx context.Context) ([]string, error)

	// RowCount returns the number of rows in a table.
	RowCount(ctx context.Context, table string) (int, error)

	// Ingest loads a delimited file into a queryable table, replacing any
	// existing table of the same name. Implementations that are read-only
	// return apperrors.ErrUnsupported.
	Ingest(ctx context.Context, path, table string) (*IngestResult, error)

	// Close releases the underlying connections.
	Close() error
}
