package store

import "context"

// Mock is a configurable Store for testing. Set the function fields to
// control behavior; unset fields return zero values and nil errors.
type Mock struct {
	QueryFunc    func(ctx context.Context, sqlQuery string) ([]map[string]any, error)
	ColumnsFunc  func(ctx context.Context, table string) ([]ColumnMeta, error)
	TablesFunc   func(ctx context.Context) ([]string, error)
	RowCountFunc func(ctx context.Context, table string) (int, error)
	IngestFunc   func(ctx context.Context, path, table string) (*IngestResult, error)

	// Call tracking for verification
	QueryCalls   int
	Queries      []string
	IngestCalls  int
	ColumnsCalls int
}

// Ensure Mock implements Store at compile time.
var _ Store = (*Mock)(nil)

// Query implements Store.
func (m *Mock) Query(ctx context.Context, sqlQuery string) ([]map[string]any, error) {
	m.QueryCalls++
	m.Queries = append(m.Queries, sqlQuery)
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sqlQuery)
	}
	return nil, nil
}

// Columns implements Store.
func (m *Mock) Columns(ctx context.Context, table string) ([]ColumnMeta, error) {
	m.ColumnsCalls++
	if m.ColumnsFunc != nil {
		return m.ColumnsFunc(ctx, table)
	}
	return nil, nil
}

// Tables implements Store.
func (m *Mock) Tables(ctx context.Context) ([]string, error) {
	if m.TablesFunc != nil {
		return m.TablesFunc(ctx)
	}
	return nil, nil
}

// RowCount implements Store.
func (m *Mock) RowCount(ctx context.Context, table string) (int, error) {
	if m.RowCountFunc != nil {
		return m.RowCountFunc(ctx, table)
	}
	return 0, nil
}

// Ingest implements Store.
func (m *Mock) Ingest(ctx context.Context, path, table string) (*IngestResult, error) {
	m.IngestCalls++
	if m.IngestFunc != nil {
		return m.IngestFunc(ctx, path, table)
	}
	return &IngestResult{}, nil
}

// Close implements Store.
func (m *Mock) Close() error { return nil }
