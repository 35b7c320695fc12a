// Package sqlite implements the store contract on an embedded SQLite
// database, including CSV ingestion for uploaded files.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/apperrors"
	"github.com/glytehq/glyte-engine/pkg/logging"
	"github.com/glytehq/glyte-engine/pkg/sqlutil"
	"github.com/glytehq/glyte-engine/pkg/store"
)

// Config holds settings for opening a SQLite-backed store.
type Config struct {
	// Path is the database file location. The parent directory is created
	// if missing.
	Path string

	// DataDirs are the directories CSV files may be ingested from.
	DataDirs []string

	// MigrationsPath is where the metadata schema migrations live.
	MigrationsPath string
}

// Store is a SQLite-backed implementation of store.Store.
type Store struct {
	db       *sql.DB
	dataDirs []string
	logger   *zap.Logger
}

// Ensure Store implements the contract at compile time.
var _ store.Store = (*Store)(nil)

// New opens (creating if necessary) the SQLite database and applies the
// metadata schema migrations.
func New(cfg Config, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("sqlite-store")

	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if cfg.MigrationsPath != "" {
		if err := RunMigrations(db, cfg.MigrationsPath, logger); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply metadata migrations: %w", err)
		}
	}

	return &Store{db: db, dataDirs: cfg.DataDirs, logger: logger}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Query runs a read query and returns rows as field-keyed records.
func (s *Store) Query(ctx context.Context, sqlQuery string) ([]map[string]any, error) {
	rows, err := s.db.QueryContext(ctx, sqlQuery)
	if err != nil {
		s.logger.Debug("query failed",
			zap.String("sql", logging.TruncateQuery(sqlQuery)),
			zap.Error(err))
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read result columns: %w", err)
	}

	var out []map[string]any
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		record := make(map[string]any, len(cols))
		for i, col := range cols {
			record[col] = normalizeValue(values[i])
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// Columns returns column metadata for a table, ordered by physical position.
func (s *Store) Columns(ctx context.Context, table string) ([]store.ColumnMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, type FROM pragma_table_info(?) ORDER BY cid`, table)
	if err != nil {
		return nil, fmt.Errorf("read table info: %w", err)
	}
	defer rows.Close()

	var cols []store.ColumnMeta
	for rows.Next() {
		var c store.ColumnMeta
		if err := rows.Scan(&c.Name, &c.DataType); err != nil {
			return nil, fmt.Errorf("scan column info: %w", err)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate column info: %w", err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTableNotFound, table)
	}
	return cols, nil
}

// Tables lists user tables, excluding SQLite internals, the migration ledger,
// and the engine's own _glyte_ metadata tables.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table'
		  AND name NOT LIKE 'sqlite_%'
		  AND name NOT LIKE '\_glyte\_%' ESCAPE '\'
		  AND name != 'schema_migrations'
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// RowCount returns the number of rows in a table.
func (s *Store) RowCount(ctx context.Context, table string) (int, error) {
	var count int
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", sqlutil.QuoteIdent(table))
	if err := s.db.QueryRowContext(ctx, q).Scan(&count); err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return 0, fmt.Errorf("%w: %s", apperrors.ErrTableNotFound, table)
		}
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return count, nil
}

// normalizeValue converts driver types into plain JSON-friendly values.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	default:
		return v
	}
}

// safePath validates that a file path resolves inside one of the allowed data
// directories, guarding against traversal via crafted upload paths.
func (s *Store) safePath(path string) (string, error) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	for _, dir := range s.dataDirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if resolved == absDir || strings.HasPrefix(resolved, absDir+string(filepath.Separator)) {
			return resolved, nil
		}
	}
	return "", fmt.Errorf("%w: %s", apperrors.ErrPathNotAllowed, path)
}
