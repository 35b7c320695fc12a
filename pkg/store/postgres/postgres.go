// Package postgres implements a read-only store over a live PostgreSQL
// database, for pointing the engine at an existing warehouse instead of
// ingested CSV files.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/apperrors"
	"github.com/glytehq/glyte-engine/pkg/config"
	"github.com/glytehq/glyte-engine/pkg/logging"
	"github.com/glytehq/glyte-engine/pkg/sqlutil"
	"github.com/glytehq/glyte-engine/pkg/store"
)

// Store is a pgx-backed implementation of store.Store. Ingestion is not
// supported; tables are whatever the connected database already holds.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

var _ store.Store = (*Store)(nil)

// New connects to PostgreSQL using the given configuration.
func New(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("postgres-store")

	connStr := buildConnectionString(cfg)
	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("connected to postgres",
		zap.String("conn", logging.SanitizeConnectionString(connStr)))

	return &Store{pool: pool, logger: logger}, nil
}

func buildConnectionString(cfg config.PostgresConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Query runs a read query and returns rows as field-keyed records.
func (s *Store) Query(ctx context.Context, sqlQuery string) ([]map[string]any, error) {
	rows, err := s.pool.Query(ctx, sqlQuery)
	if err != nil {
		s.logger.Debug("query failed",
			zap.String("sql", logging.TruncateQuery(sqlQuery)),
			zap.Error(err))
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}
		record := make(map[string]any, len(fields))
		for i, fd := range fields {
			record[fd.Name] = values[i]
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// Columns returns column metadata for a table in the public schema, ordered
// by ordinal position.
func (s *Store) Columns(ctx context.Context, table string) ([]store.ColumnMeta, error) {
	const query = `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position`

	rows, err := s.pool.Query(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("query column metadata: %w", err)
	}
	defer rows.Close()

	var cols []store.ColumnMeta
	for rows.Next() {
		var c store.ColumnMeta
		if err := rows.Scan(&c.Name, &c.DataType); err != nil {
			return nil, fmt.Errorf("scan column metadata: %w", err)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate column metadata: %w", err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTableNotFound, table)
	}
	return cols, nil
}

// Tables lists base tables in the public schema.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	const query = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_type = 'BASE TABLE'
		  AND table_name NOT LIKE '\_glyte\_%'
		ORDER BY table_name`

	rows, err := s.pool.Query(ctx, query)
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
	if err := s.pool.QueryRow(ctx, q).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return count, nil
}

// Ingest is not supported; the postgres store is read-only.
func (s *Store) Ingest(_ context.Context, _, _ string) (*store.IngestResult, error) {
	return nil, fmt.Errorf("%w: csv ingest requires the sqlite store", apperrors.ErrUnsupported)
}
