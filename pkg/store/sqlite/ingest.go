package sqlite

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/sqlutil"
	"github.com/glytehq/glyte-engine/pkg/store"
)

// sniffRows is how many data rows are examined to infer column types.
const sniffRows = 1000

// Ingest loads a CSV file into a table, replacing any existing table of the
// same name. Column names come from the header row; column types are sniffed
// from a sample of the data (INTEGER, REAL, or TEXT).
func (s *Store) Ingest(ctx context.Context, path, table string) (*store.IngestResult, error) {
	resolved, err := s.safePath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		records = append(records, rec)
	}

	types := sniffColumnTypes(columns, records)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin ingest transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	quoted := sqlutil.QuoteIdent(table)
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoted); err != nil {
		return nil, fmt.Errorf("drop existing table: %w", err)
	}

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = sqlutil.QuoteIdent(col) + " " + types[i]
	}
	createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", quoted, strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}

	placeholders := strings.TrimRight(strings.Repeat("?,", len(columns)), ",")
	insertSQL := fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoted, placeholders)
	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		args := make([]any, len(columns))
		for i := range columns {
			if i < len(rec) {
				args[i] = coerceValue(rec[i], types[i])
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return nil, fmt.Errorf("insert row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit ingest: %w", err)
	}

	s.trackIngest(ctx, table, len(records), len(columns), resolved)

	s.logger.Info("ingested csv",
		zap.String("table", table),
		zap.Int("rows", len(records)),
		zap.Int("columns", len(columns)))

	return &store.IngestResult{Rows: len(records), Columns: columns}, nil
}

// sniffColumnTypes infers a SQLite type per column from a sample of records.
// A column is INTEGER if every non-empty sampled value parses as an integer,
// REAL if every non-empty value parses as a float, TEXT otherwise.
func sniffColumnTypes(columns []string, records [][]string) []string {
	types := make([]string, len(columns))
	for i := range columns {
		allInt := true
		allFloat := true
		seen := false

		for r := 0; r < len(records) && r < sniffRows; r++ {
			if i >= len(records[r]) {
				continue
			}
			v := strings.TrimSpace(records[r][i])
			if v == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				allInt = false
			}
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				allFloat = false
			}
			if !allInt && !allFloat {
				break
			}
		}

		switch {
		case seen && allInt:
			types[i] = "INTEGER"
		case seen && allFloat:
			types[i] = "REAL"
		default:
			types[i] = "TEXT"
		}
	}
	return types
}

// coerceValue converts a CSV cell into the typed value matching the sniffed
// column type. Empty cells become NULL.
func coerceValue(raw, colType string) any {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	switch colType {
	case "INTEGER":
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	case "REAL":
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return v
}

// trackIngest writes a _glyte_versions row for an ingested table.
func (s *Store) trackIngest(ctx context.Context, table string, rows, cols int, path string) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO _glyte_versions (id, table_name, version, row_count, column_count, source_path)
		VALUES (?, ?, 1, ?, ?, ?)`,
		uuid.NewString(), table, rows, cols, path)
	if err != nil {
		// Metadata tables may be absent when migrations were skipped.
		s.logger.Debug("version tracking skipped", zap.Error(err))
	}
}
