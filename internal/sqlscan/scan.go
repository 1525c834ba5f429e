// Package sqlscan reads database rows into introspected beans. Columns are
// matched to constructor arguments and properties by name or by their
// Column annotation.
package sqlscan

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/conduit-lang/beans/internal/binding"
	"github.com/conduit-lang/beans/runtime/introspection"
)

// Annotations understood by the scanner
const (
	ColumnAnnotation = "Column"
	TableAnnotation  = "Table"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Scanner binds rows into beans.
type Scanner struct {
	binder *binding.Binder
}

// New creates a scanner. A nil binder binds leniently over the default
// registry so that NULL columns do not fail construction.
func New(binder *binding.Binder) *Scanner {
	if binder == nil {
		binder = &binding.Binder{IgnoreUnknown: true}
	}
	return &Scanner{binder: binder}
}

// ScanRecords scans multiple rows into a slice of maps
func ScanRecords(rows *sql.Rows) ([]map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		results = append(results, record(columns, values))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// scanRowWithColumns scans a single row with known column order
func scanRowWithColumns(row *sql.Row, columns []string) (map[string]any, error) {
	values := make([]any, len(columns))
	valuePtrs := make([]any, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	if err := row.Scan(valuePtrs...); err != nil {
		return nil, err
	}

	return record(columns, values), nil
}

// record builds the column map. Drivers return text as []byte.
func record(columns []string, values []any) map[string]any {
	rec := make(map[string]any, len(columns))
	for i, col := range columns {
		if b, ok := values[i].([]byte); ok {
			rec[col] = string(b)
			continue
		}
		rec[col] = values[i]
	}
	return rec
}

// ScanAll binds every row into a bean of in's type
func (s *Scanner) ScanAll(rows *sql.Rows, in *introspection.Introspection) ([]any, error) {
	records, err := ScanRecords(rows)
	if err != nil {
		return nil, err
	}

	beans := make([]any, 0, len(records))
	for i, rec := range records {
		bean, err := s.binder.Bind(in, rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		beans = append(beans, bean)
	}
	return beans, nil
}

// ScanOne binds a single row whose columns are known
func (s *Scanner) ScanOne(row *sql.Row, columns []string, in *introspection.Introspection) (any, error) {
	rec, err := scanRowWithColumns(row, columns)
	if err != nil {
		return nil, err
	}
	return s.binder.Bind(in, rec)
}

// Columns returns the column names of in's Column-annotated properties in
// index order
func Columns(in *introspection.Introspection) []string {
	var columns []string
	for p := range in.IndexedProperties(ColumnAnnotation).All() {
		if column, ok := p.AnnotationMetadata().StringValue(ColumnAnnotation, introspection.ValueMember); ok {
			columns = append(columns, column)
		}
	}
	return columns
}

// Table returns the table named by the type's Table annotation
func Table(in *introspection.Introspection) (string, bool) {
	return in.AnnotationMetadata().StringValue(TableAnnotation, introspection.ValueMember)
}

// SelectQuery builds "SELECT <columns> FROM <table>" with an optional
// WHERE clause
func SelectQuery(in *introspection.Introspection, where string) (string, error) {
	table, ok := Table(in)
	if !ok {
		return "", fmt.Errorf("%s has no %s annotation", in.Name(), TableAnnotation)
	}
	columns := Columns(in)
	if len(columns) == 0 {
		return "", fmt.Errorf("%s has no %s properties", in.Name(), ColumnAnnotation)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(table)
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}
	return sb.String(), nil
}

// QueryAll runs a select over in's table and binds every row
func (s *Scanner) QueryAll(ctx context.Context, db Querier, in *introspection.Introspection, where string, args ...any) ([]any, error) {
	query, err := SelectQuery(in, where)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", in.Name(), err)
	}
	defer rows.Close()

	return s.ScanAll(rows, in)
}

// QueryOne runs a select over in's table and binds the first row. It
// returns sql.ErrNoRows when nothing matches.
func (s *Scanner) QueryOne(ctx context.Context, db Querier, in *introspection.Introspection, where string, args ...any) (any, error) {
	query, err := SelectQuery(in, where)
	if err != nil {
		return nil, err
	}
	return s.ScanOne(db.QueryRowContext(ctx, query, args...), Columns(in), in)
}
