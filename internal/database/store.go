package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Fields is a set of column/value pairs used for inserts, updates
// and equality filters. Values are always passed as bound parameters,
// never formatted into the query text.
type Fields map[string]interface{}

// Row is a single result row keyed by column name
type Row map[string]interface{}

// Int64 reads an integer column, tolerating the concrete types
// different drivers return for numeric values.
func (r Row) Int64(column string) int64 {
	switch v := r[column].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case []byte:
		var n int64
		fmt.Sscanf(string(v), "%d", &n)
		return n
	}
	return 0
}

// String reads a text column
func (r Row) String(column string) string {
	switch v := r[column].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

// Store provides generic row-level access to the database. Queries are
// assembled from structured column/value pairs with driver-appropriate
// placeholders; filters are equality-only conjunctions.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a new store over an established connection
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection for repositories that need
// queries beyond the generic row operations
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Insert adds a new row and returns its generated id
func (s *Store) Insert(ctx context.Context, table string, data Fields) (int64, error) {
	if err := checkTableName(table); err != nil {
		return 0, err
	}

	columns := sortedKeys(data)
	args := make([]interface{}, 0, len(columns))
	placeholders := make([]string, 0, len(columns))
	for _, column := range columns {
		args = append(args, data[column])
		placeholders = append(placeholders, "?")
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	if s.db.DriverName() == "postgres" {
		// PostgreSQL has no LastInsertId
		var id int64
		query = s.db.Rebind(query + " RETURNING id")
		if err := s.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to insert into %s: %v", table, err)
		}
		return id, nil
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %v", table, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %v", err)
	}
	return id, nil
}

// SelectOne returns a single row matching the filter, or nil if no row matches.
// An empty columns slice selects every column.
func (s *Store) SelectOne(ctx context.Context, table string, columns []string, where Fields) (Row, error) {
	query, args, err := s.buildSelect(table, columns, where)
	if err != nil {
		return nil, err
	}

	row := Row{}
	if err := s.db.QueryRowxContext(ctx, query, args...).MapScan(row); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select from %s: %v", table, err)
	}
	return row, nil
}

// SelectAll returns every row matching the filter
func (s *Store) SelectAll(ctx context.Context, table string, columns []string, where Fields) ([]Row, error) {
	query, args, err := s.buildSelect(table, columns, where)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %v", table, err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		row := Row{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("failed to scan row from %s: %v", table, err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// Update modifies every row matching the filter
func (s *Store) Update(ctx context.Context, table string, data, where Fields) error {
	if err := checkTableName(table); err != nil {
		return err
	}

	var args []interface{}
	assignments := make([]string, 0, len(data))
	for _, column := range sortedKeys(data) {
		assignments = append(assignments, column+" = ?")
		args = append(args, data[column])
	}

	query := fmt.Sprintf("UPDATE %s SET %s", table, strings.Join(assignments, ", "))
	if len(where) > 0 {
		clause, whereArgs := buildWhere(where)
		query += " WHERE " + clause
		args = append(args, whereArgs...)
	}

	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to update %s: %v", table, err)
	}
	return nil
}

func (s *Store) buildSelect(table string, columns []string, where Fields) (string, []interface{}, error) {
	if err := checkTableName(table); err != nil {
		return "", nil, err
	}

	selected := "*"
	if len(columns) > 0 {
		selected = strings.Join(columns, ", ")
	}

	query := fmt.Sprintf("SELECT %s FROM %s", selected, table)
	var args []interface{}
	if len(where) > 0 {
		clause, whereArgs := buildWhere(where)
		query += " WHERE " + clause
		args = whereArgs
	}
	return s.db.Rebind(query), args, nil
}

func buildWhere(where Fields) (string, []interface{}) {
	conditions := make([]string, 0, len(where))
	args := make([]interface{}, 0, len(where))
	for _, column := range sortedKeys(where) {
		conditions = append(conditions, column+" = ?")
		args = append(args, where[column])
	}
	return strings.Join(conditions, " AND "), args
}

func sortedKeys(f Fields) []string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// checkTableName rejects anything that is not a plain identifier
func checkTableName(table string) error {
	if table == "" {
		return fmt.Errorf("empty table name")
	}
	for _, r := range table {
		if r != '_' && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return fmt.Errorf("invalid table name: %q", table)
		}
	}
	return nil
}
