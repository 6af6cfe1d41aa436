// Package clickhouse provides a ClickHouse-backed table source
// Catalog and order exports kept in ClickHouse are read as plain string tables
package clickhouse

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/shopspring/decimal"

	"vendortally/decision/table"
)

// Config holds ClickHouse connection configuration
type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Debug    bool
}

// DefaultConfig returns default development configuration
func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     9000,
		Database: "vendortally",
		Username: "default",
		Password: "",
		Debug:    false,
	}
}

// Store reads tables from ClickHouse
type Store struct {
	conn driver.Conn
	cfg  *Config
}

// NewStore opens a ClickHouse connection
func NewStore(cfg *Config) (*Store, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Debug: cfg.Debug,
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	return &Store{conn: conn, cfg: cfg}, nil
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

// LoadTable reads every row of a table, converting each cell to its string form
func (s *Store) LoadTable(ctx context.Context, name string) (*table.Table, error) {
	query := fmt.Sprintf("SELECT * FROM %s", quoteIdentifier(name))
	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()

	columns := rows.Columns()
	types := rows.ColumnTypes()

	t := &table.Table{
		Name:    name,
		Columns: columns,
		Rows:    make([]table.Row, 0),
	}

	for rows.Next() {
		dest := make([]any, len(types))
		for i, ct := range types {
			dest[i] = reflect.New(ct.ScanType()).Interface()
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", name, err)
		}

		row := make(table.Row, len(columns))
		for i, col := range columns {
			row[col] = cellString(reflect.ValueOf(dest[i]).Elem().Interface())
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return t, nil
}

// Source returns a table.Source reading the named table
func (s *Store) Source(name string) table.Source {
	return &tableSource{store: s, name: name}
}

type tableSource struct {
	store *Store
	name  string
}

func (ts *tableSource) Describe() string {
	return "clickhouse:" + ts.name
}

func (ts *tableSource) Load(ctx context.Context) (*table.Table, error) {
	return ts.store.LoadTable(ctx, ts.name)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// quoteIdentifier backquotes each part of a possibly database-qualified name
func quoteIdentifier(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = "`" + strings.ReplaceAll(p, "`", "\\`") + "`"
	}
	return strings.Join(parts, ".")
}

// cellString renders a scanned value. Nullable columns scan into pointers;
// NULL becomes the empty string like a blank CSV cell.
func cellString(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		v = rv.Elem().Interface()
	}

	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case decimal.Decimal:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}
