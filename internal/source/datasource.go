// Package source pulls result rows out of SQL databases for charting.
package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"dashboard-go/internal/series"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var (
	ErrUnknownDriver = errors.New("source: unknown driver")
	ErrUnknownTable  = errors.New("source: unknown table")
	ErrNotConnected  = errors.New("source: not connected")
)

// Config holds connection details. DSN, when set, is used verbatim; otherwise
// Postgres connections are assembled from the individual fields and SQLite
// opens Path.
type Config struct {
	Driver   string `json:"driver"` // "postgres", "sqlite"
	DSN      string `json:"dsn,omitempty"`
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
	DBName   string `json:"dbname,omitempty"`
	SSLMode  string `json:"sslmode,omitempty"` // "disable", "require"
	Path     string `json:"path,omitempty"`
}

// ConnString renders the driver-specific data source name.
func (c Config) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Driver == "sqlite" {
		return c.Path
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return u.String()
}

// Query narrows the rows returned by FetchRows.
type Query struct {
	// Labels keeps only rows whose label column matches one of these.
	Labels []string
	// Limit caps the number of rows; zero means no cap.
	Limit int
}

// DataSource is a connected store of test result tables.
type DataSource interface {
	Connect(ctx context.Context, config Config) error
	Close() error
	ListTables(ctx context.Context) ([]string, error)
	FetchRows(ctx context.Context, table string, q Query) ([]series.Row, error)
}

// dialect captures the SQL differences between supported databases.
type dialect struct {
	driver      string
	listTables  string
	placeholder func(n int) string
}

var dialects = map[string]dialect{
	"postgres": {
		driver: "postgres",
		listTables: `
			SELECT table_name
			FROM information_schema.tables
			WHERE table_schema = 'public'
			ORDER BY table_name;
		`,
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	},
	"sqlite": {
		driver: "sqlite",
		listTables: `
			SELECT name
			FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
			ORDER BY name;
		`,
		placeholder: func(int) string { return "?" },
	},
}

// SQLSource implements DataSource over database/sql.
type SQLSource struct {
	dialect dialect
	db      *sql.DB
}

// New returns an unconnected source for driver ("postgres" or "sqlite").
func New(driver string) (*SQLSource, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	return &SQLSource{dialect: d}, nil
}

// Open creates a source for config.Driver and connects it.
func Open(ctx context.Context, config Config) (*SQLSource, error) {
	s, err := New(config.Driver)
	if err != nil {
		return nil, err
	}
	if err := s.Connect(ctx, config); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLSource) Connect(ctx context.Context, config Config) error {
	db, err := sql.Open(s.dialect.driver, config.ConnString())
	if err != nil {
		return fmt.Errorf("open %s: %w", s.dialect.driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping %s: %w", s.dialect.driver, err)
	}
	s.db = db
	return nil
}

func (s *SQLSource) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Driver reports the database driver name.
func (s *SQLSource) Driver() string {
	return s.dialect.driver
}

func (s *SQLSource) ListTables(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, ErrNotConnected
	}
	rows, err := s.db.QueryContext(ctx, s.dialect.listTables)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// FetchRows reads rows from table. The table name must be one ListTables
// reports; it is never taken from user input unchecked.
func (s *SQLSource) FetchRows(ctx context.Context, table string, q Query) ([]series.Row, error) {
	tables, err := s.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	if !contains(tables, table) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	query, args := s.buildSelect(table, q)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()
	return scanRows(rows)
}

func (s *SQLSource) buildSelect(table string, q Query) (string, []any) {
	var b strings.Builder
	var args []any
	fmt.Fprintf(&b, "SELECT * FROM %s", quoteIdent(table))
	if len(q.Labels) > 0 {
		marks := make([]string, len(q.Labels))
		for i, l := range q.Labels {
			args = append(args, l)
			marks[i] = s.dialect.placeholder(len(args))
		}
		fmt.Fprintf(&b, " WHERE label IN (%s)", strings.Join(marks, ", "))
	}
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}
	return b.String(), args
}

func scanRows(rows *sql.Rows) ([]series.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []series.Row
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(series.Row, len(columns))
		for i, col := range columns {
			// Drivers commonly hand text back as bytes.
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}
