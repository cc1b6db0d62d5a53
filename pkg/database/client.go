package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ClientInterface defines the methods for interacting with the store.
// Query failures are propagated unchanged to the caller; the client never
// retries.
type ClientInterface interface {
	// QueryValues executes a query and returns the first column of every
	// row as a flat numeric sequence. Null values are skipped.
	QueryValues(ctx context.Context, query string) ([]float64, error)
	// QueryRows executes a query and returns every row as a column-name to
	// value mapping.
	QueryRows(ctx context.Context, query string) ([]map[string]interface{}, error)
	// Exec runs a statement and discards any result rows
	Exec(ctx context.Context, query string) error
	// Start verifies connectivity
	Start(ctx context.Context) error
	// Stop closes the client
	Stop() error
}

// client implements ClientInterface on top of database/sql
type client struct {
	log          logrus.FieldLogger
	db           *sql.DB
	queryTimeout time.Duration
	debug        bool
}

// NewClient creates a new MySQL client. The caller is expected to have
// blank-imported the go-sql-driver/mysql driver.
func NewClient(logger *logrus.Logger, cfg *Config) (ClientInterface, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.SetDefaults()

	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)

	c := &client{
		log:          logger.WithField("component", "database"),
		db:           db,
		queryTimeout: cfg.QueryTimeout,
		debug:        cfg.Debug,
	}

	return c, nil
}

func (c *client) Start(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	c.log.Info("Connected to database")

	return nil
}

func (c *client) Stop() error {
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	c.log.Info("Closed database client")

	return nil
}

func (c *client) QueryValues(ctx context.Context, query string) ([]float64, error) {
	queryCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	if c.debug {
		c.log.WithField("query", query).Debug("Executing query")
	}

	rows, err := c.db.QueryContext(queryCtx, query)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer c.closeRows(rows)

	values := make([]float64, 0)

	for rows.Next() {
		var v sql.NullFloat64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		if v.Valid {
			values = append(values, v.Float64)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}

	return values, nil
}

func (c *client) QueryRows(ctx context.Context, query string) ([]map[string]interface{}, error) {
	queryCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	if c.debug {
		c.log.WithField("query", query).Debug("Executing query")
	}

	rows, err := c.db.QueryContext(queryCtx, query)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer c.closeRows(rows)

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	results := make([]map[string]interface{}, 0)

	for rows.Next() {
		raw := make([]interface{}, len(columns))
		for i := range raw {
			raw[i] = new(interface{})
		}

		if err := rows.Scan(raw...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, name := range columns {
			row[name] = normalizeValue(*raw[i].(*interface{}))
		}

		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}

	return results, nil
}

func (c *client) Exec(ctx context.Context, query string) error {
	queryCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	if c.debug {
		c.log.WithField("query", query).Debug("Executing statement")
	}

	if _, err := c.db.ExecContext(queryCtx, query); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	return nil
}

func (c *client) closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		c.log.WithError(err).Debug("Failed to close rows")
	}
}

// withTimeout honors an existing context deadline, otherwise applies the
// configured query timeout.
func (c *client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.queryTimeout)
}

// normalizeValue converts driver byte slices to strings so row mappings are
// directly printable and comparable.
func normalizeValue(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}

	return v
}
