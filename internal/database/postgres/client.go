package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/edushetra/edushetra-api/internal/repository"
	"github.com/edushetra/edushetra-api/pkg/logger"
	"github.com/edushetra/edushetra-api/pkg/metrics"
)

// Client writes lead rows into PostgreSQL through a pgx pool
type Client struct {
	pool *pgxpool.Pool
}

var (
	_ repository.LeadStore  = (*Client)(nil)
	_ repository.LeadLister = (*Client)(nil)
)

// NewClient wraps an open pool; see pkg/db.NewPool
func NewClient(pool *pgxpool.Pool) *Client {
	stat := pool.Stat()
	logger.Info("PostgreSQL lead store initialized",
		zap.Int32("max_conns", stat.MaxConns()),
		zap.Int32("total_conns", stat.TotalConns()),
	)
	return &Client{pool: pool}
}

// Close closes the connection pool
func (c *Client) Close() {
	if c.pool != nil {
		c.pool.Close()
		logger.Info("PostgreSQL connection pool closed")
	}
}

// Ping checks if the database connection is alive
func (c *Client) Ping(ctx context.Context) error {
	start := time.Now()
	err := c.pool.Ping(ctx)
	recordMetrics("ping", statusOf(err), metrics.MeasureDuration(start))
	return err
}

// Stats returns connection pool statistics
func (c *Client) Stats() *pgxpool.Stat {
	return c.pool.Stat()
}

// Insert writes one row and returns the generated id
func (c *Client) Insert(ctx context.Context, table repository.Table, row repository.Row) (string, error) {
	start := time.Now()
	operation := "insert_" + string(table)

	query, args := buildInsert(table, row)

	var id string
	err := c.pool.QueryRow(ctx, query, args...).Scan(&id)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		return "", fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	recordMetrics(operation, "success", duration)
	return id, nil
}

// ListRecent returns the newest rows of a table, rendered as text
func (c *Client) ListRecent(ctx context.Context, table repository.Table, limit int) (*repository.Listing, error) {
	start := time.Now()
	operation := "list_" + string(table)
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf("SELECT * FROM %s ORDER BY created_at DESC LIMIT $1", pgx.Identifier{string(table)}.Sanitize())
	rows, err := c.pool.Query(ctx, query, limit)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	listing := &repository.Listing{}
	for _, fd := range rows.FieldDescriptions() {
		listing.Columns = append(listing.Columns, fd.Name)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			recordMetrics(operation, "error", metrics.MeasureDuration(start))
			return nil, fmt.Errorf("failed to read %s row: %w", table, err)
		}
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = formatValue(v)
		}
		listing.Rows = append(listing.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return listing, nil
}

// buildInsert renders a parameterised INSERT ... RETURNING id
func buildInsert(table repository.Table, row repository.Row) (string, []any) {
	cols := make([]string, len(row))
	params := make([]string, len(row))
	for i, col := range row {
		cols[i] = pgx.Identifier{col.Name}.Sanitize()
		params[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id::text",
		pgx.Identifier{string(table)}.Sanitize(),
		strings.Join(cols, ", "),
		strings.Join(params, ", "),
	)
	return query, row.Values()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case [16]byte:
		return uuid.UUID(val).String()
	case time.Time:
		return val.Local().Format("2006-01-02 15:04")
	case []any:
		parts := make([]string, len(val))
		for i, p := range val {
			parts[i] = formatValue(p)
		}
		return strings.Join(parts, ", ")
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// recordMetrics records database operation metrics
func recordMetrics(operation, status string, duration float64) {
	metrics.StoreRequestDuration.WithLabelValues("postgres_"+operation, status).Observe(duration)
	metrics.StoreRequestTotal.WithLabelValues("postgres_"+operation, status).Inc()
}
