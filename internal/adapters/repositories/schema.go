package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects the placeholder style of the SQL driver in use.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "pgx"
)

// rebind rewrites '?' placeholders to '$1, $2, ...' for postgres.
func rebind(d Dialect, query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Initialize the instance and solution schema. Statements are portable
// across sqlite and postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createInstancesQuery := `
	CREATE TABLE IF NOT EXISTS instances (
		name TEXT PRIMARY KEY,
		vehicle_number INTEGER NOT NULL,
		vehicle_capacity DOUBLE PRECISION NOT NULL
	);
	`

	createCustomersQuery := `
	CREATE TABLE IF NOT EXISTS customers (
		instance TEXT NOT NULL,
		customer_id INTEGER NOT NULL,
		x DOUBLE PRECISION NOT NULL,
		y DOUBLE PRECISION NOT NULL,
		demand DOUBLE PRECISION NOT NULL,
		ready_time DOUBLE PRECISION NOT NULL,
		due DOUBLE PRECISION NOT NULL,
		service_time DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (instance, customer_id)
	);
	`

	createDistancesQuery := `
	CREATE TABLE IF NOT EXISTS distances (
		instance TEXT NOT NULL,
		from_id INTEGER NOT NULL,
		to_id INTEGER NOT NULL,
		length DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (instance, from_id, to_id)
	);
	`

	createSolutionsQuery := `
	CREATE TABLE IF NOT EXISTS solutions (
		id TEXT PRIMARY KEY,
		instance TEXT NOT NULL,
		vehicle_capacity DOUBLE PRECISION NOT NULL,
		vehicle_limit INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		body TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_solutions_instance
	ON solutions(instance);
	`

	statements := []string{
		createInstancesQuery,
		createCustomersQuery,
		createDistancesQuery,
		createSolutionsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
