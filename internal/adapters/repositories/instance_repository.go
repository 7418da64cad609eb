package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"insertion-route-service/internal/domain"
	"insertion-route-service/internal/platform/obs"
	"insertion-route-service/internal/ports"
)

// SQL-backed implementation of the InstanceRepository port.
type SQLInstanceRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLInstanceRepository(db *sql.DB, dialect Dialect) *SQLInstanceRepository {
	return &SQLInstanceRepository{DB: db, Dialect: dialect}
}

// SaveInstance stores the instance header, its customers, and its full
// distance matrix, replacing any instance previously stored under the name.
func (s *SQLInstanceRepository) SaveInstance(ctx context.Context, in *domain.Instance) (err error) {
	defer obs.Time(ctx, "repositories.SaveInstance")(&err)

	if s.DB == nil {
		return errors.New("save instance: DB is nil")
	}
	if err := in.Validate(); err != nil {
		return fmt.Errorf("save instance: %w", err)
	}
	if in.Name == "" {
		return fmt.Errorf("save instance: %w: name must be non-empty", domain.ErrInvalidInstance)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save instance: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsert := rebind(s.Dialect, `
	INSERT INTO instances (name, vehicle_number, vehicle_capacity)
	VALUES (?, ?, ?)
	ON CONFLICT (name) DO UPDATE
	SET vehicle_number = excluded.vehicle_number,
		vehicle_capacity = excluded.vehicle_capacity;
	`)
	if _, err := tx.ExecContext(ctx, upsert, in.Name, in.VehicleNumber, in.VehicleCapacity); err != nil {
		return fmt.Errorf("save instance %q: upsert header: %w", in.Name, err)
	}

	for _, table := range []string{"customers", "distances"} {
		q := rebind(s.Dialect, "DELETE FROM "+table+" WHERE instance = ?;")
		if _, err := tx.ExecContext(ctx, q, in.Name); err != nil {
			return fmt.Errorf("save instance %q: clear %s: %w", in.Name, table, err)
		}
	}

	custStmt, err := tx.PrepareContext(ctx, rebind(s.Dialect, `
	INSERT INTO customers (
		instance,
		customer_id,
		x,
		y,
		demand,
		ready_time,
		due,
		service_time
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save instance %q: prepare customers: %w", in.Name, err)
	}
	defer custStmt.Close()

	for _, c := range in.Customers {
		if _, err := custStmt.ExecContext(ctx, in.Name, c.ID, c.X, c.Y, c.Demand, c.ReadyTime, c.Due, c.ServiceTime); err != nil {
			return fmt.Errorf("save instance %q: insert customer %d: %w", in.Name, c.ID, err)
		}
	}

	distStmt, err := tx.PrepareContext(ctx, rebind(s.Dialect, `
	INSERT INTO distances (instance, from_id, to_id, length)
	VALUES (?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save instance %q: prepare distances: %w", in.Name, err)
	}
	defer distStmt.Close()

	for i, row := range in.Distances {
		for j, length := range row {
			if _, err := distStmt.ExecContext(ctx, in.Name, i, j, length); err != nil {
				return fmt.Errorf("save instance %q: insert distance %d -> %d: %w", in.Name, i, j, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save instance %q: commit tx: %w", in.Name, err)
	}

	return nil
}

// Return a summary of every stored instance ordered by name.
func (s *SQLInstanceRepository) ListInstances(ctx context.Context) ([]ports.InstanceSummary, error) {
	if s.DB == nil {
		return nil, errors.New("list instances: DB is nil")
	}

	query := `
	SELECT
		i.name,
		i.vehicle_number,
		i.vehicle_capacity,
		COUNT(c.customer_id)
	FROM instances i
	LEFT JOIN customers c ON c.instance = i.name
	GROUP BY i.name, i.vehicle_number, i.vehicle_capacity
	ORDER BY i.name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list instances: query instances table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.InstanceSummary, 0, 16)
	for rows.Next() {
		var sum ports.InstanceSummary
		if err := rows.Scan(&sum.Name, &sum.VehicleNumber, &sum.VehicleCapacity, &sum.Customers); err != nil {
			return nil, fmt.Errorf("list instances: scan row: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list instances: row iteration: %w", err)
	}

	return out, nil
}

// GetInstance loads an instance with its customers and distance matrix.
// The result is validated before it is returned.
func (s *SQLInstanceRepository) GetInstance(ctx context.Context, name string) (_ *domain.Instance, err error) {
	defer obs.Time(ctx, "repositories.GetInstance")(&err)

	if s.DB == nil {
		return nil, errors.New("get instance: DB is nil")
	}

	in := &domain.Instance{Name: name}

	header := rebind(s.Dialect, `
	SELECT vehicle_number, vehicle_capacity
	FROM instances
	WHERE name = ?;
	`)
	err = s.DB.QueryRowContext(ctx, header, name).Scan(&in.VehicleNumber, &in.VehicleCapacity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get instance %q: %w", name, domain.ErrInstanceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get instance %q: query header: %w", name, err)
	}

	if in.Customers, err = s.loadCustomers(ctx, name); err != nil {
		return nil, err
	}
	if in.Distances, err = s.loadDistances(ctx, name, len(in.Customers)); err != nil {
		return nil, err
	}

	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("get instance %q: %w", name, err)
	}
	return in, nil
}

func (s *SQLInstanceRepository) loadCustomers(ctx context.Context, name string) ([]domain.Customer, error) {
	query := rebind(s.Dialect, `
	SELECT
		customer_id,
		x,
		y,
		demand,
		ready_time,
		due,
		service_time
	FROM customers
	WHERE instance = ?
	ORDER BY customer_id;
	`)
	rows, err := s.DB.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("get instance %q: query customers table: %w", name, err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0, 128)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.X, &c.Y, &c.Demand, &c.ReadyTime, &c.Due, &c.ServiceTime); err != nil {
			return nil, fmt.Errorf("get instance %q: scan customer: %w", name, err)
		}
		c.AvailableTime = c.Due - c.ReadyTime
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get instance %q: customer iteration: %w", name, err)
	}

	return customers, nil
}

func (s *SQLInstanceRepository) loadDistances(ctx context.Context, name string, n int) (domain.DistanceMatrix, error) {
	query := rebind(s.Dialect, `
	SELECT from_id, to_id, length
	FROM distances
	WHERE instance = ?;
	`)
	rows, err := s.DB.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("get instance %q: query distances table: %w", name, err)
	}
	defer rows.Close()

	m := make(domain.DistanceMatrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}

	count := 0
	for rows.Next() {
		var from, to int
		var length float64
		if err := rows.Scan(&from, &to, &length); err != nil {
			return nil, fmt.Errorf("get instance %q: scan distance: %w", name, err)
		}
		if from < 0 || from >= n || to < 0 || to >= n {
			return nil, fmt.Errorf("get instance %q: %w: distance %d -> %d outside %d customers",
				name, domain.ErrInvalidInstance, from, to, n)
		}
		m[from][to] = length
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get instance %q: distance iteration: %w", name, err)
	}

	if count != n*n {
		return nil, fmt.Errorf("get instance %q: %w: %d distances stored for %d customers",
			name, domain.ErrInvalidInstance, count, n)
	}
	return m, nil
}
