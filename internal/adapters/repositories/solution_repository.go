package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"insertion-route-service/internal/domain"
	"insertion-route-service/internal/platform/obs"
)

// SQL-backed implementation of the SolutionRepository port. The solution
// body is stored as JSON next to the run parameters.
type SQLSolutionRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLSolutionRepository(db *sql.DB, dialect Dialect) *SQLSolutionRepository {
	return &SQLSolutionRepository{DB: db, Dialect: dialect}
}

func (s *SQLSolutionRepository) SavePlan(ctx context.Context, plan *domain.Plan) (err error) {
	defer obs.Time(ctx, "repositories.SavePlan")(&err)

	if s.DB == nil {
		return errors.New("save plan: DB is nil")
	}
	if plan == nil || plan.ID == "" {
		return errors.New("save plan: plan id must be non-empty")
	}

	body, err := json.Marshal(plan.Solution)
	if err != nil {
		return fmt.Errorf("save plan %s: encode solution: %w", plan.ID, err)
	}

	query := rebind(s.Dialect, `
	INSERT INTO solutions (
		id,
		instance,
		vehicle_capacity,
		vehicle_limit,
		created_at,
		body
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	_, err = s.DB.ExecContext(ctx, query,
		plan.ID,
		plan.Instance,
		plan.Fleet.VehicleCapacity,
		plan.Fleet.VehicleLimit,
		plan.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(body),
	)
	if err != nil {
		return fmt.Errorf("save plan %s: insert: %w", plan.ID, err)
	}

	return nil
}

func (s *SQLSolutionRepository) GetPlan(ctx context.Context, id string) (*domain.Plan, error) {
	if s.DB == nil {
		return nil, errors.New("get plan: DB is nil")
	}

	query := rebind(s.Dialect, `
	SELECT
		instance,
		vehicle_capacity,
		vehicle_limit,
		created_at,
		body
	FROM solutions
	WHERE id = ?;
	`)

	plan := &domain.Plan{ID: id}
	var createdAt, body string
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&plan.Instance,
		&plan.Fleet.VehicleCapacity,
		&plan.Fleet.VehicleLimit,
		&createdAt,
		&body,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan %s: %w", id, domain.ErrSolutionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %s: query solutions table: %w", id, err)
	}

	if plan.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("get plan %s: parse created_at: %w", id, err)
	}
	if err := json.Unmarshal([]byte(body), &plan.Solution); err != nil {
		return nil, fmt.Errorf("get plan %s: decode solution: %w", id, err)
	}

	return plan, nil
}
