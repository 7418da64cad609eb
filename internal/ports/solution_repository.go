package ports

import (
	"context"
	"insertion-route-service/internal/domain"
)

// Port: persistence of finished plans.
type SolutionRepository interface {
	SavePlan(ctx context.Context, plan *domain.Plan) error
	// Returns domain.ErrSolutionNotFound when no plan has that id.
	GetPlan(ctx context.Context, id string) (*domain.Plan, error)
}

// Optional short-lived cache of plans keyed by instance and fleet parameters.
type SolutionCache interface {
	Get(ctx context.Context, key string) (*domain.Plan, bool, error)
	Put(ctx context.Context, key string, plan *domain.Plan) error
}
