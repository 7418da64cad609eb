package services

import (
	"context"
	"fmt"

	"insertion-route-service/internal/domain"
)

// Solve constructs routes for an instance and assembles the final solution.
func Solve(
	ctx context.Context,
	in *domain.Instance,
	fleet domain.FleetConfig,
	opts ConstructorOptions,
) (*domain.Solution, error) {
	constructor, err := NewRouteConstructor(in, fleet, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	state, err := constructor.Construct(ctx)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	return NewSolutionAssembler(constructor.Schedule(), fleet).Assemble(state), nil
}
