package ports

import (
	"context"
	"insertion-route-service/internal/domain"
)

// InstanceSummary is the listing form of a stored instance.
type InstanceSummary struct {
	Name            string
	Customers       int
	VehicleNumber   int
	VehicleCapacity float64
}

// Port: a boundary for storing and retrieving routing instances
// (customer table plus distance matrix).
type InstanceRepository interface {
	SaveInstance(ctx context.Context, in *domain.Instance) error
	ListInstances(ctx context.Context) ([]InstanceSummary, error)
	// Returns domain.ErrInstanceNotFound when no instance has that name.
	GetInstance(ctx context.Context, name string) (*domain.Instance, error)
}
