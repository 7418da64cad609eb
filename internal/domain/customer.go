package domain

import (
	"fmt"
	"math"
)

// DepotID is the customer index every route starts and ends at.
const DepotID = 0

// Represents a single customer of a routing instance.
// Index 0 is the depot: zero demand, zero service time, and a window
// spanning the whole planning horizon. Customers are immutable once loaded
// and are identified by their position in the instance.
type Customer struct {
	ID            int     `json:"customer"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Demand        float64 `json:"demand"`
	ReadyTime     float64 `json:"readyTime"`
	Due           float64 `json:"due"`
	AvailableTime float64 `json:"availableTime"`
	ServiceTime   float64 `json:"serviceTime"`
}

func (c Customer) Coordinates() Coordinates { return Coordinates{X: c.X, Y: c.Y} }

// Instance bundles the customer table with its precomputed distance matrix.
// VehicleNumber and VehicleCapacity come from the instance header and are
// zero when the source did not carry them.
type Instance struct {
	Name            string
	VehicleNumber   int
	VehicleCapacity float64
	Customers       []Customer
	Distances       DistanceMatrix
}

// Validate checks the data-preparation contract the route constructor relies on.
func (in *Instance) Validate() error {
	if in == nil {
		return fmt.Errorf("%w: instance is nil", ErrInvalidInstance)
	}

	n := len(in.Customers)
	if n == 0 {
		return fmt.Errorf("%w: no depot (customer table is empty)", ErrInvalidInstance)
	}

	for i, c := range in.Customers {
		if c.ID != i {
			return fmt.Errorf("%w: customer at index %d has id %d", ErrInvalidInstance, i, c.ID)
		}
		for _, v := range []float64{c.Demand, c.ReadyTime, c.Due, c.ServiceTime} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: customer %d has a non-finite field", ErrInvalidInstance, i)
			}
		}
	}

	if err := in.Distances.Validate(); err != nil {
		return err
	}
	if in.Distances.Size() != n {
		return fmt.Errorf(
			"%w: distance matrix is %dx%d for %d customers",
			ErrInvalidInstance, in.Distances.Size(), in.Distances.Size(), n,
		)
	}

	return nil
}
