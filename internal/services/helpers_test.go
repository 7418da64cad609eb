package services

import (
	"math"
	"testing"

	"insertion-route-service/internal/adapters/distance"
	"insertion-route-service/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var quiet = zerolog.Nop()

// lineInstance places customers on the x axis; distances are |xi - xj|.
// Index 0 is the depot with a wide window.
func lineInstance(xs []float64, demand []float64, ready []float64, due []float64) *domain.Instance {
	customers := make([]domain.Customer, len(xs))
	for i, x := range xs {
		customers[i] = domain.Customer{
			ID:        i,
			X:         x,
			Demand:    demand[i],
			ReadyTime: ready[i],
			Due:       due[i],
		}
	}

	m := make(domain.DistanceMatrix, len(xs))
	for i := range xs {
		m[i] = make([]float64, len(xs))
		for j := range xs {
			m[i][j] = math.Abs(xs[i] - xs[j])
		}
	}

	return &domain.Instance{Name: "line", Customers: customers, Distances: m}
}

// gridInstance is a deterministic 40-customer instance with mixed windows.
func gridInstance() *domain.Instance {
	customers := []domain.Customer{{ID: 0, X: 50, Y: 50, Due: 1000}}
	for i := 1; i <= 40; i++ {
		ready := float64((i * 29) % 200)
		due := ready + 60 + float64((i*17)%100)
		customers = append(customers, domain.Customer{
			ID:            i,
			X:             float64((i * 37) % 100),
			Y:             float64((i * 53) % 100),
			Demand:        float64(1 + i%9),
			ReadyTime:     ready,
			Due:           due,
			AvailableTime: due - ready,
			ServiceTime:   10,
		})
	}
	return &domain.Instance{
		Name:      "grid",
		Customers: customers,
		Distances: distance.EuclideanMatrix(customers),
	}
}

func solve(t *testing.T, in *domain.Instance, fleet domain.FleetConfig, opts ConstructorOptions) *domain.Solution {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = &quiet
	}
	sol, err := Solve(t.Context(), in, fleet, opts)
	require.NoError(t, err)
	return sol
}

// requireInvariants checks the properties every finished solution must hold.
func requireInvariants(t *testing.T, in *domain.Instance, fleet domain.FleetConfig, sol *domain.Solution) {
	t.Helper()

	seen := make(map[int]int)
	for _, rec := range sol.Routes {
		r := rec.Route
		require.GreaterOrEqual(t, len(r), 3, "route %v too short", r)
		require.Equal(t, domain.DepotID, r[0], "route %v must start at the depot", r)
		require.Equal(t, domain.DepotID, r[len(r)-1], "route %v must end at the depot", r)
		for _, n := range r[1 : len(r)-1] {
			require.NotEqual(t, domain.DepotID, n, "depot inside route %v", r)
			seen[n]++
		}

		demand := 0.0
		for _, n := range r {
			demand += in.Customers[n].Demand
		}
		require.Equal(t, demand, rec.Demand)
		require.Less(t, rec.Demand, fleet.VehicleCapacity)

		require.Len(t, rec.Time, len(r))
		for _, st := range rec.Time {
			require.GreaterOrEqual(t, st.Arrival, st.ReadyTime, "stop %d of %v", st.Node, r)
			require.LessOrEqual(t, st.Arrival, st.Due, "stop %d of %v", st.Node, r)
		}
	}
	for _, n := range sol.Summary.UnvisitedNodes {
		seen[n]++
	}

	for id := 1; id < len(in.Customers); id++ {
		require.Equal(t, 1, seen[id], "customer %d must appear exactly once", id)
	}
	require.Equal(t, len(sol.Routes), sol.Summary.NumberOfUsedVehicles)
	require.LessOrEqual(t, sol.Summary.NumberOfUsedVehicles, fleet.VehicleLimit)
}
