package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"insertion-route-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func threeOnALine() *domain.Instance {
	return lineInstance(
		[]float64{0, 10, 20, 30},
		[]float64{0, 5, 5, 5},
		[]float64{0, 0, 0, 0},
		[]float64{1000, 1000, 1000, 1000},
	)
}

func TestConstructSingleRoute(t *testing.T) {
	in := threeOnALine()
	fleet := domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 25}

	sol := solve(t, in, fleet, ConstructorOptions{})

	require.Len(t, sol.Routes, 1)
	require.Equal(t, domain.Route{0, 1, 2, 3, 0}, sol.Routes[0].Route)
	require.Equal(t, 15.0, sol.Routes[0].Demand)
	require.Equal(t, 60.0, sol.Routes[0].Time[4].Arrival)
	require.Equal(t, 1, sol.Summary.NumberOfUsedVehicles)
	require.Empty(t, sol.Summary.UnvisitedNodes)
	requireInvariants(t, in, fleet, sol)
}

func TestConstructUnreachableCustomerStaysUnvisited(t *testing.T) {
	in := lineInstance(
		[]float64{0, 10, 20, 30, -50},
		[]float64{0, 5, 5, 5, 5},
		[]float64{0, 0, 0, 0, 0},
		[]float64{1000, 1000, 1000, 1000, 40},
	)
	fleet := domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 25}
	diag := &Collector{}

	sol := solve(t, in, fleet, ConstructorOptions{Observer: diag})

	require.Len(t, sol.Routes, 1)
	require.Equal(t, domain.Route{0, 1, 2, 3, 0}, sol.Routes[0].Route)
	require.Equal(t, []int{4}, sol.Summary.UnvisitedNodes)
	require.Positive(t, diag.Count(domain.ConstraintSchedule))
	for _, d := range diag.Diagnostics() {
		require.True(t, d.Route.Contains(4), "only routes through customer 4 are rejected, got %v", d.Route)
	}
	requireInvariants(t, in, fleet, sol)
}

func TestConstructFleetExhaustion(t *testing.T) {
	in := lineInstance(
		[]float64{0, 10, 20, 30},
		[]float64{0, 20, 20, 20},
		[]float64{0, 0, 0, 0},
		[]float64{1000, 1000, 1000, 1000},
	)
	fleet := domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 1}

	sol := solve(t, in, fleet, ConstructorOptions{})

	require.Equal(t, 1, sol.Summary.NumberOfUsedVehicles)
	require.Equal(t, domain.Route{0, 2, 3, 0}, sol.Routes[0].Route)
	require.Equal(t, []int{1}, sol.Summary.UnvisitedNodes)
	requireInvariants(t, in, fleet, sol)
}

func TestConstructOpensNewVehicleAtCapacity(t *testing.T) {
	in := lineInstance(
		[]float64{0, 10, 20},
		[]float64{0, 25, 25},
		[]float64{0, 0, 0},
		[]float64{1000, 1000, 1000},
	)
	fleet := domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 25}

	sol := solve(t, in, fleet, ConstructorOptions{})

	require.Len(t, sol.Routes, 2)
	require.Equal(t, domain.Route{0, 2, 0}, sol.Routes[0].Route)
	require.Equal(t, domain.Route{0, 1, 0}, sol.Routes[1].Route)
	require.Empty(t, sol.Summary.UnvisitedNodes)
	requireInvariants(t, in, fleet, sol)
}

func TestConstructSeedTieGoesToLowestID(t *testing.T) {
	in := lineInstance(
		[]float64{0, 10, -10},
		[]float64{0, 1, 1},
		[]float64{0, 0, 0},
		[]float64{1000, 1000, 1000},
	)
	fleet := domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 25}

	sol := solve(t, in, fleet, ConstructorOptions{})

	require.Len(t, sol.Routes, 1)
	require.Equal(t, domain.Route{0, 2, 1, 0}, sol.Routes[0].Route)
}

func TestConstructDepotOnly(t *testing.T) {
	in := lineInstance([]float64{0}, []float64{0}, []float64{0}, []float64{100})
	fleet := domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 3}

	sol := solve(t, in, fleet, ConstructorOptions{})

	require.Empty(t, sol.Routes)
	require.Equal(t, 0, sol.Summary.NumberOfUsedVehicles)
	require.Empty(t, sol.Summary.UnvisitedNodes)
}

func TestConstructInvariantsOnGrid(t *testing.T) {
	in := gridInstance()

	fleets := []domain.FleetConfig{
		{VehicleCapacity: 200, VehicleLimit: 25},
		{VehicleCapacity: 30, VehicleLimit: 25},
		{VehicleCapacity: 30, VehicleLimit: 2},
		{VehicleCapacity: 10, VehicleLimit: 1},
	}
	for _, fleet := range fleets {
		sol := solve(t, in, fleet, ConstructorOptions{})
		requireInvariants(t, in, fleet, sol)
	}
}

func TestConstructIsDeterministic(t *testing.T) {
	in := gridInstance()
	fleet := domain.FleetConfig{VehicleCapacity: 40, VehicleLimit: 25}

	first, err := json.Marshal(solve(t, in, fleet, ConstructorOptions{}))
	require.NoError(t, err)
	second, err := json.Marshal(solve(t, in, fleet, ConstructorOptions{}))
	require.NoError(t, err)
	parallel, err := json.Marshal(solve(t, in, fleet, ConstructorOptions{Workers: 6}))
	require.NoError(t, err)

	require.Equal(t, string(first), string(second))
	require.Equal(t, string(first), string(parallel))
}

type countingRecorder struct {
	opened, inserted, finished int
	routes, unvisited          int
}

func (r *countingRecorder) RouteOpened()  { r.opened++ }
func (r *countingRecorder) NodeInserted() { r.inserted++ }
func (r *countingRecorder) RunFinished(_ time.Duration, routes, unvisited int) {
	r.finished++
	r.routes = routes
	r.unvisited = unvisited
}

func TestConstructReportsToRecorder(t *testing.T) {
	in := threeOnALine()
	rec := &countingRecorder{}

	solve(t, in, domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 25}, ConstructorOptions{Recorder: rec})

	require.Equal(t, 1, rec.opened)
	require.Equal(t, 2, rec.inserted)
	require.Equal(t, 1, rec.finished)
	require.Equal(t, 1, rec.routes)
	require.Equal(t, 0, rec.unvisited)
}

func TestConstructRejectsInvalidInput(t *testing.T) {
	in := threeOnALine()
	in.Distances = in.Distances[:2]

	_, err := NewRouteConstructor(in, domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 1}, ConstructorOptions{Logger: &quiet})
	require.ErrorIs(t, err, domain.ErrInvalidInstance)

	_, err = NewRouteConstructor(threeOnALine(), domain.FleetConfig{VehicleCapacity: 50}, ConstructorOptions{Logger: &quiet})
	require.ErrorIs(t, err, domain.ErrInvalidFleet)
}

func TestConstructHonoursCancellation(t *testing.T) {
	c, err := NewRouteConstructor(gridInstance(), domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 5}, ConstructorOptions{Logger: &quiet})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = c.Construct(ctx)
	require.True(t, errors.Is(err, context.Canceled))
}
