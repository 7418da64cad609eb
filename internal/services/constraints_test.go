package services

import (
	"testing"

	"insertion-route-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func newChecker(in *domain.Instance, fleet domain.FleetConfig, c *Collector) *ConstraintChecker {
	calc := NewScheduleCalculator(in.Customers, in.Distances)
	if c == nil {
		return NewConstraintChecker(calc, fleet, nil)
	}
	return NewConstraintChecker(calc, fleet, c)
}

func TestConstraintCheckerCapacityIsStrict(t *testing.T) {
	in := lineInstance(
		[]float64{0, 10, 20},
		[]float64{0, 25, 25},
		[]float64{0, 0, 0},
		[]float64{1000, 1000, 1000},
	)
	checker := newChecker(in, domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 5}, nil)

	require.True(t, checker.CapacityOK(domain.Route{0, 1, 0}))
	require.False(t, checker.CapacityOK(domain.Route{0, 1, 2, 0}), "a route exactly at capacity is infeasible")
}

func TestConstraintCheckerSchedule(t *testing.T) {
	in := lineInstance(
		[]float64{0, 10, 50},
		[]float64{0, 1, 1},
		[]float64{0, 0, 0},
		[]float64{1000, 1000, 40},
	)
	checker := newChecker(in, domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 5}, nil)

	require.True(t, checker.ScheduleOK(domain.Route{0, 1, 0}))
	require.False(t, checker.ScheduleOK(domain.Route{0, 2, 0}), "customer 2 cannot be reached before its due time")
	require.False(t, checker.ScheduleOK(domain.Route{0, 1, 2, 0}))
}

func TestConstraintCheckerFleetSize(t *testing.T) {
	in := lineInstance([]float64{0, 1}, []float64{0, 1}, []float64{0, 0}, []float64{100, 100})
	checker := newChecker(in, domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 2}, nil)

	require.True(t, checker.FleetSizeOK(0))
	require.True(t, checker.FleetSizeOK(1))
	require.False(t, checker.FleetSizeOK(2))
}

func TestCheckConstraintsReportsFirstViolation(t *testing.T) {
	in := lineInstance(
		[]float64{0, 10, 50},
		[]float64{0, 30, 30},
		[]float64{0, 0, 0},
		[]float64{1000, 1000, 40},
	)
	fleet := domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 1}

	tests := []struct {
		name   string
		route  domain.Route
		closed int
		want   domain.ConstraintKind
	}{
		{name: "capacity before schedule", route: domain.Route{0, 1, 2, 0}, want: domain.ConstraintCapacity},
		{name: "schedule", route: domain.Route{0, 2, 0}, want: domain.ConstraintSchedule},
		{name: "fleet size", route: domain.Route{0, 1, 0}, closed: 1, want: domain.ConstraintFleetSize},
		{name: "feasible", route: domain.Route{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Collector{}
			checker := newChecker(in, fleet, c)

			state := &domain.FleetState{}
			for range tt.closed {
				state.Routes = append(state.Routes, domain.Route{0, 0})
			}

			ok := checker.CheckConstraints(tt.route, state)
			if tt.want == "" {
				require.True(t, ok)
				require.Empty(t, c.Diagnostics())
				return
			}

			require.False(t, ok)
			require.Equal(t, []domain.Diagnostic{{Kind: tt.want, Route: tt.route}}, c.Diagnostics())
		})
	}
}

func TestCheckConstraintsWithoutObserver(t *testing.T) {
	in := lineInstance([]float64{0, 1}, []float64{0, 60}, []float64{0, 0}, []float64{100, 100})
	checker := newChecker(in, domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 1}, nil)

	require.False(t, checker.CheckConstraints(domain.Route{0, 1, 0}, &domain.FleetState{}))
}
