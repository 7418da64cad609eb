package services

import (
	"testing"

	"insertion-route-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestInsertionEvaluatorEnumerationOrder(t *testing.T) {
	in := lineInstance(
		[]float64{0, 10, 20, 30},
		[]float64{0, 1, 1, 1},
		[]float64{0, 0, 0, 0},
		[]float64{1000, 1000, 1000, 1000},
	)
	checker := newChecker(in, domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 5}, nil)
	eval := NewInsertionEvaluator(checker, in.Distances, 1)

	state := &domain.FleetState{Route: domain.Route{0, 3, 0}, Unvisited: []int{1, 2}}
	got := eval.Enumerate(state)

	want := []domain.Route{
		{0, 1, 3, 0},
		{0, 3, 1, 0},
		{0, 2, 3, 0},
		{0, 3, 2, 0},
	}
	require.Len(t, got, len(want))
	for i, c := range got {
		require.Equal(t, want[i], c.Route)
	}
	require.Equal(t, domain.Route{0, 3, 0}, state.Route, "enumeration must not mutate the current route")
}

func TestInsertionEvaluatorScore(t *testing.T) {
	in := lineInstance(
		[]float64{0, 10, 20, 30},
		[]float64{0, 1, 1, 1},
		[]float64{0, 0, 0, 0},
		[]float64{1000, 1000, 1000, 1000},
	)
	checker := newChecker(in, domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 5}, nil)
	eval := NewInsertionEvaluator(checker, in.Distances, 1)

	// 1 between 2 and 3: 10 + 20 - 10 = 20 detour, 10 - 20 = -10 score.
	c := eval.Score(Candidate{Route: domain.Route{0, 2, 1, 3, 0}, Node: 1, Position: 2})
	require.Equal(t, 20.0, c.F1)
	require.Equal(t, -10.0, c.F2)
}

func TestInsertionEvaluatorPicksMaxF2(t *testing.T) {
	in := lineInstance(
		[]float64{0, 10, 20, 30},
		[]float64{0, 1, 1, 1},
		[]float64{0, 0, 0, 0},
		[]float64{1000, 1000, 1000, 1000},
	)
	checker := newChecker(in, domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 5}, nil)
	eval := NewInsertionEvaluator(checker, in.Distances, 1)

	best, ok, err := eval.Best(t.Context(), &domain.FleetState{Route: domain.Route{0, 3, 0}, Unvisited: []int{1, 2}})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, best.Node)
	require.Equal(t, 1, best.Position)
	require.Equal(t, domain.Route{0, 2, 3, 0}, best.Route)
	require.Equal(t, 20.0, best.F2)
}

func TestInsertionEvaluatorTieGoesToFirstPosition(t *testing.T) {
	// 1 and 2 sit on opposite sides of the depot; both gaps score -10.
	in := lineInstance(
		[]float64{0, 10, -10},
		[]float64{0, 1, 1},
		[]float64{0, 0, 0},
		[]float64{1000, 1000, 1000},
	)
	checker := newChecker(in, domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 5}, nil)
	eval := NewInsertionEvaluator(checker, in.Distances, 1)

	best, ok, err := eval.Best(t.Context(), &domain.FleetState{Route: domain.Route{0, 1, 0}, Unvisited: []int{2}})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.Route{0, 2, 1, 0}, best.Route)
}

func TestInsertionEvaluatorNoFeasibleCandidate(t *testing.T) {
	in := lineInstance(
		[]float64{0, 10, 20},
		[]float64{0, 30, 30},
		[]float64{0, 0, 0},
		[]float64{1000, 1000, 1000},
	)
	c := &Collector{}
	checker := newChecker(in, domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 5}, c)
	eval := NewInsertionEvaluator(checker, in.Distances, 1)

	_, ok, err := eval.Best(t.Context(), &domain.FleetState{Route: domain.Route{0, 2, 0}, Unvisited: []int{1}})
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 2, c.Count(domain.ConstraintCapacity))
}

func TestInsertionEvaluatorEmptyRoute(t *testing.T) {
	in := lineInstance([]float64{0, 1}, []float64{0, 1}, []float64{0, 0}, []float64{10, 10})
	checker := newChecker(in, domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 5}, nil)
	eval := NewInsertionEvaluator(checker, in.Distances, 4)

	_, ok, err := eval.Best(t.Context(), &domain.FleetState{Unvisited: []int{1}})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestInsertionEvaluatorParallelMatchesSequential(t *testing.T) {
	in := gridInstance()
	fleet := domain.FleetConfig{VehicleCapacity: 200, VehicleLimit: 25}

	seqDiag, parDiag := &Collector{}, &Collector{}
	seq := NewInsertionEvaluator(newChecker(in, fleet, seqDiag), in.Distances, 1)
	par := NewInsertionEvaluator(newChecker(in, fleet, parDiag), in.Distances, 8)

	state := domain.NewFleetState(len(in.Customers))
	state.Route = domain.Route{0, 12, 0}
	state.RefreshUnvisited()

	want, okSeq, err := seq.Best(t.Context(), state)
	require.NoError(t, err)
	got, okPar, err := par.Best(t.Context(), state)
	require.NoError(t, err)

	require.Equal(t, okSeq, okPar)
	require.Equal(t, want, got)
	require.Equal(t, seqDiag.Diagnostics(), parDiag.Diagnostics())
}
