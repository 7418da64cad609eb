package services

import (
	"context"
	"fmt"

	"insertion-route-service/internal/domain"
	"insertion-route-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

// Candidate is the current route with exactly one unvisited customer
// inserted at one gap.
type Candidate struct {
	Route    domain.Route
	Node     int
	Position int
	// F1 is the detour cost of placing Node between its neighbours.
	F1 float64
	// F2 is the selection score: depot distance of Node minus F1.
	F2 float64
}

type evaluation struct {
	violation domain.ConstraintKind
	feasible  bool
	candidate Candidate
}

// InsertionEvaluator enumerates single-customer insertions into the
// current route and selects the one with the highest F2 score.
type InsertionEvaluator struct {
	checker   *ConstraintChecker
	distances ports.DistanceProvider
	workers   int
}

// NewInsertionEvaluator builds an evaluator. With workers > 1 candidates are
// scored concurrently; the selected candidate is the same either way.
func NewInsertionEvaluator(checker *ConstraintChecker, distances ports.DistanceProvider, workers int) *InsertionEvaluator {
	if workers < 1 {
		workers = 1
	}
	return &InsertionEvaluator{checker: checker, distances: distances, workers: workers}
}

// Enumerate lists every candidate in scan order: unvisited node ascending,
// then gap position ascending. Gaps are the internal positions
// 1..len(route)-1, so the depot bookends never move.
func (e *InsertionEvaluator) Enumerate(state *domain.FleetState) []Candidate {
	gaps := len(state.Route) - 1
	if gaps < 1 {
		return nil
	}

	out := make([]Candidate, 0, len(state.Unvisited)*gaps)
	for _, node := range state.Unvisited {
		if node == domain.DepotID {
			continue
		}
		for pos := 1; pos < len(state.Route); pos++ {
			out = append(out, Candidate{
				Route:    state.Route.Insert(pos, node),
				Node:     node,
				Position: pos,
			})
		}
	}
	return out
}

// Score fills in F1 and F2 for a candidate.
func (e *InsertionEvaluator) Score(c Candidate) Candidate {
	pred := c.Route[c.Position-1]
	succ := c.Route[c.Position+1]

	c.F1 = e.distances.Length(pred, c.Node) + e.distances.Length(c.Node, succ) - e.distances.Length(pred, succ)
	c.F2 = e.distances.Length(domain.DepotID, c.Node) - c.F1
	return c
}

// Best returns the feasible candidate with the maximum F2. Ties go to the
// candidate that comes first in scan order. The boolean is false when no
// candidate survives the constraint filter.
func (e *InsertionEvaluator) Best(ctx context.Context, state *domain.FleetState) (Candidate, bool, error) {
	candidates := e.Enumerate(state)
	if len(candidates) == 0 {
		return Candidate{}, false, nil
	}

	evals, err := e.evaluate(ctx, candidates, len(state.Routes))
	if err != nil {
		return Candidate{}, false, fmt.Errorf("best insertion: %w", err)
	}

	var (
		best  Candidate
		found bool
	)
	// Reduce in scan order so concurrent scoring cannot change the winner.
	for _, ev := range evals {
		if !ev.feasible {
			e.checker.report(ev.violation, ev.candidate.Route)
			continue
		}
		if !found || ev.candidate.F2 > best.F2 {
			best = ev.candidate
			found = true
		}
	}

	return best, found, nil
}

func (e *InsertionEvaluator) evaluate(ctx context.Context, candidates []Candidate, closedRoutes int) ([]evaluation, error) {
	evals := make([]evaluation, len(candidates))

	one := func(i int) {
		c := candidates[i]
		if kind, violated := e.checker.Violation(c.Route, closedRoutes); violated {
			evals[i] = evaluation{violation: kind, candidate: c}
			return
		}
		evals[i] = evaluation{feasible: true, candidate: e.Score(c)}
	}

	if e.workers == 1 || len(candidates) < 2*e.workers {
		for i := range candidates {
			one(i)
		}
		return evals, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	chunk := (len(candidates) + e.workers - 1) / e.workers
	for start := 0; start < len(candidates); start += chunk {
		end := min(start+chunk, len(candidates))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				one(i)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return evals, nil
}
