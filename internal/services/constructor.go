package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"insertion-route-service/internal/domain"
	"insertion-route-service/internal/ports"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type phase int

const (
	phaseSeeding phase = iota
	phaseGrowing
	phaseClosing
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseSeeding:
		return "seeding"
	case phaseGrowing:
		return "growing"
	case phaseClosing:
		return "closing"
	default:
		return "done"
	}
}

// ConstructorOptions tunes a RouteConstructor. The zero value is usable:
// no diagnostics, no metrics, sequential evaluation, global logger.
type ConstructorOptions struct {
	Observer ports.DiagnosticObserver
	Recorder ports.ConstructionRecorder
	Workers  int
	Logger   *zerolog.Logger
}

// RouteConstructor builds vehicle routes one at a time with sequential
// best insertion. It owns the FleetState of a run.
type RouteConstructor struct {
	instance  *domain.Instance
	fleet     domain.FleetConfig
	schedule  *ScheduleCalculator
	checker   *ConstraintChecker
	evaluator *InsertionEvaluator
	recorder  ports.ConstructionRecorder
	logger    zerolog.Logger
}

// NewRouteConstructor validates the instance and fleet and wires the
// schedule calculator, constraint checker, and insertion evaluator.
func NewRouteConstructor(
	in *domain.Instance,
	fleet domain.FleetConfig,
	opts ConstructorOptions,
) (*RouteConstructor, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("new route constructor: %w", err)
	}
	if err := fleet.Validate(); err != nil {
		return nil, fmt.Errorf("new route constructor: %w", err)
	}

	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	logger = logger.With().Str("instance", in.Name).Logger()

	schedule := NewScheduleCalculator(in.Customers, in.Distances)
	checker := NewConstraintChecker(schedule, fleet, opts.Observer)

	return &RouteConstructor{
		instance:  in,
		fleet:     fleet,
		schedule:  schedule,
		checker:   checker,
		evaluator: NewInsertionEvaluator(checker, in.Distances, opts.Workers),
		recorder:  opts.Recorder,
		logger:    logger,
	}, nil
}

func (c *RouteConstructor) Schedule() *ScheduleCalculator { return c.schedule }

// Construct runs the seed/grow/close loop until every customer is routed,
// no remaining customer can seed a route, or the vehicle limit is reached.
// Infeasibility is never an error; leftover customers stay in Unvisited.
// The only errors are context cancellation.
func (c *RouteConstructor) Construct(ctx context.Context) (*domain.FleetState, error) {
	start := time.Now()
	state := domain.NewFleetState(len(c.instance.Customers))

	p := phaseSeeding
	if len(state.Unvisited) == 0 {
		p = phaseDone
	}

	for p != phaseDone {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("construct routes: %s: %w", p, err)
		}

		switch p {
		case phaseSeeding:
			state.RefreshUnvisited()
			node, ok := c.seed(state)
			if !ok {
				c.logger.Info().Ints("unvisited", state.Unvisited).Msg("no remaining customer can seed a route")
				p = phaseDone
				continue
			}
			state.Route = domain.Route{domain.DepotID, node, domain.DepotID}
			state.RefreshUnvisited()
			if c.recorder != nil {
				c.recorder.RouteOpened()
			}
			c.logger.Debug().Ints("route", state.Route).Int("vehicle", len(state.Routes)+1).Msg("initial route created")
			p = phaseGrowing

		case phaseGrowing:
			if len(state.Unvisited) == 0 {
				p = phaseClosing
				continue
			}
			cand, ok, err := c.evaluator.Best(ctx, state)
			if err != nil {
				return nil, fmt.Errorf("construct routes: %w", err)
			}
			if !ok {
				p = phaseClosing
				continue
			}
			state.Route = cand.Route
			state.RefreshUnvisited()
			if c.recorder != nil {
				c.recorder.NodeInserted()
			}
			c.logger.Debug().
				Int("node", cand.Node).
				Int("position", cand.Position).
				Float64("f2", cand.F2).
				Ints("route", state.Route).
				Msg("new node added to the current route")

		case phaseClosing:
			state.CloseRoute()
			c.logger.Debug().Int("vehicles", len(state.Routes)).Msg("vehicle route closed")
			if len(state.Unvisited) > 0 && len(state.Routes) < c.fleet.VehicleLimit {
				p = phaseSeeding
			} else {
				p = phaseDone
			}
		}
	}

	switch {
	case len(state.Unvisited) == 0:
		c.logger.Info().Int("vehicles", len(state.Routes)).Msg("no nodes left")
	case len(state.Routes) >= c.fleet.VehicleLimit:
		c.logger.Warn().Ints("unvisited", state.Unvisited).Int("vehicle_limit", c.fleet.VehicleLimit).Msg("vehicle count has exceeded")
	}

	if c.recorder != nil {
		c.recorder.RunFinished(time.Since(start), len(state.Routes), len(state.Unvisited))
	}

	return state, nil
}

// seed picks the unvisited customer farthest from the depot whose
// single-customer route [0, n, 0] is feasible. Equal distances resolve to
// the lower id. Customers that cannot be served even alone are skipped and
// stay unvisited.
func (c *RouteConstructor) seed(state *domain.FleetState) (int, bool) {
	order := slices.Clone(state.Unvisited)
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(
			c.instance.Distances.Length(domain.DepotID, b),
			c.instance.Distances.Length(domain.DepotID, a),
		)
	})

	for _, node := range order {
		route := domain.Route{domain.DepotID, node, domain.DepotID}
		if c.checker.CheckConstraints(route, state) {
			return node, true
		}
	}
	return 0, false
}
