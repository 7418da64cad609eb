package services

import (
	"insertion-route-service/internal/domain"
	"insertion-route-service/internal/ports"
)

// ConstraintChecker evaluates the three feasibility constraints of a route:
// vehicle capacity, customer time windows, and fleet size.
type ConstraintChecker struct {
	schedule *ScheduleCalculator
	fleet    domain.FleetConfig
	observer ports.DiagnosticObserver
}

// NewConstraintChecker builds a checker. A nil observer disables diagnostics.
func NewConstraintChecker(
	schedule *ScheduleCalculator,
	fleet domain.FleetConfig,
	observer ports.DiagnosticObserver,
) *ConstraintChecker {
	return &ConstraintChecker{schedule: schedule, fleet: fleet, observer: observer}
}

// CapacityOK reports whether the route's total demand stays strictly below
// the vehicle capacity. A route exactly at capacity is infeasible.
func (c *ConstraintChecker) CapacityOK(route domain.Route) bool {
	return c.schedule.RouteDemand(route) < c.fleet.VehicleCapacity
}

// ScheduleOK reports whether every stop is reached inside its time window.
// One late stop invalidates the whole route.
func (c *ConstraintChecker) ScheduleOK(route domain.Route) bool {
	for _, st := range c.schedule.ComputeSchedule(route) {
		if st.Arrival < st.ReadyTime || st.Arrival > st.Due {
			return false
		}
	}
	return true
}

// FleetSizeOK counts closed routes only; the route under construction does
// not use up a vehicle yet.
func (c *ConstraintChecker) FleetSizeOK(closedRoutes int) bool {
	return closedRoutes < c.fleet.VehicleLimit
}

// Violation returns the first violated constraint, checked in the order
// capacity, schedule, fleet size. It has no side effects.
func (c *ConstraintChecker) Violation(route domain.Route, closedRoutes int) (domain.ConstraintKind, bool) {
	switch {
	case !c.CapacityOK(route):
		return domain.ConstraintCapacity, true
	case !c.ScheduleOK(route):
		return domain.ConstraintSchedule, true
	case !c.FleetSizeOK(closedRoutes):
		return domain.ConstraintFleetSize, true
	}
	return "", false
}

// CheckConstraints reports whether the route is feasible given the fleet
// state, emitting one diagnostic for the first violated constraint.
func (c *ConstraintChecker) CheckConstraints(route domain.Route, state *domain.FleetState) bool {
	kind, violated := c.Violation(route, len(state.Routes))
	if violated {
		c.report(kind, route)
	}
	return !violated
}

func (c *ConstraintChecker) report(kind domain.ConstraintKind, route domain.Route) {
	if c.observer == nil {
		return
	}
	c.observer.Observe(domain.Diagnostic{Kind: kind, Route: route.Clone()})
}
