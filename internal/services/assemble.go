package services

import (
	"slices"

	"insertion-route-service/internal/domain"
)

// SolutionAssembler turns a finished fleet state into the reported solution.
type SolutionAssembler struct {
	schedule *ScheduleCalculator
	fleet    domain.FleetConfig
}

func NewSolutionAssembler(schedule *ScheduleCalculator, fleet domain.FleetConfig) *SolutionAssembler {
	return &SolutionAssembler{schedule: schedule, fleet: fleet}
}

// Assemble reports every closed route, plus a still-open current route
// when the fleet has room for it, with its schedule and total demand.
func (a *SolutionAssembler) Assemble(state *domain.FleetState) *domain.Solution {
	routes := slices.Clone(state.Routes)
	if len(state.Route) > 0 && len(routes) < a.fleet.VehicleLimit {
		routes = append(routes, state.Route)
	}

	records := make([]domain.RouteRecord, 0, len(routes))
	for _, r := range routes {
		records = append(records, domain.RouteRecord{
			Route:  r.Clone(),
			Time:   a.schedule.ComputeSchedule(r),
			Demand: a.schedule.RouteDemand(r),
		})
	}

	unvisited := make([]int, 0, len(state.Unvisited))
	for _, n := range state.Unvisited {
		if n != domain.DepotID {
			unvisited = append(unvisited, n)
		}
	}

	return &domain.Solution{
		Routes: records,
		Summary: domain.FleetSummary{
			NumberOfUsedVehicles: len(records),
			UnvisitedNodes:       unvisited,
		},
	}
}
