package domain

import (
	"fmt"
	"math"
)

// FleetConfig holds the homogeneous fleet parameters fixed for a run.
type FleetConfig struct {
	VehicleCapacity float64 `json:"vehicle_capacity" yaml:"vehicle_capacity"`
	VehicleLimit    int     `json:"vehicle_limit" yaml:"vehicle_limit"`
}

func (f FleetConfig) Validate() error {
	if math.IsNaN(f.VehicleCapacity) || f.VehicleCapacity <= 0 {
		return fmt.Errorf("%w: vehicle capacity must be positive, got %v", ErrInvalidFleet, f.VehicleCapacity)
	}
	if f.VehicleLimit < 1 {
		return fmt.Errorf("%w: vehicle limit must be at least 1, got %d", ErrInvalidFleet, f.VehicleLimit)
	}
	return nil
}

// FleetState is the mutable state of a construction run.
//
// Every customer id in [1, N) is in exactly one of Unvisited, Route, or a
// single closed route. Routes never grows past the configured vehicle limit.
type FleetState struct {
	Routes    []Route
	Route     Route
	Unvisited []int
	size      int
}

// NewFleetState creates the start-of-run state for an instance with n customers
// (depot included): no routes, every non-depot customer unvisited.
func NewFleetState(n int) *FleetState {
	s := &FleetState{size: n}
	s.RefreshUnvisited()
	return s
}

// RefreshUnvisited recomputes Unvisited as all customer ids minus the union
// of every closed route and the current route. The result is sorted
// ascending and does not depend on route order.
func (s *FleetState) RefreshUnvisited() {
	visited := make([]bool, s.size)
	for _, r := range s.Routes {
		for _, n := range r {
			visited[n] = true
		}
	}
	for _, n := range s.Route {
		visited[n] = true
	}

	unvisited := make([]int, 0, s.size)
	for id := 1; id < s.size; id++ {
		if !visited[id] {
			unvisited = append(unvisited, id)
		}
	}
	s.Unvisited = unvisited
}

// CloseRoute appends the current route to the closed routes and resets it.
// An empty current route is discarded rather than counted as a vehicle.
func (s *FleetState) CloseRoute() {
	if len(s.Route) > 0 {
		s.Routes = append(s.Routes, s.Route)
	}
	s.Route = nil
}

func (s *FleetState) Size() int { return s.size }
