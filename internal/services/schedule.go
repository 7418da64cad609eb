package services

import (
	"insertion-route-service/internal/domain"
	"insertion-route-service/internal/ports"
)

// ScheduleCalculator derives arrival and departure times for a route.
// It holds read-only references to the customer table and distances and
// is safe for concurrent use.
type ScheduleCalculator struct {
	customers []domain.Customer
	distances ports.DistanceProvider
}

func NewScheduleCalculator(customers []domain.Customer, distances ports.DistanceProvider) *ScheduleCalculator {
	return &ScheduleCalculator{customers: customers, distances: distances}
}

// ComputeSchedule propagates time along the route.
//
// The first stop is the depot start and has zero arrival, departure, and
// travel time. Every later stop is reached at max(readyTime, previous
// departure + travel time): a vehicle arriving early waits for the window
// to open.
func (s *ScheduleCalculator) ComputeSchedule(route domain.Route) domain.Schedule {
	schedule := make(domain.Schedule, 0, len(route))

	for i, node := range route {
		c := s.customers[node]

		if i == 0 {
			schedule = append(schedule, domain.StopTime{
				Node:      node,
				Due:       c.Due,
				ReadyTime: c.ReadyTime,
			})
			continue
		}

		travel := s.distances.Length(route[i-1], node)
		currentTime := schedule[i-1].Departure
		arrival := max(c.ReadyTime, currentTime+travel)

		schedule = append(schedule, domain.StopTime{
			Node:       node,
			Due:        c.Due,
			ReadyTime:  c.ReadyTime,
			TravelTime: travel,
			Arrival:    arrival,
			Departure:  arrival + c.ServiceTime,
		})
	}

	return schedule
}

// RouteDemand sums the demand of every stop on the route.
func (s *ScheduleCalculator) RouteDemand(route domain.Route) float64 {
	total := 0.0
	for _, node := range route {
		total += s.customers[node].Demand
	}
	return total
}
