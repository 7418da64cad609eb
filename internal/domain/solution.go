package domain

import "time"

// RouteRecord is the reported form of a single vehicle route.
type RouteRecord struct {
	Route  Route    `json:"route"`
	Time   Schedule `json:"time"`
	Demand float64  `json:"demand"`
}

// FleetSummary reports fleet usage and the customers no vehicle could serve.
type FleetSummary struct {
	NumberOfUsedVehicles int   `json:"numberOfUsedVehicles"`
	UnvisitedNodes       []int `json:"unVisitedNodes"`
}

// Solution is the final, read-only result of a construction run.
type Solution struct {
	Routes  []RouteRecord `json:"routes"`
	Summary FleetSummary  `json:"summary"`
}

// Records returns the flat output layout: one record per route followed by
// the fleet summary record.
func (s *Solution) Records() []any {
	out := make([]any, 0, len(s.Routes)+1)
	for _, r := range s.Routes {
		out = append(out, r)
	}
	out = append(out, s.Summary)
	return out
}

// Plan is a persisted solution together with the run parameters that produced it.
type Plan struct {
	ID        string      `json:"id"`
	Instance  string      `json:"instance"`
	Fleet     FleetConfig `json:"fleet"`
	CreatedAt time.Time   `json:"created_at"`
	Solution  Solution    `json:"solution"`
}
