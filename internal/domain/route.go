package domain

import "slices"

// Route is an ordered sequence of customer ids. Once non-trivial it starts
// and ends at the depot: [0, ..., 0].
//
// Routes are treated as immutable values: Insert returns a fresh copy and
// never touches the receiver, so candidate routes can be built and
// discarded without affecting the route they were derived from.
type Route []int

// Insert returns a new route with node placed at position pos.
func (r Route) Insert(pos int, node int) Route {
	out := make(Route, 0, len(r)+1)
	out = append(out, r[:pos]...)
	out = append(out, node)
	out = append(out, r[pos:]...)
	return out
}

func (r Route) Contains(node int) bool { return slices.Contains(r, node) }

// Customers returns the non-depot stops in visiting order.
func (r Route) Customers() []int {
	out := make([]int, 0, len(r))
	for _, n := range r {
		if n != DepotID {
			out = append(out, n)
		}
	}
	return out
}

func (r Route) Clone() Route { return slices.Clone(r) }

// Represents the computed timing at a single stop of a route.
// Departure is Arrival plus the customer's service time; the depot's
// first occurrence has zero arrival, departure, and travel time.
type StopTime struct {
	Node       int     `json:"node"`
	Due        float64 `json:"due"`
	ReadyTime  float64 `json:"readyTime"`
	TravelTime float64 `json:"travelTime"`
	Arrival    float64 `json:"arrival"`
	Departure  float64 `json:"departure"`
}

// Schedule is the per-stop timing of a route, recomputed from scratch whenever needed.
type Schedule []StopTime
