package domain

// ConstraintKind names one of the feasibility constraints of a route.
type ConstraintKind string

const (
	ConstraintCapacity  ConstraintKind = "capacity"
	ConstraintSchedule  ConstraintKind = "schedule"
	ConstraintFleetSize ConstraintKind = "fleet_size"
)

// Diagnostic describes a rejected route: the first violated constraint and
// the offending route. Diagnostics are observational only.
type Diagnostic struct {
	Kind  ConstraintKind `json:"kind"`
	Route Route          `json:"route"`
}
