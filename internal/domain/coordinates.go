package domain

import "math"

// Immutable planar coordinates of a customer on the instance grid.
type Coordinates struct {
	X float64
	Y float64
}

// Euclidean distance between two points.
func (c Coordinates) DistanceTo(o Coordinates) float64 {
	return math.Hypot(o.X-c.X, o.Y-c.Y)
}
