package ports

// Contract for retrieving the travel length between two customers.
type DistanceProvider interface {
	// Return the travel length from one customer index to another.
	Length(from, to int) float64
}
