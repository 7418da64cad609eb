package domain

import (
	"fmt"
	"math"
)

// DistanceMatrix maps an ordered pair (from, to) to a non-negative travel length.
// It is not assumed to be symmetric.
type DistanceMatrix [][]float64

func (m DistanceMatrix) Size() int { return len(m) }

// Length returns the travel length from one customer to another.
// Out-of-range ids panic: they violate the data-preparation contract.
func (m DistanceMatrix) Length(from, to int) float64 { return m[from][to] }

// Validate rejects matrices that are not square, carry negative or
// non-finite entries, or have a non-zero diagonal.
func (m DistanceMatrix) Validate() error {
	n := len(m)
	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("%w: distance row %d has %d entries, want %d", ErrInvalidInstance, i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("%w: distance %d -> %d is %v", ErrInvalidInstance, i, j, v)
			}
		}
		if row[i] != 0 {
			return fmt.Errorf("%w: distance %d -> %d must be 0, got %v", ErrInvalidInstance, i, i, row[i])
		}
	}
	return nil
}
