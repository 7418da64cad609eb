package distance

import (
	"fmt"
	"math"

	"insertion-route-service/internal/domain"
)

// EuclideanMatrix builds the full distance matrix of an instance from its
// planar coordinates. Each entry is the straight-line distance rounded to
// the nearest integer; the diagonal is zero.
func EuclideanMatrix(customers []domain.Customer) domain.DistanceMatrix {
	n := len(customers)
	m := make(domain.DistanceMatrix, n)
	for i := range customers {
		m[i] = make([]float64, n)
		for j := range customers {
			if i == j {
				continue
			}
			// Rounded to integers so schedules stay exact.
			m[i][j] = math.Round(customers[i].Coordinates().DistanceTo(customers[j].Coordinates()))
		}
	}
	return m
}

// Entry is one cell of a distance matrix in its row-oriented storage form.
type Entry struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Length float64 `json:"length"`
}

// Rows flattens a matrix into per-origin rows of entries.
func Rows(m domain.DistanceMatrix) [][]Entry {
	out := make([][]Entry, len(m))
	for i, row := range m {
		out[i] = make([]Entry, len(row))
		for j, v := range row {
			out[i][j] = Entry{From: i, To: j, Length: v}
		}
	}
	return out
}

// FromRows rebuilds a matrix from row-oriented entries.
// Entries are placed by their From/To fields, not by slice position. Every
// cell must appear exactly once: out-of-range ids, short rows, duplicate or
// missing cells are reported as ErrInvalidInstance.
func FromRows(rows [][]Entry) (domain.DistanceMatrix, error) {
	n := len(rows)
	m := make(domain.DistanceMatrix, n)
	seen := make([][]bool, n)
	for i := range m {
		m[i] = make([]float64, n)
		seen[i] = make([]bool, n)
	}

	count := 0
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: distance row %d has %d entries, want %d", domain.ErrInvalidInstance, i, len(row), n)
		}
		for _, e := range row {
			if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
				return nil, fmt.Errorf("%w: distance %d -> %d outside %d customers", domain.ErrInvalidInstance, e.From, e.To, n)
			}
			if seen[e.From][e.To] {
				return nil, fmt.Errorf("%w: distance %d -> %d listed twice", domain.ErrInvalidInstance, e.From, e.To)
			}
			seen[e.From][e.To] = true
			m[e.From][e.To] = e.Length
			count++
		}
	}

	if count != n*n {
		return nil, fmt.Errorf("%w: %d distances for %d customers", domain.ErrInvalidInstance, count, n)
	}
	return m, nil
}
