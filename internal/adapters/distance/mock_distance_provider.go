package distance

import "insertion-route-service/internal/domain"

type MockPair struct {
	From, To int
	Length   float64
}

// NewMatrixFromPairs builds an n x n matrix from explicit pairs. Pairs are
// directed; unspecified off-diagonal entries stay zero.
func NewMatrixFromPairs(n int, pairs []MockPair) domain.DistanceMatrix {
	m := make(domain.DistanceMatrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for _, p := range pairs {
		m[p.From][p.To] = p.Length
	}
	return m
}

// Symmetric expands undirected pairs into both directions.
func Symmetric(pairs []MockPair) []MockPair {
	out := make([]MockPair, 0, 2*len(pairs))
	for _, p := range pairs {
		out = append(out, p, MockPair{From: p.To, To: p.From, Length: p.Length})
	}
	return out
}
