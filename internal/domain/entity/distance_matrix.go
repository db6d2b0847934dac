package entity

import (
	"minmod/internal/errors"
)

// ErrIndexOutOfRange is returned when a distance is requested for an index outside the matrix.
var ErrIndexOutOfRange = errors.New("distance matrix index out of range")

// DistanceMatrix holds the geodesic distance of every unordered pair of site indices.
// Only the strict upper triangle is stored; lookups are symmetric and the diagonal is zero.
type DistanceMatrix struct {
	n     int
	unit  string
	cells []float64
}

// NewDistanceMatrix builds a complete matrix over n sites, calling dist once per unordered pair (i < j).
func NewDistanceMatrix(n int, unit string, dist func(i, j int) float64) *DistanceMatrix {
	if n < 0 {
		n = 0
	}

	m := &DistanceMatrix{
		n:     n,
		unit:  unit,
		cells: make([]float64, n*(n-1)/2),
	}

	for i := range n {
		for j := i + 1; j < n; j++ {
			m.cells[m.offset(i, j)] = dist(i, j)
		}
	}

	return m
}

// Len returns the number of sites the matrix was built for.
func (m *DistanceMatrix) Len() int {
	if m == nil {
		return 0
	}

	return m.n
}

// Pairs returns the number of stored pairs, n*(n-1)/2.
func (m *DistanceMatrix) Pairs() int {
	if m == nil {
		return 0
	}

	return len(m.cells)
}

// Unit returns the distance unit of the stored values.
func (m *DistanceMatrix) Unit() string {
	if m == nil {
		return ""
	}

	return m.unit
}

// At returns the distance between sites i and j.
// It panics when either index is out of range, like a slice access.
func (m *DistanceMatrix) At(i, j int) float64 {
	if i == j {
		if i < 0 || i >= m.Len() {
			panic(ErrIndexOutOfRange)
		}

		return 0
	}
	if i > j {
		i, j = j, i
	}
	if i < 0 || j >= m.Len() {
		panic(ErrIndexOutOfRange)
	}

	return m.cells[m.offset(i, j)]
}

// Lookup is the non-panicking form of At.
func (m *DistanceMatrix) Lookup(i, j int) (float64, error) {
	if i < 0 || j < 0 || i >= m.Len() || j >= m.Len() {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "pair (%d, %d) for %d sites", i, j, m.Len())
	}

	return m.At(i, j), nil
}

// offset maps i < j to the packed upper-triangle position.
func (m *DistanceMatrix) offset(i, j int) int {
	return i*(2*m.n-i-1)/2 + (j - i - 1)
}
