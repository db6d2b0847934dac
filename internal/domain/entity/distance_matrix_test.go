package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceMatrix_CompleteAndSymmetric(t *testing.T) {
	calls := 0
	m := NewDistanceMatrix(5, "km", func(i, j int) float64 {
		calls++

		return float64(10*i + j)
	})

	assert.Equal(t, 5, m.Len())
	assert.Equal(t, 10, m.Pairs())
	assert.Equal(t, 10, calls)
	assert.Equal(t, "km", m.Unit())

	for i := range 5 {
		assert.Zero(t, m.At(i, i))
		for j := i + 1; j < 5; j++ {
			assert.Equal(t, float64(10*i+j), m.At(i, j))
			assert.Equal(t, m.At(i, j), m.At(j, i))
		}
	}
}

func TestDistanceMatrix_Empty(t *testing.T) {
	m := NewDistanceMatrix(0, "km", func(i, j int) float64 {
		t.Fatalf("unexpected call for (%d, %d)", i, j)

		return 0
	})

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Pairs())
}

func TestDistanceMatrix_Single(t *testing.T) {
	m := NewDistanceMatrix(1, "km", func(int, int) float64 { return 1 })

	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Pairs())
	assert.Zero(t, m.At(0, 0))
}

func TestDistanceMatrix_Lookup(t *testing.T) {
	m := NewDistanceMatrix(3, "mi", func(i, j int) float64 { return float64(i + j) })

	d, err := m.Lookup(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, d)

	_, err = m.Lookup(0, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = m.Lookup(-1, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDistanceMatrix_AtPanicsOutOfRange(t *testing.T) {
	m := NewDistanceMatrix(2, "km", func(int, int) float64 { return 1 })

	assert.Panics(t, func() { m.At(0, 2) })
	assert.Panics(t, func() { m.At(2, 2) })
}

func TestDistanceMatrix_NilIsEmpty(t *testing.T) {
	var m *DistanceMatrix

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Pairs())
	assert.Empty(t, m.Unit())
}
