package geodesic

import (
	"math"
	"testing"

	"minmod/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_KnownPairs(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		unit       Unit
		want       float64
		delta      float64
	}{
		{name: "identical points", lat1: 25.033, lon1: 121.5654, lat2: 25.033, lon2: 121.5654, unit: Kilometers, want: 0, delta: 1e-9},
		{name: "one degree of longitude at the equator", lat1: 0, lon1: 0, lat2: 0, lon2: 1, unit: Kilometers, want: 111.195, delta: 0.01},
		{name: "paris to london", lat1: 48.8566, lon1: 2.3522, lat2: 51.5074, lon2: -0.1278, unit: Kilometers, want: 343.5, delta: 1.0},
		{name: "paris to london in miles", lat1: 48.8566, lon1: 2.3522, lat2: 51.5074, lon2: -0.1278, unit: Miles, want: 213.4, delta: 1.0},
		{name: "antipodal", lat1: 0, lon1: 0, lat2: 0, lon2: 180, unit: Kilometers, want: math.Pi * earthRadiusKm, delta: 1e-6},
		{name: "pole to pole", lat1: 90, lon1: 0, lat2: -90, lon2: 0, unit: Miles, want: math.Pi * earthRadiusMi, delta: 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2, tt.unit)
			assert.InDelta(t, tt.want, got, tt.delta)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	points := [][2]float64{
		{0, 0}, {0, 0.001}, {50, 50}, {-33.8688, 151.2093}, {64.1466, -21.9426}, {-89.9, 179.9},
	}

	for i, a := range points {
		for j, b := range points {
			if i == j {
				continue
			}
			assert.Equal(t,
				Distance(a[0], a[1], b[0], b[1], Kilometers),
				Distance(b[0], b[1], a[0], a[1], Kilometers),
				"pair (%d, %d)", i, j)
		}
	}
}

func TestValidCoordinate(t *testing.T) {
	assert.True(t, ValidCoordinate(0, 0))
	assert.True(t, ValidCoordinate(90, 180))
	assert.True(t, ValidCoordinate(-90, -180))
	assert.False(t, ValidCoordinate(90.0001, 0))
	assert.False(t, ValidCoordinate(0, -180.5))
	assert.False(t, ValidCoordinate(math.NaN(), 0))
	assert.False(t, ValidCoordinate(0, math.Inf(1)))
}

func TestParseUnit(t *testing.T) {
	for _, s := range []string{"km", "KM", " kilometers ", "kilometre"} {
		u, err := ParseUnit(s)
		require.NoError(t, err, s)
		assert.Equal(t, Kilometers, u)
	}

	for _, s := range []string{"mi", "Miles", "mile"} {
		u, err := ParseUnit(s)
		require.NoError(t, err, s)
		assert.Equal(t, Miles, u)
	}

	_, err := ParseUnit("furlong")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestEngine_MatrixCountsEvaluations(t *testing.T) {
	sites := []entity.SiteRecord{
		{ID: "a", Lat: 0, Lon: 0},
		{ID: "b", Lat: 0, Lon: 0.001},
		{ID: "c", Lat: 50, Lon: 50},
		{ID: "d", Lat: -10, Lon: 20},
	}

	engine := NewEngine(Kilometers)
	m := engine.Matrix(sites)

	assert.Equal(t, int64(6), engine.Evaluations())
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, "km", m.Unit())
	assert.InDelta(t, 0.1112, m.At(0, 1), 0.001)
	assert.Equal(t, m.At(1, 3), m.At(3, 1))
}

func TestNewEngine_DefaultsToKilometers(t *testing.T) {
	assert.Equal(t, Kilometers, NewEngine("").Unit())
}
