// Package geodesic computes great-circle distances between site coordinates.
package geodesic

import (
	"math"
	"sync/atomic"

	"minmod/internal/domain/entity"

	"github.com/golang/geo/s2"
)

// Distance returns the haversine great-circle distance between two points given in degrees.
// Coordinates must be valid; see ValidCoordinate.
func Distance(lat1, lon1, lat2, lon2 float64, unit Unit) float64 {
	// Canonical argument order keeps the result bit-identical in both directions.
	if lat2 < lat1 || (lat2 == lat1 && lon2 < lon1) {
		lat1, lon1, lat2, lon2 = lat2, lon2, lat1, lon1
	}

	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)

	return p1.Distance(p2).Radians() * unit.EarthRadius()
}

// ValidCoordinate reports whether lat/lon are finite and inside the geographic bounds.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) ||
		math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}

	return lat >= -90 && lat <= 90 &&
		lon >= -180 && lon <= 180
}

// Engine computes distances in a fixed unit and counts every evaluation.
type Engine struct {
	unit        Unit
	evaluations atomic.Int64
}

// NewEngine creates a distance engine for the given unit
func NewEngine(unit Unit) *Engine {
	if unit == "" {
		unit = Kilometers
	}

	return &Engine{unit: unit}
}

// Unit returns the engine's distance unit.
func (e *Engine) Unit() Unit {
	return e.unit
}

// Between returns the distance between two sites.
func (e *Engine) Between(a, b entity.SiteRecord) float64 {
	e.evaluations.Add(1)

	return Distance(a.Lat, a.Lon, b.Lat, b.Lon, e.unit)
}

// Matrix computes the complete pairwise distance matrix of sites, n*(n-1)/2 evaluations.
func (e *Engine) Matrix(sites []entity.SiteRecord) *entity.DistanceMatrix {
	return entity.NewDistanceMatrix(len(sites), e.unit.String(), func(i, j int) float64 {
		return e.Between(sites[i], sites[j])
	})
}

// Evaluations returns the number of distances computed so far.
func (e *Engine) Evaluations() int64 {
	return e.evaluations.Load()
}
