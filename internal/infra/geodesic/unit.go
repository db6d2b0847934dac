package geodesic

import (
	"strings"

	"minmod/internal/errors"
)

// Unit is the distance unit shared by the distance engine and the proximity threshold.
type Unit string

const (
	Kilometers Unit = "km"
	Miles      Unit = "mi"
)

const (
	earthRadiusKm = 6371.0
	earthRadiusMi = 3958.8
)

// ErrUnknownUnit is returned by ParseUnit for unsupported unit names.
var ErrUnknownUnit = errors.New("unknown distance unit")

// ParseUnit converts a configuration value into a Unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "km", "kilometer", "kilometers", "kilometre", "kilometres":
		return Kilometers, nil
	case "mi", "mile", "miles":
		return Miles, nil
	default:
		return "", errors.Wrapf(ErrUnknownUnit, "%q", s)
	}
}

// EarthRadius returns the mean Earth radius expressed in u.
func (u Unit) EarthRadius() float64 {
	if u == Miles {
		return earthRadiusMi
	}

	return earthRadiusKm
}

func (u Unit) String() string {
	return string(u)
}
