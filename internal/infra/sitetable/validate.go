// Package sitetable turns raw backend rows and CSV snapshots into validated site tables,
// and serializes aggregation output.
package sitetable

import (
	"math"

	"minmod/internal/domain/entity"
	"minmod/internal/infra/geodesic"
)

// validate checks a candidate site and returns the first failing reason.
func validate(s entity.SiteRecord) (entity.DropReason, bool) {
	switch {
	case s.ID == "":
		return entity.DropMissingID, false
	case !geodesic.ValidCoordinate(s.Lat, s.Lon):
		return entity.DropInvalidLocation, false
	case !finiteNonNegative(s.Tonnage):
		return entity.DropInvalidTonnage, false
	case !finiteNonNegative(s.Grade) || s.Grade > 100:
		return entity.DropInvalidGrade, false
	}

	return "", true
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
