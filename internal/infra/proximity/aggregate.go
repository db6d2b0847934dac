// Package proximity merges nearby mineral sites into grade-tonnage groups.
//
// Grouping is a single greedy pass in table order. The first unprocessed site seeds
// a group and absorbs every other unprocessed site closer than the threshold to the
// seed itself. Membership is not transitive: two members may be farther apart than
// the threshold as long as both are close to the seed.
package proximity

import (
	"fmt"
	"math"
	"strings"

	"minmod/internal/domain/entity"
	"minmod/internal/errors"
)

var (
	// ErrInvalidThreshold is returned for a negative or NaN threshold.
	ErrInvalidThreshold = errors.New("proximity threshold must be a non-negative number")
	// ErrMatrixMismatch is returned when the matrix was not built for the given site table.
	ErrMatrixMismatch = errors.New("distance matrix does not match site table")
)

// ComputationError flags a group whose tonnage-weighted grade is undefined.
type ComputationError struct {
	SeedID       string
	Members      int
	TonnageTotal float64
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("weighted grade undefined for group seeded at %s (%d members): total tonnage is %v",
		e.SeedID, e.Members, e.TonnageTotal)
}

// Aggregate groups sites whose distance to a seed site is strictly below threshold.
// The threshold is expressed in the matrix unit. A zero threshold returns Identity(sites)
// without consulting matrix, which may then be nil.
//
// Groups partition the input: every site index appears in exactly one group.
// A group whose total tonnage is zero or not finite is kept with Err set,
// singletons included.
func Aggregate(sites []entity.SiteRecord, matrix *entity.DistanceMatrix, threshold float64) ([]entity.ProximityGroup, error) {
	if math.IsNaN(threshold) || threshold < 0 {
		return nil, errors.Wrapf(ErrInvalidThreshold, "got %v", threshold)
	}
	if threshold == 0 {
		return Identity(sites), nil
	}
	if len(sites) == 0 {
		return []entity.ProximityGroup{}, nil
	}
	if matrix.Len() != len(sites) {
		return nil, errors.Wrapf(ErrMatrixMismatch, "matrix covers %d sites, table has %d", matrix.Len(), len(sites))
	}

	processed := make([]bool, len(sites))
	groups := make([]entity.ProximityGroup, 0)

	for seed := range sites {
		if processed[seed] {
			continue
		}
		processed[seed] = true
		members := []int{seed}

		for j := range sites {
			if processed[j] {
				continue
			}
			// NaN distances compare false, so a site with broken coordinates is never absorbed.
			if matrix.At(seed, j) < threshold {
				members = append(members, j)
				processed[j] = true
			}
		}

		groups = append(groups, newGroup(sites, members))
	}

	return groups, nil
}

// Identity returns one singleton group per site, in table order.
// Each group reports its site's own grade, whatever the tonnage.
func Identity(sites []entity.SiteRecord) []entity.ProximityGroup {
	groups := make([]entity.ProximityGroup, len(sites))
	for i := range sites {
		g := newGroup(sites, []int{i})
		g.GradeWeightedAvg = sites[i].Grade
		g.Err = nil
		groups[i] = g
	}

	return groups
}

func newGroup(sites []entity.SiteRecord, members []int) entity.ProximityGroup {
	seed := sites[members[0]]

	var tonnage, weighted, metal float64
	names := make([]string, len(members))
	ids := make([]string, len(members))
	for k, idx := range members {
		s := sites[idx]
		tonnage += s.Tonnage
		weighted += s.Grade * s.Tonnage
		metal += s.ContainedMetal
		names[k] = s.Name
		ids[k] = s.ID
	}

	g := entity.ProximityGroup{
		Members:             members,
		TonnageTotal:        tonnage,
		ContainedMetalTotal: metal,
		NameCombined:        strings.Join(names, entity.GroupSeparator),
		IDCombined:          strings.Join(ids, entity.GroupSeparator),
		Lat:                 seed.Lat,
		Lon:                 seed.Lon,
		DepositType:         seed.DepositType,
		Commodity:           seed.Commodity,
	}

	switch {
	case tonnage == 0 || math.IsNaN(tonnage) || math.IsInf(tonnage, 0):
		g.GradeWeightedAvg = math.NaN()
		g.Err = &ComputationError{SeedID: seed.ID, Members: len(members), TonnageTotal: tonnage}
	case len(members) == 1:
		g.GradeWeightedAvg = seed.Grade
	default:
		g.GradeWeightedAvg = weighted / tonnage
	}

	return g
}
