package entity

import (
	"encoding/json"
)

// GroupSeparator joins member names and identifiers of a proximity group.
const GroupSeparator = "; "

// ProximityGroup is a set of sites merged around a seed site.
// Representative location, deposit type and commodity come from the seed, which is Members[0].
type ProximityGroup struct {
	Members             []int
	TonnageTotal        float64
	GradeWeightedAvg    float64
	ContainedMetalTotal float64
	NameCombined        string
	IDCombined          string
	Lat                 float64
	Lon                 float64
	DepositType         string
	Commodity           string

	// Err is set when the weighted grade is undefined for this group.
	// GradeWeightedAvg is NaN in that case and must not be charted.
	Err error
}

// Seed returns the index of the site that anchored the group.
func (g ProximityGroup) Seed() int {
	return g.Members[0]
}

// Valid reports whether the group carries a defined weighted grade.
func (g ProximityGroup) Valid() bool {
	return g.Err == nil
}

type proximityGroupJSON struct {
	TonnageTotal        float64  `json:"tonnage_total"`
	GradeWeightedAvg    *float64 `json:"grade_weighted_avg"`
	ContainedMetalTotal float64  `json:"contained_metal_total"`
	NameCombined        string   `json:"name_combined"`
	IDCombined          string   `json:"id_combined"`
	Lat                 float64  `json:"lat"`
	Lon                 float64  `json:"lon"`
	DepositType         string   `json:"deposit_type"`
	Commodity           string   `json:"commodity"`
	MemberCount         int      `json:"member_count"`
	Error               string   `json:"error,omitempty"`
}

// MarshalJSON emits a null grade and the error message for flagged groups, never NaN.
func (g ProximityGroup) MarshalJSON() ([]byte, error) {
	out := proximityGroupJSON{
		TonnageTotal:        g.TonnageTotal,
		ContainedMetalTotal: g.ContainedMetalTotal,
		NameCombined:        g.NameCombined,
		IDCombined:          g.IDCombined,
		Lat:                 g.Lat,
		Lon:                 g.Lon,
		DepositType:         g.DepositType,
		Commodity:           g.Commodity,
		MemberCount:         len(g.Members),
	}

	if g.Err != nil {
		out.Error = g.Err.Error()
	} else {
		grade := g.GradeWeightedAvg
		out.GradeWeightedAvg = &grade
	}

	return json.Marshal(out)
}

// ProximityGroups is the output table of an aggregation pass.
type ProximityGroups []ProximityGroup

// Valid returns the groups with a defined weighted grade, preserving order.
func (gs ProximityGroups) Valid() ProximityGroups {
	valid := make(ProximityGroups, 0, len(gs))
	for _, g := range gs {
		if g.Valid() {
			valid = append(valid, g)
		}
	}

	return valid
}

// Flagged counts the groups whose weighted grade is undefined.
func (gs ProximityGroups) Flagged() int {
	flagged := 0
	for _, g := range gs {
		if !g.Valid() {
			flagged++
		}
	}

	return flagged
}
