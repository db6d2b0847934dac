package entity

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProximityGroup_MarshalJSON(t *testing.T) {
	group := ProximityGroup{
		Members:          []int{0, 1},
		TonnageTotal:     30,
		GradeWeightedAvg: 1.5,
		NameCombined:     "A; B",
		IDCombined:       "ms:a; ms:b",
		Lat:              1,
		Lon:              2,
		DepositType:      "Laterite",
		Commodity:        "nickel",
	}

	raw, err := json.Marshal(group)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.InDelta(t, 1.5, decoded["grade_weighted_avg"], 1e-9)
	assert.InDelta(t, 2, decoded["member_count"], 1e-9)
	assert.Equal(t, "A; B", decoded["name_combined"])
	assert.NotContains(t, decoded, "error")
}

func TestProximityGroup_MarshalJSON_FlaggedGroupHasNullGrade(t *testing.T) {
	group := ProximityGroup{
		Members:          []int{3},
		GradeWeightedAvg: math.NaN(),
		Err:              errors.New("total tonnage is zero"),
	}

	raw, err := json.Marshal(group)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Nil(t, decoded["grade_weighted_avg"])
	assert.Equal(t, "total tonnage is zero", decoded["error"])
}

func TestProximityGroups_Valid(t *testing.T) {
	groups := ProximityGroups{
		{Members: []int{0}},
		{Members: []int{1}, Err: errors.New("undefined")},
		{Members: []int{2}},
	}

	valid := groups.Valid()
	require.Len(t, valid, 2)
	assert.Equal(t, 0, valid[0].Seed())
	assert.Equal(t, 2, valid[1].Seed())
	assert.Equal(t, 1, groups.Flagged())
}
