package sitetable

import (
	"encoding/csv"
	"io"
	"strconv"

	"minmod/internal/domain/entity"
	"minmod/internal/errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GroupHeader is the column layout of an aggregation export.
var GroupHeader = []string{
	"tonnage_total", "grade_weighted_avg", "contained_metal_total",
	"name_combined", "id_combined", "lat", "lon",
	"deposit_type", "commodity", "member_count", "error",
}

// WriteGroupsCSV writes groups as a flat table. Flagged groups have an empty grade and an error message.
func WriteGroupsCSV(w io.Writer, groups []entity.ProximityGroup) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(GroupHeader); err != nil {
		return errors.WithStack(err)
	}

	for _, g := range groups {
		grade, msg := "", ""
		if g.Err != nil {
			msg = g.Err.Error()
		} else {
			grade = formatFloat(g.GradeWeightedAvg)
		}

		record := []string{
			formatFloat(g.TonnageTotal),
			grade,
			formatFloat(g.ContainedMetalTotal),
			g.NameCombined,
			g.IDCombined,
			formatFloat(g.Lat),
			formatFloat(g.Lon),
			g.DepositType,
			g.Commodity,
			strconv.Itoa(len(g.Members)),
			msg,
		}
		if err := cw.Write(record); err != nil {
			return errors.WithStack(err)
		}
	}

	cw.Flush()

	return errors.WithStack(cw.Error())
}

// GroupsFeatureCollection renders groups as point features at their seed location.
func GroupsFeatureCollection(groups []entity.ProximityGroup) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, g := range groups {
		f := geojson.NewFeature(orb.Point{g.Lon, g.Lat})
		f.Properties["tonnage_total"] = g.TonnageTotal
		f.Properties["contained_metal_total"] = g.ContainedMetalTotal
		f.Properties["name_combined"] = g.NameCombined
		f.Properties["id_combined"] = g.IDCombined
		f.Properties["deposit_type"] = g.DepositType
		f.Properties["commodity"] = g.Commodity
		f.Properties["member_count"] = len(g.Members)
		if g.Err != nil {
			f.Properties["grade_weighted_avg"] = nil
			f.Properties["error"] = g.Err.Error()
		} else {
			f.Properties["grade_weighted_avg"] = g.GradeWeightedAvg
		}

		fc.Append(f)
	}

	return fc
}
