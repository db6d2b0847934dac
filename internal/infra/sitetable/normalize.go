package sitetable

import (
	"cmp"
	"slices"
	"strings"

	"minmod/internal/domain/entity"
	"minmod/internal/errors"
	"minmod/internal/infra/dataservice"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// reportPrefixes are technical-report boilerplate found in site names.
var reportPrefixes = []string{
	"NI 43-101 Technical Report for the",
	"NI 43-101 Technical Report on the",
	"NI 43-101 Technical Report - ",
	"NI 43-101 Technical Report:",
	"NI 43-101 Technical Report ",
	"Technical Report and Preliminary Economic Assessment on the",
	"Technical Report on the Preliminary Assessment of the",
	"Technical Report on the",
	"Technical Report and PEA for the",
	"TECHNICAL REPORT AND PRELIMINARY ECONOMIC ASSESSMENT",
	"Preliminary Economic Assessment (PEA) #3 of the",
	"Updated Preliminary Economic Assessment on the",
	"Preliminary Economic Assessment (PEA) of the",
	"Technical Report",
	"TECHNICAL REPORT",
}

// Normalizer converts data-service rows into site records.
type Normalizer struct {
	prefixes []string
}

// NewNormalizer returns a normalizer stripping the known report prefixes plus extra.
func NewNormalizer(extra ...string) *Normalizer {
	prefixes := slices.Concat(reportPrefixes, extra)
	// Longest first so that a specific prefix wins over its shorter stem.
	slices.SortStableFunc(prefixes, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})

	return &Normalizer{prefixes: prefixes}
}

// CleanName removes the first matching report prefix from a site name.
func (n *Normalizer) CleanName(name string) string {
	for _, p := range n.prefixes {
		if strings.Contains(name, p) {
			if cleaned := strings.TrimSpace(strings.ReplaceAll(name, p, "")); cleaned != "" {
				return cleaned
			}

			break
		}
	}

	return strings.TrimSpace(name)
}

// Normalize validates raw rows of one commodity, keeping their order.
// Rows without a usable location, tonnage or grade are counted in SiteTable.Dropped.
func (n *Normalizer) Normalize(commodity string, raw []dataservice.GradeTonnageRow) entity.SiteTable {
	t := entity.NewSiteTable(len(raw))
	t.Received = len(raw)
	commodity = strings.ToLower(strings.TrimSpace(commodity))

	for _, row := range raw {
		if strings.TrimSpace(row.Location) == "" {
			t.Drop(entity.DropMissingLocation)

			continue
		}
		pt, err := ParseLocation(row.Location)
		if err != nil {
			t.Drop(entity.DropInvalidLocation)

			continue
		}
		if row.TotalTonnage == nil {
			t.Drop(entity.DropMissingTonnage)

			continue
		}
		if row.TotalGrade == nil {
			t.Drop(entity.DropMissingGrade)

			continue
		}

		site := entity.SiteRecord{
			ID:          strings.TrimSpace(row.MineralSite),
			Name:        n.CleanName(row.Name),
			Lat:         pt.Lat(),
			Lon:         pt.Lon(),
			Tonnage:     *row.TotalTonnage,
			Grade:       *row.TotalGrade,
			DepositType: strings.TrimSpace(row.DepositType),
			Commodity:   commodity,
			Country:     strings.TrimSpace(row.Country),
		}
		site.ContainedMetal = containedMetal(row.ContainedMetal, site.Tonnage, site.Grade)
		if site.Name == "" {
			site.Name = site.ID
		}

		if reason, ok := validate(site); !ok {
			t.Drop(reason)

			continue
		}
		t.Sites = append(t.Sites, site)
	}

	return t
}

// ParseLocation reads a WKT point, or the first point of a multipoint, as lon/lat.
func ParseLocation(s string) (orb.Point, error) {
	geom, err := wkt.Unmarshal(strings.TrimSpace(s))
	if err != nil {
		return orb.Point{}, errors.Wrapf(err, "parse location %q", s)
	}

	switch g := geom.(type) {
	case orb.Point:
		return g, nil
	case orb.MultiPoint:
		if len(g) > 0 {
			return g[0], nil
		}
	}

	return orb.Point{}, errors.Errorf("location %q is not a point", s)
}

func containedMetal(reported *float64, tonnage, grade float64) float64 {
	if reported != nil && finiteNonNegative(*reported) {
		return *reported
	}

	return entity.ContainedMetalOf(tonnage, grade)
}
