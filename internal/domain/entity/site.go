// Package entity contains the core business objects of the project.
package entity

import (
	"github.com/paulmach/orb"
)

// SiteRecord is one mineral site of a grade-tonnage table.
// Records are produced by the site table loader and never mutated afterwards.
type SiteRecord struct {
	ID             string  `json:"id"`              // Mineral site URI.
	Name           string  `json:"name"`            // Display name.
	Lat            float64 `json:"lat"`             // Latitude in degrees, [-90, 90].
	Lon            float64 `json:"lon"`             // Longitude in degrees, [-180, 180].
	Tonnage        float64 `json:"tonnage"`         // Ore tonnage in million tonnes.
	Grade          float64 `json:"grade"`           // Ore grade in percent.
	ContainedMetal float64 `json:"contained_metal"` // Million tonnes of metal, Tonnage*Grade/100 unless reported.
	DepositType    string  `json:"deposit_type"`
	Commodity      string  `json:"commodity"`
	Country        string  `json:"country,omitempty"`
}

// Point returns the site location as an orb point (lon, lat).
func (s SiteRecord) Point() orb.Point {
	return orb.Point{s.Lon, s.Lat}
}

// ContainedMetalOf derives contained metal from tonnage and grade.
func ContainedMetalOf(tonnage, grade float64) float64 {
	return tonnage * grade / 100
}
