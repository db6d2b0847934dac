package entity

import (
	"maps"
	"slices"
)

// DropReason names why a row was excluded from a site table.
type DropReason string

const (
	DropMissingID       DropReason = "missing_id"
	DropMissingLocation DropReason = "missing_location"
	DropInvalidLocation DropReason = "invalid_location"
	DropMissingTonnage  DropReason = "missing_tonnage"
	DropInvalidTonnage  DropReason = "invalid_tonnage"
	DropMissingGrade    DropReason = "missing_grade"
	DropInvalidGrade    DropReason = "invalid_grade"
)

// SiteTable is a validated, ordered site table plus the bookkeeping of rejected rows.
// Received counts rows before validation, so an empty table with Received > 0
// means everything was filtered rather than nothing returned.
type SiteTable struct {
	Sites    []SiteRecord
	Received int
	Dropped  map[DropReason]int
}

// NewSiteTable returns an empty table with room for capacity sites.
func NewSiteTable(capacity int) SiteTable {
	return SiteTable{
		Sites:   make([]SiteRecord, 0, capacity),
		Dropped: make(map[DropReason]int),
	}
}

// Drop records one rejected row.
func (t *SiteTable) Drop(reason DropReason) {
	if t.Dropped == nil {
		t.Dropped = make(map[DropReason]int)
	}
	t.Dropped[reason]++
}

// DroppedTotal returns the number of rejected rows.
func (t SiteTable) DroppedTotal() int {
	total := 0
	for _, n := range t.Dropped {
		total += n
	}

	return total
}

// Reasons returns the drop reasons present, sorted.
func (t SiteTable) Reasons() []DropReason {
	return slices.Sorted(maps.Keys(t.Dropped))
}

// Append concatenates other after t, preserving row order.
func (t *SiteTable) Append(other SiteTable) {
	t.Sites = append(t.Sites, other.Sites...)
	t.Received += other.Received
	for reason, n := range other.Dropped {
		if t.Dropped == nil {
			t.Dropped = make(map[DropReason]int)
		}
		t.Dropped[reason] += n
	}
}
