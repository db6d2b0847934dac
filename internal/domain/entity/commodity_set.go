package entity

import (
	"slices"
	"strings"
)

// CommoditySet is the canonical, order-independent set of commodities a site table was queried for.
type CommoditySet []string

// NewCommoditySet lower-cases, trims, de-duplicates and sorts the given names.
// Blank names are dropped.
func NewCommoditySet(names ...string) CommoditySet {
	set := make(CommoditySet, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		set = append(set, name)
	}

	slices.Sort(set)

	return slices.Compact(set)
}

// Key returns the cache key for the set.
func (c CommoditySet) Key() string {
	return strings.Join(c, "|")
}

// Empty reports whether the set holds no commodity.
func (c CommoditySet) Empty() bool {
	return len(c) == 0
}
