// Package repository defines the interfaces for the data-access layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"minmod/internal/domain/entity"
)

// SiteRepository provides the grade-tonnage site table of a commodity.
type SiteRepository interface {
	// FindByCommodity returns the validated sites reporting commodity, in source order.
	// An empty table with Received > 0 means every row was rejected.
	FindByCommodity(ctx context.Context, commodity string) (entity.SiteTable, error)
}

// CommodityRepository lists the commodities that can be queried.
type CommodityRepository interface {
	ListCommodities(ctx context.Context) ([]entity.Commodity, error)
}
