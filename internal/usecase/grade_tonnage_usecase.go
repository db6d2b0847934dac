package usecase

import (
	"context"
	"time"

	"minmod/internal/domain/entity"
	"minmod/internal/domain/service"
)

// GradeTonnageInput selects the commodities to aggregate and the proximity threshold.
type GradeTonnageInput struct {
	Commodities []string

	// Threshold in the configured unit. Nil uses the configured default; zero disables merging.
	Threshold *float64
}

// GradeTonnageSummary describes how a grade-tonnage result was produced.
type GradeTonnageSummary struct {
	Commodities   []string                  `json:"commodities"`
	Threshold     float64                   `json:"threshold"`
	Unit          string                    `json:"unit"`
	SitesReceived int                       `json:"sites_received"`
	SitesUsed     int                       `json:"sites_used"`
	SitesDropped  map[entity.DropReason]int `json:"sites_dropped"`
	Groups        int                       `json:"groups"`
	FlaggedGroups int                       `json:"flagged_groups"`
	DepositTypes  []string                  `json:"deposit_types"`
	Countries     []string                  `json:"countries"`
}

// GradeTonnageResult holds the proximity groups and the sites they index.
type GradeTonnageResult struct {
	Groups  entity.ProximityGroups `json:"groups"`
	Summary GradeTonnageSummary    `json:"summary"`
	Sites   []entity.SiteRecord    `json:"-"`
}

// CacheStatus is a snapshot of the distance cache.
type CacheStatus struct {
	Keys      []string             `json:"keys"`
	Entries   int                  `json:"entries"`
	Items     []service.CacheEntry `json:"items"`
	Capacity  int                  `json:"capacity"`
	Retention time.Duration        `json:"-"`
}

// GradeTonnageUsecase defines the grade-tonnage model operations
type GradeTonnageUsecase interface {
	// Aggregate fetches the sites of every commodity and merges nearby ones.
	Aggregate(ctx context.Context, input *GradeTonnageInput) (*GradeTonnageResult, error)

	// ListCommodities returns the commodities that can be aggregated.
	ListCommodities(ctx context.Context) ([]entity.Commodity, error)

	// CacheStatus reports the distance cache content.
	CacheStatus() CacheStatus
}
