package sitetable

import (
	"context"
	"strings"

	"minmod/internal/domain/entity"
	"minmod/internal/domain/repository"
	"minmod/internal/infra/dataservice"

	"gocloud.dev/gcerrors"
)

// GradeTonnageFetcher is the data-service call the remote repository depends on.
type GradeTonnageFetcher interface {
	GradeTonnage(ctx context.Context, commodity string) ([]dataservice.GradeTonnageRow, error)
}

type remoteRepository struct {
	fetcher    GradeTonnageFetcher
	normalizer *Normalizer
}

// NewRemoteRepository reads site tables from the MinMod data service.
func NewRemoteRepository(fetcher GradeTonnageFetcher, normalizer *Normalizer) repository.SiteRepository {
	if normalizer == nil {
		normalizer = NewNormalizer()
	}

	return &remoteRepository{
		fetcher:    fetcher,
		normalizer: normalizer,
	}
}

func (r *remoteRepository) FindByCommodity(ctx context.Context, commodity string) (entity.SiteTable, error) {
	rows, err := r.fetcher.GradeTonnage(ctx, commodity)
	if err != nil {
		return entity.SiteTable{}, err
	}

	return r.normalizer.Normalize(commodity, rows), nil
}

// SnapshotKey returns the object key holding the snapshot of commodity.
func SnapshotKey(commodity string) string {
	return strings.ToLower(strings.TrimSpace(commodity)) + ".csv"
}

// FindByCommodity loads the snapshot stored under SnapshotKey(commodity).
// A missing snapshot is an empty table. Sites without a commodity column take the requested one.
func (l *CSVLoader) FindByCommodity(ctx context.Context, commodity string) (entity.SiteTable, error) {
	t, err := l.Load(ctx, SnapshotKey(commodity))
	if gcerrors.Code(err) == gcerrors.NotFound {
		return entity.NewSiteTable(0), nil
	}
	if err != nil {
		return entity.SiteTable{}, err
	}

	name := strings.ToLower(strings.TrimSpace(commodity))
	for i := range t.Sites {
		if t.Sites[i].Commodity == "" {
			t.Sites[i].Commodity = name
		}
	}

	return t, nil
}
