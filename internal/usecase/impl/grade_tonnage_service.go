package impl

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"minmod/config"
	deliverycontext "minmod/internal/delivery/context"
	"minmod/internal/domain/entity"
	domainerrors "minmod/internal/domain/errors"
	"minmod/internal/domain/repository"
	"minmod/internal/domain/service"
	"minmod/internal/errors"
	"minmod/internal/infra/proximity"
	"minmod/internal/usecase"

	"golang.org/x/sync/errgroup"
)

const outcomeOK = "ok"

type gradeTonnageService struct {
	sites       repository.SiteRepository
	commodities repository.CommodityRepository
	cache       service.DistanceCache
	recorder    service.AggregationRecorder
	aggregation config.AggregationConfig
	concurrency int
	logger      *slog.Logger
}

// NewGradeTonnageService creates the grade-tonnage use case.
// commodities and recorder may be nil.
func NewGradeTonnageService(
	sites repository.SiteRepository,
	commodities repository.CommodityRepository,
	cache service.DistanceCache,
	recorder service.AggregationRecorder,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.GradeTonnageUsecase {
	cfg.ApplyDefaults()

	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &gradeTonnageService{
		sites:       sites,
		commodities: commodities,
		cache:       cache,
		recorder:    recorder,
		aggregation: *cfg.Aggregation,
		concurrency: cfg.DataService.MaxConcurrency,
		logger:      logger,
	}
}

// Aggregate fetches one site table per commodity, concatenates them in canonical
// commodity order and runs the proximity aggregation over the result.
func (s *gradeTonnageService) Aggregate(ctx context.Context, input *usecase.GradeTonnageInput) (*usecase.GradeTonnageResult, error) {
	logger := deliverycontext.Logger(ctx, s.logger)

	set := entity.NewCommoditySet(input.Commodities...)
	if set.Empty() {
		return nil, domainerrors.ErrInvalidCommodity
	}

	threshold := s.aggregation.Threshold
	if input.Threshold != nil {
		threshold = *input.Threshold
	}
	if math.IsNaN(threshold) || threshold < 0 {
		return nil, domainerrors.ErrInvalidThreshold
	}

	table, err := s.fetch(ctx, set)
	if err != nil {
		s.recorder.AggregationCompleted(outcomeOf(err), 0, 0)

		return nil, err
	}

	for reason, n := range table.Dropped {
		s.recorder.RowsRejected(string(reason), n)
	}
	if table.DroppedTotal() > 0 {
		logger.Debug("Rejected site rows",
			slog.String("commodities", set.Key()),
			slog.Int("received", table.Received),
			slog.Int("dropped", table.DroppedTotal()))
	}

	switch {
	case table.Received == 0:
		s.recorder.AggregationCompleted(domainerrors.ErrNoData.ErrorCode(), 0, 0)

		return nil, domainerrors.ErrNoData
	case len(table.Sites) == 0:
		s.recorder.AggregationCompleted(domainerrors.ErrAllFiltered.ErrorCode(), 0, 0)

		return nil, domainerrors.ErrAllFiltered.WithDetails(describeDrops(table))
	case s.aggregation.MaxSites > 0 && len(table.Sites) > s.aggregation.MaxSites:
		s.recorder.AggregationCompleted(domainerrors.ErrTooManySites.ErrorCode(), len(table.Sites), 0)

		return nil, domainerrors.ErrTooManySites.WithDetails(
			strconv.Itoa(len(table.Sites)) + " sites exceed the limit of " + strconv.Itoa(s.aggregation.MaxSites))
	}

	start := time.Now()
	groups, err := s.group(logger, set, table.Sites, threshold)
	if err != nil {
		s.recorder.AggregationCompleted("error", len(table.Sites), 0)

		return nil, err
	}

	result := &usecase.GradeTonnageResult{
		Groups:  groups,
		Sites:   table.Sites,
		Summary: summarize(set, threshold, s.aggregation.Unit, table, groups),
	}

	s.recorder.AggregationCompleted(outcomeOK, len(table.Sites), result.Summary.FlaggedGroups)
	logger.Info("Aggregated grade-tonnage sites",
		slog.String("commodities", set.Key()),
		slog.Float64("threshold", threshold),
		slog.Int("sites", len(table.Sites)),
		slog.Int("groups", len(groups)),
		slog.Int("flagged", result.Summary.FlaggedGroups),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

// fetch loads every commodity concurrently and concatenates the tables in set order,
// so that one cache key always denotes one row order.
func (s *gradeTonnageService) fetch(ctx context.Context, set entity.CommoditySet) (entity.SiteTable, error) {
	tables := make([]entity.SiteTable, len(set))

	g, gctx := errgroup.WithContext(ctx)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for i, commodity := range set {
		g.Go(func() error {
			t, err := s.sites.FindByCommodity(gctx, commodity)
			if err != nil {
				return upstream(err, commodity)
			}
			tables[i] = t

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return entity.SiteTable{}, err
	}

	all := entity.NewSiteTable(0)
	for _, t := range tables {
		all.Append(t)
	}

	return all, nil
}

func (s *gradeTonnageService) group(logger *slog.Logger, set entity.CommoditySet, sites []entity.SiteRecord, threshold float64) (entity.ProximityGroups, error) {
	if threshold == 0 {
		return proximity.Identity(sites), nil
	}

	key := set.Key()
	matrix, err := s.cache.GetOrCompute(key, sites)
	if err != nil {
		return nil, errors.Wrap(err, "distance matrix")
	}

	// The backend changed under a live key; the cached matrix no longer fits.
	if matrix.Len() != len(sites) {
		logger.Warn("Discarding stale distance matrix",
			slog.String("key", key),
			slog.Int("matrix_sites", matrix.Len()),
			slog.Int("sites", len(sites)))
		s.cache.Invalidate(key)

		if matrix, err = s.cache.GetOrCompute(key, sites); err != nil {
			return nil, errors.Wrap(err, "distance matrix")
		}
	}

	groups, err := proximity.Aggregate(sites, matrix, threshold)
	if err != nil {
		if errors.Is(err, proximity.ErrInvalidThreshold) {
			return nil, domainerrors.ErrInvalidThreshold
		}

		return nil, errors.WithStack(err)
	}

	return groups, nil
}

// ListCommodities returns the commodities known to the knowledge graph.
func (s *gradeTonnageService) ListCommodities(ctx context.Context) ([]entity.Commodity, error) {
	if s.commodities == nil {
		return nil, domainerrors.NewUpstreamError(errors.New("no commodity source configured"), "")
	}

	commodities, err := s.commodities.ListCommodities(ctx)
	if err != nil {
		return nil, upstream(err, "commodities")
	}

	return commodities, nil
}

// CacheStatus reports the distance cache content.
func (s *gradeTonnageService) CacheStatus() usecase.CacheStatus {
	entries := s.cache.Entries()
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}

	return usecase.CacheStatus{
		Keys:      keys,
		Entries:   len(entries),
		Items:     entries,
		Capacity:  s.cache.Capacity(),
		Retention: s.cache.Retention(),
	}
}

func summarize(set entity.CommoditySet, threshold float64, unit string, table entity.SiteTable, groups entity.ProximityGroups) usecase.GradeTonnageSummary {
	depositTypes := make([]string, 0)
	countries := make([]string, 0)
	for _, site := range table.Sites {
		if site.DepositType != "" {
			depositTypes = append(depositTypes, site.DepositType)
		}
		if site.Country != "" {
			countries = append(countries, site.Country)
		}
	}

	return usecase.GradeTonnageSummary{
		Commodities:   slices.Clone(set),
		Threshold:     threshold,
		Unit:          unit,
		SitesReceived: table.Received,
		SitesUsed:     len(table.Sites),
		SitesDropped:  table.Dropped,
		Groups:        len(groups),
		FlaggedGroups: groups.Flagged(),
		DepositTypes:  distinctSorted(depositTypes),
		Countries:     distinctSorted(countries),
	}
}

func distinctSorted(values []string) []string {
	slices.Sort(values)

	return slices.Compact(values)
}

func describeDrops(table entity.SiteTable) string {
	parts := make([]string, 0, len(table.Dropped))
	for _, reason := range table.Reasons() {
		parts = append(parts, string(reason)+"="+strconv.Itoa(table.Dropped[reason]))
	}

	return strings.Join(parts, ", ")
}

// upstream keeps application errors and classifies anything else as a data-service failure.
func upstream(err error, details string) error {
	if _, ok := errors.AsType[domainerrors.AppError](err); ok {
		return err
	}

	return domainerrors.NewUpstreamError(err, details)
}

func outcomeOf(err error) string {
	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		return appErr.ErrorCode()
	}

	return "error"
}

type nopRecorder struct{}

func (nopRecorder) AggregationCompleted(string, int, int) {}

func (nopRecorder) RowsRejected(string, int) {}
