package main

import (
	"context"
	"log/slog"
	"os"

	"minmod/config"
	"minmod/internal/delivery"
	"minmod/internal/delivery/api"
	"minmod/internal/delivery/api/router/handler"
	"minmod/internal/domain/repository"
	"minmod/internal/domain/service"
	"minmod/internal/infra/dataservice"
	"minmod/internal/infra/distcache"
	"minmod/internal/infra/geodesic"
	logs "minmod/internal/infra/log"
	"minmod/internal/infra/metrics"
	"minmod/internal/infra/sitetable"
	"minmod/internal/usecase/impl"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		newCollector,
		newDataServiceClient,
	)
}

func newCollector(cfg *config.Config) (*metrics.Collector, error) {
	return metrics.NewCollector(prometheus.DefaultRegisterer, cfg.Metrics.Namespace)
}

func newDataServiceClient(cfg *config.Config, logger *slog.Logger) *dataservice.Client {
	return dataservice.NewClient(cfg.DataService, logger)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newSiteRepository,
			func(client *dataservice.Client) repository.CommodityRepository {
				return client
			},
		),
	)
}

// newSiteRepository reads snapshots when dataService.snapshotURL is set and the live API otherwise.
func newSiteRepository(lc fx.Lifecycle, cfg *config.Config, client *dataservice.Client, logger *slog.Logger) (repository.SiteRepository, error) {
	if cfg.DataService.SnapshotURL == "" {
		return sitetable.NewRemoteRepository(client, sitetable.NewNormalizer()), nil
	}

	loader, err := sitetable.OpenCSVLoader(context.Background(), cfg.DataService.SnapshotURL)
	if err != nil {
		return nil, err
	}
	logger.Info("Reading site tables from snapshots", slog.String("url", cfg.DataService.SnapshotURL))

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return loader.Close()
		},
	})

	return loader, nil
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newDistanceCache,
			func(collector *metrics.Collector) service.AggregationRecorder {
				return collector
			},
		),
	)
}

func newDistanceCache(cfg *config.Config, collector *metrics.Collector) (service.DistanceCache, error) {
	unit, err := geodesic.ParseUnit(cfg.Aggregation.Unit)
	if err != nil {
		return nil, err
	}

	return distcache.New(
		geodesic.NewEngine(unit),
		cfg.Aggregation.CacheCapacity,
		cfg.Aggregation.CacheRetention,
		distcache.WithObserver(collector),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewGradeTonnageService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewGradeTonnageHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
