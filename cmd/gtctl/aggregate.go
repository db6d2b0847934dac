package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"minmod/config"
	"minmod/internal/domain/entity"
	"minmod/internal/domain/repository"
	"minmod/internal/errors"
	"minmod/internal/infra/dataservice"
	"minmod/internal/infra/distcache"
	"minmod/internal/infra/geodesic"
	"minmod/internal/infra/sitetable"
	"minmod/internal/usecase"
	"minmod/internal/usecase/impl"

	"github.com/spf13/cobra"
)

const sourceLive = "live"

type aggregateOptions struct {
	*rootOptions

	source      string
	commodities []string
	threshold   float64
	unit        string
	format      string
	output      string
}

func newAggregateCmd(root *rootOptions) *cobra.Command {
	opts := &aggregateOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Merge nearby sites and export the grade-tonnage table",
		Example: `  gtctl aggregate --commodity nickel --threshold 10
  gtctl aggregate --source file:///data/snapshots --commodity zinc,lead --format geojson -o zinc.geojson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var threshold *float64
			if cmd.Flags().Changed("threshold") {
				threshold = &opts.threshold
			}

			return opts.run(cmd, threshold)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.source, "source", sourceLive, `"live" or a bucket URL holding <commodity>.csv snapshots`)
	flags.StringSliceVarP(&opts.commodities, "commodity", "c", nil, "commodities to aggregate, repeatable or comma separated")
	flags.Float64VarP(&opts.threshold, "threshold", "t", 0, "proximity threshold; 0 keeps every site separate")
	flags.StringVar(&opts.unit, "unit", "", "distance unit of the threshold: km or mi")
	flags.StringVarP(&opts.format, "format", "f", "csv", "output format: csv, json or geojson")
	flags.StringVarP(&opts.output, "output", "o", "-", "output file, - for stdout")
	_ = cmd.MarkFlagRequired("commodity")

	return cmd
}

func (o *aggregateOptions) run(cmd *cobra.Command, threshold *float64) error {
	if !validFormat(o.format) {
		return errors.Errorf("unsupported format %q", o.format)
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	if o.unit != "" {
		cfg.Aggregation.Unit = o.unit
	}
	logger, err := o.newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	unit, err := geodesic.ParseUnit(cfg.Aggregation.Unit)
	if err != nil {
		return err
	}
	cache, err := distcache.New(geodesic.NewEngine(unit), cfg.Aggregation.CacheCapacity, cfg.Aggregation.CacheRetention)
	if err != nil {
		return err
	}

	sites, closeSource, err := openSource(cmd, o.source, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	set := entity.NewCommoditySet(o.commodities...)
	sites = withProgress(sites, len(set), "Fetching site tables", cmd.ErrOrStderr())

	svc := impl.NewGradeTonnageService(sites, nil, cache, nil, cfg, logger)
	result, err := svc.Aggregate(cmd.Context(), &usecase.GradeTonnageInput{
		Commodities: o.commodities,
		Threshold:   threshold,
	})
	if err != nil {
		return err
	}

	if err := writeOutput(cmd.OutOrStdout(), o.output, func(w io.Writer) error {
		return writeResult(w, o.format, result)
	}); err != nil {
		return err
	}

	s := result.Summary
	fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d sites merged into %d groups at %g %s (%d flagged)\n",
		s.SitesUsed, s.SitesReceived, s.Groups, s.Threshold, s.Unit, s.FlaggedGroups)

	return nil
}

// openSource returns the site repository behind source and a function releasing it.
func openSource(cmd *cobra.Command, source string, cfg *config.Config, logger *slog.Logger) (repository.SiteRepository, func(), error) {
	if source == "" || source == sourceLive {
		client := dataservice.NewClient(cfg.DataService, logger)

		return sitetable.NewRemoteRepository(client, sitetable.NewNormalizer()), func() {}, nil
	}

	loader, err := sitetable.OpenCSVLoader(cmd.Context(), source)
	if err != nil {
		return nil, nil, err
	}

	return loader, func() {
		if err := loader.Close(); err != nil {
			logger.Warn("Failed to close snapshot bucket", slog.Any("error", err))
		}
	}, nil
}

func validFormat(format string) bool {
	switch format {
	case "csv", "json", "geojson":
		return true
	}

	return false
}

func writeResult(w io.Writer, format string, result *usecase.GradeTonnageResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return errors.WithStack(enc.Encode(result))
	case "geojson":
		body, err := sitetable.GroupsFeatureCollection(result.Groups).MarshalJSON()
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = w.Write(append(body, '\n'))

		return errors.WithStack(err)
	default:
		return sitetable.WriteGroupsCSV(w, result.Groups)
	}
}

// writeOutput runs write against stdout for "-" and against a created file otherwise.
func writeOutput(stdout io.Writer, path string, write func(w io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := write(f); err != nil {
		_ = f.Close()

		return err
	}

	return errors.WithStack(f.Close())
}
