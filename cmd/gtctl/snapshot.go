package main

import (
	"fmt"
	"log/slog"

	"minmod/internal/domain/entity"
	"minmod/internal/errors"
	"minmod/internal/infra/dataservice"
	"minmod/internal/infra/sitetable"

	"github.com/spf13/cobra"
)

type snapshotOptions struct {
	*rootOptions

	dest        string
	commodities []string
}

func newSnapshotCmd(root *rootOptions) *cobra.Command {
	opts := &snapshotOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:     "snapshot",
		Short:   "Store live site tables as CSV snapshots in a bucket",
		Example: `  gtctl snapshot --dest file:///data/snapshots --commodity nickel,cobalt`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.dest, "dest", "", "bucket URL receiving <commodity>.csv")
	flags.StringSliceVarP(&opts.commodities, "commodity", "c", nil, "commodities to snapshot, repeatable or comma separated")
	_ = cmd.MarkFlagRequired("dest")
	_ = cmd.MarkFlagRequired("commodity")

	return cmd
}

func (o *snapshotOptions) run(cmd *cobra.Command) error {
	set := entity.NewCommoditySet(o.commodities...)
	if set.Empty() {
		return errors.New("at least one commodity is required")
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	logger, err := o.newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	loader, err := sitetable.OpenCSVLoader(cmd.Context(), o.dest)
	if err != nil {
		return err
	}
	defer func() {
		if err := loader.Close(); err != nil {
			logger.Warn("Failed to close snapshot bucket", slog.Any("error", err))
		}
	}()

	client := dataservice.NewClient(cfg.DataService, logger)
	sites := withProgress(sitetable.NewRemoteRepository(client, sitetable.NewNormalizer()),
		len(set), "Snapshotting site tables", cmd.ErrOrStderr())

	for _, commodity := range set {
		table, err := sites.FindByCommodity(cmd.Context(), commodity)
		if err != nil {
			return errors.Wrapf(err, "fetch %s", commodity)
		}

		key := sitetable.SnapshotKey(commodity)
		if err := loader.Save(cmd.Context(), key, table.Sites); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d of %d sites written to %s\n",
			commodity, len(table.Sites), table.Received, key)
	}

	return nil
}
