package main

import (
	"fmt"

	"minmod/internal/infra/dataservice"

	"github.com/spf13/cobra"
)

func newCommoditiesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "commodities",
		Short: "List commodities with their inventory counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			logger, err := root.newLogger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}

			commodities, err := dataservice.NewClient(cfg.DataService, logger).ListCommodities(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, c := range commodities {
				fmt.Fprintf(out, "%-24s %-24s %6d\n", c.Name, c.Label, c.Inventories)
			}

			return nil
		},
	}
}
