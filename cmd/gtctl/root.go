package main

import (
	"io"
	"log/slog"

	"minmod/config"
	logs "minmod/internal/infra/log"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	env       string
	configDir string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "gtctl",
		Short: "Grade-tonnage model tooling for MinMod mineral sites",
		Long: `
gtctl aggregates MinMod mineral sites into proximity groups and exports the
resulting grade-tonnage table. Sites come from the live data service or from
CSV snapshots kept in a file:// or gs:// bucket.
`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.env, "env", "", "config file name without .yaml; empty uses built-in defaults")
	flags.StringVar(&opts.configDir, "config-dir", "config", "directory searched for the config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "override env.log.level (debug, info, warn, error)")

	cmd.AddCommand(
		newAggregateCmd(opts),
		newSnapshotCmd(opts),
		newCommoditiesCmd(opts),
	)

	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if o.env != "" {
		loaded, err := config.LoadWithEnv[config.Config](o.env, o.configDir)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.logLevel != "" {
		cfg.Env.Log.Level = o.logLevel
	}
	cfg.Env.Log.Pretty = true
	cfg.ApplyDefaults()

	return cfg, nil
}

func (o *rootOptions) newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	if o.logLevel == "" && cfg.Env.Log.Level == "" {
		cfg.Env.Log.Level = "warn"
	}

	return logs.NewWithWriter(w, cfg)
}
