// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/pdspec"
	"github.com/ik5/pdspec/config"
	"github.com/ik5/pdspec/dataset"
	"github.com/ik5/pdspec/internal/logging"
)

func newBuildCmd() *cobra.Command {
	var (
		configPath string
		workers    int
		copies     int
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render labelled directories and write split metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if cmd.Flags().Changed("copies") {
				cfg.AugmentedCopies = copies
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return runBuild(cmd, cfg, log)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pdspec.yaml", "configuration file")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0: one per CPU)")
	cmd.Flags().IntVar(&copies, "copies", 0, "augmented copies per file")

	return cmd
}

func runBuild(cmd *cobra.Command, cfg config.Config, log *zap.Logger) error {
	inputs, err := cfg.DatasetInputs()
	if err != nil {
		return err
	}
	format, err := dataset.ParseFormat(cfg.MetadataFormat)
	if err != nil {
		return err
	}

	var cache dataset.Cache
	switch cfg.Cache.Backend {
	case "badger":
		bc, err := dataset.OpenBadgerCache(cfg.Cache.Dir, log)
		if err != nil {
			return err
		}
		defer bc.Close()
		cache = bc
	case "none":
		cache = dataset.NopCache{}
	default:
		cache = dataset.FileCache{}
	}

	b := dataset.NewBuilder(cfg.OutputDir,
		dataset.WithPipeline(pdspec.New(pdspec.WithLogger(log))),
		dataset.WithCache(cache),
		dataset.WithWorkers(cfg.Workers),
		dataset.WithSeed(cfg.Seed),
		dataset.WithAugmentedCopies(cfg.AugmentedCopies),
		dataset.WithLogger(log),
	)

	res, err := b.Build(cmd.Context(), inputs...)
	if err != nil {
		return err
	}

	splits, err := dataset.Split(res.Records, cfg.Ratios(), cfg.Seed)
	if err != nil {
		return err
	}
	if err := dataset.WriteSplits(cfg.MetadataDir, splits, format); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d images, %d skipped (train %d, val %d, test %d)\n",
		res.RunID, len(res.Records), len(res.Skipped), len(splits.Train), len(splits.Val), len(splits.Test))
	for _, s := range res.Skipped {
		fmt.Fprintf(cmd.OutOrStdout(), "  skipped %s: %v\n", s.Path, s.Err)
	}

	return nil
}
