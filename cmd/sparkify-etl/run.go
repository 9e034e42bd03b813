package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aniketwaliyan/sparkify-etl/internal/extract"
	"github.com/aniketwaliyan/sparkify-etl/internal/load"
	"github.com/aniketwaliyan/sparkify-etl/internal/pipeline"
	"github.com/aniketwaliyan/sparkify-etl/internal/telemetry"
	"github.com/aniketwaliyan/sparkify-etl/internal/transform"
	"github.com/aniketwaliyan/sparkify-etl/internal/ui"
	"github.com/aniketwaliyan/sparkify-etl/internal/utils/config"
)

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	if err := applyRunFlags(cmd, a.cfg); err != nil {
		return err
	}
	cfg := a.cfg

	shutdown, err := telemetry.Setup(ctx, cfg.Monitoring.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			a.logger.Warnw("Error flushing traces", "error", err)
		}
	}()

	var (
		exec   *load.Executor
		loader pipeline.Loader
		lookup transform.SongLookup
	)
	if cfg.Pipeline.DryRun {
		a.logger.Infow("Dry run, nothing will be written")
		loader, lookup = &pipeline.NoopLoader{}, pipeline.NoopLookup{}
	} else {
		exec, err = a.openExecutor(ctx)
		if err != nil {
			return err
		}
		defer a.close(exec)

		if cfg.Sink.CreateTables {
			if err := exec.CreateTables(ctx, false); err != nil {
				return err
			}
		}
		loader, lookup = exec, exec
	}

	orchestrator := pipeline.NewOrchestrator(cfg, extract.NewFileExtractor(), loader, a.logger,
		pipeline.SparkifyStages(cfg, lookup, a.logger)...)
	if cfg.Monitoring.ProgressBar {
		orchestrator.WithProgress(ui.NewBarProgress(cmd.ErrOrStderr()))
	}

	report, runErr := orchestrator.Execute(ctx)

	var counts map[string]int64
	if exec != nil {
		if counts, err = exec.Counts(ctx); err != nil {
			a.logger.Warnw("Could not count destination rows", "error", err)
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), ui.RenderSummary(report, counts))

	if runErr != nil {
		return fmt.Errorf("pipeline failed: %w", runErr)
	}
	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%d files failed to load: %w", n, report.Err())
	}
	return nil
}

func applyRunFlags(cmd *cobra.Command, cfg *config.PipelineConfig) error {
	applyRootFlags(cmd, cfg)
	flags := cmd.Flags()
	if v, _ := flags.GetString("on-error"); v != "" {
		cfg.Pipeline.OnError = v
	}
	if flags.Changed("dry-run") {
		cfg.Pipeline.DryRun, _ = flags.GetBool("dry-run")
	}
	if flags.Changed("create-tables") {
		cfg.Sink.CreateTables, _ = flags.GetBool("create-tables")
	}
	return config.NewParser().Validate(cfg)
}

// applyRootFlags overrides the data roots given on the command line.
func applyRootFlags(cmd *cobra.Command, cfg *config.PipelineConfig) {
	if v, _ := cmd.Flags().GetString("song-data"); v != "" {
		cfg.Source.SongData = v
	}
	if v, _ := cmd.Flags().GetString("log-data"); v != "" {
		cfg.Source.LogData = v
	}
}
