package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aniketwaliyan/sparkify-etl/internal/load"
	"github.com/aniketwaliyan/sparkify-etl/internal/logging"
	"github.com/aniketwaliyan/sparkify-etl/internal/utils/config"
	"github.com/aniketwaliyan/sparkify-etl/pkg/env"
)

const defaultConfigPath = "config.yaml"

// app carries what every command needs once flags are resolved.
type app struct {
	cfg    *config.PipelineConfig
	env    *env.Config
	logger *zap.SugaredLogger
}

// loadConfig reads the configuration file. A missing file is only an error
// when the path was given explicitly; otherwise the defaults apply.
func loadConfig(cmd *cobra.Command) (*config.PipelineConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
		return config.Default(), nil
	}
	return config.NewParser().Parse(path)
}

func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	envDir, _ := cmd.Flags().GetString("env-dir")
	envCfg, err := env.Load(envDir)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Monitoring.LogLevel, cfg.Monitoring.LogFormat)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, env: envCfg, logger: logger}, nil
}

func (a *app) dsn() (string, error) {
	if a.cfg.Sink.DSN != "" {
		return a.cfg.Sink.DSN, nil
	}
	return a.env.ConnString(a.cfg.Sink.Type)
}

func (a *app) openExecutor(ctx context.Context) (*load.Executor, error) {
	dialect, err := load.ParseDialect(a.cfg.Sink.Type)
	if err != nil {
		return nil, err
	}
	dsn, err := a.dsn()
	if err != nil {
		return nil, fmt.Errorf("failed to build connection string: %w", err)
	}
	return load.Open(ctx, dialect, dsn, a.logger)
}

func (a *app) close(exec *load.Executor) {
	if err := exec.Close(); err != nil {
		a.logger.Warnw("Error closing destination", "error", err)
	}
}
