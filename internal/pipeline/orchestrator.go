package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/aniketwaliyan/sparkify-etl/internal/load"
	"github.com/aniketwaliyan/sparkify-etl/internal/utils/config"
)

const tracerName = "github.com/aniketwaliyan/sparkify-etl/internal/pipeline"

// Orchestrator runs the stages one after another, and within a stage the
// files one after another, against a single loader.
type Orchestrator struct {
	config    *config.PipelineConfig
	extractor Extractor
	loader    Loader
	stages    []Stage
	logger    *zap.SugaredLogger
	progress  Progress
	tracer    trace.Tracer
}

// NewOrchestrator creates a new pipeline orchestrator
func NewOrchestrator(cfg *config.PipelineConfig, ext Extractor, loader Loader, logger *zap.SugaredLogger, stages ...Stage) *Orchestrator {
	return &Orchestrator{
		config:    cfg,
		extractor: ext,
		loader:    loader,
		stages:    stages,
		logger:    logger,
		progress:  noopProgress{},
		tracer:    otel.Tracer(tracerName),
	}
}

// WithProgress sets the progress reporter.
func (o *Orchestrator) WithProgress(p Progress) *Orchestrator {
	o.progress = p
	return o
}

// Execute runs every stage. The returned report is never nil. With the
// abort policy the first failing file stops the run; with the continue
// policy failing files are recorded in the report and the run goes on,
// unless the failure concerns discovery or the destination connection.
// The loader is left open for the caller to close.
func (o *Orchestrator) Execute(ctx context.Context) (*Report, error) {
	report := newReport()
	defer func() { report.FinishedAt = time.Now() }()

	ctx, span := o.tracer.Start(ctx, "pipeline.execute", trace.WithAttributes(
		attribute.String("run_id", report.RunID),
		attribute.String("on_error", o.config.Pipeline.OnError),
	))
	defer span.End()

	o.logger.Infow("Starting pipeline execution", "run_id", report.RunID, "pipeline", o.config.Pipeline.Name)

	if err := o.extractor.Init(ctx, o.config); err != nil {
		return report, fmt.Errorf("extractor initialization failed: %w", err)
	}
	defer func() {
		if err := o.extractor.Close(); err != nil {
			o.logger.Warnw("Error closing extractor", "error", err)
		}
	}()

	for _, stage := range o.stages {
		fr, err := o.runStage(ctx, stage)
		report.Families = append(report.Families, fr)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return report, err
		}
	}

	span.SetAttributes(attribute.Int("files.processed", report.Processed()), attribute.Int("files.failed", report.Failed()))
	o.logger.Infow("Pipeline execution completed", "run_id", report.RunID,
		"processed", report.Processed(), "failed", report.Failed())
	return report, nil
}

func (o *Orchestrator) runStage(ctx context.Context, stage Stage) (*FamilyReport, error) {
	family := stage.Transformer.Family()
	fr := &FamilyReport{Family: family, Root: stage.Root}

	ctx, span := o.tracer.Start(ctx, "pipeline.stage", trace.WithAttributes(
		attribute.String("family", family),
		attribute.String("root", stage.Root),
	))
	defer span.End()

	files, err := o.extractor.Discover(stage.Root)
	if err != nil {
		return fr, fmt.Errorf("%s family: %w", family, err)
	}
	fr.Found = len(files)
	o.logger.Infof("%d files found in %s", len(files), stage.Root)

	o.progress.Start(family, len(files))
	defer o.progress.Finish()

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return fr, err
		}

		n, err := o.processFile(ctx, stage.Transformer, path)
		if err != nil {
			fr.Failures = append(fr.Failures, FileFailure{Path: path, Err: err})
			if o.shouldAbort(err) {
				return fr, fmt.Errorf("%s family: %w", family, err)
			}
			o.logger.Warnw("Skipping file", "family", family, "path", path, "error", err)
		} else {
			fr.Processed++
			fr.Instructions += n
		}

		o.logger.Infof("%d/%d files processed.", i+1, len(files))
		o.progress.Advance()
	}

	span.SetAttributes(attribute.Int("files.found", fr.Found), attribute.Int("files.failed", len(fr.Failures)))
	return fr, nil
}

func (o *Orchestrator) processFile(ctx context.Context, t Transformer, path string) (int, error) {
	ctx, span := o.tracer.Start(ctx, "pipeline.file", trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	n, err := o.loadFile(ctx, t, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	span.SetAttributes(attribute.Int("instructions", n))
	return n, nil
}

func (o *Orchestrator) loadFile(ctx context.Context, t Transformer, path string) (int, error) {
	records, err := o.extractor.Parse(path)
	if err != nil {
		return 0, err
	}

	batch, err := t.Transform(ctx, path, records)
	if err != nil {
		return 0, fmt.Errorf("transform: %w", err)
	}

	if err := o.loader.Apply(ctx, path, batch); err != nil {
		return 0, fmt.Errorf("load: %w", err)
	}
	return len(batch), nil
}

func (o *Orchestrator) shouldAbort(err error) bool {
	if o.config.Pipeline.OnError == config.OnErrorAbort {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var de *load.DestinationError
	return errors.As(err, &de) && de.Fatal()
}
