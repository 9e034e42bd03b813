package pipeline

import (
	"context"

	"github.com/aniketwaliyan/sparkify-etl/internal/extract"
	"github.com/aniketwaliyan/sparkify-etl/internal/load"
	"github.com/aniketwaliyan/sparkify-etl/internal/utils/config"
)

type Extractor interface {
	Init(ctx context.Context, cfg *config.PipelineConfig) error
	Discover(root string) ([]string, error)
	Parse(path string) ([]extract.Record, error)
	Close() error
}

type Transformer interface {
	Family() string
	Transform(ctx context.Context, path string, records []extract.Record) ([]load.Instruction, error)
}

type Loader interface {
	Apply(ctx context.Context, source string, batch []load.Instruction) error
	Close() error
}

// Progress receives per-file progress for one family at a time.
type Progress interface {
	Start(family string, total int)
	Advance()
	Finish()
}

// Stage pairs a family root directory with the transformer for its files.
type Stage struct {
	Root        string
	Transformer Transformer
}
