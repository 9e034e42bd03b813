package extract

import (
	"context"
	"fmt"

	"github.com/aniketwaliyan/sparkify-etl/internal/utils/config"
)

// FileExtractor discovers and parses record containers on the local filesystem.
type FileExtractor struct {
	ext string
}

func NewFileExtractor() *FileExtractor {
	return &FileExtractor{ext: config.DefaultExtension}
}

func (e *FileExtractor) Init(ctx context.Context, cfg *config.PipelineConfig) error {
	if cfg.Source.Extension != "" {
		e.ext = cfg.Source.Extension
	}
	return nil
}

func (e *FileExtractor) Discover(root string) ([]string, error) {
	return Discover(root, e.ext)
}

func (e *FileExtractor) Parse(path string) ([]Record, error) {
	records, err := ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return records, nil
}

func (e *FileExtractor) Close() error { return nil }
