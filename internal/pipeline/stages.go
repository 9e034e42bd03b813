package pipeline

import (
	"go.uber.org/zap"

	"github.com/aniketwaliyan/sparkify-etl/internal/transform"
	"github.com/aniketwaliyan/sparkify-etl/internal/utils/config"
)

// SparkifyStages returns the song stage followed by the log stage. The
// order matters: songplays resolve songs that the first stage committed.
func SparkifyStages(cfg *config.PipelineConfig, lookup transform.SongLookup, logger *zap.SugaredLogger) []Stage {
	return []Stage{
		{Root: cfg.Source.SongData, Transformer: transform.NewSongTransformer(logger)},
		{Root: cfg.Source.LogData, Transformer: transform.NewLogTransformer(lookup, cfg.Source.EventPage, logger)},
	}
}
