package transform

import (
	"context"

	"github.com/aniketwaliyan/sparkify-etl/internal/load"
)

// SongLookup resolves a played song against dimension data that is already
// persisted. Implementations must read through to the destination: results
// depend on every song file having been loaded first.
type SongLookup interface {
	FindSong(ctx context.Context, title, artist string, duration float64) (load.SongRef, bool, error)
}
