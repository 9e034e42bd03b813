package pipeline

import (
	"context"

	"github.com/aniketwaliyan/sparkify-etl/internal/load"
)

// NoopLoader accepts every batch without writing it anywhere.
type NoopLoader struct {
	Batches      int
	Instructions int
}

func (l *NoopLoader) Apply(ctx context.Context, source string, batch []load.Instruction) error {
	l.Batches++
	l.Instructions += len(batch)
	return nil
}

func (l *NoopLoader) Close() error { return nil }

// NoopLookup never resolves a song.
type NoopLookup struct{}

func (NoopLookup) FindSong(ctx context.Context, title, artist string, duration float64) (load.SongRef, bool, error) {
	return load.SongRef{}, false, nil
}

type noopProgress struct{}

func (noopProgress) Start(string, int) {}
func (noopProgress) Advance()          {}
func (noopProgress) Finish()           {}
