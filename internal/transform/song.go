package transform

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aniketwaliyan/sparkify-etl/internal/extract"
	"github.com/aniketwaliyan/sparkify-etl/internal/load"
)

// SongRow is (song_id, title, artist_id, year, duration).
type SongRow struct {
	SongID   any
	Title    any
	ArtistID any
	Year     any
	Duration any
}

func (r SongRow) Args() []any {
	return []any{r.SongID, r.Title, r.ArtistID, r.Year, r.Duration}
}

// ArtistRow is (artist_id, name, location, latitude, longitude).
type ArtistRow struct {
	ArtistID  any
	Name      any
	Location  any
	Latitude  any
	Longitude any
}

func (r ArtistRow) Args() []any {
	return []any{r.ArtistID, r.Name, r.Location, r.Latitude, r.Longitude}
}

// SongRows maps a song record to its song and artist rows. Fields are not
// validated here; a missing required value reaches the destination as NULL
// and is rejected there.
func SongRows(rec extract.Record) (SongRow, ArtistRow) {
	song := SongRow{
		SongID:   rec.Value("song_id"),
		Title:    rec.Value("title"),
		ArtistID: rec.Value("artist_id"),
		Year:     rec.Value("year"),
		Duration: rec.Value("duration"),
	}
	artist := ArtistRow{
		ArtistID:  rec.Value("artist_id"),
		Name:      rec.Value("artist_name"),
		Location:  rec.Value("artist_location"),
		Latitude:  rec.Value("artist_latitude"),
		Longitude: rec.Value("artist_longitude"),
	}
	return song, artist
}

// SongTransformer turns one song file into a song insert and an artist insert.
type SongTransformer struct {
	logger *zap.SugaredLogger
}

func NewSongTransformer(logger *zap.SugaredLogger) *SongTransformer {
	return &SongTransformer{logger: logger}
}

func (t *SongTransformer) Family() string { return "song" }

// Transform uses only the first record of the file.
func (t *SongTransformer) Transform(ctx context.Context, path string, records []extract.Record) ([]load.Instruction, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, &extract.MalformedRecordError{Reason: "song file holds no records", Index: -1})
	}
	if len(records) > 1 {
		t.logger.Warnw("Song file holds more than one record, using the first", "path", path, "records", len(records))
	}

	song, artist := SongRows(records[0])
	return []load.Instruction{
		{Stmt: load.SongInsert, Args: song.Args()},
		{Stmt: load.ArtistInsert, Args: artist.Args()},
	}, nil
}
