package transform

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aniketwaliyan/sparkify-etl/internal/extract"
	"github.com/aniketwaliyan/sparkify-etl/internal/load"
)

// Event is one retained log record. Nullable fields hold nil or a value of
// the column's type.
type Event struct {
	TS        int64
	UserID    string
	FirstName any
	LastName  any
	Gender    any
	Level     string
	Song      any
	Artist    any
	Length    any
	SessionID int64
	Location  any
	UserAgent any
}

// ParseEvent extracts the fields of a log record. ts, userId, level and
// sessionId are required.
func ParseEvent(rec extract.Record) (Event, error) {
	var (
		ev  Event
		err error
	)
	if ev.TS, err = rec.Int64("ts"); err != nil {
		return Event{}, err
	}
	if ev.UserID, err = rec.String("userId"); err != nil {
		return Event{}, err
	}
	if ev.UserID == "" {
		return Event{}, &extract.MalformedRecordError{Field: "userId", Reason: "is empty", Index: -1}
	}
	if ev.Level, err = rec.String("level"); err != nil {
		return Event{}, err
	}
	if ev.SessionID, err = rec.Int64("sessionId"); err != nil {
		return Event{}, err
	}

	optional := []struct {
		dst *any
		key string
	}{
		{&ev.FirstName, "firstName"},
		{&ev.LastName, "lastName"},
		{&ev.Gender, "gender"},
		{&ev.Song, "song"},
		{&ev.Artist, "artist"},
		{&ev.Location, "location"},
		{&ev.UserAgent, "userAgent"},
	}
	for _, f := range optional {
		if *f.dst, err = rec.OptString(f.key); err != nil {
			return Event{}, err
		}
	}
	if ev.Length, err = rec.OptFloat64("length"); err != nil {
		return Event{}, err
	}
	return ev, nil
}

// UserRow is (user_id, first_name, last_name, gender, level).
func (e Event) UserRow() []any {
	return []any{e.UserID, e.FirstName, e.LastName, e.Gender, e.Level}
}

// SongplayRow is (start_time, user_id, level, song_id, artist_id, session_id,
// location, user_agent); ref is nil when the song was not resolved.
func (e Event) SongplayRow(ref *load.SongRef) []any {
	var songID, artistID any
	if ref != nil {
		songID, artistID = ref.SongID, ref.ArtistID
	}
	return []any{e.TS, e.UserID, e.Level, songID, artistID, e.SessionID, e.Location, e.UserAgent}
}

func (e Event) lookupKey() (title, artist string, duration float64, ok bool) {
	title, ok1 := e.Song.(string)
	artist, ok2 := e.Artist.(string)
	duration, ok3 := e.Length.(float64)
	return title, artist, duration, ok1 && ok2 && ok3
}

// LogTransformer turns one log file into time, user and songplay rows for
// the events whose page matches the configured sentinel.
type LogTransformer struct {
	lookup SongLookup
	page   string
	logger *zap.SugaredLogger
}

func NewLogTransformer(lookup SongLookup, page string, logger *zap.SugaredLogger) *LogTransformer {
	return &LogTransformer{lookup: lookup, page: page, logger: logger}
}

func (t *LogTransformer) Family() string { return "log" }

// Transform emits every time row, then every user row, then every songplay
// row, each group in file order so that a user's latest level wins.
func (t *LogTransformer) Transform(ctx context.Context, path string, records []extract.Record) ([]load.Instruction, error) {
	events, err := t.Filter(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := make([]load.Instruction, 0, len(events)*3)
	for _, ev := range events {
		out = append(out, load.Instruction{Stmt: load.TimeInsert, Args: DecomposeMillis(ev.TS).Args()})
	}
	for _, ev := range events {
		out = append(out, load.Instruction{Stmt: load.UserUpsert, Args: ev.UserRow()})
	}

	resolved := 0
	for _, ev := range events {
		ref, err := t.resolve(ctx, ev)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if ref != nil {
			resolved++
		}
		out = append(out, load.Instruction{Stmt: load.SongplayInsert, Args: ev.SongplayRow(ref)})
	}

	t.logger.Debugw("Transformed log file", "path", path, "records", len(records), "events", len(events), "resolved", resolved)
	return out, nil
}

// Filter keeps the records whose page equals the sentinel and parses them.
// Records on other pages are dropped without validation.
func (t *LogTransformer) Filter(records []extract.Record) ([]Event, error) {
	var events []Event
	for i, rec := range records {
		if page, _ := rec["page"].(string); page != t.page {
			continue
		}
		ev, err := ParseEvent(rec)
		if err != nil {
			var me *extract.MalformedRecordError
			if errors.As(err, &me) {
				me.Index = i
			}
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func (t *LogTransformer) resolve(ctx context.Context, ev Event) (*load.SongRef, error) {
	title, artist, duration, ok := ev.lookupKey()
	if !ok {
		return nil, nil
	}
	ref, found, err := t.lookup.FindSong(ctx, title, artist, duration)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &ref, nil
}
