package transform

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aniketwaliyan/sparkify-etl/internal/extract"
	"github.com/aniketwaliyan/sparkify-etl/internal/load"
)

type songKey struct {
	title, artist string
	duration      float64
}

type fakeLookup struct {
	songs map[songKey]load.SongRef
	calls []songKey
	err   error
}

func (f *fakeLookup) FindSong(_ context.Context, title, artist string, duration float64) (load.SongRef, bool, error) {
	key := songKey{title, artist, duration}
	f.calls = append(f.calls, key)
	if f.err != nil {
		return load.SongRef{}, false, f.err
	}
	ref, ok := f.songs[key]
	return ref, ok, nil
}

func event(page string, ts int64, userID, level, song, artist string, length float64) extract.Record {
	return extract.Record{
		"artist":    artist,
		"auth":      "Logged In",
		"firstName": "Kaylee",
		"gender":    "F",
		"lastName":  "Summers",
		"length":    json.Number(jsonFloat(length)),
		"level":     level,
		"location":  "Phoenix-Mesa-Scottsdale, AZ",
		"page":      page,
		"sessionId": json.Number("139"),
		"song":      song,
		"ts":        json.Number(jsonInt(ts)),
		"userAgent": "Mozilla/5.0",
		"userId":    userID,
	}
}

func jsonFloat(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

func jsonInt(i int64) string {
	b, _ := json.Marshal(i)
	return string(b)
}

func newLogTransformer(lookup SongLookup) *LogTransformer {
	return NewLogTransformer(lookup, "NextSong", zap.NewNop().Sugar())
}

func TestLogTransformer_FiltersAndOrdersRows(t *testing.T) {
	lookup := &fakeLookup{songs: map[songKey]load.SongRef{
		{"T", "A", 210.5}: {SongID: "SOT", ArtistID: "ARA"},
	}}

	records := []extract.Record{
		event("NextSong", 1541440339796, "8", "free", "T", "A", 210.5),
		event("Home", 1541440340000, "8", "free", "", "", 0),
		event("NextSong", 1541440400000, "8", "paid", "Unknown", "Nobody", 100),
	}

	out, err := newLogTransformer(lookup).Transform(context.Background(), "events.json", records)
	require.NoError(t, err)
	require.Len(t, out, 6)

	var stmts []load.Statement
	for _, in := range out {
		stmts = append(stmts, in.Stmt)
	}
	assert.Equal(t, []load.Statement{
		load.TimeInsert, load.TimeInsert,
		load.UserUpsert, load.UserUpsert,
		load.SongplayInsert, load.SongplayInsert,
	}, stmts)

	assert.Equal(t, []any{int64(1541440339796), 17, 5, 45, 11, 2018, 0}, out[0].Args)
	assert.Equal(t, []any{"8", "Kaylee", "Summers", "F", "free"}, out[2].Args)
	assert.Equal(t, []any{"8", "Kaylee", "Summers", "F", "paid"}, out[3].Args, "later levels come later")

	assert.Equal(t, []any{int64(1541440339796), "8", "free", "SOT", "ARA", int64(139), "Phoenix-Mesa-Scottsdale, AZ", "Mozilla/5.0"}, out[4].Args)
	assert.Equal(t, []any{int64(1541440400000), "8", "paid", nil, nil, int64(139), "Phoenix-Mesa-Scottsdale, AZ", "Mozilla/5.0"}, out[5].Args)

	assert.Equal(t, []songKey{{"T", "A", 210.5}, {"Unknown", "Nobody", 100}}, lookup.calls)
}

func TestLogTransformer_RepeatedTimestampsAreNotDeduplicated(t *testing.T) {
	records := []extract.Record{
		event("NextSong", 1541440339796, "8", "free", "T", "A", 1),
		event("NextSong", 1541440339796, "9", "free", "T", "A", 1),
	}

	out, err := newLogTransformer(&fakeLookup{}).Transform(context.Background(), "events.json", records)
	require.NoError(t, err)

	times := 0
	for _, in := range out {
		if in.Stmt == load.TimeInsert {
			times++
		}
	}
	assert.Equal(t, 2, times)
}

func TestLogTransformer_NoEvents(t *testing.T) {
	records := []extract.Record{
		event("Home", 1, "8", "free", "", "", 0),
		{"page": "Logout"},
		{"ts": json.Number("1")},
	}

	out, err := newLogTransformer(&fakeLookup{}).Transform(context.Background(), "events.json", records)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLogTransformer_SkipsLookupWithoutSong(t *testing.T) {
	rec := event("NextSong", 1541440339796, "8", "free", "T", "A", 1)
	rec["song"] = nil
	lookup := &fakeLookup{}

	out, err := newLogTransformer(lookup).Transform(context.Background(), "events.json", []extract.Record{rec})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Empty(t, lookup.calls)
	assert.Nil(t, out[2].Args[3])
	assert.Nil(t, out[2].Args[4])
}

func TestLogTransformer_MalformedRecord(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(extract.Record)
		field  string
	}{
		{"missing userId", func(r extract.Record) { delete(r, "userId") }, "userId"},
		{"empty userId", func(r extract.Record) { r["userId"] = "" }, "userId"},
		{"missing ts", func(r extract.Record) { delete(r, "ts") }, "ts"},
		{"ts out of range", func(r extract.Record) { r["ts"] = json.Number("1e30") }, "ts"},
		{"sessionId out of range", func(r extract.Record) { r["sessionId"] = json.Number("-1e19") }, "sessionId"},
		{"bad sessionId", func(r extract.Record) { r["sessionId"] = "abc" }, "sessionId"},
		{"missing level", func(r extract.Record) { delete(r, "level") }, "level"},
		{"bad length", func(r extract.Record) { r["length"] = "long" }, "length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := event("NextSong", 2, "9", "free", "T", "A", 1)
			tt.mutate(bad)
			records := []extract.Record{event("NextSong", 1, "8", "free", "T", "A", 1), bad}

			out, err := newLogTransformer(&fakeLookup{}).Transform(context.Background(), "events.json", records)
			require.Error(t, err)
			assert.Nil(t, out)

			var me *extract.MalformedRecordError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, tt.field, me.Field)
			assert.Equal(t, 1, me.Index)
			assert.Contains(t, err.Error(), "events.json")
		})
	}
}

func TestLogTransformer_MalformedIgnoredOnOtherPages(t *testing.T) {
	rec := event("Home", 1, "", "free", "", "", 0)
	delete(rec, "sessionId")

	_, err := newLogTransformer(&fakeLookup{}).Transform(context.Background(), "events.json", []extract.Record{rec})
	assert.NoError(t, err)
}

func TestLogTransformer_LookupError(t *testing.T) {
	boom := errors.New("connection reset")
	records := []extract.Record{event("NextSong", 1, "8", "free", "T", "A", 1)}

	_, err := newLogTransformer(&fakeLookup{err: boom}).Transform(context.Background(), "events.json", records)
	assert.ErrorIs(t, err, boom)
}

func TestLogTransformer_CustomSentinel(t *testing.T) {
	records := []extract.Record{
		event("NextSong", 1, "8", "free", "T", "A", 1),
		event("Upgrade", 2, "8", "paid", "T", "A", 1),
	}

	events, err := NewLogTransformer(&fakeLookup{}, "Upgrade", zap.NewNop().Sugar()).Filter(records)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(2), events[0].TS)
}
