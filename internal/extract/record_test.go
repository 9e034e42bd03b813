package extract

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Accessors(t *testing.T) {
	rec := Record{
		"userId":    "26",
		"sessionId": json.Number("583"),
		"length":    json.Number("245.34404"),
		"ts":        json.Number("1.541106106796e12"),
		"numericId": json.Number("42"),
		"artist":    nil,
		"flag":      true,
	}

	s, err := rec.String("userId")
	require.NoError(t, err)
	assert.Equal(t, "26", s)

	s, err = rec.String("numericId")
	require.NoError(t, err)
	assert.Equal(t, "42", s)

	i, err := rec.Int64("sessionId")
	require.NoError(t, err)
	assert.Equal(t, int64(583), i)

	i, err = rec.Int64("userId")
	require.NoError(t, err)
	assert.Equal(t, int64(26), i)

	i, err = rec.Int64("ts")
	require.NoError(t, err)
	assert.Equal(t, int64(1541106106796), i)

	f, err := rec.Float64("length")
	require.NoError(t, err)
	assert.Equal(t, 245.34404, f)

	v, err := rec.OptString("artist")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = rec.OptFloat64("missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = rec.OptFloat64("length")
	require.NoError(t, err)
	assert.Equal(t, 245.34404, v)
}

func TestRecord_AccessorErrors(t *testing.T) {
	rec := Record{
		"userId": "",
		"length": json.Number("245.5"),
		"flag":   true,
		"page":   "NextSong",
		"ts":     json.Number("1e30"),
		"edge":   json.Number("9223372036854775808.0"),
	}

	tests := []struct {
		name  string
		call  func() error
		field string
	}{
		{"missing string", func() error { _, err := rec.String("firstName"); return err }, "firstName"},
		{"bool as string", func() error { _, err := rec.String("flag"); return err }, "flag"},
		{"fractional int", func() error { _, err := rec.Int64("length"); return err }, "length"},
		{"int above range", func() error { _, err := rec.Int64("ts"); return err }, "ts"},
		{"int at 2^63", func() error { _, err := rec.Int64("edge"); return err }, "edge"},
		{"text as int", func() error { _, err := rec.Int64("page"); return err }, "page"},
		{"text as float", func() error { _, err := rec.Float64("page"); return err }, "page"},
		{"missing float", func() error { _, err := rec.Float64("duration"); return err }, "duration"},
		{"invalid optional", func() error { _, err := rec.OptFloat64("page"); return err }, "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var me *MalformedRecordError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, tt.field, me.Field)
		})
	}
}
