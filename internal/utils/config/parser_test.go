package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullDocument(t *testing.T) {
	t.Setenv("SPARKIFY_TEST_DSN", "file:/tmp/sparkify.db")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pipeline:
  name: sparkify
  on_error: abort
source:
  song_data: /data/song_data
  log_data: /data/log_data
sink:
  type: sqlite
  dsn: "${SPARKIFY_TEST_DSN}"
monitoring:
  log_level: debug
  progress_bar: true
  tracing:
    endpoint: localhost:4317
    sampling_ratio: 0.5
`), 0o644))

	cfg, err := NewParser().Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "sparkify", cfg.Pipeline.Name)
	assert.Equal(t, OnErrorAbort, cfg.Pipeline.OnError)
	assert.Equal(t, "/data/song_data", cfg.Source.SongData)
	assert.Equal(t, ".json", cfg.Source.Extension)
	assert.Equal(t, "NextSong", cfg.Source.EventPage)
	assert.Equal(t, "sqlite", cfg.Sink.Type)
	assert.Equal(t, "file:/tmp/sparkify.db", cfg.Sink.DSN)
	assert.Equal(t, "debug", cfg.Monitoring.LogLevel)
	assert.True(t, cfg.Monitoring.ProgressBar)
	assert.Equal(t, "localhost:4317", cfg.Monitoring.Tracing.Endpoint)
	assert.Equal(t, 0.5, cfg.Monitoring.Tracing.SamplingRatio)
	assert.Equal(t, DefaultService, cfg.Monitoring.Tracing.ServiceName)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := NewParser().ParseBytes([]byte("pipeline:\n  name: minimal\n"))
	require.NoError(t, err)

	assert.Equal(t, OnErrorContinue, cfg.Pipeline.OnError)
	assert.Equal(t, DefaultSongData, cfg.Source.SongData)
	assert.Equal(t, DefaultLogData, cfg.Source.LogData)
	assert.Equal(t, "postgres", cfg.Sink.Type)
	assert.Equal(t, "info", cfg.Monitoring.LogLevel)
	assert.Equal(t, "console", cfg.Monitoring.LogFormat)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing name", "sink:\n  type: postgres\n"},
		{"bad on_error", "pipeline:\n  name: x\n  on_error: retry\n"},
		{"bad sink", "pipeline:\n  name: x\nsink:\n  type: oracle\n"},
		{"bad extension", "pipeline:\n  name: x\nsource:\n  extension: json\n"},
		{"unset dsn variable", "pipeline:\n  name: x\nsink:\n  dsn: \"${SPARKIFY_SURELY_UNSET_VAR}\"\n"},
		{"bad sampling", "pipeline:\n  name: x\nmonitoring:\n  tracing:\n    sampling_ratio: 2\n"},
		{"not yaml", "pipeline: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().ParseBytes([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_MissingFile(t *testing.T) {
	_, err := NewParser().Parse(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file not found")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, NewParser().Validate(cfg))
	assert.Equal(t, "sparkify", cfg.Pipeline.Name)
}
