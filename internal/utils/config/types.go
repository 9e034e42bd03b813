package config

const (
	DefaultExtension = ".json"
	DefaultEventPage = "NextSong"
	DefaultSongData  = "data/song_data"
	DefaultLogData   = "data/log_data"
	DefaultSinkType  = "postgres"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
	DefaultService   = "sparkify-etl"
	OnErrorAbort     = "abort"
	OnErrorContinue  = "continue"
	DefaultOnError   = OnErrorContinue
)

type PipelineConfig struct {
	Pipeline struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		OnError     string `yaml:"on_error"`
		DryRun      bool   `yaml:"dry_run"`
	} `yaml:"pipeline"`

	Source struct {
		SongData  string `yaml:"song_data"`
		LogData   string `yaml:"log_data"`
		Extension string `yaml:"extension"`
		EventPage string `yaml:"event_page"`
	} `yaml:"source"`

	Sink struct {
		Type         string `yaml:"type"`
		DSN          string `yaml:"dsn"`
		CreateTables bool   `yaml:"create_tables"`
	} `yaml:"sink"`

	Monitoring MonitoringConfig `yaml:"monitoring"`
}

type MonitoringConfig struct {
	LogLevel    string        `yaml:"log_level"`
	LogFormat   string        `yaml:"log_format"`
	ProgressBar bool          `yaml:"progress_bar"`
	Tracing     TracingConfig `yaml:"tracing"`
}

type TracingConfig struct {
	Endpoint      string  `yaml:"endpoint"`
	ServiceName   string  `yaml:"service_name"`
	Insecure      bool    `yaml:"insecure"`
	SamplingRatio float64 `yaml:"sampling_ratio"`
}

// Default returns the configuration used when no file is given.
func Default() *PipelineConfig {
	cfg := &PipelineConfig{}
	cfg.Pipeline.Name = "sparkify"
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *PipelineConfig) {
	if cfg.Pipeline.OnError == "" {
		cfg.Pipeline.OnError = DefaultOnError
	}
	if cfg.Source.SongData == "" {
		cfg.Source.SongData = DefaultSongData
	}
	if cfg.Source.LogData == "" {
		cfg.Source.LogData = DefaultLogData
	}
	if cfg.Source.Extension == "" {
		cfg.Source.Extension = DefaultExtension
	}
	if cfg.Source.EventPage == "" {
		cfg.Source.EventPage = DefaultEventPage
	}
	if cfg.Sink.Type == "" {
		cfg.Sink.Type = DefaultSinkType
	}
	if cfg.Monitoring.LogLevel == "" {
		cfg.Monitoring.LogLevel = DefaultLogLevel
	}
	if cfg.Monitoring.LogFormat == "" {
		cfg.Monitoring.LogFormat = DefaultLogFormat
	}
	if cfg.Monitoring.Tracing.ServiceName == "" {
		cfg.Monitoring.Tracing.ServiceName = DefaultService
	}
	if cfg.Monitoring.Tracing.SamplingRatio == 0 {
		cfg.Monitoring.Tracing.SamplingRatio = 1.0
	}
}
