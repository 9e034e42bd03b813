package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

var sinkTypes = map[string]bool{
	"postgres":  true,
	"pgx":       true,
	"sqlserver": true,
	"sqlite":    true,
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(filePath string) (*PipelineConfig, error) {

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filePath)
	}

	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("error reading configuration file: %w", err)
	}

	return p.ParseBytes(data)
}

// ParseBytes expands ${VAR} references from the environment, decodes the
// YAML document and fills in defaults. Unset variables are left as written.
func (p *Parser) ParseBytes(data []byte) (*PipelineConfig, error) {
	content := envVarPattern.ReplaceAllStringFunc(string(data), func(match string) string {
		if value, ok := os.LookupEnv(match[2 : len(match)-1]); ok {
			return value
		}
		return match
	})

	var config PipelineConfig
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return nil, fmt.Errorf("error parsing configuration: %w", err)
	}
	applyDefaults(&config)

	if err := p.Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (p *Parser) Validate(config *PipelineConfig) error {
	if config.Pipeline.Name == "" {
		return fmt.Errorf("pipeline name is required")
	}
	switch config.Pipeline.OnError {
	case OnErrorAbort, OnErrorContinue:
	default:
		return fmt.Errorf("on_error must be %q or %q, got %q", OnErrorAbort, OnErrorContinue, config.Pipeline.OnError)
	}
	if !strings.HasPrefix(config.Source.Extension, ".") {
		return fmt.Errorf("source extension must start with a dot, got %q", config.Source.Extension)
	}
	if !sinkTypes[config.Sink.Type] {
		return fmt.Errorf("unsupported sink type %q", config.Sink.Type)
	}
	if envVarPattern.MatchString(config.Sink.DSN) {
		return fmt.Errorf("sink dsn references an unset environment variable: %s", config.Sink.DSN)
	}
	if r := config.Monitoring.Tracing.SamplingRatio; r < 0 || r > 1 {
		return fmt.Errorf("tracing sampling_ratio must be within [0, 1], got %v", r)
	}
	return nil
}
