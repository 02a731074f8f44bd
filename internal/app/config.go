package app

import "errors"

// Output formats understood by the renderer.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // a single file or a directory of config files
	Variables  map[string]any

	OutputFormat string
	LogFormat    string
	LogLevel     string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = FormatYAML
	}
	if cfg.OutputFormat != FormatYAML && cfg.OutputFormat != FormatJSON {
		return nil, errors.New("OutputFormat must be 'yaml' or 'json'")
	}
	return &cfg, nil
}
