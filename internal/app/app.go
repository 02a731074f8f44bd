package app

import (
	"io"
	"log/slog"
)

// App encapsulates the command's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. Rendered output
// goes to outW; logs go to logW so the resolved document stays clean on
// stdout.
func NewApp(outW, logW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: config,
	}
}
