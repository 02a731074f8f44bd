package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/cfgforge/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// varFlags collects repeated -var key=value flags.
type varFlags map[string]any

func (v varFlags) String() string {
	pairs := make([]string, 0, len(v))
	for k, val := range v {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, val))
	}
	return strings.Join(pairs, ",")
}

func (v varFlags) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", raw)
	}
	v[key] = value
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("cfgforge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
cfgforge - resolves declarative configuration trees.

Usage:
  cfgforge [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    Path to a single .yaml/.yml/.hcl file or a directory of such files.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the configuration file or directory.")
	cFlag := flagSet.String("c", "", "Path to the configuration file or directory (shorthand).")
	vars := varFlags{}
	flagSet.Var(vars, "var", "External variable as key=value. May be repeated.")
	outFlag := flagSet.String("out", "yaml", "Output format. Options: 'yaml' or 'json'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *configFlag != "" {
		path = *configFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Configuration path determined.", "path", path)

	if path == "" {
		slog.Debug("No configuration path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	outFormat := strings.ToLower(*outFlag)
	if outFormat != app.FormatYAML && outFormat != app.FormatJSON {
		return nil, false, &ExitError{Code: 2, Message: "invalid out: must be 'yaml' or 'json'"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:   path,
		Variables:    vars,
		OutputFormat: outFormat,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
