package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/vk/cfgforge"
	"github.com/vk/cfgforge/internal/ctxlog"
	"github.com/vk/cfgforge/loader"
)

// Run loads the configuration, resolves every reference against the
// tree and the supplied variables, and renders the result.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	tree, err := loader.LoadPath(ctx, a.config.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Debug("Configuration loaded.", "path", a.config.ConfigPath)

	resolved, err := cfgforge.Resolve(ctx, tree, cfgforge.WithVariables(a.config.Variables))
	if err != nil {
		return fmt.Errorf("failed to resolve configuration: %w", err)
	}
	a.logger.Debug("All references resolved.")

	rendered, err := a.render(resolved)
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}

	if _, err := a.outW.Write(rendered); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) render(doc any) ([]byte, error) {
	switch a.config.OutputFormat {
	case FormatJSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	default:
		return yaml.Marshal(doc)
	}
}
