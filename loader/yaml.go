package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// YAML loads .yaml/.yml documents.
type YAML struct{}

func NewYAML() *YAML { return &YAML{} }

func (l *YAML) Extensions() []string { return []string{".yaml", ".yml"} }

func (l *YAML) Load(_ context.Context, path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return normalize(doc), nil
}
