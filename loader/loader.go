package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/cfgforge/internal/ctxlog"
	"github.com/vk/cfgforge/internal/fsutil"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads one file and returns its configuration tree.
	Load(ctx context.Context, path string) (any, error)
	// Extensions lists the file extensions the loader recognizes,
	// including the leading dot.
	Extensions() []string
}

// ForPath selects a loader by the path's file extension.
func ForPath(path string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, l := range []Loader{NewYAML(), NewHCL()} {
		for _, known := range l.Extensions() {
			if ext == known {
				return l, nil
			}
		}
	}
	return nil, fmt.Errorf("no loader for file extension %q", ext)
}

// LoadPath loads a configuration tree from a single file, or from every
// recognized file under a directory. Directory loading requires each
// file to hold a top-level mapping; the mappings are merged key by key
// and duplicate top-level keys across files fail loudly.
func LoadPath(ctx context.Context, path string) (any, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		l, err := ForPath(path)
		if err != nil {
			return nil, err
		}
		return l.Load(ctx, path)
	}

	files, err := findConfigFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no configuration files found in %s", path)
	}
	logger.Debug("Found configuration files to load.", "path", path, "files", files)

	merged := make(map[string]any)
	for _, file := range files {
		l, err := ForPath(file)
		if err != nil {
			return nil, err
		}
		tree, err := l.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		mapping, ok := tree.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: directory loading requires a top-level mapping, got %T", file, tree)
		}
		for k, v := range mapping {
			if _, exists := merged[k]; exists {
				return nil, fmt.Errorf("%s: duplicate top-level key %q", file, k)
			}
			merged[k] = v
		}
	}
	return merged, nil
}

// findConfigFiles recursively collects loadable files under root in a
// stable order.
func findConfigFiles(root string) ([]string, error) {
	var exts []string
	for _, l := range []Loader{NewYAML(), NewHCL()} {
		exts = append(exts, l.Extensions()...)
	}
	return fsutil.FindFilesByExtension(root, exts...)
}
