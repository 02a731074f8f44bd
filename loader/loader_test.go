package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForPath(t *testing.T) {
	testCases := []struct {
		path    string
		want    any
		wantErr bool
	}{
		{path: "config.yaml", want: &YAML{}},
		{path: "config.yml", want: &YAML{}},
		{path: "CONFIG.YAML", want: &YAML{}},
		{path: "grid.hcl", want: &HCL{}},
		{path: "config.json", wantErr: true},
		{path: "noext", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			l, err := ForPath(tc.path)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tc.want, l)
		})
	}
}

func TestLoadPath_SingleFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.yaml", "name: demo\n")

	tree, err := LoadPath(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"name": "demo"}, tree)
}

func TestLoadPath_DirectoryMergesFormats(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "db:\n  port: 5432\n")
	writeFile(t, dir, "b.hcl", `cache { size = 128 }`)
	writeFile(t, dir, "notes.txt", "ignored")

	tree, err := LoadPath(context.Background(), dir)
	require.NoError(t, err)

	want := map[string]any{
		"db":    map[string]any{"port": 5432},
		"cache": map[string]any{"size": 128},
	}
	require.Equal(t, want, tree)
}

func TestLoadPath_DirectoryDuplicateTopLevelKey(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "db: 1\n")
	writeFile(t, dir, "b.yaml", "db: 2\n")

	_, err := LoadPath(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), `duplicate top-level key "db"`)
}

func TestLoadPath_DirectoryRequiresMappings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "list.yaml", "- 1\n- 2\n")

	_, err := LoadPath(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "top-level mapping")
}

func TestLoadPath_EmptyDirectory(t *testing.T) {
	_, err := LoadPath(context.Background(), t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no configuration files")
}

func TestLoadPath_MissingPath(t *testing.T) {
	_, err := LoadPath(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}
