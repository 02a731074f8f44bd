package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_ResolvesToYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "app.yaml", "host: localhost\ndsn: ${host}:${port}\n")
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	err := run(out, logs, []string{"-var", "port=5432", path})

	require.NoError(t, err)
	require.Contains(t, out.String(), "dsn: localhost:5432")
	require.Contains(t, out.String(), "host: localhost")
}

func TestRun_ResolvesToJSON(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "app.yaml", "greeting: hello\n")
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	err := run(out, logs, []string{"-out", "json", path})

	require.NoError(t, err)
	require.Contains(t, out.String(), `"greeting": "hello"`)
}

func TestRun_UnresolvedReference(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "app.yaml", "dsn: ${missing.host}\n")
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	err := run(out, logs, []string{path})

	require.Error(t, err)
	require.Contains(t, err.Error(), "missing.host")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	err := run(out, logs, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, logs.String(), "Usage:", "Expected help text to be printed to the log writer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	err := run(out, logs, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
