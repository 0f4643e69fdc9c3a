package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/networth-projector/internal/output"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeExample(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	out, _, err := execute(t, "example", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)
	return path
}

func TestExampleAndValidate(t *testing.T) {
	for _, name := range []string{"household.yaml", "household.json", "household.toml"} {
		t.Run(name, func(t *testing.T) {
			path := writeExample(t, name)
			out, _, err := execute(t, "validate", path)
			require.NoError(t, err)
			assert.Contains(t, out, `configuration "Example household" is valid: 7 assets, 2025-01-01 to 2065-01-01`)
		})
	}
}

func TestValidateReportsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenario:\n  name: x\n  favourite_colour: blue\n"), 0o644))

	_, _, err := execute(t, "validate", path)
	assert.ErrorContains(t, err, "favourite_colour")
}

func TestRunConsole(t *testing.T) {
	path := writeExample(t, "household.yaml")
	out, _, err := execute(t, "run", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "NET WORTH PROJECTION: Example household")
	assert.Contains(t, out, "Seed: 20250101")
	assert.Contains(t, out, "(481 periods)")
}

func TestRunWritesFiles(t *testing.T) {
	path := writeExample(t, "household.yaml")
	dir := t.TempDir()

	out, _, err := execute(t, "run", "-c", path, "--format", "all", "--output", dir, "--seed", "7")
	require.NoError(t, err)
	assert.Equal(t, len(output.AvailableFormatterNames()), strings.Count(out, "wrote "))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(output.AvailableFormatterNames()))
}

func TestRunFilterAndLogging(t *testing.T) {
	path := writeExample(t, "household.yaml")
	dir := t.TempDir()

	out, stderr, err := execute(t, "run", "-c", path, "--filter", "401k", "-f", "csv", "-o", dir, "--log-level", "info", "--log-json")
	require.NoError(t, err)
	assert.Contains(t, out, "networth_model-csv_")
	assert.Contains(t, stderr, `"msg":"projected 481 periods`)
}

func TestRunErrors(t *testing.T) {
	path := writeExample(t, "household.yaml")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing config flag", []string{"run"}, `required flag(s) "config" not set`},
		{"missing file", []string{"run", "-c", filepath.Join(t.TempDir(), "nope.yaml")}, "failed to read file"},
		{"unsupported format", []string{"run", "-c", path, "-f", "html", "-o", t.TempDir()}, "unsupported output format"},
		{"bad log level", []string{"run", "-c", path, "--log-level", "loud"}, "unknown log level"},
		{"non-positive runs", []string{"montecarlo", "-c", path, "--runs", "0"}, "--runs must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestMonteCarlo(t *testing.T) {
	path := writeExample(t, "household.yaml")
	dir := t.TempDir()

	out, _, err := execute(t, "mc", "-c", path, "--runs", "4", "--workers", "2", "--seed", "11", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "MONTE CARLO: Example household")
	assert.Contains(t, out, "Simulations:   4 (base seed 11)")
	assert.Equal(t, 2, strings.Count(out, "wrote "))

	again, _, err := execute(t, "mc", "-c", path, "--runs", "4", "--workers", "3", "--seed", "11")
	require.NoError(t, err)
	firstSummary := out[:strings.Index(out, "wrote ")]
	assert.Equal(t, firstSummary, again)
}
