package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// tableRows splits a rendered table into trimmed cells, skipping border lines
func tableRows(out string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(out, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), "│", "|")
		if !strings.HasPrefix(line, "|") {
			continue
		}
		var cells []string
		for _, cell := range strings.Split(strings.Trim(line, "|"), "|") {
			cells = append(cells, strings.TrimSpace(cell))
		}
		rows = append(rows, cells)
	}
	return rows
}

func TestHueCommand(t *testing.T) {
	out, err := execute(t, "hue", "#ffffff", "#9058ff")
	require.NoError(t, err)

	rows := tableRows(out)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"COLOR", "HUE", "SLOT", "PAINT"}, rows[0])
	assert.Equal(t, []string{"#ffffff", "0.00", "0", "#c8c8ff"}, rows[1])
	assert.Equal(t, []string{"#9058ff", "260.12", "1", "#7030ff"}, rows[2])
}

func TestHueCommandUsesConfiguredPalette(t *testing.T) {
	out, err := execute(t, "hue")
	require.NoError(t, err)
	assert.Contains(t, out, "#FFF2AF")
	assert.Len(t, tableRows(out), 4)
}

func TestInvalidFlagValueFails(t *testing.T) {
	_, err := execute(t, "--intensity", "blinding", "hue")
	assert.Error(t, err)
}

func TestExportCommandWritesGIF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "beams.gif")
	_, err := execute(t, "--seed", "5", "--log-level", "error",
		"export", "--width", "48", "--height", "32", "--frames", "3", "--output", out)
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportCommandPNGFormat(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	_, err := execute(t, "--backend", "canvas", "--log-level", "error",
		"export", "--width", "24", "--height", "24", "--frames", "2", "--format", "png", "-o", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("", "info", false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.ErrorLevel), "no-op logger")

	path := filepath.Join(t.TempDir(), "logs", "beams.log")
	l, err = newLogger(path, "debug", false)
	require.NoError(t, err)
	l.Debug("hello")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)

	_, err = newLogger("", "loud", true)
	assert.Error(t, err)
}
