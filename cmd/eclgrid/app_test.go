package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/eclgrid/pkg/egrid"
)

// runApp runs the CLI in-process with an isolated config directory.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	gridPath, gridsDir, configFile = "", "", ""
	jsonOut, jsonIndent = false, true

	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	app.Reader = strings.NewReader("")
	err := app.Run(context.Background(), append([]string{"eclgrid"}, args...))
	return out.String(), err
}

func synthBox(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "BOX.EGRID")
	out, err := runApp(t, "synth", "--out", path,
		"--nx", "3", "--ny", "2", "--nz", "2",
		"--dx", "100", "--dy", "50", "--dz", "10",
		"--origin-x", "1000", "--origin-y", "2000", "--top", "1500",
	)
	require.NoError(t, err)
	require.Equal(t, path, strings.TrimSpace(out))
	return path
}

func TestInspectJSON(t *testing.T) {
	t.Setenv(envGridsDir, "")
	path := synthBox(t, t.TempDir())

	out, err := runApp(t, "inspect", "--grid", path, "--json")
	require.NoError(t, err)

	var got inspectReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, path, got.Path)
	assert.Equal(t, [3]int{3, 2, 2}, [3]int{got.NX, got.NY, got.NZ})
	assert.Equal(t, 12, got.NumCells)
	assert.Equal(t, "METRES", got.MapUnits)
	assert.Equal(t, 6*4*3, got.CoordLen)
	assert.Equal(t, uint64(96), got.ZCornLen)
	assert.Equal(t, egrid.Limits{XMin: 1000, XMax: 1300, YMin: 2000, YMax: 2100, ZMin: 1500, ZMax: 1520}, got.Limits)
	assert.True(t, strings.Contains(out, "\n  \"nx\": 3"), "expected indented output: %s", out)
}

func TestInspectText(t *testing.T) {
	t.Setenv(envGridsDir, "")
	dir := t.TempDir()
	synthBox(t, dir)

	// The only grid in --grids-dir is picked up without --grid.
	out, err := runApp(t, "inspect", "--grids-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "dimensions:    3 x 2 x 2 (12 cells)")
	assert.Contains(t, out, "map units:     METRES")
	assert.Contains(t, out, "limits x:      [1000, 1300]")
	assert.Contains(t, out, "limits z:      [1500, 1520]")
}

func TestCellJSON(t *testing.T) {
	t.Setenv(envGridsDir, "")
	path := synthBox(t, t.TempDir())

	out, err := runApp(t, "cell", "--grid", path, "-i", "2", "-j", "1", "-k", "1", "--json")
	require.NoError(t, err)

	var got cellReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, point{X: 1200, Y: 2050, Z: 1510}, got.Corners["TNW"])
	assert.Equal(t, point{X: 1300, Y: 2100, Z: 1520}, got.Corners["BSE"])
	assert.Equal(t, point{X: 1250, Y: 2075, Z: 1515}, got.Center)
	assert.Len(t, got.Corners, 8)
}

func TestCellOutOfRange(t *testing.T) {
	t.Setenv(envGridsDir, "")
	path := synthBox(t, t.TempDir())

	_, err := runApp(t, "cell", "--grid", path, "-i", "3", "-j", "0", "-k", "0")
	require.ErrorIs(t, err, egrid.ErrCellOutOfRange)
}

func TestConfigFileApplies(t *testing.T) {
	t.Setenv(envGridsDir, "")
	dir := t.TempDir()
	synthBox(t, dir)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg := "grids_dir: " + dir + "\njson_indent: false\nlog_format: json\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	out, err := runApp(t, "--config", cfgPath, "inspect", "--json")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"), "expected compact JSON: %s", out)
	assert.Contains(t, out, `"num_cells":12`)

	// An explicit flag beats the file.
	out, err = runApp(t, "--config", cfgPath, "inspect", "--json", "--json-indent")
	require.NoError(t, err)
	assert.Greater(t, strings.Count(out, "\n"), 1)
}

func TestMissingExplicitConfig(t *testing.T) {
	_, err := runApp(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "inspect", "--grid", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
