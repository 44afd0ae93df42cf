package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/skejul/core/runlog"
)

func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	fixture, err := filepath.Abs(filepath.Join("..", "app", "testdata", "fixture.yaml"))
	require.NoError(t, err)
	cfg := fmt.Sprintf(`extractor:
  type: fixture
  conf:
    path: %[1]s
generator:
  type: fixture
  conf:
    path: %[1]s
output:
  dir: %[2]s
  formats: [csv]
runlog:
  backend: sqlite
  path: %[3]s
school:
  days: [Monday, Tuesday]
`, fixture, filepath.Join(dir, "out"), filepath.Join(dir, "runs.db"))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return dir, path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(bytes.NewBufferString(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunRunsAndRender(t *testing.T) {
	dir, cfg := writeConfig(t)

	out, err := execute(t, "JSS 1 and JSS 2, Monday and Tuesday, 8 to 10.", "run", "-c", cfg, "-i", "-")
	require.NoError(t, err, out)
	assert.Contains(t, out, "2 class groups")
	assert.FileExists(t, filepath.Join(dir, "out", "JSS_1_timetable.csv"))
	assert.FileExists(t, filepath.Join(dir, "out", "class_timetables.json"))

	out, err = execute(t, "", "runs", "-c", cfg, "--validated", "true")
	require.NoError(t, err, out)
	var recs []runlog.RunRecord
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"JSS 1", "JSS 2"}, recs[0].ClassGroups)

	again := filepath.Join(dir, "again")
	out, err = execute(t, "", "render", "-c", cfg, "-o", again, filepath.Join(dir, "out", "class_timetables.json"))
	require.NoError(t, err, out)
	assert.FileExists(t, filepath.Join(again, "JSS_2_timetable.csv"))
	outDir = ""
}

func TestValidate(t *testing.T) {
	_, cfg := writeConfig(t)
	out, err := execute(t, "JSS 1 and JSS 2.", "validate", "-c", cfg)
	require.NoError(t, err, out)
	assert.Contains(t, out, "valid: 2 days")
	assert.Contains(t, out, "JSS 1, JSS 2")
}

func TestRunsRejectsBadFilter(t *testing.T) {
	_, cfg := writeConfig(t)
	_, err := execute(t, "", "runs", "-c", cfg, "--validated", "maybe")
	assert.Error(t, err)
	runsValidated = ""
}

func TestMissingExplicitConfig(t *testing.T) {
	_, err := execute(t, "", "runs", "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
