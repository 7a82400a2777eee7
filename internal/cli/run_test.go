package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: passing
description: "A customer checks out an available title"
inventory: ["1 Alien"]
accounts:
  - id: pat
    password: pw
    max_at_home: 1
steps:
  - do: login
    id: pat
    password: pw
  - do: reserve
    pos: 0
    expect:
      at_home: [Alien]
`

const failingScenario = `name: failing
description: "Reserving without a session is expected to succeed"
inventory: ["1 Alien"]
steps:
  - do: reserve
    pos: 0
`

func writeScenarios(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func executeRun(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRunCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRunCommandMissingArgs(t *testing.T) {
	_, err := executeRun(t, testRootOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestRunNonExistentPath(t *testing.T) {
	_, err := executeRun(t, testRootOptions(), "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario path not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunEmptyDir(t *testing.T) {
	out, err := executeRun(t, testRootOptions(), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestRunEmptyDirJSON(t *testing.T) {
	opts := testRootOptions()
	opts.Format = "json"

	out, err := executeRun(t, opts, t.TempDir())
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, resp.Data.Total)
}

func TestRunPassing(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"passing.yaml": passingScenario})

	out, err := executeRun(t, testRootOptions(), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ passing")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestRunSingleFile(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"passing.yaml": passingScenario})

	out, err := executeRun(t, testRootOptions(), filepath.Join(dir, "passing.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed")
}

func TestRunFailing(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"passing.yaml": passingScenario,
		"failing.yaml": failingScenario,
	})

	out, err := executeRun(t, testRootOptions(), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ failing")
	assert.Contains(t, out, "NOT_LOGGED_IN")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestRunFailingJSON(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"failing.yaml": failingScenario})
	opts := testRootOptions()
	opts.Format = "json"

	out, err := executeRun(t, opts, dir)
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.False(t, resp.Data.Scenarios[0].Pass)
	assert.NotEmpty(t, resp.Data.Scenarios[0].Errors)
}

func TestRunLoadError(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"broken.yaml": "name: broken\ndescription: d\ninventory: [\"1 Alien\"]\nsteps: [{do: dance}]\n"})

	out, err := executeRun(t, testRootOptions(), dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken")
	assert.Contains(t, out, "failed to load scenario")
}

func TestRunFilter(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"passing.yaml": passingScenario,
		"failing.yaml": failingScenario,
		"notes.txt":    "not a scenario",
	})

	out, err := executeRun(t, testRootOptions(), dir, "--filter", "pass*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 total")
	assert.NotContains(t, out, "failing")
}

func TestRunBadFilter(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"passing.yaml": passingScenario})

	_, err := executeRun(t, testRootOptions(), dir, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunUpdateRequiresGolden(t *testing.T) {
	_, err := executeRun(t, testRootOptions(), t.TempDir(), "--update")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--update requires --golden")
}

func TestRunGoldenUpdateAndCompare(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"passing.yaml": passingScenario})
	golden := filepath.Join(t.TempDir(), "golden")

	_, err := executeRun(t, testRootOptions(), dir, "--golden", golden, "--update")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(golden, "passing.golden"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "scenario: passing\n")
	assert.Contains(t, string(data), `reserve session-1 pat "Alien" @0`)

	_, err = executeRun(t, testRootOptions(), dir, "--golden", golden)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(golden, "passing.golden"), []byte("stale\n"), 0644))
	out, err := executeRun(t, testRootOptions(), dir, "--golden", golden)
	require.Error(t, err)
	assert.Contains(t, out, "transcript does not match")
}

func TestRunHarnessScenarios(t *testing.T) {
	out, err := executeRun(t, testRootOptions(),
		"../harness/testdata/scenarios",
		"--golden", "../harness/testdata/golden",
	)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ All scenarios passed")
}
