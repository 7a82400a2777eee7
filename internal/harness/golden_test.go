package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/flix/internal/journal"
)

func TestTranscript(t *testing.T) {
	result := &Result{
		Steps: []StepOutcome{
			{Index: 1, Desc: "login pat"},
			{Index: 2, Desc: "promote 3", Code: "INDEX_OUT_OF_RANGE"},
		},
		Trace: []journal.Entry{
			{ID: "entry-1", Seq: 1, Session: "session-1", Kind: "login", Account: "pat", Position: -1},
			{ID: "entry-2", Seq: 2, Session: "session-1", Kind: "reserve", Account: "pat", Title: "Alien", Position: 0},
		},
		Inventory: "Alien (currently unavailable)\n",
	}

	want := strings.Join([]string{
		"scenario: demo",
		"step 1: login pat -> ok",
		"step 2: promote 3 -> INDEX_OUT_OF_RANGE",
		"journal:",
		"  1 login session-1 pat",
		`  2 reserve session-1 pat "Alien" @0`,
		"inventory:",
		"  Alien (currently unavailable)",
		"",
	}, "\n")
	assert.Equal(t, want, string(Transcript("demo", result)))
}

// TestGoldenScenarios runs every scenario under testdata/scenarios and
// compares its transcript with testdata/golden.
func TestGoldenScenarios(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		scenario, err := LoadScenario(path)
		require.NoError(t, err, path)

		t.Run(scenario.Name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/admin_lifecycle.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, Transcript(scenario.Name, first), Transcript(scenario.Name, second))
}
