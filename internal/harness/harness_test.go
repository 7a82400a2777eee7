package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestRun_PassingScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "pass",
		Description: "reserve an available title",
		Inventory:   []string{"1 Alien", "0 Brazil"},
		Accounts:    []AccountSpec{{ID: "pat", Password: "pw", MaxAtHome: 1}},
		Steps: []Step{
			{Do: ActionLogin, ID: "pat", Password: "pw"},
			{Do: ActionReserve, Pos: intp(0), Expect: &Expect{
				AtHome:   []string{"Alien"},
				Reserves: []string{},
				Stock:    map[string]int{"Alien": 0, "Brazil": 0},
			}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Steps, 2)
	assert.Equal(t, "reserve 0", result.Steps[1].Desc)
	assert.Equal(t, "", result.Steps[1].Code)

	require.Len(t, result.Trace, 3)
	assert.Equal(t, "entry-1", result.Trace[0].ID)
	assert.Equal(t, "session-1", result.Trace[0].Session)
	assert.Equal(t, "checkout", result.Trace[2].Kind)
	assert.Equal(t, "Alien (currently unavailable)\nBrazil (currently unavailable)\n", result.Inventory)
}

func TestRun_ExpectedErrorMatches(t *testing.T) {
	scenario := &Scenario{
		Name:        "expected_error",
		Description: "reserving while logged out fails",
		Inventory:   []string{"1 Alien"},
		Steps: []Step{
			{Do: ActionReserve, Pos: intp(0), Error: "NOT_LOGGED_IN"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t, "NOT_LOGGED_IN", result.Steps[0].Code)
	assert.Empty(t, result.Trace)
}

func TestRun_ReportsMismatches(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "every kind of mismatch",
		Inventory:   []string{"1 Alien"},
		Accounts:    []AccountSpec{{ID: "pat", Password: "pw", MaxAtHome: 1}},
		Steps: []Step{
			{Do: ActionLogin, ID: "pat", Password: "pw", Error: "AUTH_FAILED"},
			{Do: ActionReserve, Pos: intp(5)},
			{Do: ActionReserve, Pos: intp(0), Expect: &Expect{
				AtHome: []string{},
				Stock:  map[string]int{"Alien": 1, "Ghost": 0},
			}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 5)
	assert.Equal(t, "step 1 (login pat): expected AUTH_FAILED, got success", result.Errors[0])
	assert.Contains(t, result.Errors[1], "step 2 (reserve 5): unexpected error: INDEX_OUT_OF_RANGE")
	assert.Contains(t, result.Errors[2], "at_home")
	assert.Contains(t, result.Errors[3], `stock: "Alien" expected 1, got 0`)
	assert.Contains(t, result.Errors[4], `stock: no item "Ghost"`)
}

func TestRun_BadInventory(t *testing.T) {
	_, err := Run(&Scenario{
		Name:        "bad",
		Description: "bad inventory",
		Inventory:   []string{"lots Alien"},
		Steps:       []Step{{Do: ActionLogout}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load inventory")
}

func TestRun_DuplicateSeedAccount(t *testing.T) {
	_, err := Run(&Scenario{
		Name:        "dup",
		Description: "duplicate seeded account",
		Inventory:   []string{"1 Alien"},
		Accounts: []AccountSpec{
			{ID: "pat", Password: "pw"},
			{ID: "PAT", Password: "pw"},
		},
		Steps: []Step{{Do: ActionLogout}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to register account "PAT"`)
}
