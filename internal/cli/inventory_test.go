package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryText(t *testing.T) {
	path := writeFile(t, "movies.txt", sampleInventory)

	buf := &bytes.Buffer{}
	cmd := NewInventoryCommand(testRootOptions())
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Alien\nBrazil\nCasablanca (currently unavailable)\nJaws\n", buf.String())
}

func TestInventoryJSON(t *testing.T) {
	path := writeFile(t, "movies.txt", sampleInventory)

	opts := testRootOptions()
	opts.Format = "json"
	buf := &bytes.Buffer{}
	cmd := NewInventoryCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string          `json:"status"`
		Data   []InventoryItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 4)
	assert.Equal(t, InventoryItem{Position: 0, Title: "Alien", Stock: 1, Available: true}, resp.Data[0])
	assert.Equal(t, InventoryItem{Position: 2, Title: "Casablanca", Stock: 0, Available: false}, resp.Data[2])
}

func TestInventoryUsesConfiguredFile(t *testing.T) {
	opts := testRootOptions()
	opts.cfg.Inventory = writeFile(t, "movies.txt", "3 Brazil\n")

	buf := &bytes.Buffer{}
	cmd := NewInventoryCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Brazil\n", buf.String())
}

func TestInventoryErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no file", []string{}, "no inventory file given"},
		{"missing file", []string{"/nonexistent/movies.txt"}, "failed to load inventory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewInventoryCommand(testRootOptions())
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestInventoryBadLine(t *testing.T) {
	path := writeFile(t, "movies.txt", "two Jaws\n")

	cmd := NewInventoryCommand(testRootOptions())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load inventory")
}
