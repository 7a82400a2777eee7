package inventory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/flix/internal/rentalerr"
)

func mustItem(t *testing.T, name string, stock int) *Item {
	t.Helper()
	it, err := NewItem(name, stock)
	require.NoError(t, err)
	return it
}

func names(c *Catalog) []string {
	var out []string
	for _, it := range c.Snapshot() {
		out = append(out, it.Name())
	}
	return out
}

func TestCatalog_SortedByNameIgnoringCase(t *testing.T) {
	c := NewCatalog(
		mustItem(t, "zodiac", 1),
		mustItem(t, "Alien", 1),
		mustItem(t, "brazil", 1),
		mustItem(t, "Casablanca", 1),
	)

	assert.Equal(t, []string{"Alien", "brazil", "Casablanca", "zodiac"}, names(c))
}

func TestCatalog_EqualNamesKeepInsertionOrder(t *testing.T) {
	first := mustItem(t, "Alien", 1)
	second := mustItem(t, "ALIEN", 2)
	c := NewCatalog(first, second)

	got, err := c.At(0)
	require.NoError(t, err)
	assert.Same(t, first, got)
	got, err = c.At(1)
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestCatalog_At(t *testing.T) {
	c := NewCatalog(mustItem(t, "Alien", 1))

	_, err := c.At(1)
	require.Error(t, err)
	assert.True(t, rentalerr.IsIndexOutOfRange(err))

	_, err = c.At(-1)
	assert.ErrorIs(t, err, rentalerr.ErrIndexOutOfRange)
}

func TestCatalog_Find(t *testing.T) {
	alien := mustItem(t, "Alien", 1)
	c := NewCatalog(alien, mustItem(t, "Brazil", 0))

	got, ok := c.Find("alien")
	require.True(t, ok)
	assert.Same(t, alien, got)

	_, ok = c.Find("Casablanca")
	assert.False(t, ok)
}

func TestCatalog_Traverse(t *testing.T) {
	c := NewCatalog(mustItem(t, "Brazil", 0), mustItem(t, "Alien", 3))
	assert.Equal(t, "Alien\nBrazil (currently unavailable)\n", c.Traverse())

	assert.Equal(t, "", NewCatalog().Traverse())
}

func TestParseItem(t *testing.T) {
	tests := []struct {
		line  string
		name  string
		stock int
	}{
		{"3 Alien", "Alien", 3},
		{"0 The Matrix", "Matrix", 0},
		{"1 the matrix", "matrix", 1},
		{"2 A Fish Called Wanda", "Fish Called Wanda", 2},
		{"2 An American Werewolf in London", "American Werewolf in London", 2},
		{"1 The", "The", 1},
		{"4 Theodora Goes Wild", "Theodora Goes Wild", 4},
		{"  5   Brazil  ", "Brazil", 5},
		{"1\tThe Thing", "Thing", 1},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			it, err := ParseItem(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.name, it.Name())
			assert.Equal(t, tt.stock, it.Stock())
		})
	}
}

func TestParseItem_Invalid(t *testing.T) {
	for _, line := range []string{"", "Alien", "x Alien", "3", "3   ", "-1 Alien"} {
		t.Run(line, func(t *testing.T) {
			_, err := ParseItem(line)
			require.Error(t, err)
			assert.ErrorIs(t, err, rentalerr.ErrInvalidArgument)
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader("2 The Matrix\n0 Alien\n\n1 Brazil\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Alien", "Brazil", "Matrix"}, names(c))
}

func TestLoad_ErrorsCarryLineNumber(t *testing.T) {
	_, err := Load(strings.NewReader("2 Alien\nbogus\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.ErrorIs(t, err, rentalerr.ErrInvalidArgument)
}

func TestLoad_Empty(t *testing.T) {
	_, err := Load(strings.NewReader("\n\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, rentalerr.ErrInvalidArgument)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 Alien\n"), 0644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open inventory")
}
