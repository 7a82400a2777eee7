package account

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/roach88/flix/internal/rentalerr"
)

func newTestRegistry(opts ...RegistryOption) *Registry {
	opts = append([]RegistryOption{WithRegistryBcryptCost(bcrypt.MinCost)}, opts...)
	return NewRegistry(opts...)
}

func TestRegistry_AddKeepsIDOrder(t *testing.T) {
	r := newTestRegistry()
	for _, id := range []string{"mallory", "Alice", "bob", "Carol"} {
		_, err := r.Add(id, "pw", 1)
		require.NoError(t, err)
	}

	assert.Equal(t, "Alice\nbob\nCarol\nmallory\n", r.List())
	assert.Equal(t, 4, r.Len())
}

func TestRegistry_AddRejectsDuplicateIgnoringCase(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Add("alice", "pw", 1)
	require.NoError(t, err)

	_, err = r.Add("ALICE", "other", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, rentalerr.ErrDuplicateAccount)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_AddRejectsBadCredentials(t *testing.T) {
	r := newTestRegistry()
	cases := []struct{ id, pw string }{
		{"", "pw"},
		{"alice", ""},
		{"al ice", "pw"},
		{"alice", "p w"},
		{" alice", "pw"},
	}
	for _, tc := range cases {
		_, err := r.Add(tc.id, tc.pw, 1)
		assert.ErrorIs(t, err, rentalerr.ErrInvalidArgument, "id=%q pw=%q", tc.id, tc.pw)
	}
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Capacity(t *testing.T) {
	r := newTestRegistry(WithCapacity(2))
	for i := 0; i < 2; i++ {
		_, err := r.Add(fmt.Sprintf("user%d", i), "pw", 1)
		require.NoError(t, err)
	}

	_, err := r.Add("extra", "pw", 1)
	assert.ErrorIs(t, err, rentalerr.ErrRegistryFull)
}

func TestRegistry_DefaultCapacity(t *testing.T) {
	r := newTestRegistry()
	for i := 0; i < DefaultCapacity; i++ {
		_, err := r.Add(fmt.Sprintf("user%02d", i), "pw", 0)
		require.NoError(t, err)
	}
	_, err := r.Add("one-too-many", "pw", 0)
	assert.ErrorIs(t, err, rentalerr.ErrRegistryFull)
}

func TestRegistry_Verify(t *testing.T) {
	r := newTestRegistry()
	added, err := r.Add("alice", "pw", 1)
	require.NoError(t, err)

	got, err := r.Verify("alice", "pw")
	require.NoError(t, err)
	assert.Same(t, added, got)

	_, err = r.Verify("alice", "wrong")
	assert.ErrorIs(t, err, rentalerr.ErrAuthFailed)
	assert.Contains(t, err.Error(), "incorrect password")

	_, err = r.Verify("ALICE", "pw")
	assert.ErrorIs(t, err, rentalerr.ErrAuthFailed, "login id must match exactly")

	_, err = r.Verify("", "")
	assert.ErrorIs(t, err, rentalerr.ErrAuthFailed)
}

func TestRegistry_CancelReturnsStock(t *testing.T) {
	r := newTestRegistry()
	acct, err := r.Add("alice", "pw", 1)
	require.NoError(t, err)
	it := newTestItem(t, "Alien", 1)
	require.NoError(t, acct.Reserve(it))
	require.Equal(t, 0, it.Stock())

	closed, returned, err := r.Cancel("ALICE")
	require.NoError(t, err)
	assert.Same(t, acct, closed)
	assert.Equal(t, []string{"Alien"}, returned)
	assert.Equal(t, 1, it.Stock())
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, -1, r.find("alice"))
}

func TestRegistry_CancelUnknown(t *testing.T) {
	r := newTestRegistry()
	_, _, err := r.Cancel("ghost")
	assert.ErrorIs(t, err, rentalerr.ErrAccountNotFound)
}

func TestRegistry_FindIgnoresCase(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Add("Alice", "pw", 1)
	require.NoError(t, err)
	_, err = r.Add("bob", "pw", 1)
	require.NoError(t, err)

	assert.Equal(t, 0, r.find("ALICE"))
	assert.Equal(t, 1, r.find("Bob"))
	assert.Equal(t, -1, r.find("carol"))
}
