package account

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/roach88/flix/internal/inventory"
	"github.com/roach88/flix/internal/rentalerr"
	"github.com/roach88/flix/internal/sequence"
)

// DefaultCapacity is the default maximum number of registered accounts.
const DefaultCapacity = 20

// Registry holds accounts sorted by id, ignoring case.
type Registry struct {
	accounts *sequence.List[*Account]
	capacity int
	cost     int
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithCapacity sets the maximum number of accounts.
//
// Default: 20 (DefaultCapacity).
func WithCapacity(n int) RegistryOption {
	return func(r *Registry) {
		r.capacity = n
	}
}

// WithRegistryBcryptCost sets the bcrypt cost for new accounts.
func WithRegistryBcryptCost(cost int) RegistryOption {
	return func(r *Registry) {
		r.cost = cost
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		accounts: sequence.New[*Account](),
		capacity: DefaultCapacity,
		cost:     bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Len returns the number of registered accounts.
func (r *Registry) Len() int {
	return r.accounts.Len()
}

// Add registers a new account.
//
// Errors:
//   - REGISTRY_FULL if the registry is at capacity
//   - INVALID_ARGUMENT if id or password is empty or contains whitespace
//   - DUPLICATE_ACCOUNT if id matches an existing id ignoring case
func (r *Registry) Add(id, password string, maxAtHome int) (*Account, error) {
	if r.accounts.Len() >= r.capacity {
		return nil, rentalerr.New(rentalerr.CodeRegistryFull, "there is no room for additional accounts (capacity %d)", r.capacity)
	}
	if id == "" || password == "" || hasSpace(id) || hasSpace(password) {
		return nil, rentalerr.New(rentalerr.CodeInvalidArgument, "id and password must be non-empty and contain no whitespace")
	}
	if r.find(id) >= 0 {
		return nil, rentalerr.New(rentalerr.CodeDuplicateAccount, "account %q already exists", id)
	}

	acct, err := New(id, password, maxAtHome, WithBcryptCost(r.cost))
	if err != nil {
		return nil, err
	}
	r.insert(acct)
	return acct, nil
}

// Verify returns the account whose id matches exactly and whose password
// verifies. Returns AUTH_FAILED otherwise.
func (r *Registry) Verify(id, password string) (*Account, error) {
	if id == "" || password == "" {
		return nil, rentalerr.New(rentalerr.CodeAuthFailed, "the account doesn't exist")
	}

	r.accounts.ResetCursor()
	for r.accounts.HasNext() {
		acct, _ := r.accounts.Next()
		if acct.ID() != id {
			continue
		}
		if !acct.VerifyPassword(password) {
			return nil, rentalerr.New(rentalerr.CodeAuthFailed, "incorrect password")
		}
		return acct, nil
	}
	return nil, rentalerr.New(rentalerr.CodeAuthFailed, "the account doesn't exist")
}

// Cancel removes the account matching id (ignoring case) and closes it,
// putting its at-home items back on the shelf.
// Returns the closed account and the names of the items put back, or
// ACCOUNT_NOT_FOUND.
func (r *Registry) Cancel(id string) (*Account, []string, error) {
	pos := r.find(id)
	if pos < 0 {
		return nil, nil, rentalerr.New(rentalerr.CodeAccountNotFound, "no matching account %q", id)
	}
	acct, _ := r.accounts.RemoveAt(pos)
	return acct, acct.Close(), nil
}

// List returns all account ids in registry order, one per line.
func (r *Registry) List() string {
	var b strings.Builder
	r.accounts.ResetCursor()
	for r.accounts.HasNext() {
		acct, _ := r.accounts.Next()
		b.WriteString(acct.ID())
		b.WriteString("\n")
	}
	return b.String()
}

// insert places acct before the first account whose id sorts after it.
func (r *Registry) insert(acct *Account) {
	for i := 0; i < r.accounts.Len(); i++ {
		existing, _ := r.accounts.At(i)
		if inventory.CompareNames(existing.ID(), acct.ID()) > 0 {
			r.accounts.InsertAt(i, acct)
			return
		}
	}
	r.accounts.Append(acct)
}

// find returns the position of the account matching id ignoring case, or -1.
func (r *Registry) find(id string) int {
	pos := 0
	r.accounts.ResetCursor()
	for r.accounts.HasNext() {
		acct, _ := r.accounts.Next()
		if strings.EqualFold(acct.ID(), id) {
			return pos
		}
		pos++
	}
	return -1
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}
