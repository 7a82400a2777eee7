// Package account implements customer accounts, their reservation and
// at-home queues, and the registry that holds them.
//
// CHECKOUT:
//
// An account moves items from its reservation queue to its at-home queue
// whenever it has spare capacity and a reserved item is in stock. The rule
// runs after every change that could enable it (a new reservation or a
// return) and advances at most one item per run:
//
//  1. nowAtHome == maxAtHome: stop.
//  2. Scan reservations front to back for the first available item.
//  3. Take one unit of it, move it to the at-home queue, nowAtHome++.
//
// Availability decides which reservation advances. Among available items
// the one reserved earliest (or promoted furthest) wins.
//
// INVARIANTS:
//   - 0 <= nowAtHome <= maxAtHome
//   - at-home queue length == nowAtHome
//   - each at-home entry holds exactly one unit taken from its item
package account

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/roach88/flix/internal/inventory"
	"github.com/roach88/flix/internal/rentalerr"
	"github.com/roach88/flix/internal/sequence"
)

// Account is a customer with a bounded number of items at home.
type Account struct {
	id           string
	passwordHash []byte
	maxAtHome    int
	nowAtHome    int
	reserves     *sequence.List[*inventory.Item]
	atHome       *sequence.List[*inventory.Item]
}

// Option configures account construction.
type Option func(*options)

type options struct {
	cost int
}

// WithBcryptCost sets the bcrypt cost used to hash the password.
//
// Default: bcrypt.DefaultCost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(o *options) {
		o.cost = cost
	}
}

// New creates an account with empty queues.
//
// id and password are trimmed and must not be empty. A negative maxAtHome
// is clamped to 0. Only a bcrypt hash of the trimmed password is kept.
func New(id, password string, maxAtHome int, opts ...Option) (*Account, error) {
	o := options{cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(&o)
	}

	id = strings.TrimSpace(id)
	password = strings.TrimSpace(password)
	if id == "" || password == "" {
		return nil, rentalerr.New(rentalerr.CodeInvalidArgument, "id and password must be non-empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), o.cost)
	if err != nil {
		return nil, &rentalerr.Error{
			Code:    rentalerr.CodeInvalidArgument,
			Message: "password cannot be hashed: " + err.Error(),
		}
	}

	if maxAtHome < 0 {
		maxAtHome = 0
	}

	return &Account{
		id:           id,
		passwordHash: hash,
		maxAtHome:    maxAtHome,
		reserves:     sequence.New[*inventory.Item](),
		atHome:       sequence.New[*inventory.Item](),
	}, nil
}

// ID returns the account id.
func (a *Account) ID() string {
	return a.id
}

// MaxAtHome returns how many items the account may hold at once.
func (a *Account) MaxAtHome() int {
	return a.maxAtHome
}

// NowAtHome returns how many items the account currently holds.
func (a *Account) NowAtHome() int {
	return a.nowAtHome
}

// VerifyPassword reports whether password (trimmed) matches the account's.
func (a *Account) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(a.passwordHash, []byte(strings.TrimSpace(password))) == nil
}

// Reserve queues item and immediately tries to check something out.
// Returns INVALID_ARGUMENT if item is nil.
func (a *Account) Reserve(item *inventory.Item) error {
	if item == nil {
		return rentalerr.New(rentalerr.CodeInvalidArgument, "item not specified")
	}
	a.reserves.Append(item)
	return a.checkout()
}

// Unreserve drops the reservation at position i. Stock is untouched.
func (a *Account) Unreserve(i int) error {
	if _, ok := a.reserves.RemoveAt(i); !ok {
		return rentalerr.OutOfRange("reservation", i, a.reserves.Len())
	}
	return nil
}

// PromoteReservation moves the reservation at position i one slot toward
// the front. Position 0 is a no-op.
func (a *Account) PromoteReservation(i int) error {
	if i < 0 || i >= a.reserves.Len() {
		return rentalerr.OutOfRange("reservation", i, a.reserves.Len())
	}
	a.reserves.MoveAheadOne(i)
	return nil
}

// ReturnItem hands the at-home item at position i back to the shelf, then
// tries to check out the next eligible reservation.
func (a *Account) ReturnItem(i int) error {
	item, ok := a.atHome.RemoveAt(i)
	if !ok {
		return rentalerr.OutOfRange("at-home", i, a.atHome.Len())
	}
	item.ReturnUnit()
	a.nowAtHome--
	return a.checkout()
}

// Close returns every at-home item to the shelf and drops all reservations.
// Reservations never took stock, so nothing is returned for them.
// Returns the names of the items put back, in at-home order.
func (a *Account) Close() []string {
	var returned []string
	for !a.atHome.IsEmpty() {
		item, _ := a.atHome.RemoveAt(0)
		item.ReturnUnit()
		a.nowAtHome--
		returned = append(returned, item.Name())
	}
	a.reserves = sequence.New[*inventory.Item]()
	return returned
}

// checkout advances at most one available reservation into the at-home
// queue. No capacity or no available reservation is a normal no-op.
func (a *Account) checkout() error {
	if a.nowAtHome >= a.maxAtHome {
		return nil
	}

	pos := a.firstAvailable()
	if pos < 0 {
		return nil
	}

	item, _ := a.reserves.At(pos)
	if err := item.TakeUnit(); err != nil {
		return err
	}
	a.reserves.RemoveAt(pos)
	a.atHome.Append(item)
	a.nowAtHome++
	return nil
}

// firstAvailable returns the position of the front-most reservation with
// stock, or -1. Single cursor pass.
func (a *Account) firstAvailable() int {
	a.reserves.ResetCursor()
	for pos := 0; a.reserves.HasNext(); pos++ {
		item, _ := a.reserves.Next()
		if item.IsAvailable() {
			return pos
		}
	}
	return -1
}
