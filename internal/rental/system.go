package rental

import (
	"context"

	"github.com/roach88/flix/internal/account"
	"github.com/roach88/flix/internal/inventory"
	"github.com/roach88/flix/internal/rentalerr"
)

// System is the facade over the catalog and the active account.
type System struct {
	catalog  *inventory.Catalog
	account  *account.Account
	session  string
	recorder Recorder
}

// Option configures a System.
type Option func(*System)

// WithRecorder sets where events are reported.
//
// Default: events are discarded.
func WithRecorder(r Recorder) Option {
	return func(s *System) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewSystem creates a facade over catalog with no active account.
func NewSystem(catalog *inventory.Catalog, opts ...Option) *System {
	s := &System{
		catalog:  catalog,
		recorder: discardRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetAccount makes acct the active account for the given session token.
// A nil acct clears it.
func (s *System) SetAccount(acct *account.Account, session string) {
	s.account = acct
	s.session = session
	if acct == nil {
		s.session = ""
	}
}

// Account returns the active account, or nil.
func (s *System) Account() *account.Account {
	return s.account
}

// Catalog returns the item catalog.
func (s *System) Catalog() *inventory.Catalog {
	return s.catalog
}

// ShowInventory returns catalog display names, one per line.
func (s *System) ShowInventory() string {
	return s.catalog.Traverse()
}

// Reserve adds the catalog item at pos to the active account's
// reservation queue.
func (s *System) Reserve(ctx context.Context, pos int) error {
	acct, err := s.active()
	if err != nil {
		return err
	}
	item, err := s.catalog.At(pos)
	if err != nil {
		return err
	}

	before := acct.AtHomeLen()
	if err := acct.Reserve(item); err != nil {
		return err
	}
	s.emit(ctx, KindReserve, item.Name(), pos)
	s.emitCheckout(ctx, before)
	return nil
}

// Unreserve drops the reservation at pos.
func (s *System) Unreserve(ctx context.Context, pos int) error {
	acct, err := s.active()
	if err != nil {
		return err
	}
	title := reservedTitle(acct, pos)
	if err := acct.Unreserve(pos); err != nil {
		return err
	}
	s.emit(ctx, KindUnreserve, title, pos)
	return nil
}

// PromoteReservation moves the reservation at pos one slot toward the front.
func (s *System) PromoteReservation(ctx context.Context, pos int) error {
	acct, err := s.active()
	if err != nil {
		return err
	}
	title := reservedTitle(acct, pos)
	if err := acct.PromoteReservation(pos); err != nil {
		return err
	}
	s.emit(ctx, KindPromote, title, pos)
	return nil
}

// ReturnItem returns the at-home item at pos.
func (s *System) ReturnItem(ctx context.Context, pos int) error {
	acct, err := s.active()
	if err != nil {
		return err
	}
	var title string
	if item, ok := acct.AtHomeAt(pos); ok {
		title = item.Name()
	}

	before := acct.AtHomeLen()
	if err := acct.ReturnItem(pos); err != nil {
		return err
	}
	s.emit(ctx, KindReturn, title, pos)
	s.emitCheckout(ctx, before-1)
	return nil
}

// ReserveList returns the active account's reservations, one per line.
func (s *System) ReserveList() (string, error) {
	acct, err := s.active()
	if err != nil {
		return "", err
	}
	return acct.ReserveList(), nil
}

// AtHomeList returns the active account's at-home items, one per line.
func (s *System) AtHomeList() (string, error) {
	acct, err := s.active()
	if err != nil {
		return "", err
	}
	return acct.AtHomeList(), nil
}

func (s *System) active() (*account.Account, error) {
	if s.account == nil {
		return nil, rentalerr.New(rentalerr.CodeNotLoggedIn, "no customer is logged in")
	}
	return s.account, nil
}

func (s *System) emit(ctx context.Context, kind Kind, title string, pos int) {
	record(ctx, s.recorder, Event{
		Kind:     kind,
		Session:  s.session,
		Account:  s.account.ID(),
		Title:    title,
		Position: pos,
	})
}

// emitCheckout reports a checkout when the at-home queue is longer than
// expected. Checkout appends, so the newcomer is last.
func (s *System) emitCheckout(ctx context.Context, expected int) {
	n := s.account.AtHomeLen()
	if n <= expected {
		return
	}
	item, _ := s.account.AtHomeAt(n - 1)
	s.emit(ctx, KindCheckout, item.Name(), -1)
}

func reservedTitle(acct *account.Account, pos int) string {
	if item, ok := acct.ReservedAt(pos); ok {
		return item.Name()
	}
	return ""
}
