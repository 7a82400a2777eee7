package rental

import (
	"context"

	"github.com/roach88/flix/internal/account"
	"github.com/roach88/flix/internal/rentalerr"
)

// Credentials identify the administrator.
type Credentials struct {
	ID       string
	Password string
}

// DefaultAdmin is used when no admin credentials are configured.
var DefaultAdmin = Credentials{ID: "admin", Password: "admin"}

// Session tracks who is logged in and guards the admin-only operations.
//
// At most one of IsAdmin and IsCustomer is true. While a customer is logged
// in the System's active account is that customer's.
type Session struct {
	system   *System
	registry *account.Registry
	admin    Credentials
	tokens   TokenGenerator

	token      string
	isAdmin    bool
	isCustomer bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithAdmin sets the administrator credentials.
//
// Default: DefaultAdmin.
func WithAdmin(c Credentials) SessionOption {
	return func(s *Session) {
		s.admin = c
	}
}

// WithTokens sets the session token generator.
//
// Default: UUIDv7Generator.
func WithTokens(g TokenGenerator) SessionOption {
	return func(s *Session) {
		if g != nil {
			s.tokens = g
		}
	}
}

// NewSession creates a logged-out session over system and registry.
func NewSession(system *System, registry *account.Registry, opts ...SessionOption) *Session {
	s := &Session{
		system:   system,
		registry: registry,
		admin:    DefaultAdmin,
		tokens:   UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// System returns the facade this session drives.
func (s *Session) System() *System {
	return s.system
}

// Registry returns the account registry.
func (s *Session) Registry() *account.Registry {
	return s.registry
}

// Token returns the current session token, or "" when logged out.
func (s *Session) Token() string {
	return s.token
}

// IsAdmin reports whether the administrator is logged in.
func (s *Session) IsAdmin() bool {
	return s.isAdmin
}

// IsCustomer reports whether a customer is logged in.
func (s *Session) IsCustomer() bool {
	return s.isCustomer
}

// Login starts a session.
//
// The admin credentials are checked first; anything else must verify
// against the registry.
//
// Errors:
//   - SESSION_ACTIVE if someone is already logged in
//   - AUTH_FAILED if the id is unknown or the password is wrong
func (s *Session) Login(ctx context.Context, id, password string) error {
	if s.isAdmin || s.isCustomer {
		return rentalerr.New(rentalerr.CodeSessionActive, "log out before logging in again")
	}

	if id == s.admin.ID && password == s.admin.Password {
		s.token = s.tokens.Generate()
		s.isAdmin = true
		s.recordAs(ctx, KindLogin, id)
		return nil
	}

	acct, err := s.registry.Verify(id, password)
	if err != nil {
		return err
	}
	s.token = s.tokens.Generate()
	s.isCustomer = true
	s.system.SetAccount(acct, s.token)
	s.recordAs(ctx, KindLogin, acct.ID())
	return nil
}

// Logout ends the current session. Logging out while logged out is a no-op.
func (s *Session) Logout(ctx context.Context) {
	if !s.isAdmin && !s.isCustomer {
		return
	}

	who := s.admin.ID
	if acct := s.system.Account(); s.isCustomer && acct != nil {
		who = acct.ID()
	}
	s.recordAs(ctx, KindLogout, who)

	s.system.SetAccount(nil, "")
	s.token = ""
	s.isAdmin = false
	s.isCustomer = false
}

// AddAccount registers a new customer. Admin only.
func (s *Session) AddAccount(ctx context.Context, id, password string, maxAtHome int) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	acct, err := s.registry.Add(id, password, maxAtHome)
	if err != nil {
		return err
	}
	s.recordAs(ctx, KindRegister, acct.ID())
	return nil
}

// CancelAccount removes a customer and returns their at-home items to
// the shelf. Admin only.
func (s *Session) CancelAccount(ctx context.Context, id string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	acct, returned, err := s.registry.Cancel(id)
	if err != nil {
		return err
	}
	for _, title := range returned {
		record(ctx, s.system.recorder, Event{
			Kind:     KindReturn,
			Session:  s.token,
			Account:  acct.ID(),
			Title:    title,
			Position: -1,
		})
	}
	s.recordAs(ctx, KindCancel, acct.ID())
	return nil
}

// ListAccounts returns registered ids in registry order, one per line.
func (s *Session) ListAccounts() string {
	return s.registry.List()
}

func (s *Session) requireAdmin() error {
	if !s.isAdmin {
		return rentalerr.New(rentalerr.CodeAccessDenied, "only the administrator may manage accounts")
	}
	return nil
}

func (s *Session) recordAs(ctx context.Context, kind Kind, who string) {
	record(ctx, s.system.recorder, Event{
		Kind:     kind,
		Session:  s.token,
		Account:  who,
		Position: -1,
	})
}
