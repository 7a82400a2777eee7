package rental

import "github.com/google/uuid"

// TokenGenerator issues session tokens.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator issues time-sortable UUIDv7 tokens, so journal entries
// from successive sessions sort in login order.
//
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
//
// Panics if UUID generation fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
