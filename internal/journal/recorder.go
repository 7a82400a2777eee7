package journal

import (
	"context"
	"fmt"

	"github.com/roach88/flix/internal/rental"
)

// Recorder writes rental events to a Journal.
type Recorder struct {
	journal *Journal
	clock   *Clock
	ids     rental.TokenGenerator
}

var _ rental.Recorder = (*Recorder)(nil)

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithIDs sets the entry id generator.
//
// Default: rental.UUIDv7Generator.
func WithIDs(g rental.TokenGenerator) RecorderOption {
	return func(r *Recorder) {
		if g != nil {
			r.ids = g
		}
	}
}

// NewRecorder creates a recorder whose clock resumes after the journal's
// last entry.
func NewRecorder(ctx context.Context, j *Journal, opts ...RecorderOption) (*Recorder, error) {
	last, err := j.LastSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("new recorder: %w", err)
	}
	r := &Recorder{
		journal: j,
		clock:   NewClockAt(last),
		ids:     rental.UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Record appends ev as a new entry.
func (r *Recorder) Record(ctx context.Context, ev rental.Event) error {
	return r.journal.Append(ctx, Entry{
		ID:       r.ids.Generate(),
		Seq:      r.clock.Next(),
		Session:  ev.Session,
		Kind:     string(ev.Kind),
		Account:  ev.Account,
		Title:    ev.Title,
		Position: ev.Position,
	})
}

// LastSeq returns the seq of the most recent entry this recorder wrote, or
// the journal's last seq when it has written none.
func (r *Recorder) LastSeq() int64 {
	return r.clock.Current()
}
