package rental

import (
	"context"
	"log/slog"
)

// Kind names what happened in an Event.
type Kind string

const (
	KindLogin     Kind = "login"
	KindLogout    Kind = "logout"
	KindRegister  Kind = "register"
	KindCancel    Kind = "cancel"
	KindReserve   Kind = "reserve"
	KindUnreserve Kind = "unreserve"
	KindPromote   Kind = "promote"
	KindCheckout  Kind = "checkout"
	KindReturn    Kind = "return"
)

// Event describes one state change.
//
// Position is the position the caller supplied (catalog position for
// reserve, queue position otherwise). It is -1 for events that carry no
// position, such as login or checkout.
type Event struct {
	Kind     Kind
	Session  string
	Account  string
	Title    string
	Position int
}

// Recorder receives events as they happen.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// RecorderFunc adapts a plain function to Recorder.
type RecorderFunc func(ctx context.Context, ev Event) error

// Record calls f(ctx, ev).
func (f RecorderFunc) Record(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

type discardRecorder struct{}

func (discardRecorder) Record(context.Context, Event) error { return nil }

// record hands ev to r. Failures are logged and swallowed.
func record(ctx context.Context, r Recorder, ev Event) {
	if err := r.Record(ctx, ev); err != nil {
		slog.Error("event recording failed",
			"kind", ev.Kind,
			"account", ev.Account,
			"session", ev.Session,
			"error", err,
		)
		return
	}
	slog.Debug("event recorded",
		"kind", ev.Kind,
		"account", ev.Account,
		"title", ev.Title,
		"position", ev.Position,
	)
}
