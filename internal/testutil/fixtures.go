package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/roach88/flix/internal/inventory"
	"github.com/roach88/flix/internal/rental"
)

// SampleInventory is a small inventory file body used across tests.
// Sorted, it reads: Alien, Brazil, Casablanca (unavailable), Jaws.
const SampleInventory = `2 Jaws
1 The Alien
0 Casablanca
1 Brazil
`

// Catalog loads an inventory from lines joined by newlines.
// Panics on a parse error; fixtures are expected to be valid.
func Catalog(lines ...string) *inventory.Catalog {
	c, err := inventory.Load(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		panic("testutil.Catalog: " + err.Error())
	}
	return c
}

// MemoryRecorder keeps recorded events in memory.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []rental.Event
	// Err, when set, is returned from every Record call.
	Err error
}

// Record appends ev unless Err is set.
func (r *MemoryRecorder) Record(_ context.Context, ev rental.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, ev)
	return nil
}

// Events returns a copy of the recorded events.
func (r *MemoryRecorder) Events() []rental.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]rental.Event(nil), r.events...)
}

// Kinds returns the kinds of the recorded events in order.
func (r *MemoryRecorder) Kinds() []rental.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]rental.Kind, len(r.events))
	for i, ev := range r.events {
		kinds[i] = ev.Kind
	}
	return kinds
}
