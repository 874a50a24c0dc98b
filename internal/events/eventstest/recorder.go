// Package eventstest records published events for assertions.
package eventstest

import (
	"context"
	"sync"

	"github.com/weatherfav/internal/events"
)

// Recorder is an events.Publisher that keeps everything it is given.
// Setting Err makes every Publish fail after recording.
type Recorder struct {
	mu     sync.Mutex
	events []events.Event
	Err    error
}

func (r *Recorder) Publish(_ context.Context, ev events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.Err
}

// Events returns a copy of what has been published so far.
func (r *Recorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the type of each recorded event, in order.
func (r *Recorder) Types() []events.Type {
	evs := r.Events()
	out := make([]events.Type, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Type)
	}
	return out
}
