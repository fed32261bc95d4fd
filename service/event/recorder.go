package event

import (
	"context"
	"sync"
)

// Recorder keeps every published event in memory
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Publish stores a copy of e
func (r *Recorder) Publish(_ context.Context, e *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *e)
	return nil
}

// Events returns recorded events in publish order
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Filter returns recorded events of the supplied types
func (r *Recorder) Filter(types ...Type) []Event {
	var ret []Event
	for _, e := range r.Events() {
		for _, t := range types {
			if e.Type == t {
				ret = append(ret, e)
				break
			}
		}
	}
	return ret
}

// NewRecorder creates a recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}
