// Package events carries table notifications from the game controller to
// whatever is presenting the game.
package events

import (
	"sync"

	"github.com/mcoot/yahtzee-go/internal/model"
)

// Publisher receives events for display refresh
type Publisher interface {
	Publish(event model.Event)
}

// Nop discards all events
type Nop struct{}

func (Nop) Publish(model.Event) {}

// Func adapts a function into a Publisher
type Func func(event model.Event)

func (f Func) Publish(event model.Event) {
	f(event)
}

// Multi fans an event out to several publishers in order
type Multi []Publisher

func (m Multi) Publish(event model.Event) {
	for _, p := range m {
		p.Publish(event)
	}
}

// Recorder keeps every published event, for tests and replays
type Recorder struct {
	mu     sync.Mutex
	events []model.Event
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(event model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Event(nil), r.events...)
}

// Types returns the recorded event types in order
func (r *Recorder) Types() []model.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]model.EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

// Reset forgets all recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
