// Package bus decouples entity-store mutations from the UI bindings that
// need to react to them. Listeners register under a component name; every
// mutation publishes a typed change that is dispatched synchronously in
// subscription order.
package bus

import (
	"sync"

	"github.com/campustrack/campustrack/internal/pkg/logger"
)

// ChangeType identifies the kind of mutation behind a notification.
type ChangeType string

const (
	DataLoaded         ChangeType = "dataLoaded"
	EventAdded         ChangeType = "eventAdded"
	EventUpdated       ChangeType = "eventUpdated"
	EventDeleted       ChangeType = "eventDeleted"
	ActivityAdded      ChangeType = "activityAdded"
	ActivityUpdated    ChangeType = "activityUpdated"
	CertificateAdded   ChangeType = "certificateAdded"
	CertificateUpdated ChangeType = "certificateUpdated"
	CertificateDeleted ChangeType = "certificateDeleted"
	StudentAdded       ChangeType = "studentAdded"
	StudentUpdated     ChangeType = "studentUpdated"
	FacultyAdded       ChangeType = "facultyAdded"
	FacultyUpdated     ChangeType = "facultyUpdated"
	RegistrationAdded  ChangeType = "registrationAdded"
	UserLoggedIn       ChangeType = "userLoggedIn"
	UserLoggedOut      ChangeType = "userLoggedOut"
	AnalyticsUpdated   ChangeType = "analyticsUpdated"
)

// Change is the notification payload delivered to listeners.
type Change struct {
	Type    ChangeType
	Payload interface{}
}

// Listener receives change notifications.
type Listener func(Change)

type subscription struct {
	key string
	fn  Listener
}

// Bus is a per-listener-key registry of change listeners. Multiple
// listeners may share a key; they accumulate rather than replace.
type Bus struct {
	mu   sync.RWMutex
	subs []subscription
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers fn under key. Dispatch order follows subscription
// order across all keys.
func (b *Bus) Subscribe(key string, fn Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, subscription{key: key, fn: fn})
}

// Unsubscribe removes every listener registered under key.
func (b *Bus) Unsubscribe(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.subs[:0]
	for _, s := range b.subs {
		if s.key != key {
			kept = append(kept, s)
		}
	}
	b.subs = kept
}

// Publish synchronously invokes every registered listener with the change,
// in subscription order. A panicking listener is isolated so the remaining
// listeners still run.
func (b *Bus) Publish(change Change) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		b.dispatch(s, change)
	}
}

func (b *Bus) dispatch(s subscription, change Change) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Str("listener", s.key).
				Str("changeType", string(change.Type)).
				Interface("panic", r).
				Msg("Listener panicked during dispatch")
		}
	}()
	s.fn(change)
}
