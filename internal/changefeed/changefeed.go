// Package changefeed delivers "collection changed" signals to subscribers.
// A signal carries no payload: subscribers re-read the collection, so
// signals that arrive while one is still pending are merged into it.
package changefeed

import (
	"context"
	"sync"
)

// Collection names shared by the stores and the brokers.
const (
	Bookings         = "bookings"
	Salons           = "salons"
	SalonConnections = "salon_connections"
	QRSessions       = "qr_sessions"
)

// channelPrefix namespaces broker channels (LISTEN channels, pub/sub topics).
const channelPrefix = "salonsync_"

func ChannelName(collection string) string {
	return channelPrefix + collection
}

// Event is a change signal. A non-nil Err ends the subscription: it is the
// last value delivered before Events is closed.
type Event struct {
	Collection string
	Err        error
}

type Notifier interface {
	Notify(ctx context.Context, collection string) error
}

type Broker interface {
	Notifier
	Subscribe(ctx context.Context, collection string) (*Subscription, error)
	Close() error
}

// Subscription is one listener on one collection. Close releases the
// underlying listener and is safe to call more than once.
type Subscription struct {
	collection string

	mu     sync.Mutex
	events chan Event
	ended  bool

	once sync.Once
	stop func()
}

func newSubscription(collection string, stop func()) *Subscription {
	return &Subscription{
		collection: collection,
		events:     make(chan Event, 1),
		stop:       stop,
	}
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		if s.stop != nil {
			s.stop()
		}
		s.end()
	})
}

// signal queues a change unless one is already pending.
func (s *Subscription) signal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return
	}
	select {
	case s.events <- Event{Collection: s.collection}:
	default:
	}
}

// fail replaces any pending change with err and ends the subscription.
func (s *Subscription) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return
	}
	select {
	case <-s.events:
	default:
	}
	s.events <- Event{Collection: s.collection, Err: err}
	s.ended = true
	close(s.events)
}

func (s *Subscription) end() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ended {
		s.ended = true
		close(s.events)
	}
}
