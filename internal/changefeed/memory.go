package changefeed

import (
	"context"
	"errors"
	"sync"
)

var ErrBrokerClosed = errors.New("changefeed: broker closed")

// MemoryBroker fans signals out inside one process. It backs the embedded
// store and tests.
type MemoryBroker struct {
	mu     sync.Mutex
	subs   map[string]map[*Subscription]struct{}
	closed bool
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		subs: make(map[string]map[*Subscription]struct{}),
	}
}

var _ Broker = (*MemoryBroker)(nil)

func (b *MemoryBroker) Subscribe(ctx context.Context, collection string) (*Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBrokerClosed
	}

	var sub *Subscription
	sub = newSubscription(collection, func() { b.remove(collection, sub) })

	set, ok := b.subs[collection]
	if !ok {
		set = make(map[*Subscription]struct{})
		b.subs[collection] = set
	}
	set[sub] = struct{}{}

	return sub, nil
}

func (b *MemoryBroker) Notify(_ context.Context, collection string) error {
	b.mu.Lock()
	targets := make([]*Subscription, 0, len(b.subs[collection]))
	for sub := range b.subs[collection] {
		targets = append(targets, sub)
	}
	b.mu.Unlock()

	for _, sub := range targets {
		sub.signal()
	}
	return nil
}

// Fail ends every subscription on collection with err.
func (b *MemoryBroker) Fail(collection string, err error) {
	b.mu.Lock()
	targets := make([]*Subscription, 0, len(b.subs[collection]))
	for sub := range b.subs[collection] {
		targets = append(targets, sub)
	}
	delete(b.subs, collection)
	b.mu.Unlock()

	for _, sub := range targets {
		sub.fail(err)
	}
}

// Subscribers reports the live subscription count for collection.
func (b *MemoryBroker) Subscribers(collection string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[collection])
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	var all []*Subscription
	for _, set := range b.subs {
		for sub := range set {
			all = append(all, sub)
		}
	}
	b.subs = make(map[string]map[*Subscription]struct{})
	b.closed = true
	b.mu.Unlock()

	for _, sub := range all {
		sub.Close()
	}
	return nil
}

func (b *MemoryBroker) remove(collection string, sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if set, ok := b.subs[collection]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(b.subs, collection)
		}
	}
}
