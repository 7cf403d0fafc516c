package booking

import (
	"context"
	"sync"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-sync/internal/domain/booking"
)

// Hub owns the dashboard's single bookings subscription. It keeps the
// latest state for plain reads and fans states out to stream watchers.
// Reload is the manual recovery path after an error.
type Hub struct {
	uc  *SubscribeBookings
	log *zap.Logger

	// reloadMu serialises Start and Reload so only one open is in flight.
	reloadMu sync.Mutex

	mu       sync.Mutex
	ctx      context.Context
	sub      *Subscription
	state    State
	version  uint64
	watchers map[*Watcher]struct{}
	closed   bool
}

func NewHub(uc *SubscribeBookings, log *zap.Logger) *Hub {
	return &Hub{
		uc:       uc,
		log:      log,
		state:    State{Loading: true, Bookings: []domain.Booking{}},
		watchers: make(map[*Watcher]struct{}),
	}
}

// Start opens the first subscription. ctx bounds every subscription the
// hub opens, including those opened by Reload.
func (h *Hub) Start(ctx context.Context) error {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	h.mu.Lock()
	h.ctx = ctx
	h.mu.Unlock()

	return h.open()
}

// Reload drops the current subscription and opens a fresh one.
func (h *Hub) Reload() error {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	h.mu.Lock()
	old := h.sub
	h.sub = nil
	h.mu.Unlock()

	if old != nil {
		old.Close()
	}

	h.apply(nil, State{Loading: true, Bookings: []domain.Booking{}})
	return h.open()
}

func (h *Hub) open() error {
	h.mu.Lock()
	ctx, closed := h.ctx, h.closed
	h.mu.Unlock()

	if closed {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sub, err := h.uc.Execute(ctx)
	if err != nil {
		h.log.Error("bookings subscription setup failed", zap.Error(err))
		h.apply(nil, State{Bookings: h.State().Bookings, Error: MsgInitFailed, UpdatedAt: h.uc.now()})
		return err
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.Close()
		return nil
	}
	replaced := h.sub
	h.sub = sub
	h.mu.Unlock()

	if replaced != nil {
		replaced.Close()
	}

	go h.pump(sub)
	return nil
}

func (h *Hub) pump(sub *Subscription) {
	for st := range sub.Updates() {
		h.apply(sub, st)
	}
}

// apply installs st when it comes from the current subscription (or from
// the hub itself when from is nil) and pushes it to every watcher.
func (h *Hub) apply(from *Subscription, st State) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if from != nil && from != h.sub {
		return
	}
	if st.Bookings == nil {
		st.Bookings = []domain.Booking{}
	}

	h.version++
	st.Version = h.version
	h.state = st

	for w := range h.watchers {
		w.offer(st)
	}
}

// State returns the latest published state.
func (h *Hub) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Watch registers a stream consumer. The current state is delivered
// first.
func (h *Hub) Watch() *Watcher {
	w := &Watcher{hub: h, ch: make(chan State, 1)}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(w.ch)
		w.done = true
		return w
	}
	w.offer(h.state)
	h.watchers[w] = struct{}{}
	return w
}

// Watchers reports how many stream consumers are attached.
func (h *Hub) Watchers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers)
}

func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	sub := h.sub
	h.sub = nil
	for w := range h.watchers {
		w.stop()
	}
	h.watchers = map[*Watcher]struct{}{}
	h.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
}

// Watcher receives hub states newest-wins.
type Watcher struct {
	hub  *Hub
	ch   chan State
	done bool
}

func (w *Watcher) Updates() <-chan State {
	return w.ch
}

func (w *Watcher) Close() {
	w.hub.mu.Lock()
	defer w.hub.mu.Unlock()

	delete(w.hub.watchers, w)
	w.stop()
}

// offer and stop run under hub.mu.
func (w *Watcher) offer(st State) {
	if w.done {
		return
	}
	select {
	case <-w.ch:
	default:
	}
	w.ch <- st
}

func (w *Watcher) stop() {
	if !w.done {
		w.done = true
		close(w.ch)
	}
}
