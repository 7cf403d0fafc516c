package booking

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-sync/internal/changefeed"
	domain "github.com/BruksfildServices01/salon-sync/internal/domain/booking"
)

// State is one published view of the bookings collection.
type State struct {
	Bookings  []domain.Booking
	Loading   bool
	Error     string
	Version   uint64
	UpdatedAt time.Time
}

type SubscribeBookings struct {
	repo   domain.Repository
	broker changefeed.Broker
	log    *zap.Logger
	now    func() time.Time
}

func NewSubscribeBookings(
	repo domain.Repository,
	broker changefeed.Broker,
	log *zap.Logger,
	now func() time.Time,
) *SubscribeBookings {
	return &SubscribeBookings{
		repo:   repo,
		broker: broker,
		log:    log,
		now:    now,
	}
}

// Execute opens the change feed and starts publishing states. The
// subscription lives until ctx is done or Close is called. Setup failures
// are returned; later failures are published as an error state, after
// which the subscription ends.
func (uc *SubscribeBookings) Execute(ctx context.Context) (*Subscription, error) {
	feed, err := uc.broker.Subscribe(ctx, changefeed.Bookings)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		updates: make(chan State, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go s.run(runCtx, uc, feed)
	return s, nil
}

// Subscription publishes states newest-wins: a consumer that falls behind
// sees only the latest one. Updates is closed when the subscription ends.
type Subscription struct {
	updates chan State
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once

	version uint64
	last    []domain.Booking
}

func (s *Subscription) Updates() <-chan State {
	return s.updates
}

// Done is closed once the subscription released its feed.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close releases the change feed and waits for the publisher to stop.
func (s *Subscription) Close() {
	s.once.Do(s.cancel)
	<-s.done
}

func (s *Subscription) run(ctx context.Context, uc *SubscribeBookings, feed *changefeed.Subscription) {
	defer close(s.done)
	defer close(s.updates)
	defer feed.Close()

	s.publish(State{Loading: true, Bookings: []domain.Booking{}})

	if !s.reload(ctx, uc) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-feed.Events():
			if !ok {
				return
			}
			if ev.Err != nil {
				uc.log.Warn("bookings subscription failed", zap.Error(ev.Err))
				s.fail(ev.Err, uc.now())
				return
			}
			if !s.reload(ctx, uc) {
				return
			}
		}
	}
}

// reload reads, normalizes and publishes the full collection. It reports
// whether the subscription should keep running.
func (s *Subscription) reload(ctx context.Context, uc *SubscribeBookings) bool {
	docs, err := uc.repo.ListDocuments(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		uc.log.Warn("bookings reload failed", zap.Error(err))
		s.fail(err, uc.now())
		return false
	}

	now := uc.now()
	s.last = domain.NormalizeDocuments(docs, now)
	s.publish(State{Bookings: s.last, UpdatedAt: now})
	return true
}

func (s *Subscription) fail(err error, now time.Time) {
	bookings := s.last
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	s.publish(State{Bookings: bookings, Error: ErrorMessage(err), UpdatedAt: now})
}

func (s *Subscription) publish(st State) {
	s.version++
	st.Version = s.version

	for {
		select {
		case s.updates <- st:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}
