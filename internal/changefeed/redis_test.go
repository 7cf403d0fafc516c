package changefeed

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-sync/internal/storeerr"
)

type redisWatch struct {
	sub  *Subscription
	quit chan struct{}
	msgs chan *redis.Message
	tick chan time.Time
	done chan error
}

func startRedisWatch(ping func(context.Context) error) *redisWatch {
	w := &redisWatch{
		sub:  newSubscription(Bookings, nil),
		quit: make(chan struct{}),
		msgs: make(chan *redis.Message),
		tick: make(chan time.Time),
		done: make(chan error, 1),
	}
	go func() { w.done <- watchRedis(w.sub, w.quit, w.msgs, w.tick, ping) }()
	return w
}

func TestWatchRedisSignalsMessages(t *testing.T) {
	w := startRedisWatch(func(context.Context) error { return nil })

	w.msgs <- &redis.Message{Channel: ChannelName(Bookings)}
	ev, ok := receive(t, w.sub)
	require.True(t, ok)
	assert.NoError(t, ev.Err)

	w.tick <- time.Now()
	assertNoEvent(t, w.sub)

	close(w.quit)
	assert.NoError(t, <-w.done)
}

func TestWatchRedisFailsOnUnreachableServer(t *testing.T) {
	down := &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	w := startRedisWatch(func(context.Context) error { return down })

	w.tick <- time.Now()

	ev, ok := receive(t, w.sub)
	require.True(t, ok)
	assert.ErrorIs(t, ev.Err, storeerr.ErrUnavailable)

	_, ok = receive(t, w.sub)
	assert.False(t, ok)

	assert.ErrorIs(t, <-w.done, storeerr.ErrUnavailable)
}

func TestWatchRedisClassifiesAuthFailures(t *testing.T) {
	w := startRedisWatch(func(context.Context) error {
		return errors.New("NOAUTH Authentication required.")
	})

	w.tick <- time.Now()

	ev, ok := receive(t, w.sub)
	require.True(t, ok)
	assert.ErrorIs(t, ev.Err, storeerr.ErrUnauthenticated)
}
