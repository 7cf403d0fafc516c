package changefeed

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-sync/internal/storeerr"
)

// redisHealthEvery is how often a subscription checks the server. The
// pub/sub channel reconnects silently, so without the check an outage
// would never reach subscribers.
const redisHealthEvery = 15 * time.Second

// RedisBroker carries signals over Redis pub/sub so several API processes
// sharing one embedded or remote store see each other's writes.
type RedisBroker struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisBroker(ctx context.Context, url string, log *zap.Logger) (*RedisBroker, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, classifyRedis(err)
	}

	return &RedisBroker{client: client, log: log}, nil
}

var _ Broker = (*RedisBroker)(nil)

func (b *RedisBroker) Subscribe(ctx context.Context, collection string) (*Subscription, error) {
	ps := b.client.Subscribe(ctx, ChannelName(collection))

	// Receive blocks until the server confirms the subscription.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, classifyRedis(err)
	}

	quit := make(chan struct{})
	done := make(chan struct{})
	sub := newSubscription(collection, func() {
		close(quit)
		_ = ps.Close()
		<-done
	})

	ticker := time.NewTicker(redisHealthEvery)
	go func() {
		defer close(done)
		defer ticker.Stop()

		err := watchRedis(sub, quit, ps.Channel(), ticker.C, func(ctx context.Context) error {
			return b.client.Ping(ctx).Err()
		})
		if err != nil {
			b.log.Warn("changefeed listener stopped",
				zap.String("collection", collection),
				zap.Error(err),
			)
		}
	}()

	return sub, nil
}

// watchRedis forwards messages as signals and pings the server on every
// tick. A failed ping fails the subscription and is returned.
func watchRedis(
	sub *Subscription,
	quit <-chan struct{},
	msgs <-chan *redis.Message,
	tick <-chan time.Time,
	ping func(ctx context.Context) error,
) error {
	for {
		select {
		case <-quit:
			return nil
		case _, ok := <-msgs:
			if !ok {
				return nil
			}
			sub.signal()
		case <-tick:
			ctx, cancel := context.WithTimeout(context.Background(), redisHealthEvery/2)
			err := ping(ctx)
			cancel()
			if err == nil {
				continue
			}
			select {
			case <-quit:
				return nil
			default:
			}
			err = classifyRedis(err)
			sub.fail(err)
			return err
		}
	}
}

func (b *RedisBroker) Notify(ctx context.Context, collection string) error {
	if err := b.client.Publish(ctx, ChannelName(collection), collection).Err(); err != nil {
		b.log.Warn("changefeed publish failed",
			zap.String("collection", collection),
			zap.Error(err),
		)
		return classifyRedis(err)
	}
	return nil
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}

func classifyRedis(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "NOAUTH"), strings.HasPrefix(msg, "WRONGPASS"):
		return storeerr.Wrap(storeerr.CategoryUnauthenticated, err)
	case strings.HasPrefix(msg, "NOPERM"):
		return storeerr.Wrap(storeerr.CategoryPermissionDenied, err)
	case strings.HasPrefix(msg, "LOADING"), errors.Is(err, redis.ErrClosed):
		return storeerr.Wrap(storeerr.CategoryUnavailable, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return storeerr.Wrap(storeerr.CategoryUnavailable, err)
	}
	return err
}
