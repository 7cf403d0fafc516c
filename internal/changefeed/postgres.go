package changefeed

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-sync/internal/storeerr"
)

// PostgresBroker turns LISTEN/NOTIFY into subscriptions. The notifications
// come from statement triggers on each collection table (see db.Migrate),
// so writes made by any process are seen.
type PostgresBroker struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func NewPostgresBroker(ctx context.Context, url string, log *zap.Logger) (*PostgresBroker, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, storeerr.FromPostgres(err)
	}
	return &PostgresBroker{pool: pool, log: log}, nil
}

var _ Broker = (*PostgresBroker)(nil)

// Subscribe holds one pooled connection for the lifetime of the
// subscription.
func (b *PostgresBroker) Subscribe(ctx context.Context, collection string) (*Subscription, error) {
	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return nil, storeerr.FromPostgres(err)
	}

	raw := conn.Hijack()
	channel := pgx.Identifier{ChannelName(collection)}.Sanitize()
	if _, err := raw.Exec(ctx, "LISTEN "+channel); err != nil {
		_ = raw.Close(context.Background())
		return nil, storeerr.FromPostgres(err)
	}

	listenCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sub := newSubscription(collection, func() {
		cancel()
		<-done
	})

	go func() {
		defer close(done)
		defer func() {
			closeCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			_ = raw.Close(closeCtx)
		}()

		for {
			if _, err := raw.WaitForNotification(listenCtx); err != nil {
				if listenCtx.Err() != nil {
					return
				}
				b.log.Warn("changefeed listener stopped",
					zap.String("collection", collection),
					zap.Error(err),
				)
				sub.fail(storeerr.FromPostgres(err))
				return
			}
			sub.signal()
		}
	}()

	return sub, nil
}

// Notify is a no-op: the table triggers already notify on commit.
func (b *PostgresBroker) Notify(context.Context, string) error {
	return nil
}

func (b *PostgresBroker) Close() error {
	b.pool.Close()
	return nil
}
