// Package bootstrap opens the configured store and change-feed drivers for
// the binaries under cmd/.
package bootstrap

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-sync/internal/audit"
	"github.com/BruksfildServices01/salon-sync/internal/changefeed"
	"github.com/BruksfildServices01/salon-sync/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-sync/internal/db"
	domainBooking "github.com/BruksfildServices01/salon-sync/internal/domain/booking"
	domainSalon "github.com/BruksfildServices01/salon-sync/internal/domain/salon"
	infraRepo "github.com/BruksfildServices01/salon-sync/internal/infra/repository"
	"github.com/BruksfildServices01/salon-sync/internal/qrcode"
	"github.com/BruksfildServices01/salon-sync/internal/storage"
)

type Stores struct {
	Bookings domainBooking.Repository
	Salons   domainSalon.Repository
	Audit    audit.Store

	Close func() error
}

func OpenBroker(ctx context.Context, cfg *config.Config, log *zap.Logger) (changefeed.Broker, error) {
	switch cfg.FeedDriver {
	case config.FeedPostgres:
		return changefeed.NewPostgresBroker(ctx, cfg.DBUrl, log)
	case config.FeedRedis:
		return changefeed.NewRedisBroker(ctx, cfg.RedisURL, log)
	default:
		return changefeed.NewMemoryBroker(), nil
	}
}

// OpenStores opens the repositories of cfg.StoreDriver. Every write is
// announced through notifier.
func OpenStores(cfg *config.Config, notifier changefeed.Notifier) (*Stores, error) {
	if cfg.StoreDriver == config.StoreBolt {
		bdb, err := infraRepo.OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Bookings: infraRepo.NewBookingBoltRepository(bdb, notifier),
			Salons:   infraRepo.NewSalonBoltRepository(bdb, notifier),
			Audit:    infraRepo.NewAuditBoltRepository(bdb),
			Close:    bdb.Close,
		}, nil
	}

	gdb, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	return &Stores{
		Bookings: infraRepo.NewBookingGormRepository(gdb, notifier),
		Salons:   infraRepo.NewSalonGormRepository(gdb, notifier),
		Audit:    infraRepo.NewAuditGormRepository(gdb),
		Close:    sqlDB.Close,
	}, nil
}

// Renderer uploads QR images to S3 when a bucket is configured and inlines
// them otherwise.
func Renderer(cfg *config.Config) *qrcode.Renderer {
	if cfg.S3.Enabled() {
		return qrcode.NewRenderer(cfg.QRSize, storage.NewS3Uploader(cfg.S3))
	}
	return qrcode.NewRenderer(cfg.QRSize, nil)
}
