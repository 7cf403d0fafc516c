package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-sync/internal/changefeed"
	"github.com/BruksfildServices01/salon-sync/internal/storeerr"
)

func classifyGorm(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storeerr.Wrap(storeerr.CategoryNotFound, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return storeerr.Wrap(storeerr.CategoryAlreadyExists, err)
	}
	return storeerr.FromPostgres(err)
}

// notify tells subscribers that collection changed. The write already
// succeeded, so a failed signal is only logged.
func notify(ctx context.Context, n changefeed.Notifier, collection string) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, collection); err != nil {
		zap.L().Warn("change notification failed",
			zap.String("collection", collection),
			zap.Error(err),
		)
	}
}
