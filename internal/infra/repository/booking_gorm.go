package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-sync/internal/changefeed"
	domain "github.com/BruksfildServices01/salon-sync/internal/domain/booking"
	"github.com/BruksfildServices01/salon-sync/internal/models"
)

type BookingGormRepository struct {
	db       *gorm.DB
	notifier changefeed.Notifier
}

func NewBookingGormRepository(db *gorm.DB, notifier changefeed.Notifier) *BookingGormRepository {
	return &BookingGormRepository{db: db, notifier: notifier}
}

var _ domain.Repository = (*BookingGormRepository)(nil)

func (r *BookingGormRepository) ListDocuments(ctx context.Context) ([]models.BookingDocument, error) {
	var docs []models.BookingDocument
	if err := r.db.WithContext(ctx).
		Order("inserted_at ASC").
		Find(&docs).Error; err != nil {
		return nil, classifyGorm(err)
	}
	return docs, nil
}

func (r *BookingGormRepository) CreateDocument(
	ctx context.Context,
	doc *models.BookingDocument,
) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return classifyGorm(err)
	}
	notify(ctx, r.notifier, changefeed.Bookings)
	return nil
}
