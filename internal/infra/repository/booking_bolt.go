package repository

import (
	"context"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/BruksfildServices01/salon-sync/internal/changefeed"
	domain "github.com/BruksfildServices01/salon-sync/internal/domain/booking"
	"github.com/BruksfildServices01/salon-sync/internal/models"
)

type BookingBoltRepository struct {
	db       *bolt.DB
	notifier changefeed.Notifier
}

func NewBookingBoltRepository(db *bolt.DB, notifier changefeed.Notifier) *BookingBoltRepository {
	return &BookingBoltRepository{db: db, notifier: notifier}
}

var _ domain.Repository = (*BookingBoltRepository)(nil)

func (r *BookingBoltRepository) ListDocuments(ctx context.Context) ([]models.BookingDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var docs []models.BookingDocument
	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		docs, err = boltScan[models.BookingDocument](tx, changefeed.Bookings, nil)
		return err
	})
	if err != nil {
		return nil, classifyBolt(err)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].InsertedAt.Before(docs[j].InsertedAt)
	})
	return docs, nil
}

func (r *BookingBoltRepository) CreateDocument(
	ctx context.Context,
	doc *models.BookingDocument,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.InsertedAt.IsZero() {
		doc.InsertedAt = time.Now()
	}

	err := r.db.Update(func(tx *bolt.Tx) error {
		return boltInsert(tx, changefeed.Bookings, doc.ID, doc)
	})
	if err != nil {
		return classifyBolt(err)
	}

	notify(ctx, r.notifier, changefeed.Bookings)
	return nil
}
