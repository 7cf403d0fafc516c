package repository

import (
	"context"

	bolt "go.etcd.io/bbolt"

	"github.com/BruksfildServices01/salon-sync/internal/changefeed"
	domain "github.com/BruksfildServices01/salon-sync/internal/domain/salon"
	"github.com/BruksfildServices01/salon-sync/internal/models"
)

type SalonBoltRepository struct {
	db       *bolt.DB
	notifier changefeed.Notifier
}

func NewSalonBoltRepository(db *bolt.DB, notifier changefeed.Notifier) *SalonBoltRepository {
	return &SalonBoltRepository{db: db, notifier: notifier}
}

var _ domain.Repository = (*SalonBoltRepository)(nil)

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *SalonBoltRepository) CreateSalon(ctx context.Context, s *models.Salon) error {
	return r.put(ctx, changefeed.Salons, func(tx *bolt.Tx) error {
		return boltInsert(tx, changefeed.Salons, s.ID, s)
	})
}

func (r *SalonBoltRepository) GetSalon(ctx context.Context, id string) (*models.Salon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var s *models.Salon
	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		s, err = boltGet[models.Salon](tx, changefeed.Salons, id)
		return err
	})
	if err != nil {
		return nil, classifyBolt(err)
	}
	return s, nil
}

func (r *SalonBoltRepository) ListSalons(
	ctx context.Context,
	f domain.SalonFilter,
) ([]models.Salon, error) {

	out, err := list(ctx, r.db, changefeed.Salons, f.Match)
	if err != nil {
		return nil, err
	}
	domain.SortSalons(out)
	return out, nil
}

func (r *SalonBoltRepository) UpdateSalon(
	ctx context.Context,
	id string,
	p domain.SalonPatch,
) error {
	return r.modify(ctx, changefeed.Salons, func() error {
		return boltModify(r.db, changefeed.Salons, id, p.Apply)
	})
}

// --------------------------------------------------
// Connection
// --------------------------------------------------

func (r *SalonBoltRepository) CreateConnection(ctx context.Context, c *models.SalonConnection) error {
	return r.put(ctx, changefeed.SalonConnections, func(tx *bolt.Tx) error {
		return boltInsert(tx, changefeed.SalonConnections, c.ID, c)
	})
}

func (r *SalonBoltRepository) ListConnections(
	ctx context.Context,
	f domain.ConnectionFilter,
) ([]models.SalonConnection, error) {

	out, err := list(ctx, r.db, changefeed.SalonConnections, f.Match)
	if err != nil {
		return nil, err
	}
	domain.SortConnections(out)
	return out, nil
}

func (r *SalonBoltRepository) UpdateConnection(
	ctx context.Context,
	id string,
	p domain.ConnectionPatch,
) error {
	return r.modify(ctx, changefeed.SalonConnections, func() error {
		return boltModify(r.db, changefeed.SalonConnections, id, p.Apply)
	})
}

// --------------------------------------------------
// QR Session
// --------------------------------------------------

func (r *SalonBoltRepository) CreateSession(ctx context.Context, s *models.QRSession) error {
	return r.put(ctx, changefeed.QRSessions, func(tx *bolt.Tx) error {
		return boltInsert(tx, changefeed.QRSessions, s.ID, s)
	})
}

func (r *SalonBoltRepository) ListSessions(
	ctx context.Context,
	f domain.SessionFilter,
) ([]models.QRSession, error) {

	out, err := list(ctx, r.db, changefeed.QRSessions, f.Match)
	if err != nil {
		return nil, err
	}
	domain.SortSessions(out)
	return out, nil
}

func (r *SalonBoltRepository) UpdateSession(
	ctx context.Context,
	id string,
	p domain.SessionPatch,
) error {
	return r.modify(ctx, changefeed.QRSessions, func() error {
		return boltModify(r.db, changefeed.QRSessions, id, p.Apply)
	})
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (r *SalonBoltRepository) put(
	ctx context.Context,
	collection string,
	write func(tx *bolt.Tx) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.db.Update(write); err != nil {
		return classifyBolt(err)
	}
	notify(ctx, r.notifier, collection)
	return nil
}

func (r *SalonBoltRepository) modify(ctx context.Context, collection string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	notify(ctx, r.notifier, collection)
	return nil
}

func list[T any](
	ctx context.Context,
	db *bolt.DB,
	bucket string,
	match func(*T) bool,
) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []T
	err := db.View(func(tx *bolt.Tx) error {
		var err error
		out, err = boltScan(tx, bucket, match)
		return err
	})
	if err != nil {
		return nil, classifyBolt(err)
	}
	return out, nil
}
