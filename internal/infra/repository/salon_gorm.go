package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-sync/internal/changefeed"
	domain "github.com/BruksfildServices01/salon-sync/internal/domain/salon"
	"github.com/BruksfildServices01/salon-sync/internal/models"
	"github.com/BruksfildServices01/salon-sync/internal/storeerr"
)

type SalonGormRepository struct {
	db       *gorm.DB
	notifier changefeed.Notifier
}

func NewSalonGormRepository(db *gorm.DB, notifier changefeed.Notifier) *SalonGormRepository {
	return &SalonGormRepository{db: db, notifier: notifier}
}

var _ domain.Repository = (*SalonGormRepository)(nil)

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *SalonGormRepository) CreateSalon(ctx context.Context, s *models.Salon) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return classifyGorm(err)
	}
	notify(ctx, r.notifier, changefeed.Salons)
	return nil
}

func (r *SalonGormRepository) GetSalon(ctx context.Context, id string) (*models.Salon, error) {
	var s models.Salon
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&s).Error; err != nil {
		return nil, classifyGorm(err)
	}
	return &s, nil
}

func (r *SalonGormRepository) ListSalons(
	ctx context.Context,
	f domain.SalonFilter,
) ([]models.Salon, error) {

	q := r.db.WithContext(ctx).Model(&models.Salon{})
	if f.Connected != nil {
		q = q.Where("whatsapp_connected = ?", *f.Connected)
	}

	var out []models.Salon
	if err := q.Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, classifyGorm(err)
	}
	return out, nil
}

func (r *SalonGormRepository) UpdateSalon(
	ctx context.Context,
	id string,
	p domain.SalonPatch,
) error {

	cols := map[string]any{}
	if p.WhatsAppConnected != nil {
		cols["whatsapp_connected"] = *p.WhatsAppConnected
	}
	if p.QRCodeURL != nil {
		cols["qr_code_url"] = *p.QRCodeURL
	}
	if p.ConnectionDate != nil {
		cols["connection_date"] = *p.ConnectionDate
	}
	if p.LastActive != nil {
		cols["last_active"] = *p.LastActive
	}
	if p.UpdatedAt != nil {
		cols["updated_at"] = *p.UpdatedAt
	}

	return r.update(ctx, &models.Salon{}, id, cols, changefeed.Salons)
}

// --------------------------------------------------
// Connection
// --------------------------------------------------

func (r *SalonGormRepository) CreateConnection(ctx context.Context, c *models.SalonConnection) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return classifyGorm(err)
	}
	notify(ctx, r.notifier, changefeed.SalonConnections)
	return nil
}

func (r *SalonGormRepository) ListConnections(
	ctx context.Context,
	f domain.ConnectionFilter,
) ([]models.SalonConnection, error) {

	q := r.db.WithContext(ctx).Model(&models.SalonConnection{})
	if f.SalonID != "" {
		q = q.Where("salon_id = ?", f.SalonID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}

	var out []models.SalonConnection
	if err := q.Order("connected_at DESC NULLS LAST").Find(&out).Error; err != nil {
		return nil, classifyGorm(err)
	}
	return out, nil
}

func (r *SalonGormRepository) UpdateConnection(
	ctx context.Context,
	id string,
	p domain.ConnectionPatch,
) error {

	cols := map[string]any{}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	if p.LastHeartbeat != nil {
		cols["last_heartbeat"] = *p.LastHeartbeat
	}

	return r.update(ctx, &models.SalonConnection{}, id, cols, changefeed.SalonConnections)
}

// --------------------------------------------------
// QR Session
// --------------------------------------------------

func (r *SalonGormRepository) CreateSession(ctx context.Context, s *models.QRSession) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return classifyGorm(err)
	}
	notify(ctx, r.notifier, changefeed.QRSessions)
	return nil
}

func (r *SalonGormRepository) ListSessions(
	ctx context.Context,
	f domain.SessionFilter,
) ([]models.QRSession, error) {

	q := r.db.WithContext(ctx).Model(&models.QRSession{})
	if f.SalonID != "" {
		q = q.Where("salon_id = ?", f.SalonID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.StatusStrings())
	}
	if f.ExpiresBefore != nil {
		q = q.Where("expires_at < ?", *f.ExpiresBefore)
	}

	var out []models.QRSession
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, classifyGorm(err)
	}
	return out, nil
}

func (r *SalonGormRepository) UpdateSession(
	ctx context.Context,
	id string,
	p domain.SessionPatch,
) error {

	cols := map[string]any{}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}

	return r.update(ctx, &models.QRSession{}, id, cols, changefeed.QRSessions)
}

// update writes cols to the row with id. A missing row is ErrNotFound.
func (r *SalonGormRepository) update(
	ctx context.Context,
	model any,
	id string,
	cols map[string]any,
	collection string,
) error {
	if len(cols) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Updates(cols)
	if res.Error != nil {
		return classifyGorm(res.Error)
	}
	if res.RowsAffected == 0 {
		return storeerr.Wrap(storeerr.CategoryNotFound, gorm.ErrRecordNotFound)
	}

	notify(ctx, r.notifier, collection)
	return nil
}
