package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-sync/internal/audit"
	"github.com/BruksfildServices01/salon-sync/internal/models"
)

type AuditGormRepository struct {
	db *gorm.DB
}

func NewAuditGormRepository(db *gorm.DB) *AuditGormRepository {
	return &AuditGormRepository{db: db}
}

var _ audit.Store = (*AuditGormRepository)(nil)

func (r *AuditGormRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	return classifyGorm(r.db.WithContext(ctx).Create(log).Error)
}

func (r *AuditGormRepository) ListAuditLogs(
	ctx context.Context,
	q audit.Query,
) ([]models.AuditLog, int64, error) {

	base := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if q.Action != "" {
		base = base.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		base = base.Where("entity = ?", q.Entity)
	}
	if q.From != nil {
		base = base.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		base = base.Where("created_at < ?", *q.To)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, classifyGorm(err)
	}

	page := base.Order("created_at DESC").Offset(q.Offset)
	if q.Limit > 0 {
		page = page.Limit(q.Limit)
	}

	var logs []models.AuditLog
	if err := page.Find(&logs).Error; err != nil {
		return nil, 0, classifyGorm(err)
	}

	return logs, total, nil
}
