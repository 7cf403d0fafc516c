package repository

import (
	"context"
	"sort"
	"strconv"

	bolt "go.etcd.io/bbolt"

	"github.com/BruksfildServices01/salon-sync/internal/audit"
	"github.com/BruksfildServices01/salon-sync/internal/models"
)

type AuditBoltRepository struct {
	db *bolt.DB
}

func NewAuditBoltRepository(db *bolt.DB) *AuditBoltRepository {
	return &AuditBoltRepository{db: db}
}

var _ audit.Store = (*AuditBoltRepository)(nil)

func (r *AuditBoltRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := r.db.Update(func(tx *bolt.Tx) error {
		seq, err := tx.Bucket([]byte(auditBucket)).NextSequence()
		if err != nil {
			return err
		}
		log.ID = uint(seq)
		return boltPut(tx, auditBucket, strconv.FormatUint(seq, 10), log)
	})
	return classifyBolt(err)
}

func (r *AuditBoltRepository) ListAuditLogs(
	ctx context.Context,
	q audit.Query,
) ([]models.AuditLog, int64, error) {

	logs, err := list(ctx, r.db, auditBucket, func(l *models.AuditLog) bool {
		switch {
		case q.Action != "" && l.Action != q.Action:
			return false
		case q.Entity != "" && l.Entity != q.Entity:
			return false
		case q.From != nil && l.CreatedAt.Before(*q.From):
			return false
		case q.To != nil && !l.CreatedAt.Before(*q.To):
			return false
		}
		return true
	})
	if err != nil {
		return nil, 0, err
	}

	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].CreatedAt.Equal(logs[j].CreatedAt) {
			return logs[i].ID > logs[j].ID
		}
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})

	total := int64(len(logs))
	if q.Offset >= len(logs) {
		return []models.AuditLog{}, total, nil
	}
	logs = logs[q.Offset:]
	if q.Limit > 0 && q.Limit < len(logs) {
		logs = logs[:q.Limit]
	}
	return logs, total, nil
}
