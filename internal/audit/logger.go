package audit

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/BruksfildServices01/salon-sync/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Query narrows an audit log listing. Zero values mean no filter.
type Query struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Offset int
	Limit  int
}

type Store interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
	ListAuditLogs(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

type Logger struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Logger {
	return &Logger{store: store, now: time.Now}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		SalonID:   ev.SalonID,
		Actor:     ev.Actor,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
		CreatedAt: l.now(),
	}

	return l.store.CreateAuditLog(ctx, &entry)
}
