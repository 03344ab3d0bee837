package repository

import (
	"context"
	"time"

	"stay-calendar/internal/infra"
	"stay-calendar/internal/infra/db"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	createNotificationJob = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3::jsonb, $4, 'queued')`
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, createNotificationJob,
		kind, topic, string(payload), pgtype.Timestamptz{Time: runAt, Valid: true})
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}

	return nil
}

