package repository

import (
	"context"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// ListByUser returns newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// AuditRepository stores the engagement audit trail.
type AuditRepository interface {
	Record(ctx context.Context, e entity.AuditEvent) error
}
