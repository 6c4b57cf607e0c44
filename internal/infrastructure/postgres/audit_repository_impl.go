package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
	"github.com/oksasatya/style-gallery-api/internal/domain/repository"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

var _ repository.AuditRepository = (*AuditRepository)(nil)

func (r *AuditRepository) Record(ctx context.Context, e entity.AuditEvent) error {
	meta, err := json.Marshal(e.Metadata)
	if err != nil {
		return err
	}
	if e.Metadata == nil {
		meta = []byte("{}")
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO engagement_audit (action, actor_id, target_id, target_model, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.Action, e.ActorID, e.TargetID, e.TargetModel, meta, e.CreatedAt)
	return err
}
