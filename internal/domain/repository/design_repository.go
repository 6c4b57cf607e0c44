package repository

import (
	"context"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
)

// LikeResult describes a likes set change and its size after it.
// Changed is false when the set was already in the requested state.
type LikeResult struct {
	Changed    bool
	LikesCount int
}

// DesignRepository persists designs. Set and counter mutations are applied
// atomically per document so concurrent requests cannot duplicate members.
type DesignRepository interface {
	Create(ctx context.Context, d *entity.Design) error
	GetByID(ctx context.Context, id string) (*entity.Design, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Design, error)
	Delete(ctx context.Context, id string) error
	// AddLike never inserts the owner of the design.
	AddLike(ctx context.Context, designID, userID string) (LikeResult, error)
	RemoveLike(ctx context.Context, designID, userID string) (LikeResult, error)
	// AppendComment assigns c.ID and returns the number of comments after
	// the append.
	AppendComment(ctx context.Context, designID string, c *entity.Comment) (int, error)
	IncrementShares(ctx context.Context, designID string) (int64, error)
}
