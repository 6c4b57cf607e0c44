package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned by every repository when a record is missing.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate")
	// ErrSelfEdge is returned when a follow edge would point a user at itself.
	ErrSelfEdge = errors.New("self edge")
)

// FollowResult describes a follow edge change and the counts after it.
// Changed is false when the edge was already in the requested state.
type FollowResult struct {
	Changed        bool
	FollowersCount int // followers of the followee
	FollowingCount int // followees of the follower
}

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	// Follow adds followeeID to the follower's following set and followerID
	// to the followee's followers set as one logical write.
	Follow(ctx context.Context, followerID, followeeID string) (FollowResult, error)
	// Unfollow removes both memberships as one logical write.
	Unfollow(ctx context.Context, followerID, followeeID string) (FollowResult, error)
}
