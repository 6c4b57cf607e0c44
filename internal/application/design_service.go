package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
	repo "github.com/oksasatya/style-gallery-api/internal/domain/repository"
	"github.com/oksasatya/style-gallery-api/pkg/sanitize"
)

// DesignIndexer keeps a full-text index of designs.
type DesignIndexer interface {
	Index(ctx context.Context, d *entity.Design) error
	Remove(ctx context.Context, designID string) error
	// Search returns matching design ids, best match first.
	Search(ctx context.Context, q string, size int) ([]string, error)
}

// ImageStore uploads design images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

const maxTitleLength = 120

type DesignService struct {
	Designs repo.DesignRepository
	Users   repo.UserRepository
	Images  ImageStore
	Index   DesignIndexer
	Logger  *logrus.Logger
}

func NewDesignService(designs repo.DesignRepository, users repo.UserRepository, images ImageStore, index DesignIndexer, logger *logrus.Logger) *DesignService {
	return &DesignService{Designs: designs, Users: users, Images: images, Index: index, Logger: logger}
}

type CreateDesignInput struct {
	OwnerID     string
	Title       string
	Description string
	Category    string

	// Image is optional.
	Image            io.Reader
	ImageName        string
	ImageContentType string
}

// Create stores a new design with empty engagement state.
func (s *DesignService) Create(ctx context.Context, in CreateDesignInput) (*entity.Design, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, newError(ErrValidation, "Design title is required")
	}
	if len([]rune(title)) > maxTitleLength {
		return nil, newError(ErrValidation, "Design title is too long")
	}
	if _, err := s.Users.GetByID(ctx, in.OwnerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, wrapError(ErrNotFound, "User not found", err)
		}
		return nil, err
	}

	now := time.Now().UTC()
	d := &entity.Design{
		OwnerID:     in.OwnerID,
		Title:       title,
		Description: sanitize.RichText(in.Description),
		Category:    sanitize.StripTags(in.Category),
		Likes:       entity.NewIDSet(),
		Comments:    []entity.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if in.Image != nil {
		if s.Images == nil {
			return nil, errors.New("image storage not configured")
		}
		ext := strings.ToLower(filepath.Ext(in.ImageName))
		objectPath := filepath.ToSlash(filepath.Join("designs", in.OwnerID, uuid.NewString()+ext))
		url, err := s.Images.Upload(ctx, objectPath, in.ImageContentType, in.Image)
		if err != nil {
			return nil, err
		}
		d.ImageURL = url
	}

	if err := s.Designs.Create(ctx, d); err != nil {
		return nil, err
	}

	if s.Index != nil {
		if err := s.Index.Index(ctx, d); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("design_id", d.ID).Warn("search index failed")
		}
	}
	return d, nil
}

// Get returns a design and its owner. owner is nil when the owner record is
// gone.
func (s *DesignService) Get(ctx context.Context, id string) (d *entity.Design, owner *entity.User, err error) {
	d, err = s.Designs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, wrapError(ErrNotFound, "Design not found", err)
		}
		return nil, nil, err
	}
	owner, err = s.Users.GetByID(ctx, d.OwnerID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, nil, err
	}
	return d, owner, nil
}

// List returns designs newest first.
func (s *DesignService) List(ctx context.Context, limit, offset int) ([]*entity.Design, error) {
	limit, offset = clampPage(limit, offset)
	return s.Designs.List(ctx, limit, offset)
}

// Search resolves index hits back to stored designs, dropping stale hits.
func (s *DesignService) Search(ctx context.Context, q string, size int) ([]*entity.Design, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, newError(ErrValidation, "Search query is required")
	}
	if s.Index == nil {
		return []*entity.Design{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	ids, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Design, 0, len(ids))
	for _, id := range ids {
		d, err := s.Designs.GetByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
