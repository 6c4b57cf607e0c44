package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
	repo "github.com/oksasatya/style-gallery-api/internal/domain/repository"
)

// Audit actions recorded for engagement events.
const (
	ActionLike         = "design_like"
	ActionUnlike       = "design_unlike"
	ActionComment      = "design_comment"
	ActionShare        = "design_share"
	ActionFollow       = "user_follow"
	ActionUnfollow     = "user_unfollow"
	ActionDeleteDesign = "design_delete"
)

// fallbackActorName is used in notifications when the actor's record cannot
// produce a display name.
const fallbackActorName = "Someone"

const authorLookupConcurrency = 8

// SocialService implements likes, comments, shares, follows and
// owner-gated design deletion.
type SocialService struct {
	Users    repo.UserRepository
	Designs  repo.DesignRepository
	Notifier Notifier
	Audit    repo.AuditRepository
	Index    DesignIndexer
	Logger   *logrus.Logger

	now func() time.Time
}

func NewSocialService(users repo.UserRepository, designs repo.DesignRepository, notifier Notifier, audit repo.AuditRepository, index DesignIndexer, logger *logrus.Logger) *SocialService {
	return &SocialService{
		Users:    users,
		Designs:  designs,
		Notifier: notifier,
		Audit:    audit,
		Index:    index,
		Logger:   logger,
		now:      time.Now,
	}
}

type LikeStatus struct {
	IsLiked    bool
	LikesCount int
}

type FollowStatus struct {
	IsFollowing    bool
	FollowersCount int
	FollowingCount int
}

// CommentView is a comment with its author resolved. Author is nil when the
// author's record no longer exists.
type CommentView struct {
	Comment entity.Comment
	Author  *entity.User
}

type CommentAdded struct {
	Comment       CommentView
	CommentsCount int
}

// Like adds userID to the likes of the design and notifies its owner.
func (s *SocialService) Like(ctx context.Context, designID, userID string) (LikeStatus, error) {
	d, err := s.loadDesign(ctx, designID)
	if err != nil {
		return LikeStatus{}, err
	}
	if d.IsOwner(userID) {
		return LikeStatus{}, newError(ErrSelfAction, "Cannot like your own design")
	}
	if d.Likes.Has(userID) {
		return LikeStatus{}, newError(ErrAlreadyLiked, "Design already liked")
	}

	res, err := s.Designs.AddLike(ctx, designID, userID)
	if err != nil {
		return LikeStatus{}, s.designWriteError(err, "Failed to process like/unlike")
	}
	if !res.Changed {
		// Lost a race with a concurrent like from the same user.
		return LikeStatus{}, newError(ErrAlreadyLiked, "Design already liked")
	}

	s.audit(ctx, ActionLike, userID, d.ID, entity.RelatedDesign, nil)

	name := s.actorName(ctx, userID)
	s.notify(ctx, designNotification(d, entity.NotificationDesignLiked, userID, name))
	s.smsOwner(ctx, d, name)

	return LikeStatus{IsLiked: true, LikesCount: res.LikesCount}, nil
}

// Unlike removes userID from the likes of the design.
func (s *SocialService) Unlike(ctx context.Context, designID, userID string) (LikeStatus, error) {
	d, err := s.loadDesign(ctx, designID)
	if err != nil {
		return LikeStatus{}, err
	}
	if d.IsOwner(userID) {
		return LikeStatus{}, newError(ErrSelfAction, "Cannot like your own design")
	}
	if !d.Likes.Has(userID) {
		return LikeStatus{}, newError(ErrNotLiked, "Design not liked yet")
	}

	res, err := s.Designs.RemoveLike(ctx, designID, userID)
	if err != nil {
		return LikeStatus{}, s.designWriteError(err, "Failed to process like/unlike")
	}
	if !res.Changed {
		return LikeStatus{}, newError(ErrNotLiked, "Design not liked yet")
	}

	s.audit(ctx, ActionUnlike, userID, d.ID, entity.RelatedDesign, nil)
	return LikeStatus{IsLiked: false, LikesCount: res.LikesCount}, nil
}

// AddComment appends a comment written by userID.
func (s *SocialService) AddComment(ctx context.Context, designID, userID, text string) (CommentAdded, error) {
	trimmed, err := entity.NormalizeCommentText(text)
	if err != nil {
		msg := "Comment text is required"
		if errors.Is(err, entity.ErrCommentTooLong) {
			msg = fmt.Sprintf("Comment text must be at most %d characters", entity.MaxCommentLength)
		}
		return CommentAdded{}, wrapError(ErrValidation, msg, err)
	}

	d, err := s.loadDesign(ctx, designID)
	if err != nil {
		return CommentAdded{}, err
	}
	author, err := s.loadUser(ctx, userID)
	if err != nil {
		return CommentAdded{}, err
	}

	c := entity.Comment{AuthorID: userID, Text: trimmed, CreatedAt: s.now().UTC()}
	count, err := s.Designs.AppendComment(ctx, designID, &c)
	if err != nil {
		return CommentAdded{}, s.designWriteError(err, "Failed to add comment")
	}

	s.audit(ctx, ActionComment, userID, d.ID, entity.RelatedDesign, map[string]any{"comment_id": c.ID})

	if !d.IsOwner(userID) {
		name, nerr := entity.DisplayName(author)
		if nerr != nil {
			s.warn(nerr, logrus.Fields{"user_id": userID}, "commenter has no display name")
			name = fallbackActorName
		}
		s.notify(ctx, designNotification(d, entity.NotificationDesignCommented, userID, name))
	}

	return CommentAdded{Comment: CommentView{Comment: c, Author: author}, CommentsCount: count}, nil
}

// ListComments returns the comments of a design in creation order. Authors
// are fetched once each, concurrently.
func (s *SocialService) ListComments(ctx context.Context, designID string) ([]CommentView, error) {
	d, err := s.loadDesign(ctx, designID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(d.Comments))
	seen := make(map[string]struct{}, len(d.Comments))
	for _, c := range d.Comments {
		if _, ok := seen[c.AuthorID]; !ok {
			seen[c.AuthorID] = struct{}{}
			ids = append(ids, c.AuthorID)
		}
	}

	found := make([]*entity.User, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(authorLookupConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			u, uerr := s.Users.GetByID(gctx, id)
			switch {
			case uerr == nil:
				found[i] = u
			case errors.Is(uerr, repo.ErrNotFound):
			default:
				return fmt.Errorf("fetch comment author %s: %w", id, uerr)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	authors := make(map[string]*entity.User, len(ids))
	for i, id := range ids {
		authors[id] = found[i]
	}
	out := make([]CommentView, 0, len(d.Comments))
	for _, c := range d.Comments {
		out = append(out, CommentView{Comment: c, Author: authors[c.AuthorID]})
	}
	return out, nil
}

// Share counts one share event. Repeated shares always increment.
func (s *SocialService) Share(ctx context.Context, designID, userID string) (int64, error) {
	d, err := s.loadDesign(ctx, designID)
	if err != nil {
		return 0, err
	}
	shares, err := s.Designs.IncrementShares(ctx, designID)
	if err != nil {
		return 0, s.designWriteError(err, "Failed to share design")
	}

	s.audit(ctx, ActionShare, userID, d.ID, entity.RelatedDesign, map[string]any{"shares": shares})

	if !d.IsOwner(userID) {
		s.notify(ctx, designNotification(d, entity.NotificationDesignShared, userID, s.actorName(ctx, userID)))
	}
	return shares, nil
}

// Follow makes actorID a follower of targetID.
func (s *SocialService) Follow(ctx context.Context, actorID, targetID string) (FollowStatus, error) {
	actor, target, err := s.followPair(ctx, actorID, targetID)
	if err != nil {
		return FollowStatus{}, err
	}
	actorID, targetID = actor.ID, target.ID
	if actor.Following.Has(targetID) {
		return FollowStatus{}, newError(ErrAlreadyFollowing, "Already following this user")
	}

	res, err := s.Users.Follow(ctx, actorID, targetID)
	if err != nil {
		return FollowStatus{}, s.userWriteError(err)
	}
	if !res.Changed {
		return FollowStatus{}, newError(ErrAlreadyFollowing, "Already following this user")
	}

	s.audit(ctx, ActionFollow, actorID, targetID, entity.RelatedUser, nil)

	name, nerr := entity.DisplayName(actor)
	if nerr != nil {
		s.warn(nerr, logrus.Fields{"user_id": actorID}, "follower has no display name")
		name = fallbackActorName
	}
	s.notify(ctx, &entity.Notification{
		UserID:       targetID,
		Type:         entity.NotificationNewFollower,
		Title:        "New Follower",
		Message:      name + " started following you",
		RelatedID:    actorID,
		RelatedModel: entity.RelatedUser,
		ActionURL:    "/profile",
		Metadata:     map[string]string{"followerId": actorID, "followerName": name},
	})

	return FollowStatus{IsFollowing: true, FollowersCount: res.FollowersCount, FollowingCount: res.FollowingCount}, nil
}

// Unfollow removes the follow edge from actorID to targetID.
func (s *SocialService) Unfollow(ctx context.Context, actorID, targetID string) (FollowStatus, error) {
	actor, target, err := s.followPair(ctx, actorID, targetID)
	if err != nil {
		return FollowStatus{}, err
	}
	actorID, targetID = actor.ID, target.ID
	if !actor.Following.Has(targetID) {
		return FollowStatus{}, newError(ErrNotFollowing, "Not following this user")
	}

	res, err := s.Users.Unfollow(ctx, actorID, targetID)
	if err != nil {
		return FollowStatus{}, s.userWriteError(err)
	}
	if !res.Changed {
		return FollowStatus{}, newError(ErrNotFollowing, "Not following this user")
	}

	s.audit(ctx, ActionUnfollow, actorID, targetID, entity.RelatedUser, nil)
	return FollowStatus{IsFollowing: false, FollowersCount: res.FollowersCount, FollowingCount: res.FollowingCount}, nil
}

// DeleteDesign removes a design owned by userID. Notifications that point at
// it are left in place.
func (s *SocialService) DeleteDesign(ctx context.Context, designID, userID string) error {
	d, err := s.loadDesign(ctx, designID)
	if err != nil {
		return err
	}
	if !d.IsOwner(userID) {
		return newError(ErrForbidden, "You can only delete your own designs")
	}
	if err := s.Designs.Delete(ctx, designID); err != nil {
		return s.designWriteError(err, "Failed to delete design")
	}

	s.audit(ctx, ActionDeleteDesign, userID, d.ID, entity.RelatedDesign, map[string]any{"title": d.Title})
	if s.Index != nil {
		if ierr := s.Index.Remove(ctx, d.ID); ierr != nil {
			s.warn(ierr, logrus.Fields{"design_id": d.ID}, "search index removal failed")
		}
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"design_id": d.ID, "user_id": userID}).Info("design deleted")
	}
	return nil
}

// followPair loads both ends of a follow edge. The self check runs again on
// the stored ids since the store may accept several spellings of one id.
func (s *SocialService) followPair(ctx context.Context, actorID, targetID string) (actor, target *entity.User, err error) {
	if strings.TrimSpace(targetID) == "" {
		return nil, nil, newError(ErrValidation, "User ID is required")
	}
	if actorID == targetID {
		return nil, nil, errSelfFollow()
	}
	if actor, err = s.loadUser(ctx, actorID); err != nil {
		return nil, nil, err
	}
	if target, err = s.loadUser(ctx, targetID); err != nil {
		return nil, nil, err
	}
	if actor.ID == target.ID {
		return nil, nil, errSelfFollow()
	}
	return actor, target, nil
}

func errSelfFollow() *Error { return newError(ErrSelfAction, "Cannot follow yourself") }

func (s *SocialService) loadDesign(ctx context.Context, id string) (*entity.Design, error) {
	if strings.TrimSpace(id) == "" {
		return nil, newError(ErrValidation, "Design ID is required")
	}
	d, err := s.Designs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, wrapError(ErrNotFound, "Design not found", err)
		}
		return nil, err
	}
	if d.Likes == nil {
		d.Likes = entity.NewIDSet()
	}
	return d, nil
}

func (s *SocialService) loadUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, wrapError(ErrNotFound, "User not found", err)
		}
		return nil, err
	}
	if u.Following == nil {
		u.Following = entity.NewIDSet()
	}
	if u.Followers == nil {
		u.Followers = entity.NewIDSet()
	}
	return u, nil
}

// designWriteError maps a failed write; a design removed between read and
// write is reported as missing.
func (s *SocialService) designWriteError(err error, message string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return wrapError(ErrNotFound, "Design not found", err)
	}
	return fmt.Errorf("%s: %w", message, err)
}

func (s *SocialService) userWriteError(err error) error {
	if errors.Is(err, repo.ErrSelfEdge) {
		return wrapError(ErrSelfAction, "Cannot follow yourself", err)
	}
	if errors.Is(err, repo.ErrNotFound) {
		return wrapError(ErrNotFound, "User not found", err)
	}
	return fmt.Errorf("follow/unfollow: %w", err)
}

func (s *SocialService) actorName(ctx context.Context, userID string) string {
	u, err := s.Users.GetByID(ctx, userID)
	if err == nil {
		var name string
		if name, err = entity.DisplayName(u); err == nil {
			return name
		}
	}
	s.warn(err, logrus.Fields{"user_id": userID}, "actor display name unavailable")
	return fallbackActorName
}

func (s *SocialService) notify(ctx context.Context, n *entity.Notification) {
	if s.Notifier == nil {
		return
	}
	n.CreatedAt = s.now().UTC()
	s.Notifier.Notify(ctx, n)
}

func (s *SocialService) smsOwner(ctx context.Context, d *entity.Design, likerName string) {
	if s.Notifier == nil {
		return
	}
	owner, err := s.Users.GetByID(ctx, d.OwnerID)
	if err != nil {
		s.warn(err, logrus.Fields{"user_id": d.OwnerID}, "design owner lookup for sms failed")
		return
	}
	if owner.Phone == "" {
		return
	}
	s.Notifier.SMS(ctx, owner.Phone, fmt.Sprintf("%s liked your design \"%s\"", likerName, d.Title))
}

// audit counts a successful action and records it in the audit trail.
func (s *SocialService) audit(ctx context.Context, action, actorID, targetID, model string, md map[string]any) {
	engagementTotal.WithLabelValues(action).Inc()
	if s.Audit == nil {
		return
	}
	c, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	err := s.Audit.Record(c, entity.AuditEvent{
		Action:      action,
		ActorID:     actorID,
		TargetID:    targetID,
		TargetModel: model,
		Metadata:    md,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		s.warn(err, logrus.Fields{"action": action, "user_id": actorID}, "audit record failed")
	}
}

func (s *SocialService) warn(err error, fields logrus.Fields, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithFields(fields).Warn(msg)
	}
}

func designNotification(d *entity.Design, typ entity.NotificationType, actorID, actorName string) *entity.Notification {
	var title, verb, idKey, nameKey string
	switch typ {
	case entity.NotificationDesignLiked:
		title, verb, idKey, nameKey = "Design Liked", "liked", "likerId", "likerName"
	case entity.NotificationDesignCommented:
		title, verb, idKey, nameKey = "New Comment", "commented on", "commenterId", "commenterName"
	case entity.NotificationDesignShared:
		title, verb, idKey, nameKey = "Design Shared", "shared", "sharerId", "sharerName"
	}
	return &entity.Notification{
		UserID:       d.OwnerID,
		Type:         typ,
		Title:        title,
		Message:      fmt.Sprintf("%s %s your design \"%s\"", actorName, verb, d.Title),
		RelatedID:    d.ID,
		RelatedModel: entity.RelatedDesign,
		ActionURL:    "/designs/" + d.ID,
		Metadata: map[string]string{
			idKey:         actorID,
			nameKey:       actorName,
			"designTitle": d.Title,
		},
	}
}
