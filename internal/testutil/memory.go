// Package testutil holds in-memory repositories and recording collaborators
// for tests. They honour the same contracts as the MongoDB repositories.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
	"github.com/oksasatya/style-gallery-api/internal/domain/repository"
)

// NewID returns a fresh id in the format the MongoDB store uses.
func NewID() string { return primitive.NewObjectID().Hex() }

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Following = u.Following.Clone()
	c.Followers = u.Followers.Clone()
	return &c
}

func cloneDesign(d *entity.Design) *entity.Design {
	c := *d
	c.Likes = d.Likes.Clone()
	c.Comments = append([]entity.Comment(nil), d.Comments...)
	return &c
}

// Users is an in-memory repository.UserRepository.
type Users struct {
	mu   sync.Mutex
	byID map[string]*entity.User

	// FollowErr, when set, is returned by Follow and Unfollow.
	FollowErr error
}

func NewUsers() *Users { return &Users{byID: map[string]*entity.User{}} }

// userKey resolves id the way the MongoDB store does: any hex spelling of an
// ObjectID names the same user.
func userKey(id string) string {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid.Hex()
	}
	return id
}

var _ repository.UserRepository = (*Users)(nil)

func (r *Users) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.byID {
		if other.Email != "" && other.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = NewID()
	}
	if u.Following == nil {
		u.Following = entity.NewIDSet()
	}
	if u.Followers == nil {
		u.Followers = entity.NewIDSet()
	}
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	r.byID[u.ID] = cloneUser(u)
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userKey(id)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Users) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[userKey(u.ID)]
	if !ok {
		return repository.ErrNotFound
	}
	next := cloneUser(u)
	next.ID = cur.ID
	next.Following, next.Followers = cur.Following, cur.Followers
	next.UpdatedAt = time.Now().UTC()
	r.byID[cur.ID] = next
	return nil
}

func (r *Users) Follow(_ context.Context, followerID, followeeID string) (repository.FollowResult, error) {
	return r.edge(followerID, followeeID, true)
}

func (r *Users) Unfollow(_ context.Context, followerID, followeeID string) (repository.FollowResult, error) {
	return r.edge(followerID, followeeID, false)
}

func (r *Users) edge(followerID, followeeID string, add bool) (repository.FollowResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FollowErr != nil {
		return repository.FollowResult{}, r.FollowErr
	}
	f, ok := r.byID[userKey(followerID)]
	if !ok {
		return repository.FollowResult{}, repository.ErrNotFound
	}
	t, ok := r.byID[userKey(followeeID)]
	if !ok {
		return repository.FollowResult{}, repository.ErrNotFound
	}
	if f.ID == t.ID {
		return repository.FollowResult{}, repository.ErrSelfEdge
	}
	var changed bool
	if add {
		if changed = f.Following.Add(t.ID); changed {
			t.Followers.Add(f.ID)
		}
	} else {
		if changed = f.Following.Remove(t.ID); changed {
			t.Followers.Remove(f.ID)
		}
	}
	return repository.FollowResult{
		Changed:        changed,
		FollowersCount: t.Followers.Len(),
		FollowingCount: f.Following.Len(),
	}, nil
}

// Designs is an in-memory repository.DesignRepository.
type Designs struct {
	mu   sync.Mutex
	byID map[string]*entity.Design
}

func NewDesigns() *Designs { return &Designs{byID: map[string]*entity.Design{}} }

var _ repository.DesignRepository = (*Designs)(nil)

func (r *Designs) Create(_ context.Context, d *entity.Design) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == "" {
		d.ID = NewID()
	}
	if d.Likes == nil {
		d.Likes = entity.NewIDSet()
	}
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
	r.byID[d.ID] = cloneDesign(d)
	return nil
}

func (r *Designs) GetByID(_ context.Context, id string) (*entity.Design, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneDesign(d), nil
}

func (r *Designs) List(_ context.Context, limit, offset int) ([]*entity.Design, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.Design, 0, len(r.byID))
	for _, d := range r.byID {
		all = append(all, cloneDesign(d))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return []*entity.Design{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *Designs) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Designs) AddLike(_ context.Context, designID, userID string) (repository.LikeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[designID]
	if !ok {
		return repository.LikeResult{}, repository.ErrNotFound
	}
	if d.IsOwner(userID) {
		return repository.LikeResult{LikesCount: d.Likes.Len()}, nil
	}
	changed := d.Likes.Add(userID)
	return repository.LikeResult{Changed: changed, LikesCount: d.Likes.Len()}, nil
}

func (r *Designs) RemoveLike(_ context.Context, designID, userID string) (repository.LikeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[designID]
	if !ok {
		return repository.LikeResult{}, repository.ErrNotFound
	}
	changed := d.Likes.Remove(userID)
	return repository.LikeResult{Changed: changed, LikesCount: d.Likes.Len()}, nil
}

func (r *Designs) AppendComment(_ context.Context, designID string, c *entity.Comment) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[designID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	c.ID = NewID()
	d.Comments = append(d.Comments, *c)
	return len(d.Comments), nil
}

func (r *Designs) IncrementShares(_ context.Context, designID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[designID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	d.Shares++
	return d.Shares, nil
}

// Notifications is an in-memory repository.NotificationRepository.
type Notifications struct {
	mu    sync.Mutex
	items []*entity.Notification
}

func NewNotifications() *Notifications { return &Notifications{} }

var _ repository.NotificationRepository = (*Notifications)(nil)

func (r *Notifications) Create(_ context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == "" {
		n.ID = NewID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	c := *n
	r.items = append(r.items, &c)
	return nil
}

func (r *Notifications) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var mine []*entity.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].UserID == userID {
			c := *r.items[i]
			mine = append(mine, &c)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })
	if offset >= len(mine) {
		return []*entity.Notification{}, nil
	}
	mine = mine[offset:]
	if limit > 0 && limit < len(mine) {
		mine = mine[:limit]
	}
	return mine, nil
}

func (r *Notifications) CountUnread(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, it := range r.items {
		if it.UserID == userID && !it.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *Notifications) MarkRead(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ID == id && it.UserID == userID {
			it.IsRead = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *Notifications) MarkAllRead(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, it := range r.items {
		if it.UserID == userID && !it.IsRead {
			it.IsRead = true
			n++
		}
	}
	return n, nil
}

// All returns every stored notification in insertion order.
func (r *Notifications) All() []entity.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Notification, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, *it)
	}
	return out
}
