package handlers

import (
	"time"

	"github.com/oksasatya/style-gallery-api/internal/application"
	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
)

// JSON shapes keep the Mongo-style "_id" keys the web client reads.

type userRef struct {
	ID          string `json:"_id"`
	UserType    string `json:"userType"`
	Username    string `json:"username,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

func newUserRef(u *entity.User) *userRef {
	if u == nil {
		return nil
	}
	ref := &userRef{ID: u.ID, UserType: string(u.Type())}
	switch id := u.Identity.(type) {
	case entity.Individual:
		ref.Username, ref.FirstName, ref.LastName = id.Username, id.FirstName, id.LastName
	case entity.Organization:
		ref.CompanyName = id.CompanyName
	}
	ref.DisplayName, _ = entity.DisplayName(u)
	return ref
}

type profileJSON struct {
	*userRef
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	FollowersCount int       `json:"followersCount"`
	FollowingCount int       `json:"followingCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// newProfile renders u. Contact fields are only included for the owner.
func newProfile(u *entity.User, private bool) profileJSON {
	p := profileJSON{
		userRef:        newUserRef(u),
		FollowersCount: u.Followers.Len(),
		FollowingCount: u.Following.Len(),
		CreatedAt:      u.CreatedAt,
	}
	if private {
		p.Email, p.Phone = u.Email, u.Phone
	}
	return p
}

type commentJSON struct {
	ID        string    `json:"_id"`
	UserID    *userRef  `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func newComment(v application.CommentView) commentJSON {
	return commentJSON{
		ID:        v.Comment.ID,
		UserID:    newUserRef(v.Author),
		Text:      v.Comment.Text,
		CreatedAt: v.Comment.CreatedAt,
	}
}

type designJSON struct {
	ID            string    `json:"_id"`
	UserID        string    `json:"userId"`
	Owner         *userRef  `json:"owner,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	Likes         []string  `json:"likes"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	SharesCount   int64     `json:"shares"`
	CreatedAt     time.Time `json:"createdAt"`
}

func newDesign(d *entity.Design, owner *entity.User) designJSON {
	return designJSON{
		ID:            d.ID,
		UserID:        d.OwnerID,
		Owner:         newUserRef(owner),
		Title:         d.Title,
		Description:   d.Description,
		Category:      d.Category,
		ImageURL:      d.ImageURL,
		Likes:         d.Likes.Slice(),
		LikesCount:    d.Likes.Len(),
		CommentsCount: len(d.Comments),
		SharesCount:   d.Shares,
		CreatedAt:     d.CreatedAt,
	}
}

func newDesigns(ds []*entity.Design) []designJSON {
	out := make([]designJSON, 0, len(ds))
	for _, d := range ds {
		out = append(out, newDesign(d, nil))
	}
	return out
}

type notificationJSON struct {
	ID           string            `json:"_id"`
	Type         string            `json:"type"`
	Title        string            `json:"title"`
	Message      string            `json:"message"`
	RelatedID    string            `json:"relatedId"`
	RelatedModel string            `json:"relatedModel"`
	ActionURL    string            `json:"actionUrl"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	IsRead       bool              `json:"isRead"`
	CreatedAt    time.Time         `json:"createdAt"`
}

func newNotifications(ns []*entity.Notification) []notificationJSON {
	out := make([]notificationJSON, 0, len(ns))
	for _, n := range ns {
		out = append(out, notificationJSON{
			ID:           n.ID,
			Type:         string(n.Type),
			Title:        n.Title,
			Message:      n.Message,
			RelatedID:    n.RelatedID,
			RelatedModel: n.RelatedModel,
			ActionURL:    n.ActionURL,
			Metadata:     n.Metadata,
			IsRead:       n.IsRead,
			CreatedAt:    n.CreatedAt,
		})
	}
	return out
}
