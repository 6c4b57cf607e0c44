package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
	"github.com/oksasatya/style-gallery-api/internal/domain/repository"
)

// Field names follow the documents the web frontend already reads.

type userDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Email       string               `bson:"email"`
	Password    string               `bson:"password"`
	UserType    string               `bson:"userType"`
	Username    string               `bson:"username,omitempty"`
	FirstName   string               `bson:"firstName,omitempty"`
	LastName    string               `bson:"lastName,omitempty"`
	CompanyName string               `bson:"companyName,omitempty"`
	Phone       string               `bson:"phone,omitempty"`
	Following   []primitive.ObjectID `bson:"following"`
	Followers   []primitive.ObjectID `bson:"followers"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

type commentDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	UserID    primitive.ObjectID `bson:"userId"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type designDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	UserID      primitive.ObjectID   `bson:"userId"`
	Title       string               `bson:"title"`
	Description string               `bson:"description,omitempty"`
	Category    string               `bson:"category,omitempty"`
	ImageURL    string               `bson:"imageUrl,omitempty"`
	Likes       []primitive.ObjectID `bson:"likes"`
	Comments    []commentDoc         `bson:"comments"`
	Shares      int64                `bson:"shares"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

type notificationDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId"`
	Type         string             `bson:"type"`
	Title        string             `bson:"title"`
	Message      string             `bson:"message"`
	RelatedID    primitive.ObjectID `bson:"relatedId"`
	RelatedModel string             `bson:"relatedModel"`
	ActionURL    string             `bson:"actionUrl"`
	Metadata     map[string]string  `bson:"metadata,omitempty"`
	IsRead       bool               `bson:"isRead"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// objectID parses a hex id. An id that cannot exist is reported as missing.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return oid, nil
}

func hexSet(ids []primitive.ObjectID) entity.IDSet {
	s := entity.NewIDSet()
	for _, id := range ids {
		s.Add(id.Hex())
	}
	return s
}

func objectIDs(s entity.IDSet) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, s.Len())
	for _, id := range s.Slice() {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}

func (d userDoc) toEntity() *entity.User {
	u := &entity.User{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Password:  d.Password,
		Phone:     d.Phone,
		Following: hexSet(d.Following),
		Followers: hexSet(d.Followers),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	switch entity.UserType(d.UserType) {
	case entity.UserTypeIndividual:
		u.Identity = entity.Individual{Username: d.Username, FirstName: d.FirstName, LastName: d.LastName}
	case entity.UserTypeOrganization:
		u.Identity = entity.Organization{CompanyName: d.CompanyName}
	}
	return u
}

func userToDoc(u *entity.User) (userDoc, error) {
	d := userDoc{
		Email:     u.Email,
		Password:  u.Password,
		UserType:  string(u.Type()),
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.ID != "" {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return userDoc{}, err
		}
		d.ID = oid
	}
	switch id := u.Identity.(type) {
	case entity.Individual:
		d.Username, d.FirstName, d.LastName = id.Username, id.FirstName, id.LastName
	case entity.Organization:
		d.CompanyName = id.CompanyName
	}
	var err error
	if d.Following, err = objectIDs(u.Following); err != nil {
		return userDoc{}, err
	}
	if d.Followers, err = objectIDs(u.Followers); err != nil {
		return userDoc{}, err
	}
	return d, nil
}

func (d designDoc) toEntity() *entity.Design {
	out := &entity.Design{
		ID:          d.ID.Hex(),
		OwnerID:     d.UserID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		ImageURL:    d.ImageURL,
		Likes:       hexSet(d.Likes),
		Comments:    make([]entity.Comment, 0, len(d.Comments)),
		Shares:      d.Shares,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	for _, c := range d.Comments {
		out.Comments = append(out.Comments, entity.Comment{
			ID:        c.ID.Hex(),
			AuthorID:  c.UserID.Hex(),
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return out
}

func (d notificationDoc) toEntity() *entity.Notification {
	return &entity.Notification{
		ID:           d.ID.Hex(),
		UserID:       d.UserID.Hex(),
		Type:         entity.NotificationType(d.Type),
		Title:        d.Title,
		Message:      d.Message,
		RelatedID:    d.RelatedID.Hex(),
		RelatedModel: d.RelatedModel,
		ActionURL:    d.ActionURL,
		Metadata:     d.Metadata,
		IsRead:       d.IsRead,
		CreatedAt:    d.CreatedAt,
	}
}
