package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
	"github.com/oksasatya/style-gallery-api/internal/domain/repository"
)

type NotificationRepository struct {
	c *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{c: db.Collection(NotificationsCollection)}
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	uid, err := primitive.ObjectIDFromHex(n.UserID)
	if err != nil {
		return err
	}
	var related primitive.ObjectID
	if n.RelatedID != "" {
		if related, err = primitive.ObjectIDFromHex(n.RelatedID); err != nil {
			return err
		}
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	doc := notificationDoc{
		ID:           primitive.NewObjectID(),
		UserID:       uid,
		Type:         string(n.Type),
		Title:        n.Title,
		Message:      n.Message,
		RelatedID:    related,
		RelatedModel: n.RelatedModel,
		ActionURL:    n.ActionURL,
		Metadata:     n.Metadata,
		IsRead:       n.IsRead,
		CreatedAt:    n.CreatedAt,
	}
	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		return err
	}
	n.ID = doc.ID.Hex()
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error) {
	uid, err := objectID(userID)
	if err != nil {
		return []*entity.Notification{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := r.c.Find(ctx, bson.M{"userId": uid}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*entity.Notification, 0, limit)
	for cur.Next(ctx) {
		var doc notificationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toEntity())
	}
	return out, cur.Err()
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	uid, err := objectID(userID)
	if err != nil {
		return 0, nil
	}
	return r.c.CountDocuments(ctx, bson.M{"userId": uid, "isRead": false})
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	uid, err := objectID(userID)
	if err != nil {
		return err
	}
	nid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": nid, "userId": uid},
		bson.M{"$set": bson.M{"isRead": true, "readAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	uid, err := objectID(userID)
	if err != nil {
		return 0, nil
	}
	res, err := r.c.UpdateMany(ctx,
		bson.M{"userId": uid, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true, "readAt": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
