package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
	"github.com/oksasatya/style-gallery-api/internal/domain/repository"
)

type DesignRepository struct {
	c *mongo.Collection
}

func NewDesignRepository(db *mongo.Database) *DesignRepository {
	return &DesignRepository{c: db.Collection(DesignsCollection)}
}

var _ repository.DesignRepository = (*DesignRepository)(nil)

func (r *DesignRepository) Create(ctx context.Context, d *entity.Design) error {
	owner, err := primitive.ObjectIDFromHex(d.OwnerID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
	doc := designDoc{
		ID:          primitive.NewObjectID(),
		UserID:      owner,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		ImageURL:    d.ImageURL,
		Likes:       []primitive.ObjectID{},
		Comments:    []commentDoc{},
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		return err
	}
	d.ID = doc.ID.Hex()
	return nil
}

func (r *DesignRepository) GetByID(ctx context.Context, id string) (*entity.Design, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc designDoc
	if err := r.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *DesignRepository) List(ctx context.Context, limit, offset int) ([]*entity.Design, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := r.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*entity.Design, 0, limit)
	for cur.Next(ctx) {
		var doc designDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toEntity())
	}
	return out, cur.Err()
}

func (r *DesignRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddLike inserts userID unless it is already present or owns the design.
func (r *DesignRepository) AddLike(ctx context.Context, designID, userID string) (repository.LikeResult, error) {
	did, err := objectID(designID)
	if err != nil {
		return repository.LikeResult{}, err
	}
	uid, err := objectID(userID)
	if err != nil {
		return repository.LikeResult{}, err
	}
	filter := bson.M{"_id": did, "userId": bson.M{"$ne": uid}, "likes": bson.M{"$ne": uid}}
	update := bson.M{"$addToSet": bson.M{"likes": uid}, "$set": bson.M{"updatedAt": time.Now().UTC()}}
	return r.likeWrite(ctx, did, filter, update)
}

func (r *DesignRepository) RemoveLike(ctx context.Context, designID, userID string) (repository.LikeResult, error) {
	did, err := objectID(designID)
	if err != nil {
		return repository.LikeResult{}, err
	}
	uid, err := objectID(userID)
	if err != nil {
		return repository.LikeResult{}, err
	}
	filter := bson.M{"_id": did, "likes": uid}
	update := bson.M{"$pull": bson.M{"likes": uid}, "$set": bson.M{"updatedAt": time.Now().UTC()}}
	return r.likeWrite(ctx, did, filter, update)
}

// likeWrite runs a guarded update. When the guard rejects it the design is
// re-read so a missing design is told apart from a no-op.
func (r *DesignRepository) likeWrite(ctx context.Context, did primitive.ObjectID, filter, update bson.M) (repository.LikeResult, error) {
	n, err := r.updateCount(ctx, filter, update, "likes")
	if err == nil {
		return repository.LikeResult{Changed: true, LikesCount: n}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return repository.LikeResult{}, err
	}
	n, err = r.size(ctx, did, "likes")
	if err != nil {
		return repository.LikeResult{}, err
	}
	return repository.LikeResult{Changed: false, LikesCount: n}, nil
}

func (r *DesignRepository) AppendComment(ctx context.Context, designID string, c *entity.Comment) (int, error) {
	did, err := objectID(designID)
	if err != nil {
		return 0, err
	}
	author, err := primitive.ObjectIDFromHex(c.AuthorID)
	if err != nil {
		return 0, err
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	doc := commentDoc{ID: primitive.NewObjectID(), UserID: author, Text: c.Text, CreatedAt: c.CreatedAt}
	n, err := r.updateCount(ctx, bson.M{"_id": did},
		bson.M{"$push": bson.M{"comments": doc}, "$set": bson.M{"updatedAt": time.Now().UTC()}},
		"comments")
	if err != nil {
		return 0, err
	}
	c.ID = doc.ID.Hex()
	return n, nil
}

func (r *DesignRepository) IncrementShares(ctx context.Context, designID string) (int64, error) {
	did, err := objectID(designID)
	if err != nil {
		return 0, err
	}
	var out struct {
		Shares int64 `bson:"shares"`
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"shares": 1})
	err = r.c.FindOneAndUpdate(ctx, bson.M{"_id": did},
		bson.M{"$inc": bson.M{"shares": 1}, "$set": bson.M{"updatedAt": time.Now().UTC()}},
		opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}
	return out.Shares, nil
}

// updateCount applies update and returns the size of the array field after it.
func (r *DesignRepository) updateCount(ctx context.Context, filter, update bson.M, field string) (int, error) {
	var out struct {
		N int `bson:"n"`
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(sizeProjection(field))
	if err := r.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}
	return out.N, nil
}

func (r *DesignRepository) size(ctx context.Context, id primitive.ObjectID, field string) (int, error) {
	var out struct {
		N int `bson:"n"`
	}
	opts := options.FindOne().SetProjection(sizeProjection(field))
	if err := r.c.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}
	return out.N, nil
}

func sizeProjection(field string) bson.M {
	return bson.M{"n": bson.M{"$size": bson.M{"$ifNull": bson.A{"$" + field, bson.A{}}}}}
}
