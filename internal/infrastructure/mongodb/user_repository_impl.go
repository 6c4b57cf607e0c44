package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
	"github.com/oksasatya/style-gallery-api/internal/domain/repository"
)

type UserRepository struct {
	client *mongo.Client
	c      *mongo.Collection
	logger *logrus.Logger
}

func NewUserRepository(db *mongo.Database, logger *logrus.Logger) *UserRepository {
	return &UserRepository{client: db.Client(), c: db.Collection(UsersCollection), logger: logger}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	u.ID = ""
	u.CreatedAt, u.UpdatedAt = now, now
	doc, err := userToDoc(u)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	u.ID = doc.ID.Hex()
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDoc
	if err := r.c.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

// Update writes profile fields only. Follow sets are owned by Follow and
// Unfollow.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	oid, err := objectID(u.ID)
	if err != nil {
		return err
	}
	u.UpdatedAt = time.Now().UTC()
	doc, err := userToDoc(u)
	if err != nil {
		return err
	}
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"email":       doc.Email,
		"password":    doc.Password,
		"userType":    doc.UserType,
		"username":    doc.Username,
		"firstName":   doc.FirstName,
		"lastName":    doc.LastName,
		"companyName": doc.CompanyName,
		"phone":       doc.Phone,
		"updatedAt":   doc.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Follow(ctx context.Context, followerID, followeeID string) (repository.FollowResult, error) {
	return r.edge(ctx, followerID, followeeID, "$addToSet", true)
}

func (r *UserRepository) Unfollow(ctx context.Context, followerID, followeeID string) (repository.FollowResult, error) {
	return r.edge(ctx, followerID, followeeID, "$pull", false)
}

// edge applies op to follower.following first, guarded on the current
// membership, then to followee.followers.
func (r *UserRepository) edge(ctx context.Context, followerID, followeeID, op string, add bool) (repository.FollowResult, error) {
	fid, err := objectID(followerID)
	if err != nil {
		return repository.FollowResult{}, err
	}
	tid, err := objectID(followeeID)
	if err != nil {
		return repository.FollowResult{}, err
	}
	if fid == tid {
		return repository.FollowResult{}, repository.ErrSelfEdge
	}
	if n, err := r.c.CountDocuments(ctx, bson.M{"_id": tid}); err != nil {
		return repository.FollowResult{}, err
	} else if n == 0 {
		return repository.FollowResult{}, repository.ErrNotFound
	}

	guard := bson.M{"$ne": tid}
	undoOp := "$pull"
	if !add {
		guard = bson.M{"$eq": tid}
		undoOp = "$addToSet"
	}

	pair := pairWrite{
		first: func(c context.Context) (bool, error) {
			res, err := r.c.UpdateOne(c,
				bson.M{"_id": fid, "following": guard},
				bson.M{op: bson.M{"following": tid}, "$set": bson.M{"updatedAt": time.Now().UTC()}})
			if err != nil {
				return false, err
			}
			if res.MatchedCount == 0 {
				n, err := r.c.CountDocuments(c, bson.M{"_id": fid})
				if err != nil {
					return false, err
				}
				if n == 0 {
					return false, repository.ErrNotFound
				}
				return false, nil
			}
			return true, nil
		},
		second: func(c context.Context) error {
			res, err := r.c.UpdateOne(c,
				bson.M{"_id": tid},
				bson.M{op: bson.M{"followers": fid}, "$set": bson.M{"updatedAt": time.Now().UTC()}})
			if err != nil {
				return err
			}
			if res.MatchedCount == 0 {
				return repository.ErrNotFound
			}
			return nil
		},
		undoFirst: func(c context.Context) error {
			_, err := r.c.UpdateOne(c, bson.M{"_id": fid}, bson.M{undoOp: bson.M{"following": tid}})
			return err
		},
	}

	changed, err := runPair(ctx, r.client, pair, r.logger)
	if err != nil {
		return repository.FollowResult{}, err
	}
	out := repository.FollowResult{Changed: changed}
	if out.FollowersCount, err = r.setSize(ctx, tid, "followers"); err != nil {
		return repository.FollowResult{}, err
	}
	if out.FollowingCount, err = r.setSize(ctx, fid, "following"); err != nil {
		return repository.FollowResult{}, err
	}
	return out, nil
}

func (r *UserRepository) setSize(ctx context.Context, id primitive.ObjectID, field string) (int, error) {
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
