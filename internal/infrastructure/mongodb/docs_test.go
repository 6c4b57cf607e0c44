package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
	"github.com/oksasatya/style-gallery-api/internal/domain/repository"
)

func TestObjectIDRejectsMalformedAsNotFound(t *testing.T) {
	_, err := objectID("not-a-hex-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	id := primitive.NewObjectID()
	got, err := objectID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestUserDocIdentity(t *testing.T) {
	follower := primitive.NewObjectID()

	ind := userDoc{ID: primitive.NewObjectID(), UserType: "individual", Username: "ana", Followers: []primitive.ObjectID{follower}}
	u := ind.toEntity()
	assert.Equal(t, entity.Individual{Username: "ana"}, u.Identity)
	assert.True(t, u.Followers.Has(follower.Hex()))
	assert.Equal(t, 0, u.Following.Len())

	org := userDoc{ID: primitive.NewObjectID(), UserType: "organization", CompanyName: "Acme"}
	assert.Equal(t, entity.Organization{CompanyName: "Acme"}, org.toEntity().Identity)

	unknown := userDoc{ID: primitive.NewObjectID(), UserType: "robot"}
	_, err := entity.DisplayName(unknown.toEntity())
	assert.Error(t, err)
}

func TestUserToDocRoundTrip(t *testing.T) {
	other := primitive.NewObjectID().Hex()
	u := &entity.User{
		ID:        primitive.NewObjectID().Hex(),
		Email:     "org@example.com",
		Identity:  entity.Organization{CompanyName: "Acme"},
		Following: entity.NewIDSet(other),
		Followers: entity.NewIDSet(),
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	doc, err := userToDoc(u)
	require.NoError(t, err)
	assert.Equal(t, "organization", doc.UserType)
	assert.Equal(t, "Acme", doc.CompanyName)
	assert.Empty(t, doc.Username)
	require.Len(t, doc.Following, 1)
	assert.Equal(t, other, doc.Following[0].Hex())
	assert.NotNil(t, doc.Followers)

	back := doc.toEntity()
	assert.Equal(t, u.ID, back.ID)
	assert.Equal(t, u.Identity, back.Identity)
	assert.True(t, back.Following.Has(other))
}

func TestDesignDocToEntity(t *testing.T) {
	owner, liker, author := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	doc := designDoc{
		ID:       primitive.NewObjectID(),
		UserID:   owner,
		Title:    "Linen set",
		Likes:    []primitive.ObjectID{liker},
		Comments: []commentDoc{{ID: primitive.NewObjectID(), UserID: author, Text: "nice"}},
		Shares:   3,
	}
	d := doc.toEntity()
	assert.Equal(t, owner.Hex(), d.OwnerID)
	assert.True(t, d.IsOwner(owner.Hex()))
	assert.True(t, d.Likes.Has(liker.Hex()))
	require.Len(t, d.Comments, 1)
	assert.Equal(t, author.Hex(), d.Comments[0].AuthorID)
	assert.EqualValues(t, 3, d.Shares)
}
