package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
	"github.com/oksasatya/style-gallery-api/internal/testutil"
	"github.com/oksasatya/style-gallery-api/pkg/helpers"
)

func newAuth() (*AuthService, *testutil.Users) {
	users := testutil.NewUsers()
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	return NewAuthService(users, jwt, nil, quietLogger()), users
}

func TestRegisterIndividualAndLogin(t *testing.T) {
	svc, _ := newAuth()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{
		Email:     " Alice@Example.com ",
		Password:  "password123",
		UserType:  entity.UserTypeIndividual,
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "password123", u.Password)

	got, pair, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	_, _, err = svc.Login(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegisterRejectsIncompleteIdentity(t *testing.T) {
	svc, _ := newAuth()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "password123", UserType: entity.UserTypeIndividual, FirstName: "Alice"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "password123", UserType: entity.UserTypeOrganization})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "companyName is required", Message(err))

	_, err = svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "password123", UserType: "robot"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuth()
	in := RegisterInput{Email: "acme@example.com", Password: "password123", UserType: entity.UserTypeOrganization, CompanyName: "Acme"}
	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _ := newAuth()
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "password123", UserType: entity.UserTypeIndividual, Username: "a"})
	require.NoError(t, err)
	u, pair, err := svc.Login(ctx, "a@b.c", "password123")
	require.NoError(t, err)

	next, uid, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)
	assert.NotEmpty(t, next.AccessToken)

	_, _, err = svc.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, _, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetProfileMissing(t *testing.T) {
	svc, _ := newAuth()
	_, err := svc.GetProfile(context.Background(), testutil.NewID())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, svc.Logout(context.Background(), "anyone"))
}
