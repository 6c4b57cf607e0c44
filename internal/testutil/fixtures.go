package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
)

// Individual stores an individual user with the given username.
func Individual(t testing.TB, users *Users, username string) *entity.User {
	t.Helper()
	u := &entity.User{
		Email:    username + "@example.com",
		Identity: entity.Individual{Username: username},
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// Organization stores an organization user.
func Organization(t testing.TB, users *Users, company string) *entity.User {
	t.Helper()
	u := &entity.User{
		Email:    NewID() + "@example.com",
		Identity: entity.Organization{CompanyName: company},
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("create organization %s: %v", company, err)
	}
	return u
}

// Design stores a design owned by owner.
func Design(t testing.TB, designs *Designs, owner *entity.User, title string) *entity.Design {
	t.Helper()
	d := &entity.Design{
		OwnerID:   owner.ID,
		Title:     title,
		Likes:     entity.NewIDSet(),
		Comments:  []entity.Comment{},
		CreatedAt: time.Now().UTC(),
	}
	if err := designs.Create(context.Background(), d); err != nil {
		t.Fatalf("create design %s: %v", title, err)
	}
	return d
}
