package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/style-gallery-api/config"
	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
	"github.com/oksasatya/style-gallery-api/internal/domain/repository"
	"github.com/oksasatya/style-gallery-api/internal/infrastructure/mongodb"
	"github.com/oksasatya/style-gallery-api/pkg/helpers"
)

const password = "password123"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	users := mongodb.NewUserRepository(db, logger)
	designs := mongodb.NewDesignRepository(db)

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	designer := ensureUser(ctx, users, &entity.User{
		Email:    "designer@example.com",
		Password: hash,
		Identity: entity.Individual{Username: "demoDesigner", FirstName: "Demo", LastName: "Designer"},
	})
	studio := ensureUser(ctx, users, &entity.User{
		Email:    "studio@example.com",
		Password: hash,
		Identity: entity.Organization{CompanyName: "Demo Studio"},
	})

	d := &entity.Design{
		OwnerID:     designer.ID,
		Title:       "Sunset Palette",
		Description: "Warm gradients for a summer collection",
		Category:    "fashion",
		Likes:       entity.NewIDSet(),
		Comments:    []entity.Comment{},
	}
	if err := designs.Create(ctx, d); err != nil {
		log.Fatalf("failed to seed design: %v", err)
	}
	fmt.Printf("seeded design: id=%s title=%q owner=%s\n", d.ID, d.Title, designer.ID)

	if _, err := users.Follow(ctx, studio.ID, designer.ID); err != nil {
		log.Fatalf("failed to seed follow: %v", err)
	}
	if _, err := designs.AddLike(ctx, d.ID, studio.ID); err != nil {
		log.Fatalf("failed to seed like: %v", err)
	}
	fmt.Println("studio follows designer and liked the design")
}

func ensureUser(ctx context.Context, users *mongodb.UserRepository, u *entity.User) *entity.User {
	existing, err := users.GetByEmail(ctx, u.Email)
	if err == nil {
		fmt.Printf("user exists: id=%s email=%s\n", existing.ID, existing.Email)
		return existing
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Fatalf("failed to look up %s: %v", u.Email, err)
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("failed to seed user %s: %v", u.Email, err)
	}
	name, _ := entity.DisplayName(u)
	fmt.Printf("seeded user: id=%s email=%s name=%s password=%s\n", u.ID, u.Email, name, password)
	return u
}
