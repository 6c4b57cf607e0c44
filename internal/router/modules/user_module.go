package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/style-gallery-api/internal/interface/http"
	"github.com/oksasatya/style-gallery-api/internal/interface/middleware"
	"github.com/oksasatya/style-gallery-api/pkg/helpers"
)

// UserModule serves public profiles and follow/unfollow under /api/users.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.GET("/:id", middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), nil), m.Handler.Profile)

	auth := g.Group("")
	auth.Use(
		middleware.Auth(m.Redis, m.JWT),
		middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByUserAndRoute(), nil),
	)
	{
		auth.POST("/:id/follow", m.Handler.Follow)
		auth.DELETE("/:id/follow", m.Handler.Unfollow)
	}
}
