package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/style-gallery-api/internal/interface/http"
	"github.com/oksasatya/style-gallery-api/internal/interface/middleware"
	"github.com/oksasatya/style-gallery-api/pkg/helpers"
)

// DesignModule serves /api/designs. Reads are public; every engagement
// action needs a session and is limited per user and route.
type DesignModule struct {
	Handler *handlers.DesignHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewDesignModule(h *handlers.DesignHandler, jwt *helpers.JWTManager, rdb *redis.Client) *DesignModule {
	return &DesignModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *DesignModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/designs")

	readLimiter := middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), nil)
	g.GET("", readLimiter, m.Handler.List)
	g.GET("/search", readLimiter, m.Handler.Search)
	g.GET("/:id", readLimiter, m.Handler.Get)
	g.GET("/:id/comment", readLimiter, m.Handler.ListComments)

	auth := g.Group("")
	auth.Use(
		middleware.Auth(m.Redis, m.JWT),
		middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByUserAndRoute(), nil),
	)
	{
		auth.POST("", m.Handler.Create)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.POST("/:id/comment", m.Handler.AddComment)
		auth.POST("/:id/like", m.Handler.Like)
		auth.DELETE("/:id/like", m.Handler.Unlike)
		auth.POST("/:id/share", m.Handler.Share)
	}
}
