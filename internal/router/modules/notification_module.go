package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/style-gallery-api/internal/interface/http"
	"github.com/oksasatya/style-gallery-api/internal/interface/middleware"
	"github.com/oksasatya/style-gallery-api/pkg/helpers"
)

type NotificationModule struct {
	Handler *handlers.NotificationHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewNotificationModule(h *handlers.NotificationHandler, jwt *helpers.JWTManager, rdb *redis.Client) *NotificationModule {
	return &NotificationModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/notifications")
	g.Use(middleware.Auth(m.Redis, m.JWT))
	{
		g.GET("", m.Handler.List)
		g.PATCH("/read-all", m.Handler.MarkAllRead)
		g.PATCH("/:id/read", m.Handler.MarkRead)
	}
}
