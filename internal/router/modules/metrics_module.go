package modules

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/style-gallery-api/internal/interface/middleware"
)

// MetricsModule exposes the Prometheus registry, including the dispatch and
// engagement counters. Private addresses and HEAD requests bypass the limiter.
type MetricsModule struct {
	Redis *redis.Client
}

func NewMetricsModule(rdb *redis.Client) *MetricsModule { return &MetricsModule{Redis: rdb} }

func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	allow := middleware.AnyAllow(middleware.AllowPrivateIP(), middleware.AllowMethods(http.MethodHead))
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), allow)
	h := gin.WrapH(promhttp.Handler())
	rg.GET("/metrics", rl, h)
	rg.HEAD("/metrics", rl, h)
}
