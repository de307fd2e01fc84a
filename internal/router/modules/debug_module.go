package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/user-order-service/internal/interface/middleware"
)

// DebugModule exposes expvar counters (users_created, users_deleted, orders_added) at /debug/vars.
type DebugModule struct {
	Redis *redis.Client
}

func NewDebugModule(rdb *redis.Client) *DebugModule { return &DebugModule{Redis: rdb} }

func (m *DebugModule) Name() string { return "debug" }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
