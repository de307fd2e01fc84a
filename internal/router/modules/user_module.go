package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/user-order-service/internal/interface/http"
	"github.com/oksasatya/user-order-service/internal/interface/middleware"
	"github.com/oksasatya/user-order-service/pkg/helpers"
)

// UserModule wires the user and order routes:
//
//	POST   /users                          GET /users
//	GET    /users/:userId                  PUT /users/:userId      DELETE /users/:userId
//	PUT    /users/:userId/orders           GET /users/:userId/orders
//	GET    /users/:userId/orders/total-price
//	GET    /search/users                   GET /health
//
// Mutating routes require a bearer token when Tokens is set and are then
// also limited per token subject.
type UserModule struct {
	Handler       *handlers.UserHandler
	Redis         *redis.Client
	Tokens        *helpers.TokenManager
	PerMinute     int
	BypassPrivate bool
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client, tokens *helpers.TokenManager, perMinute int, bypassPrivate bool) *UserModule {
	return &UserModule{Handler: h, Redis: rdb, Tokens: tokens, PerMinute: perMinute, BypassPrivate: bypassPrivate}
}

func (m *UserModule) Name() string { return "users" }

func (m *UserModule) Register(rg *gin.RouterGroup) {
	var allow middleware.AllowFunc
	if m.BypassPrivate {
		allow = middleware.AllowPrivateIP()
	}
	ipLimiter := middleware.RateLimit(m.Redis, m.PerMinute, time.Minute, middleware.KeyByIP(), allow)
	searchLimiter := middleware.RateLimit(m.Redis, m.PerMinute, time.Minute, middleware.KeyByIPAndPath(), allow)
	guard := middleware.BearerAuth(m.Tokens)

	rg.GET("/health", m.Handler.Health)
	rg.GET("/search/users", searchLimiter, m.Handler.SearchUsers)

	users := rg.Group("/users", ipLimiter)
	{
		users.GET("", m.Handler.ListUsers)
		users.GET("/:userId", m.Handler.GetUser)
		users.GET("/:userId/orders", m.Handler.ListOrders)
		users.GET("/:userId/orders/total-price", m.Handler.TotalPrice)
	}

	writeChain := []gin.HandlerFunc{guard}
	if m.Tokens != nil {
		// authenticated writers share one budget across addresses
		writeChain = append(writeChain, middleware.RateLimit(m.Redis, m.PerMinute, time.Minute, middleware.KeyBySubject(), nil))
	}
	writes := users.Group("", writeChain...)
	{
		writes.POST("", m.Handler.CreateUser)
		writes.PUT("/:userId", m.Handler.UpdateUser)
		writes.DELETE("/:userId", m.Handler.DeleteUser)
		writes.PUT("/:userId/orders", m.Handler.AddOrder)
	}
}
