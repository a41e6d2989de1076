package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DonOmbisi/kilimo3/internal/container"
	handlers "github.com/DonOmbisi/kilimo3/internal/interface/http"
	"github.com/DonOmbisi/kilimo3/internal/interface/middleware"
	"github.com/DonOmbisi/kilimo3/pkg/helpers"
)

// UserModule wires the wallet connect, check, refresh and profile routes.
// Public: POST /api/users/create-user, GET /api/users/check-user,
// POST /api/users/refresh-token
// Protected: GET /api/users/profile, PUT /api/users/update-user

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Public with rate limiting; connect is the cheapest unauthenticated
	// write path so it gets the tightest budget.
	connectLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	checkLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/users/create-user", connectLimiter, m.Handler.Connect)
	rg.GET("/users/check-user", checkLimiter, m.Handler.Check)
	rg.POST("/users/refresh-token", refreshLimiter, m.Handler.Refresh)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/users/profile", m.Handler.Profile)
		auth.PUT("/users/update-user", m.Handler.Update)
	}
}
