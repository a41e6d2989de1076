package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DonOmbisi/kilimo3/internal/container"
	handlers "github.com/DonOmbisi/kilimo3/internal/interface/http"
	"github.com/DonOmbisi/kilimo3/internal/interface/middleware"
	"github.com/DonOmbisi/kilimo3/pkg/helpers"
)

type FundraiserModule struct {
	Handler *handlers.FundraiserHandler
	JWT     *helpers.JWTManager
}

func NewFundraiserModule(h *handlers.FundraiserHandler, jwt *helpers.JWTManager) *FundraiserModule {
	return &FundraiserModule{Handler: h, JWT: jwt}
}

func (m *FundraiserModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/fundraisers/:id", browseLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/fundraisers", m.Handler.Create)
		auth.POST("/fundraisers/:id/donations", m.Handler.Donate)
	}
}
