package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DonOmbisi/kilimo3/internal/container"
	handlers "github.com/DonOmbisi/kilimo3/internal/interface/http"
	"github.com/DonOmbisi/kilimo3/internal/interface/middleware"
	"github.com/DonOmbisi/kilimo3/pkg/helpers"
)

type ListingModule struct {
	Handler *handlers.ListingHandler
	JWT     *helpers.JWTManager
}

func NewListingModule(h *handlers.ListingHandler, jwt *helpers.JWTManager) *ListingModule {
	return &ListingModule{Handler: h, JWT: jwt}
}

func (m *ListingModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/listings", browseLimiter, m.Handler.List)
	rg.GET("/listings/search", searchLimiter, m.Handler.Search)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/listings", m.Handler.Create)
		auth.GET("/listings/:id", m.Handler.Get)
		auth.POST("/listings/:id/images", m.Handler.UploadImage)
	}
}
