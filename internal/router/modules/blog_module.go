package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DonOmbisi/kilimo3/internal/container"
	handlers "github.com/DonOmbisi/kilimo3/internal/interface/http"
	"github.com/DonOmbisi/kilimo3/internal/interface/middleware"
	"github.com/DonOmbisi/kilimo3/pkg/helpers"
)

type BlogModule struct {
	Handler *handlers.BlogHandler
	JWT     *helpers.JWTManager
}

func NewBlogModule(h *handlers.BlogHandler, jwt *helpers.JWTManager) *BlogModule {
	return &BlogModule{Handler: h, JWT: jwt}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/blogs", browseLimiter, m.Handler.List)
	rg.GET("/blogs/:id", browseLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/blogs", m.Handler.Create)
		auth.POST("/blogs/:id/upvote", m.Handler.Upvote)
		auth.POST("/blogs/:id/downvote", m.Handler.Downvote)
	}
}
