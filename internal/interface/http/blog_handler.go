package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/DonOmbisi/kilimo3/internal/application"
	"github.com/DonOmbisi/kilimo3/internal/interface/middleware"
	"github.com/DonOmbisi/kilimo3/pkg/response"
	"github.com/DonOmbisi/kilimo3/pkg/validation"
)

type BlogHandler struct {
	Svc    *application.BlogService
	Logger *logrus.Logger
}

func NewBlogHandler(svc *application.BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, Logger: logger}
}

type createBlogRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

// Create POST /api/blogs
func (h *BlogHandler) Create(c *gin.Context) {
	var req createBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.CreateBlogInput{
		Title:   req.Title,
		Content: req.Content,
		Image:   req.Image,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b, "blog published", nil)
}

// List GET /api/blogs
func (h *BlogHandler) List(c *gin.Context) {
	bs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bs, "blogs", gin.H{"count": len(bs)})
}

// Get GET /api/blogs/:id
func (h *BlogHandler) Get(c *gin.Context) {
	d, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d, "blog", nil)
}

// Upvote POST /api/blogs/:id/upvote
func (h *BlogHandler) Upvote(c *gin.Context) {
	h.vote(c, true)
}

// Downvote POST /api/blogs/:id/downvote
func (h *BlogHandler) Downvote(c *gin.Context) {
	h.vote(c, false)
}

func (h *BlogHandler) vote(c *gin.Context, upvote bool) {
	d, err := h.Svc.Vote(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey), upvote)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d, "vote recorded", nil)
}
