package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/DonOmbisi/kilimo3/internal/application"
	"github.com/DonOmbisi/kilimo3/internal/interface/middleware"
	"github.com/DonOmbisi/kilimo3/pkg/response"
	"github.com/DonOmbisi/kilimo3/pkg/validation"
)

type ListingHandler struct {
	Svc    *application.ListingService
	Logger *logrus.Logger
}

func NewListingHandler(svc *application.ListingService, logger *logrus.Logger) *ListingHandler {
	return &ListingHandler{Svc: svc, Logger: logger}
}

type createListingRequest struct {
	Title      string          `json:"title" binding:"required"`
	Desc       string          `json:"desc" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	TotalStock int             `json:"total_stock" binding:"required,gt=0"`
	Images     []string        `json:"images"`
	Location   string          `json:"location" binding:"required"`
	ListingID  int64           `json:"listingId"`
}

// Create POST /api/listings
func (h *ListingHandler) Create(c *gin.Context) {
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	l, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.CreateListingInput{
		Title:      req.Title,
		Desc:       req.Desc,
		Price:      req.Price,
		TotalStock: req.TotalStock,
		Images:     req.Images,
		Location:   req.Location,
		ListingID:  req.ListingID,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, l, "listing created", nil)
}

// List GET /api/listings
func (h *ListingHandler) List(c *gin.Context) {
	ls, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ls, "listings", gin.H{"count": len(ls)})
}

// Get GET /api/listings/:id
func (h *ListingHandler) Get(c *gin.Context) {
	d, err := h.Svc.Get(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d, "listing", nil)
}

// UploadImage POST /api/listings/:id/images
func (h *ListingHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Svc.UploadImage(
		c.Request.Context(),
		c.Param("id"),
		c.GetString(middleware.CtxUserIDKey),
		file,
		header.Filename,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url}, "image uploaded", nil)
}

// Search GET /api/listings/search?q=
func (h *ListingHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}
