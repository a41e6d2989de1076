package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/DonOmbisi/kilimo3/internal/application"
	"github.com/DonOmbisi/kilimo3/internal/interface/middleware"
	"github.com/DonOmbisi/kilimo3/pkg/response"
	"github.com/DonOmbisi/kilimo3/pkg/validation"
)

type FundraiserHandler struct {
	Svc    *application.FundraiserService
	Logger *logrus.Logger
}

func NewFundraiserHandler(svc *application.FundraiserService, logger *logrus.Logger) *FundraiserHandler {
	return &FundraiserHandler{Svc: svc, Logger: logger}
}

type createFundraiserRequest struct {
	Title       string          `json:"title" binding:"required"`
	Story       string          `json:"story" binding:"required"`
	TargetFunds decimal.Decimal `json:"target_funds" binding:"required"`
	ProjectID   int64           `json:"projectId"`
	Deadline    time.Time       `json:"deadline" binding:"required"`
	Images      []string        `json:"images"`
}

type donateRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// Create POST /api/fundraisers
func (h *FundraiserHandler) Create(c *gin.Context) {
	var req createFundraiserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	f, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.CreateFundraiserInput{
		Title:       req.Title,
		Story:       req.Story,
		TargetFunds: req.TargetFunds,
		ProjectID:   req.ProjectID,
		Deadline:    req.Deadline,
		Images:      req.Images,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, f, "fundraiser opened", nil)
}

// Get GET /api/fundraisers/:id
func (h *FundraiserHandler) Get(c *gin.Context) {
	f, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, f, "fundraiser", nil)
}

// Donate POST /api/fundraisers/:id/donations
func (h *FundraiserHandler) Donate(c *gin.Context) {
	var req donateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.Donate(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey), req.Amount)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, d, "donation recorded", nil)
}
