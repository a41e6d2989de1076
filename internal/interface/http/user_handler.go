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

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Name and phone are validated by the service: they are only required when
// the wallet address is not yet registered.
type connectRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required,wallet"`
	Name          string `json:"name"`
	Basename      string `json:"basename"`
	Phone         string `json:"phone" binding:"omitempty,phone"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Basename *string `json:"basename"`
	Phone    *string `json:"phone" binding:"omitempty,phone"`
}

// Connect POST /api/users/create-user
func (h *UserHandler) Connect(c *gin.Context) {
	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, pair, err := h.Svc.Connect(c.Request.Context(), application.ConnectInput{
		WalletAddress: req.WalletAddress,
		Name:          req.Name,
		Basename:      req.Basename,
		Phone:         req.Phone,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user":         u,
		"token":        pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "wallet connected", gin.H{"access_expires_at": pair.AccessExpiry, "refresh_expires_at": pair.RefreshExpiry})
}

// Check GET /api/users/check-user?wallet_address=
func (h *UserHandler) Check(c *gin.Context) {
	u, pair, exists, err := h.Svc.Check(c.Request.Context(), c.Query("wallet_address"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !exists {
		response.Success(c, http.StatusOK, gin.H{"exist": false}, "user not registered", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"exist":        true,
		"user":         u,
		"token":        pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "user found", nil)
}

// Refresh POST /api/users/refresh-token
func (h *UserHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	access, exp, err := h.Svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": access}, "token refreshed", gin.H{"access_expires_at": exp})
}

// Profile GET /api/users/profile
func (h *UserHandler) Profile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	agg, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, agg, "profile", nil)
}

// Update PUT /api/users/update-user
func (h *UserHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		Name:     req.Name,
		Basename: req.Basename,
		Phone:    req.Phone,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile updated", nil)
}
