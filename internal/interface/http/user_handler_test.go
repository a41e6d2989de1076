package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DonOmbisi/kilimo3/internal/application"
	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
	"github.com/DonOmbisi/kilimo3/internal/domain/repository"
	"github.com/DonOmbisi/kilimo3/pkg/apperrors"
	"github.com/DonOmbisi/kilimo3/pkg/helpers"
	"github.com/DonOmbisi/kilimo3/pkg/validation"
)

type stubUserRepo struct {
	mock.Mock
}

func (m *stubUserRepo) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = "created-id"
	}
	return args.Error(0)
}

func (m *stubUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubUserRepo) GetByWallet(ctx context.Context, walletAddress string) (*entity.User, error) {
	args := m.Called(ctx, walletAddress)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubUserRepo) UpdateProfile(ctx context.Context, id string, patch repository.ProfilePatch) (*entity.User, error) {
	args := m.Called(ctx, id, patch)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubUserRepo) GetAggregate(ctx context.Context, id string, spec repository.ExpandSpec) (*entity.UserAggregate, error) {
	args := m.Called(ctx, id, spec)
	if a := args.Get(0); a != nil {
		return a.(*entity.UserAggregate), args.Error(1)
	}
	return nil, args.Error(1)
}

func userTestRouter(repo *stubUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()

	jwt := helpers.NewJWTManager("test-secret", 24*time.Hour, 60*24*time.Hour)
	h := NewUserHandler(application.NewUserService(repo, jwt, nil, nil, nil), nil)

	r := gin.New()
	r.POST("/api/users/create-user", h.Connect)
	r.GET("/api/users/check-user", h.Check)
	r.POST("/api/users/refresh-token", h.Refresh)
	return r
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateUserReturnsTokenPair(t *testing.T) {
	repo := new(stubUserRepo)
	repo.On("GetByWallet", mock.Anything, "0xfeedbeef").Return(nil, apperrors.NotFound("user not found"))
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	r := userTestRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/users/create-user",
		strings.NewReader(`{"wallet_address":"0xfeedbeef","name":"Alice","phone":"+254700"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])
	assert.NotEmpty(t, data["refreshToken"])
	assert.NotNil(t, data["user"])
}

func TestCreateUserMissingWallet(t *testing.T) {
	r := userTestRouter(new(stubUserRepo))

	req := httptest.NewRequest(http.MethodPost, "/api/users/create-user",
		strings.NewReader(`{"name":"Alice"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUserRejectsShortPhone(t *testing.T) {
	r := userTestRouter(new(stubUserRepo))

	req := httptest.NewRequest(http.MethodPost, "/api/users/create-user",
		strings.NewReader(`{"wallet_address":"0xfeedbeef","name":"Alice","phone":"123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	details := decodeBody(t, w)["error"].(map[string]any)
	assert.Contains(t, details["phone"], "phone number")
}

func TestCheckUserNotRegistered(t *testing.T) {
	repo := new(stubUserRepo)
	repo.On("GetByWallet", mock.Anything, "0xnope").Return(nil, apperrors.NotFound("user not found"))
	r := userTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/users/check-user?wallet_address=0xnope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, false, data["exist"])
	_, hasToken := data["token"]
	assert.False(t, hasToken)
}

func TestCheckUserRegistered(t *testing.T) {
	repo := new(stubUserRepo)
	repo.On("GetByWallet", mock.Anything, "0xabc").Return(&entity.User{
		ID:            "user-1",
		WalletAddress: "0xabc",
		Name:          "Alice",
		Phone:         "+100",
	}, nil)
	r := userTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/users/check-user?wallet_address=0xabc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, true, data["exist"])
	assert.NotEmpty(t, data["token"])
	assert.NotEmpty(t, data["refreshToken"])
}

func TestRefreshTokenEndpoint(t *testing.T) {
	repo := new(stubUserRepo)
	repo.On("GetByID", mock.Anything, "user-1").Return(&entity.User{
		ID:            "user-1",
		WalletAddress: "0xabc",
	}, nil)
	r := userTestRouter(repo)

	jwt := helpers.NewJWTManager("test-secret", 24*time.Hour, 60*24*time.Hour)
	refresh, _, err := jwt.GenerateRefreshToken("user-1", "0xabc")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/users/refresh-token",
		strings.NewReader(`{"refreshToken":"`+refresh+`"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])
}

func TestRefreshTokenRejectsInvalid(t *testing.T) {
	r := userTestRouter(new(stubUserRepo))

	req := httptest.NewRequest(http.MethodPost, "/api/users/refresh-token",
		strings.NewReader(`{"refreshToken":"garbage"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
