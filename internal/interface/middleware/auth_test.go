package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DonOmbisi/kilimo3/pkg/helpers"
)

func authTestRouter(jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(CtxUserIDKey),
			"wallet":  c.GetString(CtxWalletKey),
		})
	})
	return r
}

func doAuthRequest(t *testing.T, r *gin.Engine, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingHeader(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour, time.Hour)
	w := doAuthRequest(t, authTestRouter(jwt), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no authorization header provided")
}

func TestAuthBadFormat(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour, time.Hour)
	r := authTestRouter(jwt)

	for _, header := range []string{"Token abc", "Bearer", "Bearer a b"} {
		w := doAuthRequest(t, r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Contains(t, w.Body.String(), "invalid authorization format", header)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", -time.Minute, time.Hour)
	tok, _, err := jwt.GenerateAccessToken("user-1", "0xabc")
	require.NoError(t, err)

	w := doAuthRequest(t, authTestRouter(jwt), "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token expired")
}

func TestAuthInvalidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour, time.Hour)
	w := doAuthRequest(t, authTestRouter(jwt), "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestAuthValidTokenSetsContext(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour, time.Hour)
	tok, _, err := jwt.GenerateAccessToken("user-1", "0xabc")
	require.NoError(t, err)

	w := doAuthRequest(t, authTestRouter(jwt), "Bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), "0xabc")
}
