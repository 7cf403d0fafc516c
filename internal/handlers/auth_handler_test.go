package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-sync/internal/config"
	"github.com/BruksfildServices01/salon-sync/internal/middleware"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:         "test-secret",
		AdminEmail:        "admin@salonsync.local",
		AdminPasswordHash: string(hash),
		BotAPIKey:         "bot-key",
	}

	r := gin.New()
	r.POST("/login", NewAuthHandler(cfg).Login)
	r.GET("/private", middleware.AuthMiddleware(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.ContextAdminEmail))
	})
	r.GET("/bot", middleware.APIKeyMiddleware(cfg.BotAPIKey), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestLoginIssuesUsableToken(t *testing.T) {
	r := newAuthRouter(t)

	w := do(r, http.MethodPost, "/login", `{"email":" Admin@SalonSync.local ","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@salonsync.local", w.Body.String())

	w = do(r, http.MethodGet, "/private?access_token="+out.Token, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := newAuthRouter(t)

	assert.Equal(t, http.StatusUnauthorized,
		do(r, http.MethodPost, "/login", `{"email":"admin@salonsync.local","password":"nope"}`).Code)
	assert.Equal(t, http.StatusUnauthorized,
		do(r, http.MethodPost, "/login", `{"email":"other@salonsync.local","password":"s3cret"}`).Code)
	assert.Equal(t, http.StatusBadRequest,
		do(r, http.MethodPost, "/login", `{"email":"not-an-email"}`).Code)
}

func TestPrivateRoutesNeedToken(t *testing.T) {
	r := newAuthRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/private", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/private?access_token=garbage", "").Code)
}

func TestBotRoutesNeedAPIKey(t *testing.T) {
	r := newAuthRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/bot", "").Code)

	req := httptest.NewRequest(http.MethodGet, "/bot", nil)
	req.Header.Set(middleware.HeaderAPIKey, "bot-key")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
