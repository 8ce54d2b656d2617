package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"klarfix/internal/auth"
	"klarfix/internal/logger"
	"klarfix/internal/models"
	"klarfix/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

func newAuthRouter(a *Authenticator, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{a.Required()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":   c.MustGet(contextkeys.UserIDKey),
			"role": c.MustGet(contextkeys.UserRoleKey),
		})
	})
	r.GET("/me", handlers...)
	return r
}

func TestAuthenticator_Required(t *testing.T) {
	tokens := auth.NewTokenManager("middleware-test-secret-middleware-test", time.Hour)
	a := NewAuthenticator(tokens, "auth_token")
	r := newAuthRouter(a)

	token, _, err := tokens.Generate(&models.User{BaseModel: models.BaseModel{ID: 7}, Username: "anna@example.com", Role: models.UserRoleHelper})
	require.NoError(t, err)

	t.Run("no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":7,"role":"helper"}`, w.Body.String())
	})

	t.Run("bearer", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	tokens := auth.NewTokenManager("middleware-test-secret-middleware-test", time.Hour)
	a := NewAuthenticator(tokens, "auth_token")
	r := newAuthRouter(a, AdminOnly())

	helperToken, _, err := tokens.Generate(&models.User{BaseModel: models.BaseModel{ID: 1}, Role: models.UserRoleHelper})
	require.NoError(t, err)
	adminToken, _, err := tokens.Generate(&models.User{BaseModel: models.BaseModel{ID: 2}, Role: models.UserRoleAdmin})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+helperToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(5, 5)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"), "limits are per IP")

	now = now.Add(13 * time.Second)
	assert.True(t, limiter.Allow("10.0.0.1"), "one token refills after 12s")
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	r := gin.New()
	r.POST("/contact", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/contact", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/contact", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, logger.GetRequestID(c.Request.Context()))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}
