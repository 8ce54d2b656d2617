package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"klarfix/internal/config"
	"klarfix/internal/logger"
	"klarfix/internal/models"
	"klarfix/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	mail   *testutil.MailRecorder
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Database.Driver = "sqlite"
	cfg.JWT.Secret = "app-test-secret-app-test-secret-0123"
	return cfg
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("test")

	db := testutil.NewTestDB(t)
	mail := testutil.NewMailRecorder()
	return &testServer{
		t:      t,
		router: SetupRouter(testConfig(), db, mail),
		db:     db,
		mail:   mail,
	}
}

// do sends body as JSON; cookies are attached when given.
func (s *testServer) do(method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login signs in through the API and returns the session cookie.
func (s *testServer) login(username, password string) *http.Cookie {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	cookie := sessionCookie(w)
	require.NotNil(s.t, cookie)
	return cookie
}

func (s *testServer) loginAs(user *models.User) *http.Cookie {
	return s.login(user.Username, "password123")
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}
	return nil
}

type errorBody struct {
	Error struct {
		Code    string            `json:"code"`
		Domain  string            `json:"domain"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
