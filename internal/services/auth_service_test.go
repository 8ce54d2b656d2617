package services_test

import (
	"net/http"
	"testing"

	"klarfix/internal/models"
	"klarfix/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupRequest() *dto.SignupRequest {
	return &dto.SignupRequest{
		Name:     "Anna Schmidt",
		Username: "Anna@Example.com",
		Password: "secret1",
		Role:     models.UserRoleHelper,
		Skills:   []string{"Netzwerk", "Windows"},
	}
}

func TestSignupAndLogin(t *testing.T) {
	e := newEnv(t)
	svc := e.svc.AuthService

	resp, err := svc.Signup(e.ctx, e.db, signupRequest())
	require.NoError(t, err)
	assert.Equal(t, "User created successfully", resp.Message)
	assert.NotZero(t, resp.UserID)

	result, err := svc.Login(e.ctx, e.db, &dto.LoginRequest{Username: "anna@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, result.User.ID)
	assert.Equal(t, "anna@example.com", result.User.Username)
	assert.Equal(t, []string{"Netzwerk", "Windows"}, []string(result.User.Skills))

	claims, err := e.tokens.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
	assert.Equal(t, models.UserRoleHelper, claims.Role)

	user, err := svc.CurrentUser(e.ctx, e.db, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Anna Schmidt", user.Name)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.AuthService.Signup(e.ctx, e.db, signupRequest())
	require.NoError(t, err)

	req := signupRequest()
	req.Username = "  ANNA@example.com "
	_, err = e.svc.AuthService.Signup(e.ctx, e.db, req)
	requireAppError(t, err, http.StatusBadRequest)
}

func TestSignup_AdminRoleRejected(t *testing.T) {
	e := newEnv(t)

	req := signupRequest()
	req.Role = models.UserRoleAdmin
	_, err := e.svc.AuthService.Signup(e.ctx, e.db, req)
	requireAppError(t, err, http.StatusBadRequest)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.AuthService.Signup(e.ctx, e.db, signupRequest())
	require.NoError(t, err)

	_, err = e.svc.AuthService.Login(e.ctx, e.db, &dto.LoginRequest{Username: "anna@example.com", Password: "wrong-password"})
	wrongPassword := requireAppError(t, err, http.StatusUnauthorized)

	_, err = e.svc.AuthService.Login(e.ctx, e.db, &dto.LoginRequest{Username: "nobody@example.com", Password: "secret1"})
	unknownUser := requireAppError(t, err, http.StatusUnauthorized)

	assert.Equal(t, wrongPassword.Message, unknownUser.Message, "failures must not reveal which part was wrong")
}

func TestCurrentUser_DeletedAccount(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.AuthService.CurrentUser(e.ctx, e.db, 12345)
	requireAppError(t, err, http.StatusUnauthorized)
}
