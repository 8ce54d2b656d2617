package handlers

import (
	"net/http"
	"time"

	"klarfix/internal/services"
	"klarfix/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService  services.AuthService
	secureCookie bool
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  base,
		authService:  authService,
		secureCookie: secureCookie,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.auth.Required(), h.Me)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, time.Until(result.ExpiresAt))
	c.JSON(http.StatusOK, dto.LoginResponse{
		User:    result.User,
		Message: "Login successful",
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -time.Second)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), h.GetDB(c), actor.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// setSessionCookie writes the HTTP-only session cookie; a negative ttl clears it.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.auth.CookieName(), token, maxAge, "/", "", h.secureCookie, true)
}
