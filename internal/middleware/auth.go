package middleware

import (
	"strings"

	"klarfix/internal/auth"
	"klarfix/internal/logger"
	"klarfix/internal/models"
	"klarfix/pkg/apperrors"
	"klarfix/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// Authenticator reads the session token from the auth cookie or a Bearer header.
type Authenticator struct {
	tokens     *auth.TokenManager
	cookieName string
}

func NewAuthenticator(tokens *auth.TokenManager, cookieName string) *Authenticator {
	return &Authenticator{
		tokens:     tokens,
		cookieName: cookieName,
	}
}

func (a *Authenticator) CookieName() string {
	return a.cookieName
}

func (a *Authenticator) tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(a.cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func (a *Authenticator) authenticate(c *gin.Context) (*auth.Claims, error) {
	tokenStr := a.tokenFromRequest(c)
	if tokenStr == "" {
		return nil, apperrors.ErrAuthRequired
	}
	claims, err := a.tokens.Parse(tokenStr)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(contextkeys.UserIDKey, claims.UserID)
	c.Set(contextkeys.UserRoleKey, claims.Role)
	c.Set(contextkeys.UsernameKey, claims.Username)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
}

// Required aborts with 401 unless the request carries a valid token.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.authenticate(c)
		if err != nil {
			logger.CtxDebug(c.Request.Context(), "authentication failed", "path", c.Request.URL.Path, "error", err.Error())
			apperrors.HandleError(c, err)
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// Optional sets the identity when a valid token is present and never aborts.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := a.authenticate(c); err == nil {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

// RequireRoles must run after Required.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get(contextkeys.UserRoleKey)
		if !exists {
			apperrors.HandleError(c, apperrors.ErrAuthRequired)
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok || !roleSet[role] {
			logger.CtxWarn(c.Request.Context(), "access denied: insufficient role",
				"role", role,
				"path", c.Request.URL.Path,
			)
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}

		c.Next()
	}
}

// AdminOnly is RequireRoles(admin).
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(models.UserRoleAdmin)
}
