package handlers

import (
	"fmt"
	"strconv"

	"klarfix/internal/logger"
	"klarfix/internal/middleware"
	"klarfix/internal/models"
	"klarfix/internal/repositories"
	"klarfix/internal/services/dto"
	"klarfix/internal/validator"
	"klarfix/pkg/apperrors"
	"klarfix/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Base handler
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
	auth      *middleware.Authenticator
}

func NewBaseHandler(v *validator.Validator, authenticator *middleware.Authenticator) *BaseHandler {
	return &BaseHandler{
		validator: v,
		auth:      authenticator,
	}
}

// ============================================================================
// 2. DB
// ============================================================================

// GetDB returns the *gorm.DB that DBMiddleware stored in the gin context.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// ============================================================================
// 3. Binding and validation
// ============================================================================

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWarn(ctx, "Failed to bind JSON body", "error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}

	return h.validate(c, obj)
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWarn(ctx, "Failed to bind query params", "error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters"))
		return false
	}

	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ============================================================================
// 4. Errors
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// 5. Identity
// ============================================================================

// ActorFromContext returns the identity set by the auth middleware.
func ActorFromContext(c *gin.Context) (dto.Actor, bool) {
	idVal, exists := c.Get(contextkeys.UserIDKey)
	if !exists {
		return dto.Actor{}, false
	}
	id, ok := idVal.(uint)
	if !ok || id == 0 {
		return dto.Actor{}, false
	}
	role, _ := c.Get(contextkeys.UserRoleKey)
	userRole, _ := role.(models.UserRole)
	return dto.Actor{UserID: id, Role: userRole}, true
}

// RequireActor writes a 401 and returns false when the request is anonymous.
func (h *BaseHandler) RequireActor(c *gin.Context) (dto.Actor, bool) {
	actor, ok := ActorFromContext(c)
	if !ok {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: no identity in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.ErrAuthRequired)
		return dto.Actor{}, false
	}
	return actor, true
}

// ============================================================================
// 6. Parsing
// ============================================================================

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// ParseIDParam parses a positive integer path parameter, writing a 400 on failure.
func ParseIDParam(c *gin.Context, key string) (uint, bool) {
	valueStr := c.Param(key)
	value, err := strconv.ParseUint(valueStr, 10, 32)
	if err != nil || value == 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid path parameter: "+key+" must be a positive integer"))
		return 0, false
	}
	return uint(value), true
}

// ParsePagination reads limit/offset query parameters.
func ParsePagination(c *gin.Context) repositories.Pagination {
	const defaultLimit = 50
	const maxLimit = 200

	limit := ParseQueryInt(c, "limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := ParseQueryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	return repositories.Pagination{Limit: limit, Offset: offset}
}
