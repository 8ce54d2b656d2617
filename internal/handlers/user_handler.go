package handlers

import (
	"net/http"

	"klarfix/internal/middleware"
	"klarfix/internal/services"
	"klarfix/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	helpers := rg.Group("/helpers")
	{
		helpers.GET("/online", h.ListOnlineHelpers)
		helpers.GET("/:id", h.GetHelper)
	}

	users := rg.Group("/users")
	{
		users.GET("/:id", h.auth.Optional(), h.GetUser)
		users.POST("/:id/online", h.auth.Required(), h.SetOnline)
		users.PATCH("/me", h.auth.Required(), h.UpdateProfile)
	}

	admin := rg.Group("/admin/users", h.auth.Required(), middleware.AdminOnly())
	{
		admin.GET("", h.ListUsers)
		admin.PATCH("/:id", h.AdminUpdateUser)
		admin.DELETE("/:id", h.DeleteUser)
	}
}

func (h *UserHandler) ListOnlineHelpers(c *gin.Context) {
	helpers, err := h.userService.ListOnlineHelpers(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, helpers)
}

func (h *UserHandler) GetHelper(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	helper, err := h.userService.GetHelper(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, helper)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var viewer *dto.Actor
	if actor, ok := ActorFromContext(c); ok {
		viewer = &actor
	}

	user, err := h.userService.GetUser(c.Request.Context(), h.GetDB(c), viewer, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) SetOnline(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SetOnlineRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.SetOnline(c.Request.Context(), h.GetDB(c), actor, id, *req.IsOnline)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// --- Admin ---

func (h *UserHandler) ListUsers(c *gin.Context) {
	var query dto.UserListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.userService.ListUsers(c.Request.Context(), h.GetDB(c), &query, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) AdminUpdateUser(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AdminUpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.AdminUpdateUser(c.Request.Context(), h.GetDB(c), actor, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), h.GetDB(c), actor, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted"})
}
