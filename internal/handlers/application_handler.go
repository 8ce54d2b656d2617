package handlers

import (
	"net/http"

	"klarfix/internal/middleware"
	"klarfix/internal/services"
	"klarfix/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
	limiter            *middleware.IPRateLimiter
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService, limiter *middleware.IPRateLimiter) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
		limiter:            limiter,
	}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	applications := rg.Group("/applications")
	{
		applications.POST("/submit", h.limiter.Middleware(), h.Submit)
		applications.GET("", h.auth.Required(), h.List)
		applications.PATCH("/:id/status", h.auth.Required(), h.Update)
	}

	admin := rg.Group("/admin/applications", h.auth.Required(), middleware.AdminOnly())
	{
		admin.GET("", h.List)
		admin.GET("/:id", h.Get)
		admin.PATCH("/:id", h.Update)
	}
}

func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req dto.SubmitApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.SubmitApplication(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.SubmitApplicationResponse{
		Message:       "Application submitted successfully",
		ApplicationID: application.ID,
	})
}

func (h *ApplicationHandler) List(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	var query dto.ApplicationQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	applications, err := h.applicationService.ListApplications(c.Request.Context(), h.GetDB(c), actor, &query, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	application, err := h.applicationService.GetApplication(c.Request.Context(), h.GetDB(c), actor, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.UpdateApplication(c.Request.Context(), h.GetDB(c), actor, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}
