package handlers

import (
	"net/http"

	"klarfix/internal/middleware"
	"klarfix/internal/services"
	"klarfix/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ServiceHandler serves the catalog of helper services.
type ServiceHandler struct {
	*BaseHandler
	catalogService services.CatalogService
	reviewService  services.ReviewService
}

func NewServiceHandler(base *BaseHandler, catalogService services.CatalogService, reviewService services.ReviewService) *ServiceHandler {
	return &ServiceHandler{
		BaseHandler:    base,
		catalogService: catalogService,
		reviewService:  reviewService,
	}
}

func (h *ServiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/services")
	{
		catalog.GET("", h.Search)
		catalog.GET("/:id", h.Get)
		catalog.GET("/:id/reviews", h.ListReviews)
		catalog.POST("", h.auth.Required(), h.Create)
		catalog.PATCH("/:id", h.auth.Required(), h.Update)
		catalog.DELETE("/:id", h.auth.Required(), h.Delete)
	}

	rg.GET("/helpers/:id/services", h.ListByHelper)

	admin := rg.Group("/admin/services", h.auth.Required(), middleware.AdminOnly())
	{
		admin.GET("", h.Search)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}

func (h *ServiceHandler) Create(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	var req dto.CreateServiceRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	service, err := h.catalogService.CreateService(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Search(c *gin.Context) {
	var query dto.ServiceSearchQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	list, err := h.catalogService.SearchServices(c.Request.Context(), h.GetDB(c), &query, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	service, err := h.catalogService.GetService(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) ListByHelper(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	list, err := h.catalogService.ListHelperServices(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateServiceRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	service, err := h.catalogService.UpdateService(c.Request.Context(), h.GetDB(c), actor, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteService(c.Request.Context(), h.GetDB(c), actor, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Service deleted"})
}

func (h *ServiceHandler) ListReviews(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListServiceReviews(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
