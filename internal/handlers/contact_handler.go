package handlers

import (
	"net/http"

	"klarfix/internal/middleware"
	"klarfix/internal/services"
	"klarfix/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactRequestService
	limiter        *middleware.IPRateLimiter
}

func NewContactHandler(base *BaseHandler, contactService services.ContactRequestService, limiter *middleware.IPRateLimiter) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
		limiter:        limiter,
	}
}

func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact/:helperId", h.limiter.Middleware(), h.CreateContactRequest)

	requests := rg.Group("/contact-requests", h.auth.Required())
	{
		requests.GET("", h.ListContactRequests)
		requests.PATCH("/:id/status", h.UpdateStatus)
		requests.PUT("/:id/status", h.UpdateStatus)
	}

	admin := rg.Group("/admin/contact-requests", h.auth.Required(), middleware.AdminOnly())
	{
		admin.GET("", h.ListContactRequests)
		admin.PATCH("/:id", h.UpdateStatus)
	}
}

// CreateContactRequest is public: anyone may ask a helper for a callback.
func (h *ContactHandler) CreateContactRequest(c *gin.Context) {
	helperID, ok := ParseIDParam(c, "helperId")
	if !ok {
		return
	}

	var req dto.CreateContactRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	request, err := h.contactService.CreateContactRequest(c.Request.Context(), h.GetDB(c), helperID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *ContactHandler) ListContactRequests(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	var query dto.ContactRequestQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	items, err := h.contactService.ListContactRequests(c.Request.Context(), h.GetDB(c), actor, &query, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateContactStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	request, err := h.contactService.UpdateContactRequestStatus(c.Request.Context(), h.GetDB(c), actor, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
