package handlers

import (
	"net/http"

	"klarfix/internal/middleware"
	"klarfix/internal/services"
	"klarfix/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	*BaseHandler
	verificationService services.VerificationService
}

func NewVerificationHandler(base *BaseHandler, verificationService services.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		BaseHandler:         base,
		verificationService: verificationService,
	}
}

func (h *VerificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	verifications := rg.Group("/verifications", h.auth.Required())
	{
		verifications.POST("", h.Submit)
		verifications.GET("/status", h.Status)
	}

	admin := rg.Group("/admin/verifications", h.auth.Required(), middleware.AdminOnly())
	{
		admin.GET("", h.List)
		admin.POST("/:id/review", h.Review)
	}
}

func (h *VerificationHandler) Submit(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	var req dto.SubmitVerificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	verification, err := h.verificationService.SubmitVerification(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.SubmitVerificationResponse{
		ID:     verification.ID,
		Status: verification.Status,
	})
}

func (h *VerificationHandler) Status(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	status, err := h.verificationService.GetUserVerificationStatus(c.Request.Context(), h.GetDB(c), actor.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *VerificationHandler) List(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	var query dto.VerificationQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	items, err := h.verificationService.ListVerifications(c.Request.Context(), h.GetDB(c), actor, &query, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *VerificationHandler) Review(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ReviewVerificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	verification, err := h.verificationService.ReviewVerification(c.Request.Context(), h.GetDB(c), actor, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, verification)
}
