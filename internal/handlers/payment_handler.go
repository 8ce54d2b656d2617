package handlers

import (
	"net/http"

	"klarfix/internal/middleware"
	"klarfix/internal/services"
	"klarfix/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments", h.auth.Required())
	{
		payments.POST("", h.Create)
		payments.GET("/:id", h.Get)
	}

	admin := rg.Group("/admin/payments", h.auth.Required(), middleware.AdminOnly())
	{
		admin.GET("", h.List)
		admin.PATCH("/:id", h.UpdateStatus)
	}
}

func (h *PaymentHandler) Create(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), h.GetDB(c), actor, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) List(c *gin.Context) {
	var query dto.PaymentQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), h.GetDB(c), &query, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePaymentStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	payment, err := h.paymentService.UpdatePaymentStatus(c.Request.Context(), h.GetDB(c), actor, id, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}
