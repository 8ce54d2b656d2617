package handlers

import (
	"net/http"

	"klarfix/internal/middleware"
	"klarfix/internal/services"
	"klarfix/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	*BaseHandler
	bookingService services.BookingService
	paymentService services.PaymentService
}

func NewBookingHandler(base *BaseHandler, bookingService services.BookingService, paymentService services.PaymentService) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    base,
		bookingService: bookingService,
		paymentService: paymentService,
	}
}

func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings", h.auth.Required())
	{
		bookings.POST("", h.Create)
		bookings.GET("/:id", h.Get)
		bookings.PATCH("/:id/status", h.UpdateStatus)
		bookings.GET("/:id/payment", h.GetPayment)
	}

	rg.GET("/users/:id/bookings", h.auth.Required(), h.ListByUser)

	admin := rg.Group("/admin/bookings", h.auth.Required(), middleware.AdminOnly())
	{
		admin.GET("", h.List)
		admin.PATCH("/:id", h.UpdateStatus)
	}
}

func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), h.GetDB(c), actor, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) ListByUser(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListUserBookings(c.Request.Context(), h.GetDB(c), actor, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) List(c *gin.Context) {
	var query dto.BookingQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	bookings, err := h.bookingService.ListBookings(c.Request.Context(), h.GetDB(c), &query, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookingStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	booking, err := h.bookingService.UpdateBookingStatus(c.Request.Context(), h.GetDB(c), actor, id, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) GetPayment(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetBookingPayment(c.Request.Context(), h.GetDB(c), actor, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}
