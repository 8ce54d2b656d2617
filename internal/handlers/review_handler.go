package handlers

import (
	"net/http"

	"klarfix/internal/services"
	"klarfix/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

// RegisterRoutes only registers creation; reviews are listed under /services/:id/reviews.
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.auth.Required(), h.Create)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
