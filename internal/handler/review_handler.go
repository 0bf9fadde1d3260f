package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/petstay/service-booking/internal/application"
	"github.com/petstay/service-booking/internal/auth"
	"github.com/petstay/service-booking/internal/middleware"
	"github.com/petstay/service-booking/internal/response"
)

// ReviewHandler handles HTTP requests for review operations.
type ReviewHandler struct {
	service *application.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// RegisterRoutes registers all review routes on the given router group.
func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	reviews := r.Group("/api/v1/reviews")
	reviews.Use(authMW)
	{
		reviews.POST("", h.SubmitReview)
		reviews.GET("/eligibility/:bookingId", h.CheckEligibility)
		reviews.GET("/booking/:bookingId", h.GetBookingReviews)
		reviews.GET("/user/:userId", h.GetUserReviews)
	}
}

// SubmitReview handles POST /api/v1/reviews.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SubmitReview(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// CheckEligibility handles GET /api/v1/reviews/eligibility/:bookingId.
func (h *ReviewHandler) CheckEligibility(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.CanReview(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBookingReviews handles GET /api/v1/reviews/booking/:bookingId.
func (h *ReviewHandler) GetBookingReviews(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.GetBookingReviews(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetUserReviews handles GET /api/v1/reviews/user/:userId. Reviews and the
// rating aggregate of any user are visible to any authenticated caller.
func (h *ReviewHandler) GetUserReviews(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}

	result, err := h.service.GetUserReviews(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
