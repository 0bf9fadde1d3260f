package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/petstay/service-booking/internal/application"
	"github.com/petstay/service-booking/internal/auth"
	"github.com/petstay/service-booking/internal/domain"
	bookingDomain "github.com/petstay/service-booking/internal/domain/booking"
	"github.com/petstay/service-booking/internal/middleware"
	"github.com/petstay/service-booking/internal/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	bookings := r.Group("/api/v1/bookings")
	bookings.Use(authMW)
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/accept", h.transition(bookingDomain.ActionAcceptRequest))
		bookings.POST("/:id/reject", h.RejectBooking)
		bookings.POST("/:id/confirm", h.transition(bookingDomain.ActionConfirmBooking))
		bookings.POST("/:id/dropoff", h.transition(bookingDomain.ActionConfirmDropoff))
		bookings.POST("/:id/receive", h.transition(bookingDomain.ActionConfirmReceiving))
		bookings.POST("/:id/complete", h.transition(bookingDomain.ActionConfirmCompletion))
		bookings.POST("/:id/pickup", h.transition(bookingDomain.ActionConfirmPickup))
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListBookings handles GET /api/v1/bookings. The role query parameter selects
// the caller's side: "owner" (default) lists bookings they requested, "host"
// lists bookings they host.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := parsePagination(c)

	var (
		result *domain.PaginatedResult[application.BookingDTO]
		err    error
	)
	switch c.DefaultQuery("role", "owner") {
	case "host":
		result, err = h.service.GetHostBookings(c.Request.Context(), userID, page, limit)
	default:
		result, err = h.service.GetOwnerBookings(c.Request.Context(), userID, page, limit)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// transition builds a handler that applies a fixed lifecycle action to the
// booking in the path, acting as the authenticated user.
func (h *BookingHandler) transition(action bookingDomain.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.BadRequest(c, "invalid booking ID")
			return
		}

		userID, ok := middleware.GetUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, err := h.service.ApplyTransition(c.Request.Context(), bookingID, userID, application.TransitionRequest{Action: action})
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Success(c, result)
	}
}

// RejectBooking handles POST /api/v1/bookings/:id/reject. Rejection is the
// only transition that carries a body: the mandatory reason.
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	result, err := h.service.ApplyTransition(c.Request.Context(), bookingID, userID, application.TransitionRequest{
		Action: bookingDomain.ActionRejectRequest,
		Reason: body.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
