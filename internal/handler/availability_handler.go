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

// AvailabilityHandler handles HTTP requests for host availability windows.
type AvailabilityHandler struct {
	service *application.AvailabilityService
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(service *application.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// RegisterRoutes registers all availability routes on the given router group.
func (h *AvailabilityHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	availability := r.Group("/api/v1/availability")
	availability.Use(authMW)
	{
		availability.POST("", h.CreateAvailability)
		availability.GET("", h.GetMyAvailability)
		availability.GET("/host/:hostId", h.GetHostAvailability)
		availability.DELETE("/:id", h.DeleteAvailability)
	}
}

// CreateAvailability handles POST /api/v1/availability.
func (h *AvailabilityHandler) CreateAvailability(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateAvailability(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetMyAvailability handles GET /api/v1/availability.
func (h *AvailabilityHandler) GetMyAvailability(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.GetHostAvailability(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetHostAvailability handles GET /api/v1/availability/host/:hostId. Owners
// use this to check a host's open windows before requesting a booking.
func (h *AvailabilityHandler) GetHostAvailability(c *gin.Context) {
	hostID, err := uuid.Parse(c.Param("hostId"))
	if err != nil {
		response.BadRequest(c, "invalid host ID")
		return
	}

	result, err := h.service.GetHostAvailability(c.Request.Context(), hostID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteAvailability handles DELETE /api/v1/availability/:id.
func (h *AvailabilityHandler) DeleteAvailability(c *gin.Context) {
	windowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid availability ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.DeleteAvailability(c.Request.Context(), windowID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
