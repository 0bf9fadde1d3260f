package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/petstay/service-booking/internal/application"
	"github.com/petstay/service-booking/internal/auth"
	"github.com/petstay/service-booking/internal/middleware"
	"github.com/petstay/service-booking/internal/response"
)

// AdminHandler handles administrative HTTP requests.
type AdminHandler struct {
	bookings *application.BookingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bookings *application.BookingService) *AdminHandler {
	return &AdminHandler{bookings: bookings}
}

// RegisterRoutes registers all admin routes on the given router group.
// Admin access control lives at the gateway; the service only requires a
// valid token.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	admin := r.Group("/api/v1/admin")
	admin.Use(authMW)
	{
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/bookings/stats", h.GetStats)
	}
}

// ListBookings handles GET /api/v1/admin/bookings.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, limit := parsePagination(c)

	bookings, total, err := h.bookings.ListAllBookings(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, bookings, total, page, limit)
}

// GetStats handles GET /api/v1/admin/bookings/stats.
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.bookings.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
