package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petstay/service-booking/internal/application"
	"github.com/petstay/service-booking/internal/auth"
	"github.com/petstay/service-booking/internal/middleware"
	"github.com/petstay/service-booking/internal/response"
)

// CouponHandler handles HTTP requests for reward coupons.
type CouponHandler struct {
	service *application.CouponService
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(service *application.CouponService) *CouponHandler {
	return &CouponHandler{service: service}
}

// RegisterRoutes registers all coupon routes on the given router group.
func (h *CouponHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	coupons := r.Group("/api/v1/coupons")
	coupons.Use(authMW)
	{
		coupons.GET("", h.GetMyCoupons)
	}
}

// GetMyCoupons handles GET /api/v1/coupons. Coupons are earned by hosting, so
// the list is derived from the caller's completed bookings as a host.
func (h *CouponHandler) GetMyCoupons(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	coupons, err := h.service.GetHostCoupons(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, coupons)
}
