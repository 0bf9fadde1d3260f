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

// PetHandler handles HTTP requests for pet profile operations.
type PetHandler struct {
	service *application.PetService
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(service *application.PetService) *PetHandler {
	return &PetHandler{service: service}
}

// RegisterRoutes registers all pet routes on the given router group.
func (h *PetHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	pets := r.Group("/api/v1/pets")
	pets.Use(authMW)
	{
		pets.POST("", h.CreatePet)
		pets.GET("", h.ListPets)
		pets.GET("/:id", h.GetPet)
		pets.PUT("/:id", h.UpdatePet)
		pets.DELETE("/:id", h.ArchivePet)
	}
}

// CreatePet handles POST /api/v1/pets.
func (h *PetHandler) CreatePet(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreatePet(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListPets handles GET /api/v1/pets.
func (h *PetHandler) ListPets(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.GetOwnerPets(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetPet handles GET /api/v1/pets/:id.
func (h *PetHandler) GetPet(c *gin.Context) {
	petID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid pet ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.GetPet(c.Request.Context(), petID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdatePet handles PUT /api/v1/pets/:id.
func (h *PetHandler) UpdatePet(c *gin.Context) {
	petID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid pet ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdatePet(c.Request.Context(), petID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ArchivePet handles DELETE /api/v1/pets/:id. Pets are archived, never
// physically deleted, so past bookings keep their references.
func (h *PetHandler) ArchivePet(c *gin.Context) {
	petID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid pet ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.ArchivePet(c.Request.Context(), petID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"archived": true})
}
