package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petstay/service-booking/internal/domain"
)

type envelope struct {
	Data  interface{} `json:"data,omitempty"`
	Error *errorBody  `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type paginatedEnvelope struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Data: data})
}

// Paginated writes a 200 response with pagination metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, paginatedEnvelope{Data: items, Total: total, Page: page, Limit: limit})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{Error: &errorBody{
		Code:    string(domain.CodeValidation),
		Message: message,
	}})
}

// Error maps a domain error onto the appropriate HTTP status. Unknown errors
// become opaque 500s so internal details never leak to clients.
func Error(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		c.JSON(http.StatusInternalServerError, envelope{Error: &errorBody{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		}})
		return
	}

	c.JSON(statusFor(de.Code), envelope{Error: &errorBody{
		Code:    string(de.Code),
		Message: de.Message,
	}})
}

func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeValidation, domain.CodeInvalidRating:
		return http.StatusBadRequest
	case domain.CodeForbidden:
		return http.StatusForbidden
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeConflict, domain.CodeDuplicateReview:
		return http.StatusConflict
	case domain.CodeInvalidTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
