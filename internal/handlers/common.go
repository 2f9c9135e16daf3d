package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/venturelens/assessment-engine/internal/errors"
	"github.com/venturelens/assessment-engine/internal/services"
	"github.com/venturelens/assessment-engine/internal/utils"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging and response helpers for handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		h.logger.LogError(err, message,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", statusCode)
	} else {
		h.logger.Warn(message,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", statusCode)
	}

	c.JSON(statusCode, ErrorResponse{Message: message})
}

// RespondWithSuccess sends a consistent success response
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{Message: message, Data: data})
}

// RespondWithServiceError maps service errors onto HTTP status codes.
func (h *BaseHandler) RespondWithServiceError(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, err.Error(), err)
	case services.IsInvalidState(err):
		h.RespondWithError(c, http.StatusConflict, err.Error(), err)
	case services.IsValidation(err):
		var details interface{}
		var ve apperrors.ValidationErrors
		if errors.As(err, &ve) {
			details = ve
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "validation failed", Details: details})
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "internal server error", err)
	}
}
