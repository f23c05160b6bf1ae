package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/shared"
	"github.com/labakery/backend/internal/infrastructure/logger"
	"github.com/labakery/backend/internal/interfaces/http/dto"
	"github.com/labakery/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response with data as the body
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Error sends a flat error body with the given status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(message))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, message)
}

// BindError answers a request that failed to bind. A body that is not
// JSON at all gets the generic 500 "Failed to <action>"; field and size
// errors go through the validation responses.
func (h *BaseHandler) BindError(c *gin.Context, err error, action string) {
	if middleware.IsMalformedJSON(err) {
		logger.GetGinLogger(c).Warn("Malformed request body",
			zap.String("action", action),
			zap.Error(err),
		)
		h.Error(c, http.StatusInternalServerError, "Failed to "+action)
		return
	}
	middleware.HandleValidationError(c, err)
}

// HandleError maps err to a response. Domain errors keep their message;
// anything else is logged and answered with 500 "Failed to <action>".
func (h *BaseHandler) HandleError(c *gin.Context, err error, action string) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code), dto.NewErrorResponse(domainErr.Message))
		return
	}

	_ = c.Error(err)
	logger.GetGinLogger(c).Error("Request failed",
		zap.String("action", action),
		zap.Error(err),
	)
	h.Error(c, http.StatusInternalServerError, "Failed to "+action)
}

// parseID reads the :id path parameter. A malformed id is a 400.
func (h *BaseHandler) parseID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// optionalUserID returns the authenticated user, if any
func optionalUserID(c *gin.Context) *uuid.UUID {
	raw := middleware.GetJWTUserID(c)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
