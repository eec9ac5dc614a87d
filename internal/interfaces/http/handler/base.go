package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mecanica/backend/internal/domain/shared"
	"github.com/mecanica/backend/internal/interfaces/http/dto"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "request_id"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return ""
}

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// bindListRequest binds pagination query parameters, falling back to defaults
func bindListRequest(c *gin.Context) (dto.ListRequest, error) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	requestID := getRequestID(c)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	statusCode := dto.GetHTTPStatus(code)
	requestID := getRequestID(c)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Forbidden sends a 403 forbidden response
func (h *BaseHandler) Forbidden(c *gin.Context, message string) {
	h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, message)
}

// Conflict sends a 409 conflict response
func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	h.Error(c, http.StatusConflict, dto.ErrCodeConflict, message)
}

// UnprocessableEntity sends a 422 unprocessable entity response
func (h *BaseHandler) UnprocessableEntity(c *gin.Context, code, message string) {
	h.Error(c, http.StatusUnprocessableEntity, code, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	requestID := getRequestID(c)
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		requestID,
		details,
	))
}

// HandleError converts domain errors into HTTP responses. Typed domain
// errors map to precise codes; anything unrecognized becomes a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := getRequestID(c)
	code, message := classifyError(err)
	statusCode := dto.GetHTTPStatus(code)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// classifyError maps a domain error to an outward error code and message.
func classifyError(err error) (string, string) {
	var notFound *shared.NotFoundError
	if errors.As(err, &notFound) {
		return dto.ErrCodeNotFound, notFound.Error()
	}

	var roleErr *shared.RoleNotAuthorizedError
	if errors.As(err, &roleErr) {
		return dto.ErrCodeForbidden, roleErr.Error()
	}

	var transitionErr *shared.InvalidStateTransitionError
	if errors.As(err, &transitionErr) {
		return dto.ErrCodeInvalidState, transitionErr.Error()
	}

	var approvedErr *shared.AlreadyApprovedError
	if errors.As(err, &approvedErr) {
		return dto.ErrCodeAlreadyApproved, approvedErr.Error()
	}

	var rejectedErr *shared.AlreadyRejectedError
	if errors.As(err, &rejectedErr) {
		return dto.ErrCodeAlreadyRejected, rejectedErr.Error()
	}

	var expiredErr *shared.ExpiredError
	if errors.As(err, &expiredErr) {
		return dto.ErrCodeExpired, expiredErr.Error()
	}

	var stockErr *shared.InsufficientStockError
	if errors.As(err, &stockErr) {
		return dto.ErrCodeInsufficientStock, stockErr.Error()
	}

	var adjustErr *shared.InvalidAdjustmentError
	if errors.As(err, &adjustErr) {
		return dto.ErrCodeInvalidAdjustment, adjustErr.Error()
	}

	var mechanicErr *shared.NoMechanicAssignedError
	if errors.As(err, &mechanicErr) {
		return dto.ErrCodeNoMechanicAssigned, mechanicErr.Error()
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return dto.NormalizeErrorCode(domainErr.Code), domainErr.Message
	}

	return dto.ErrCodeInternal, "An unexpected error occurred"
}
