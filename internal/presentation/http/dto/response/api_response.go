package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/sangkips/quotedesk-api/pkg/logger"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
	"go.uber.org/zap"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Error   string                `json:"error,omitempty"`
	Data    interface{}           `json:"data,omitempty"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
	Meta    *Meta                 `json:"meta,omitempty"`
}

// Meta contains metadata about the response
type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

// newMeta creates metadata for the response
func newMeta(c *gin.Context) *Meta {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return &Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

// Success sends a success response
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    newMeta(c),
	})
}

// SuccessWithPagination sends a success response with pagination
func SuccessWithPagination[T any](c *gin.Context, statusCode int, message string, result *pagination.PaginatedResult[T]) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    result,
		Meta:    newMeta(c),
	})
}

// Error sends an error response. Server side failures are logged with their
// cause; clients only ever see the generic message.
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	if appErr.Code >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("Request failed",
			zap.Int("status", appErr.Code),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	_ = c.Error(err)

	c.JSON(appErr.Code, APIResponse{
		Success: false,
		Error:   appErr.Message,
		Errors:  appErr.Errors,
		Meta:    newMeta(c),
	})
}

// ErrorWithCode sends an error response with a specific status code
func ErrorWithCode(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   message,
		Meta:    newMeta(c),
	})
}

// AbortWithError writes an error response and stops the handler chain
func AbortWithError(c *gin.Context, statusCode int, message string) {
	ErrorWithCode(c, statusCode, message)
	c.Abort()
}

// Created sends a 201 Created response
func Created(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusCreated, message, data)
}

// OK sends a 200 OK response
func OK(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusOK, message, data)
}

// NoContent sends a 204 No Content response
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// File sends a rendered document. Downloads are sent as attachments, HTML
// previews inline.
func File(c *gin.Context, filename, contentType string, body []byte, attachment bool) {
	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusUnauthorized, message)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, message)
}
