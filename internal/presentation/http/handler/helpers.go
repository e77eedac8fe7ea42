package handler

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
	"github.com/sangkips/quotedesk-api/pkg/utils"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// pathID parses the :id path parameter, writing a 400 when it is malformed
func pathID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(page, perPage int) *pagination.PaginationParams {
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}

// bindJSON decodes the request body, writing a 400 on malformed input
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, apperror.NewBadRequestErrorf("Invalid request body: %v", err))
		return false
	}
	return true
}

// readUpload reads the multipart file in field, rejecting files larger than
// maxSize bytes without buffering more than that
func readUpload(c *gin.Context, field string, maxSize int64) ([]byte, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", apperror.NewFieldError(field, "file is required")
	}
	if maxSize > 0 && header.Size > maxSize {
		return nil, "", apperror.NewBadRequestErrorf("File is larger than %d bytes", maxSize)
	}

	f, err := header.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	r := io.Reader(f)
	if maxSize > 0 {
		r = io.LimitReader(f, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, "", apperror.NewBadRequestErrorf("File is larger than %d bytes", maxSize)
	}
	return data, header.Filename, nil
}

// sendRendered writes a rendered document. PDFs download as attachments,
// HTML previews render inline. Failures use the JSON error shape.
func sendRendered(c *gin.Context, doc *service.RenderedDocument, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, doc.Filename, doc.ContentType, doc.Body, doc.Format == service.OutputPDF)
}
