package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
)

// documentQuery reads the shared list query of quotations, invoices and proposals
func documentQuery(c *gin.Context) (*pagination.PaginationParams, repository.DocumentFilter, bool) {
	var q request.DocumentFilterRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return nil, repository.DocumentFilter{}, false
	}

	filter := repository.DocumentFilter{Search: q.Search, Status: q.Status}
	if q.CustomerID != "" {
		id, err := uuid.Parse(q.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return nil, repository.DocumentFilter{}, false
		}
		filter.CustomerID = &id
	}
	return pageParams(q.Page, q.PerPage), filter, true
}
