package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// ParsePagination reads page/page_size from the query string, clamping
// out-of-range values rather than rejecting the request.
func ParsePagination(c *gin.Context) PaginationParams {
	page := intQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := intQuery(c, "page_size", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	} else if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func NewPagination(page, pageSize, totalItems int) Pagination {
	totalPages := (totalItems + pageSize - 1) / pageSize

	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
