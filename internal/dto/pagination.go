package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/merchant-dashboard-api/internal/filter"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PaginationParams struct {
	Page     int
	PageSize int
}

func ParsePagination(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return PaginationParams{Page: page, PageSize: pageSize}
}

// NewPagination describes a page whose number was already clamped.
func NewPagination(page, pageSize, totalItems int) Pagination {
	totalPages := filter.TotalPages(totalItems, pageSize)
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Pages:      filter.PageWindow(page, totalPages, filter.DefaultWindowSize),
	}
}
