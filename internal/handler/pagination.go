package handler

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxPage         = math.MaxInt32
)

// PaginationMeta defines the structure for pagination metadata.
type PaginationMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// PaginatedResponse defines the structure for a paginated list of any type.
type PaginatedResponse[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginatedResponse creates a new PaginatedResponse.
func NewPaginatedResponse[T any](data []T, totalItems int64, page, limit int) PaginatedResponse[T] {
	if limit <= 0 {
		limit = 1
	}
	if data == nil {
		data = []T{}
	}
	return PaginatedResponse[T]{
		Data: data,
		Meta: PaginationMeta{
			TotalItems:  totalItems,
			TotalPages:  (int(totalItems) + limit - 1) / limit,
			CurrentPage: page,
			PageSize:    limit,
		},
	}
}

// Paginate returns one page of items. Pages past the end are empty.
func Paginate[T any](items []T, page, limit int) PaginatedResponse[T] {
	if limit <= 0 {
		limit = defaultPageSize
	}
	page = max(page, 1)
	total := len(items)
	start := total
	if page-1 < total/limit+1 {
		start = min((page-1)*limit, total)
	}
	end := min(start+limit, total)
	return NewPaginatedResponse(items[start:end], int64(total), page, limit)
}

// pageParams reads ?page= and ?limit=. ok is false when no page was asked for.
func pageParams(c *gin.Context) (page, limit int, ok bool) {
	if _, ok := c.GetQuery("page"); !ok {
		return 0, 0, false
	}

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit, true
}
