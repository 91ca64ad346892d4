package util

import (
	"strconv"

	"github.com/fadilmartias/datapulse/internal/response"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParsePage reads page and page_size query values, falling back to defaults.
func ParsePage(pageStr, sizeStr string) (int, int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// Paginate returns the items on page along with its pagination block.
func Paginate[T any](items []T, page, pageSize int) ([]T, *response.Pagination) {
	p := response.NewPagination(page, pageSize, len(items))
	if p.From == 0 {
		return []T{}, p
	}
	return items[p.From-1 : p.To], p
}
