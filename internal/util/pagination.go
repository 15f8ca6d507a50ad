package util

import (
	"math"
	"strconv"
)

const (
	DefaultPageSize = 5
	MaxPageSize     = 100
)

func Calculate(page, size int) (offset, limit int) {
	return (page - 1) * size, size
}

// PageCount is ceil(total/size); an empty result has zero pages.
func PageCount(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ClampPage normalizes query parameters coming from the HTTP edge.
func ClampPage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	// keeps (page-1)*size inside int
	if maxPage := math.MaxInt / size; page > maxPage {
		page = maxPage
	}
	return page, size
}
