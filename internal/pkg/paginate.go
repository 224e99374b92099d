package pkg

import (
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultPage is the page substituted for absent or non-positive input.
	DefaultPage = 1
	// DefaultPageSize is the page size substituted when none is configured.
	DefaultPageSize = 10
	// MaxPageSize caps the page size regardless of input or configuration.
	MaxPageSize = 100
)

// PageParams holds normalized pagination parameters.
type PageParams struct {
	Page     int
	PageSize int
}

// PageResult is one page of a sequence plus pagination metadata.
// Total counts the matching items before pagination.
type PageResult[T any] struct {
	Items           []T  `json:"items"`
	Total           int  `json:"total"`
	Page            int  `json:"page"`
	PageSize        int  `json:"pageSize"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// ValidatePageParams normalizes raw pagination parameters.
//
// A zero value means "absent or unparseable" and takes the default
// (DefaultPage for page, defaultPageSize for pageSize). Page is then clamped
// to a minimum of 1 and pageSize to [1, MaxPageSize], so a negative pageSize
// clamps to 1 while zero takes the default. defaultPageSize values outside
// [1, MaxPageSize] fall back to DefaultPageSize.
func ValidatePageParams(page, pageSize, defaultPageSize int) PageParams {
	if defaultPageSize < 1 || defaultPageSize > MaxPageSize {
		defaultPageSize = DefaultPageSize
	}

	if page == 0 {
		page = DefaultPage
	}
	if page < 1 {
		page = 1
	}

	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if pageSize < 1 {
		pageSize = 1
	}

	return PageParams{Page: page, PageSize: pageSize}
}

// Paginate slices one page out of items and computes pagination metadata.
// Parameters are normalized via ValidatePageParams first. A page beyond the
// last one yields an empty (never nil) items slice, not an error.
func Paginate[T any](items []T, page, pageSize, defaultPageSize int) PageResult[T] {
	params := ValidatePageParams(page, pageSize, defaultPageSize)

	total := len(items)
	totalPages := int(math.Ceil(float64(total) / float64(params.PageSize)))

	// A page past the end yields the empty result without computing offsets;
	// (page-1)*pageSize can overflow for huge page values.
	if params.Page > totalPages {
		return PageResult[T]{
			Items:           []T{},
			Total:           total,
			Page:            params.Page,
			PageSize:        params.PageSize,
			TotalPages:      totalPages,
			HasNextPage:     false,
			HasPreviousPage: params.Page > 1,
		}
	}

	start := (params.Page - 1) * params.PageSize
	end := start + params.PageSize
	if end > total {
		end = total
	}

	pageItems := items[start:end]
	if pageItems == nil {
		pageItems = []T{}
	}

	return PageResult[T]{
		Items:           pageItems,
		Total:           total,
		Page:            params.Page,
		PageSize:        params.PageSize,
		TotalPages:      totalPages,
		HasNextPage:     params.Page < totalPages,
		HasPreviousPage: params.Page > 1,
	}
}

// ParseIntFloor parses a numeric query parameter, flooring non-integer
// values. Absent or non-numeric input yields 0, the "take the default"
// marker consumed by ValidatePageParams.
func ParseIntFloor(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		f = math.Floor(f)
		// Saturate instead of converting directly: float64 values past the
		// int64 range wrap around on conversion.
		if f > math.MaxInt32 {
			return math.MaxInt32
		}
		if f < math.MinInt32 {
			return math.MinInt32
		}
		return int(f)
	}
	return 0
}
