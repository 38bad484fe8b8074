package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"restaurant-review-backend/internal/shared/apperror"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	ErrCodeInvalidPagination = "INVALID_PAGINATION"
)

// Page is a validated page request. Page and Limit are always positive.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ParsePage reads raw page/limit query values. Empty values take the defaults,
// anything else must be a positive integer. Limit is capped at MaxLimit and the
// offset of the requested page must fit in an int.
func ParsePage(rawPage, rawLimit string) (Page, error) {
	page, okPage := parsePositive(rawPage, DefaultPage)
	limit, okLimit := parsePositive(rawLimit, DefaultLimit)
	if !okPage || !okLimit {
		return Page{}, apperror.Validation(ErrCodeInvalidPagination, "Page and limit must be positive integers.")
	}
	if limit > MaxLimit {
		return Page{}, apperror.Validation(ErrCodeInvalidPagination, fmt.Sprintf("Limit must not exceed %d.", MaxLimit))
	}
	if page-1 > math.MaxInt/limit {
		return Page{}, apperror.Validation(ErrCodeInvalidPagination, "Page is out of range.")
	}
	return Page{Page: page, Limit: limit}, nil
}

func parsePositive(raw string, fallback int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Offset is the number of rows to skip: (page-1)*limit.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit).
func (p Page) TotalPages(total int) int {
	return TotalPages(total, p.Limit)
}

func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total-1)/limit + 1
}
