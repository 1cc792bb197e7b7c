package pagination

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ecosystemplus/farmcarbon/internal/store"
)

// Pagination modes and validation limits.
const (
	DefaultLimit     = store.DefaultRecentLimit
	MaxLimit         = 10000
	DefaultSortField = "generated"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidLimit         = errors.New("limit must be between 1 and 10000")
	ErrInvalidOffset        = errors.New("offset must be non-negative")
	ErrInvalidPage          = errors.New("page must be >= 1")
	ErrMixedPaginationModes = errors.New("cannot use both offset-based (--offset) and page-based (--page) pagination")
	ErrInvalidSortFormat    = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'total:desc')")
	ErrInvalidSortOrder     = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField     = errors.New("invalid sort field")
)

// sortColumns maps sort field names to store columns.
var sortColumns = map[string]string{ //nolint:gochecknoglobals // Read-only lookup table.
	"generated":   store.SortGeneratedAt,
	"total":       store.SortTotal,
	"per_hectare": store.SortPerHectare,
	"area":        store.SortArea,
}

// SortFields returns the accepted sort field names.
func SortFields() []string {
	return slices.Sorted(maps.Keys(sortColumns))
}

// PaginationParams holds CLI pagination flags.
// Supports two pagination modes:
//   - Offset-based: --limit and --offset
//   - Page-based: --page, with --limit as the page size
//
// --offset and --page are mutually exclusive.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	Limit  int
	Offset int
	// Page is 1-based; 0 means page-based mode is not active.
	Page int
}

// Validate checks that the parameters are in range and consistent.
func (p PaginationParams) Validate() error {
	if p.Limit < 1 || p.Limit > MaxLimit {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, p.Limit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidOffset, p.Offset)
	}
	if p.Page < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.Page > 0 && p.Offset > 0 {
		return ErrMixedPaginationModes
	}
	return nil
}

// IsPageBased returns true if page-based pagination is active.
func (p PaginationParams) IsPageBased() bool {
	return p.Page > 0
}

// CalculateOffsetLimit returns the effective offset and limit.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (p PaginationParams) CalculateOffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.Limit, p.Limit
	}
	return p.Offset, p.Limit
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order" and
// returns the store column and whether the order is descending. An empty
// string sorts newest first. A field without an order sorts descending.
func ParseSort(sortStr string) (string, bool, error) {
	if strings.TrimSpace(sortStr) == "" {
		return store.SortGeneratedAt, true, nil
	}

	parts := strings.Split(sortStr, ":")
	if len(parts) > sortPartsMax {
		return "", false, fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	field := strings.TrimSpace(parts[0])
	order := SortOrderDesc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}

	column, ok := sortColumns[field]
	if !ok {
		return "", false, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(SortFields(), ", "))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", false, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return column, order == SortOrderDesc, nil
}
