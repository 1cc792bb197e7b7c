package pagination

// PaginationMeta contains metadata about paginated results.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NewPaginationMeta creates pagination metadata from parameters and total count.
func NewPaginationMeta(params PaginationParams, totalCount int) PaginationMeta {
	offset, pageSize := params.CalculateOffsetLimit()
	if pageSize <= 0 {
		pageSize = max(totalCount, 1)
	}

	totalPages := (totalCount + pageSize - 1) / pageSize
	currentPage := offset/pageSize + 1

	return PaginationMeta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalCount,
		HasPrevious: offset > 0,
		HasNext:     offset+pageSize < totalCount,
	}
}
