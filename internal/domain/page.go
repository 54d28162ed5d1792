package domain

import "fmt"

const (
	DefaultPageSize  = 15
	MaxPageSize      = 100
	DefaultSortBy    = "created"
	DefaultSortOrder = "desc"
)

// photoSortColumns maps public sort keys to columns of the photos table.
var photoSortColumns = map[string]string{
	"created":    "created",
	"likeCount":  "like_count",
	"id":         "id",
	"hairName":   "hair_name",
	"hairLength": "hair_length",
	"hairColor":  "hair_color",
	"gender":     "gender",
}

// PageRequest is a validated, zero-based page of a photo listing.
type PageRequest struct {
	Page       int
	Size       int
	SortBy     string
	SortColumn string
	Desc       bool
}

// NewPageRequest applies defaults to empty values and rejects anything else
// outside the whitelist.
func NewPageRequest(page, size int, sortBy, sortOrder string) (PageRequest, error) {
	if page < 0 {
		return PageRequest{}, fmt.Errorf("page must not be negative: %w", ErrValidation)
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if size < 0 || size > MaxPageSize {
		return PageRequest{}, fmt.Errorf("size must be between 1 and %d: %w", MaxPageSize, ErrValidation)
	}
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	col, ok := photoSortColumns[sortBy]
	if !ok {
		return PageRequest{}, fmt.Errorf("unsupported sortBy %q: %w", sortBy, ErrValidation)
	}
	if sortOrder == "" {
		sortOrder = DefaultSortOrder
	}
	var desc bool
	switch sortOrder {
	case "desc", "DESC":
		desc = true
	case "asc", "ASC":
	default:
		return PageRequest{}, fmt.Errorf("unsupported sortOrder %q: %w", sortOrder, ErrValidation)
	}
	return PageRequest{Page: page, Size: size, SortBy: sortBy, SortColumn: col, Desc: desc}, nil
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
