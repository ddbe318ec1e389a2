package category

import (
	errors "github.com/frahmantamala/category-management/internal"
	"github.com/frahmantamala/category-management/internal/core/common/validation"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10

	maxNameLength        = 255
	maxDescriptionLength = 1000
)

// CreateCategoryDTO is the create request payload. UserID is a pointer so a
// missing field is distinguishable from a literal zero.
type CreateCategoryDTO struct {
	Name        string  `json:"name"`
	UserID      *int64  `json:"user_id"`
	Description *string `json:"description"`
}

func (dto CreateCategoryDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).
		Required().
		MaxLength(maxNameLength)
	v.Field("user_id", dto.UserID).
		Required().
		PositiveInt(errors.ErrCodeInvalidUserID)
	v.Field("description", dto.Description).
		MaxLength(maxDescriptionLength)
	return v.Validate()
}

// UpdateCategoryDTO carries the replaceable fields. Description always
// overwrites: an absent or empty value clears the stored one.
type UpdateCategoryDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (dto UpdateCategoryDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).
		Required().
		MaxLength(maxNameLength)
	v.Field("description", dto.Description).
		MaxLength(maxDescriptionLength)
	return v.Validate()
}

// ListParams are the recognized list options. Zero values mean "not supplied";
// Normalize applies the documented defaults.
type ListParams struct {
	Page    int
	PerPage int
	Name    string
	UserID  int64
}

func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	return p
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PaginationMeta describes a windowed query result.
type PaginationMeta struct {
	CurrentPage  int   `json:"page"`
	ItemsPerPage int   `json:"per_page"`
	TotalItems   int64 `json:"total"`
	TotalPages   int64 `json:"total_pages"`
}

// CategoryPage is one page of active categories plus its metadata.
type CategoryPage struct {
	Items []*Category    `json:"items"`
	Meta  PaginationMeta `json:"meta"`
}

// ListResponse is the transport envelope for the list endpoint.
type ListResponse struct {
	Data []*Category    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// MutationResponse is the transport envelope for update and delete.
type MutationResponse struct {
	Message string    `json:"message"`
	Result  *Category `json:"result"`
}
