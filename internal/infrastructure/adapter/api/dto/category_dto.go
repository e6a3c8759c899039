package dto

import (
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/usecase"
)

// CreateCategoryRequest represents the API request for a new category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Type        string `json:"type" binding:"omitempty,oneof=income expense general"`
}

// ToUseCase maps the request to the use case request
func (r CreateCategoryRequest) ToUseCase() usecase.CreateCategoryRequest {
	return usecase.CreateCategoryRequest{
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		Icon:        r.Icon,
		Type:        r.Type,
	}
}

// CategoryResponse represents one category
type CategoryResponse struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Type        string `json:"type,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// NewCategoryResponse maps a category
func NewCategoryResponse(c entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		Type:        string(c.Type),
		Placeholder: c.Placeholder,
	}
}

// NewCategoryResponses maps a list of categories
func NewCategoryResponses(categories []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, NewCategoryResponse(*c))
	}
	return out
}

// InitializeDefaultsResponse reports how many default categories were seeded
type InitializeDefaultsResponse struct {
	Created int `json:"created"`
}
