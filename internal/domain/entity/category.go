package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	tport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
)

// CategoryType restricts which records a category is offered for
type CategoryType string

// Category types
const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
	CategoryGeneral CategoryType = "general"
)

// Placeholder presentation for records whose category no longer exists
const (
	PlaceholderColor = "#9CA3AF"
	PlaceholderIcon  = "📦"
)

// Category is a user defined label for records. Records reference categories by name.
type Category struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Color       string
	Icon        string
	Type        CategoryType
	Placeholder bool // true when synthesized for an unknown name, never stored
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory validates and builds a category
func NewCategory(id, userID, name, description, color, icon string, categoryType CategoryType, timeProvider tport.TimeProvider) (*Category, error) {
	if id == "" {
		return nil, errs.NewValidationError("id", "", errs.ErrInvalidCategory)
	}
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewValidationError("name", "", errs.ErrInvalidCategory)
	}
	if categoryType == "" {
		categoryType = CategoryGeneral
	}
	if !IsValidCategoryType(string(categoryType)) {
		return nil, errs.NewValidationError("type", string(categoryType), errs.ErrInvalidCategory)
	}
	if color == "" {
		color = PlaceholderColor
	}
	if icon == "" {
		icon = PlaceholderIcon
	}

	now := timeProvider.Now()
	return &Category{
		ID:          id,
		UserID:      userID,
		Name:        name,
		Description: description,
		Color:       color,
		Icon:        icon,
		Type:        categoryType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// PlaceholderCategory is the neutral category shown for an unknown name
func PlaceholderCategory(name string) Category {
	return Category{
		Name:        name,
		Color:       PlaceholderColor,
		Icon:        PlaceholderIcon,
		Type:        CategoryGeneral,
		Placeholder: true,
	}
}

// AppliesTo reports whether the category may label records of type t
func (c *Category) AppliesTo(t TransactionType) bool {
	switch c.Type {
	case CategoryIncome:
		return t == TypeIncome
	case CategoryExpense:
		return t == TypeExpense
	default:
		return true
	}
}

// DefaultCategory is a seed entry for new users
type DefaultCategory struct {
	Name  string
	Color string
	Icon  string
	Type  CategoryType
}

// DefaultCategories are seeded for a user that has no categories yet
var DefaultCategories = []DefaultCategory{
	{Name: "Alimentação", Color: "#FF6B6B", Icon: "🍕", Type: CategoryExpense},
	{Name: "Transporte", Color: "#4ECDC4", Icon: "🚗", Type: CategoryExpense},
	{Name: "Moradia", Color: "#45B7D1", Icon: "🏠", Type: CategoryExpense},
	{Name: "Saúde", Color: "#96CEB4", Icon: "💊", Type: CategoryExpense},
	{Name: "Lazer", Color: "#FFEAA7", Icon: "🎮", Type: CategoryExpense},
	{Name: "Educação", Color: "#DDA0DD", Icon: "📚", Type: CategoryExpense},
	{Name: "Roupas", Color: "#F8BBD9", Icon: "👕", Type: CategoryExpense},
	{Name: "Contas", Color: "#FFB347", Icon: "💡", Type: CategoryExpense},
	{Name: "Outros", Color: "#D3D3D3", Icon: "📦", Type: CategoryExpense},
	{Name: "Salário", Color: "#2ECC71", Icon: "💰", Type: CategoryIncome},
	{Name: "Freelance", Color: "#3498DB", Icon: "💼", Type: CategoryIncome},
	{Name: "Investimentos", Color: "#9B59B6", Icon: "📈", Type: CategoryIncome},
	{Name: "Vendas", Color: "#E67E22", Icon: "🛒", Type: CategoryIncome},
	{Name: "Outros", Color: "#95A5A6", Icon: "💵", Type: CategoryIncome},
}

// IsValidCategoryType validates if the category type is allowed
func IsValidCategoryType(value string) bool {
	switch CategoryType(value) {
	case CategoryIncome, CategoryExpense, CategoryGeneral:
		return true
	}
	return false
}
