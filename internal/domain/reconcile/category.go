package reconcile

import (
	"sort"
	"strings"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
)

// ResolveCategory finds the category a record references by name. Unknown names
// resolve to the placeholder.
func ResolveCategory(categories []*entity.Category, name string) entity.Category {
	for _, c := range categories {
		if c != nil && c.Name == name {
			return *c
		}
	}
	return entity.PlaceholderCategory(name)
}

// ResolveCategoryFor prefers a category applicable to txType when the name is
// shared by an income and an expense category.
func ResolveCategoryFor(categories []*entity.Category, name string, txType entity.TransactionType) entity.Category {
	for _, c := range categories {
		if c != nil && c.Name == name && c.AppliesTo(txType) {
			return *c
		}
	}
	return ResolveCategory(categories, name)
}

// SortCategories orders categories by name, case insensitive
func SortCategories(categories []*entity.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
	})
}

// CategoryTotals sums records per category name, largest total first
func CategoryTotals(records []*entity.Transaction, categories []*entity.Category, txType entity.TransactionType) []entity.CategoryTotal {
	totals := make(map[string]*entity.CategoryTotal)
	var names []string
	var grand int64

	for _, record := range records {
		if !wellFormed(record) || record.Type != txType {
			continue
		}
		t, ok := totals[record.Category]
		if !ok {
			t = &entity.CategoryTotal{Category: ResolveCategoryFor(categories, record.Category, txType)}
			totals[record.Category] = t
			names = append(names, record.Category)
		}
		t.TotalCents += record.AmountCents
		t.Count++
		grand += record.AmountCents
	}

	out := make([]entity.CategoryTotal, 0, len(names))
	for _, name := range names {
		t := totals[name]
		if grand > 0 {
			t.Share = float64(t.TotalCents) / float64(grand) * 100
		}
		out = append(out, *t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalCents > out[j].TotalCents
	})
	return out
}
