package sorting

import (
	"github.com/vovakirdan/edu-arcade/internal/content"
	"github.com/vovakirdan/edu-arcade/internal/core"
)

// Transform maps a sorting descriptor to fresh game entities.
// A nil descriptor yields empty collections. Every call allocates new slices,
// so callers may mutate the result freely.
func Transform(detail *content.SortingDetail) GameData {
	if detail == nil {
		return GameData{Words: []WordItem{}, Categories: []Category{}}
	}

	categories := make([]Category, 0, len(detail.Categories))
	for i, c := range detail.Categories {
		categories = append(categories, Category{
			ID:    c.ID,
			Name:  c.Name,
			Color: core.CategoryColor(i),
		})
	}

	words := make([]WordItem, 0, len(detail.Items))
	for _, item := range detail.Items {
		words = append(words, WordItem{
			ID:              item.ID,
			Text:            itemText(item),
			CorrectCategory: resolveCategory(detail.Categories, item),
		})
	}

	return GameData{Words: words, Categories: categories}
}

// resolveCategory applies the lookup order index -> id -> first -> empty.
// A non-negative index that is out of range resolves to empty and does not
// fall through to the id.
func resolveCategory(categories []content.SortingCategory, item content.SortingItem) string {
	if item.CategoryIndex != nil && *item.CategoryIndex >= 0 {
		if *item.CategoryIndex < len(categories) {
			return categories[*item.CategoryIndex].ID
		}
		return ""
	}
	if item.CategoryID != "" {
		return item.CategoryID
	}
	if len(categories) > 0 {
		return categories[0].ID
	}
	return ""
}

func itemText(item content.SortingItem) string {
	if item.Type == content.ItemImage {
		return "Image: " + item.ID
	}
	return item.Value
}
