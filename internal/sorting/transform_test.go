package sorting

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/edu-arcade/internal/content"
	"github.com/vovakirdan/edu-arcade/internal/core"
)

func testDetail() *content.SortingDetail {
	return &content.SortingDetail{
		ID:   "fruits-veg",
		Name: "Fruits and Vegetables",
		Categories: []content.SortingCategory{
			{ID: "fruit", Name: "Fruit"},
			{ID: "veg", Name: "Vegetable"},
		},
		Items: []content.SortingItem{
			{ID: "w1", Value: "apple", CategoryIndex: content.Index(0), Type: content.ItemText},
			{ID: "w2", Value: "carrot", CategoryIndex: content.Index(1), Type: content.ItemText},
			{ID: "w3", Value: "pear", CategoryID: "fruit", Type: content.ItemText},
		},
	}
}

func TestTransformNil(t *testing.T) {
	data := Transform(nil)
	if data.Words == nil || data.Categories == nil {
		t.Fatal("Transform(nil) should return empty, non-nil slices")
	}
	if len(data.Words) != 0 || len(data.Categories) != 0 {
		t.Errorf("Transform(nil) = %+v, expected empty", data)
	}
}

func TestTransformIdempotent(t *testing.T) {
	d := testDetail()

	a := Transform(d)
	b := Transform(d)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("Transform not idempotent:\n%+v\n%+v", a, b)
	}

	// New identity: mutating one result must not affect the other.
	a.Words[0].Completed = true
	if b.Words[0].Completed {
		t.Error("Transform results share word storage")
	}
}

func TestTransformCategoryColors(t *testing.T) {
	d := &content.SortingDetail{
		Categories: []content.SortingCategory{
			{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"},
		},
	}

	expected := []core.Color{core.ColorBlue, core.ColorGreen, core.ColorPurple, core.ColorRed, core.ColorRed}
	data := Transform(d)
	for i, c := range data.Categories {
		if c.Color != expected[i] {
			t.Errorf("category %d color = %v, expected %v", i, c.Color, expected[i])
		}
	}
}

func TestTransformCategoryFallback(t *testing.T) {
	cats := []content.SortingCategory{{ID: "first"}, {ID: "second"}}

	tests := []struct {
		name       string
		categories []content.SortingCategory
		item       content.SortingItem
		expected   string
	}{
		{
			name:       "valid index",
			categories: cats,
			item:       content.SortingItem{ID: "x", CategoryIndex: content.Index(1), CategoryID: "first"},
			expected:   "second",
		},
		{
			name:       "index wins over id",
			categories: cats,
			item:       content.SortingItem{ID: "x", CategoryIndex: content.Index(0), CategoryID: "second"},
			expected:   "first",
		},
		{
			name:       "negative index falls back to id",
			categories: cats,
			item:       content.SortingItem{ID: "x", CategoryIndex: content.Index(-1), CategoryID: "second"},
			expected:   "second",
		},
		{
			name:       "absent index uses id",
			categories: cats,
			item:       content.SortingItem{ID: "x", CategoryID: "second"},
			expected:   "second",
		},
		{
			name:       "out of range index resolves empty",
			categories: cats,
			item:       content.SortingItem{ID: "x", CategoryIndex: content.Index(5), CategoryID: "second"},
			expected:   "",
		},
		{
			name:       "nothing given uses first category",
			categories: cats,
			item:       content.SortingItem{ID: "x"},
			expected:   "first",
		},
		{
			name:       "nothing given and no categories",
			categories: nil,
			item:       content.SortingItem{ID: "x"},
			expected:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := &content.SortingDetail{Categories: tc.categories, Items: []content.SortingItem{tc.item}}
			data := Transform(d)
			if got := data.Words[0].CorrectCategory; got != tc.expected {
				t.Errorf("CorrectCategory = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestTransformItemText(t *testing.T) {
	d := &content.SortingDetail{
		Items: []content.SortingItem{
			{ID: "t1", Value: "cat", Type: content.ItemText},
			{ID: "i1", Value: "uploads/cat.png", Type: content.ItemImage},
		},
	}

	data := Transform(d)
	if data.Words[0].Text != "cat" {
		t.Errorf("text item = %q, expected %q", data.Words[0].Text, "cat")
	}
	if data.Words[1].Text != "Image: i1" {
		t.Errorf("image item = %q, expected %q", data.Words[1].Text, "Image: i1")
	}
	for _, w := range data.Words {
		if w.Completed {
			t.Errorf("word %s created completed", w.ID)
		}
	}
}
