package event

import (
	"strings"

	"github.com/odvcencio/cellkit/pkg/errors"
)

// Category identifies a listener family. The set is closed.
type Category int

const (
	CategoryKey Category = iota + 1
	CategoryMouse
	CategoryAction
	CategoryFocus
	CategoryItem
	CategoryListSelection
	CategoryTableModel
	CategoryChange
)

var categoryNames = map[Category]string{
	CategoryKey:           "key",
	CategoryMouse:         "mouse",
	CategoryAction:        "action",
	CategoryFocus:         "focus",
	CategoryItem:          "item",
	CategoryListSelection: "list-selection",
	CategoryTableModel:    "table-model",
	CategoryChange:        "change",
}

// Categories returns every valid category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryKey, CategoryMouse, CategoryAction, CategoryFocus,
		CategoryItem, CategoryListSelection, CategoryTableModel, CategoryChange,
	}
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "invalid"
}

// ParseCategory maps a category name back to its value.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	return 0, errors.Newf(errors.ErrCodeInvalidEnum, "unknown event category %q", s)
}
