package models

import (
	"fmt"
	"strings"
)

// Category is the dietary classification of a recipe. The set is closed.
type Category string

const (
	CategoryVegetarian    Category = "Vegetarian"
	CategoryVegan         Category = "Vegan"
	CategoryNonVegetarian Category = "Non-Vegetarian"
)

// Categories lists every valid category in display order
func Categories() []Category {
	return []Category{CategoryVegetarian, CategoryVegan, CategoryNonVegetarian}
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory accepts any casing of a known category and returns its canonical form
func ParseCategory(s string) (Category, error) {
	for _, known := range Categories() {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
