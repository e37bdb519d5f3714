// Package models provides the data structures shared by the statement pipeline.
package models

import (
	"fmt"
	"strings"
)

// Category is a fixed spending-purpose label used for aggregate reporting.
type Category string

const (
	CategoryDining        Category = "dining"
	CategoryShopping      Category = "shopping"
	CategoryTravel        Category = "travel"
	CategoryGroceries     Category = "groceries"
	CategoryEntertainment Category = "entertainment"
	CategoryFuel          Category = "fuel"
	CategoryUtilities     Category = "utilities"
	CategoryHealthcare    Category = "healthcare"
	CategoryEducation     Category = "education"
	CategoryOther         Category = "other"
)

// AllCategories returns every category, in categorization priority order,
// followed by CategoryOther.
func AllCategories() []Category {
	return []Category{
		CategoryDining,
		CategoryShopping,
		CategoryTravel,
		CategoryGroceries,
		CategoryEntertainment,
		CategoryFuel,
		CategoryUtilities,
		CategoryHealthcare,
		CategoryEducation,
		CategoryOther,
	}
}

// ParseCategory validates a category label (case-insensitive).
func ParseCategory(s string) (Category, error) {
	candidate := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range AllCategories() {
		if c == candidate {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

func (c Category) String() string {
	return string(c)
}
