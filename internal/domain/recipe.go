// Package domain defines the core types and interfaces for the recipe box.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"fmt"
	"strings"
)

// RecipeType is a single taxonomy entry a recipe can belong to. Two entries
// with the same ID are the same type regardless of name drift. Types are
// produced by the remote service or the bundled default set and are never
// mutated locally.
type RecipeType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Recipe is a user-created recipe. The Type field is a snapshot taken at
// creation or edit time, not a live reference into the taxonomy: if the
// taxonomy changes remotely, existing recipes keep their old type.
type Recipe struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Type        RecipeType `json:"type"`
	ImageData   []byte     `json:"imageData,omitempty"`
	Ingredients []string   `json:"ingredients"`
	Steps       []string   `json:"steps"`
}

// IngredientsText renders the ingredient list as a single comma-joined line.
func (r *Recipe) IngredientsText() string {
	return strings.Join(r.Ingredients, ", ")
}

// StepsText renders the steps numbered sequentially, one per line.
func (r *Recipe) StepsText() string {
	var b strings.Builder
	for i, step := range r.Steps {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, step)
	}
	return b.String()
}

// TypeFilter selects a slice of the recipe list by taxonomy entry. The
// zero value is invalid; construct with AllTypes or TypeOf. Modeling "all"
// as its own case keeps the sentinel out of the real taxonomy, so a remote
// type whose id happens to be "all" cannot collide with it.
type TypeFilter struct {
	all bool
	t   RecipeType
}

// AllTypes returns the filter that matches every recipe.
func AllTypes() TypeFilter {
	return TypeFilter{all: true}
}

// TypeOf returns the filter matching recipes whose embedded type id equals t's.
func TypeOf(t RecipeType) TypeFilter {
	return TypeFilter{t: t}
}

// IsAll reports whether the filter matches every recipe.
func (f TypeFilter) IsAll() bool { return f.all }

// Matches reports whether the recipe passes the filter.
func (f TypeFilter) Matches(r *Recipe) bool {
	return f.all || r.Type.ID == f.t.ID
}

// Name returns the display name for the filter.
func (f TypeFilter) Name() string {
	if f.all {
		return "All"
	}
	return f.t.Name
}

// Type returns the underlying taxonomy entry and true, or false for AllTypes.
func (f TypeFilter) Type() (RecipeType, bool) {
	if f.all {
		return RecipeType{}, false
	}
	return f.t, true
}
