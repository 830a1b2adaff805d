// Package recipe builds new recipes from raw user input: free-text
// ingredient and step fields are parsed into ordered lists, required fields
// are validated, and a fresh id is minted on build.
package recipe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/zkamal/recipebox/internal/domain"
)

// validate is shared; a Validate instance caches struct metadata.
var validate = validator.New()

// Draft accumulates the fields of a recipe being created or edited.
// Build validates and produces the final domain.Recipe.
type Draft struct {
	Title       string             `validate:"required"`
	Type        *domain.RecipeType `validate:"required"`
	ImageData   []byte
	Ingredients []string `validate:"required,min=1,dive,required"`
	Steps       []string `validate:"required,min=1,dive,required"`
}

// NewDraft starts a draft. When the taxonomy is non-empty the first entry
// is preselected, matching how the type picker starts out.
func NewDraft(types []domain.RecipeType) *Draft {
	d := &Draft{}
	if len(types) > 0 {
		t := types[0]
		d.Type = &t
	}
	return d
}

// ParseIngredients parses a comma-separated ingredient line. Entries are
// trimmed; blank entries are dropped. Order is preserved.
func ParseIngredients(text string) []string {
	return splitAndTrim(text, ",")
}

// ParseSteps parses newline-separated steps. Entries are trimmed; blank
// lines are dropped. Order is preserved.
func ParseSteps(text string) []string {
	return splitAndTrim(text, "\n")
}

// SetIngredients sets the ingredient list from a comma-separated line.
func (d *Draft) SetIngredients(text string) {
	d.Ingredients = ParseIngredients(text)
}

// SetSteps sets the step list from newline-separated text.
func (d *Draft) SetSteps(text string) {
	d.Steps = ParseSteps(text)
}

// Valid reports whether the draft would pass Build's validation.
func (d *Draft) Valid() bool {
	return validate.Struct(d.normalized()) == nil
}

// Build validates the draft and mints a recipe with a new unique id.
// A missing title (after trimming), type, ingredient list, or step list is
// rejected with domain.ErrInvalidRecipe.
func (d *Draft) Build() (domain.Recipe, error) {
	n := d.normalized()
	if err := validate.Struct(n); err != nil {
		return domain.Recipe{}, fmt.Errorf("recipe: %w: %s", domain.ErrInvalidRecipe, missingFields(err))
	}
	return domain.Recipe{
		ID:          uuid.NewString(),
		Title:       n.Title,
		Type:        *n.Type,
		ImageData:   n.ImageData,
		Ingredients: n.Ingredients,
		Steps:       n.Steps,
	}, nil
}

// normalized returns a copy with the title trimmed, so whitespace-only
// titles fail the required check.
func (d *Draft) normalized() Draft {
	n := *d
	n.Title = strings.TrimSpace(d.Title)
	return n
}

func splitAndTrim(text, sep string) []string {
	var out []string
	for _, part := range strings.Split(text, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// missingFields flattens a validation error into a short field list for
// the inline prompt.
func missingFields(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return "missing " + strings.Join(fields, ", ")
}
