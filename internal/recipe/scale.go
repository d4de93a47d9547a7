package recipe

import (
	"errors"
	"fmt"
)

// ErrInvalidServings is returned for a non-positive serving count.
var ErrInvalidServings = errors.New("servings must be greater than zero")

// Scale returns a copy of ingredients with every quantity multiplied by
// newServings/oldServings. Unquantified ingredients are copied unchanged.
func Scale(ingredients []Ingredient, oldServings, newServings int) ([]Ingredient, error) {
	if newServings <= 0 {
		return nil, fmt.Errorf("scale to %d: %w", newServings, ErrInvalidServings)
	}
	if oldServings <= 0 {
		return nil, fmt.Errorf("scale from %d: %w", oldServings, ErrInvalidServings)
	}
	out := cloneIngredients(ingredients)
	factor := float64(newServings) / float64(oldServings)
	for i := range out {
		if out[i].Quantity == nil {
			continue
		}
		*out[i].Quantity *= factor
	}
	return out, nil
}

// WithServings returns a copy of r rescaled to servings.
func (r Recipe) WithServings(servings int) (Recipe, error) {
	ings, err := Scale(r.Ingredients, r.Servings, servings)
	if err != nil {
		return Recipe{}, err
	}
	out := r
	out.Ingredients = ings
	out.Servings = servings
	return out, nil
}
