// Package recipe holds the recipe domain types and the pure transforms the
// controller applies to them: serving scaling, pagination and upload parsing.
package recipe

import (
	"strings"

	"github.com/five82/forkify/internal/forkify"
)

// Ingredient is one line of a recipe. A nil Quantity marks an unquantified
// ingredient and is left alone when servings change.
type Ingredient struct {
	Quantity    *float64
	Unit        string
	Description string
}

// Recipe is the fully detailed recipe shown in the detail view.
type Recipe struct {
	ID          string
	Title       string
	Publisher   string
	SourceURL   string
	ImageURL    string
	Servings    int
	CookingTime int // minutes
	Ingredients []Ingredient
	Key         string // set for user-uploaded recipes
	Bookmarked  bool
}

// Summary is the minimal form shown in result and bookmark lists.
type Summary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	ImageURL  string `json:"image"`
	Key       string `json:"key,omitempty"`
}

// IsUserRecipe reports whether the summary belongs to a recipe the user uploaded.
func (s Summary) IsUserRecipe() bool {
	return s.Key != ""
}

// IsUserRecipe reports whether the recipe was uploaded by the user.
func (r Recipe) IsUserRecipe() bool {
	return r.Key != ""
}

// Summary returns the list form of r.
func (r Recipe) Summary() Summary {
	return Summary{
		ID:        r.ID,
		Title:     r.Title,
		Publisher: r.Publisher,
		ImageURL:  r.ImageURL,
		Key:       r.Key,
	}
}

// Clone returns a deep copy of r.
func (r Recipe) Clone() Recipe {
	r.Ingredients = cloneIngredients(r.Ingredients)
	return r
}

func cloneIngredients(in []Ingredient) []Ingredient {
	if in == nil {
		return nil
	}
	out := make([]Ingredient, len(in))
	for i, ing := range in {
		if ing.Quantity != nil {
			q := *ing.Quantity
			ing.Quantity = &q
		}
		out[i] = ing
	}
	return out
}

// FromDTO maps an API recipe into the domain form.
func FromDTO(dto forkify.RecipeDTO) Recipe {
	ings := make([]Ingredient, 0, len(dto.Ingredients))
	for _, ing := range dto.Ingredients {
		var q *float64
		if ing.Quantity != nil {
			v := *ing.Quantity
			q = &v
		}
		ings = append(ings, Ingredient{Quantity: q, Unit: ing.Unit, Description: ing.Description})
	}
	return Recipe{
		ID:          dto.ID,
		Title:       dto.Title,
		Publisher:   dto.Publisher,
		SourceURL:   dto.SourceURL,
		ImageURL:    dto.ImageURL,
		Servings:    dto.Servings,
		CookingTime: dto.CookingTime,
		Ingredients: ings,
		Key:         dto.Key,
	}
}

// DTO maps r back into the upload payload.
func (r Recipe) DTO() forkify.RecipeDTO {
	ings := make([]forkify.IngredientDTO, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ings = append(ings, forkify.IngredientDTO{Quantity: ing.Quantity, Unit: ing.Unit, Description: ing.Description})
	}
	return forkify.RecipeDTO{
		ID:          r.ID,
		Title:       r.Title,
		Publisher:   r.Publisher,
		SourceURL:   r.SourceURL,
		ImageURL:    r.ImageURL,
		Servings:    r.Servings,
		CookingTime: r.CookingTime,
		Ingredients: ings,
		Key:         r.Key,
	}
}

// SummariesFromDTO maps search results.
func SummariesFromDTO(dtos []forkify.SummaryDTO) []Summary {
	out := make([]Summary, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, Summary{
			ID:        dto.ID,
			Title:     dto.Title,
			Publisher: dto.Publisher,
			ImageURL:  dto.ImageURL,
			Key:       dto.Key,
		})
	}
	return out
}

// String renders the ingredient as "quantity unit description", leaving out
// the parts that are empty.
func (i Ingredient) String() string {
	parts := make([]string, 0, 3)
	if q := FormatQuantity(i.Quantity); q != "" {
		parts = append(parts, q)
	}
	if i.Unit != "" {
		parts = append(parts, i.Unit)
	}
	parts = append(parts, i.Description)
	return strings.Join(parts, " ")
}
