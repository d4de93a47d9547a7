package forkify

import "encoding/json"

// Envelope mirrors the wrapper every Forkify v2 response uses.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Results int             `json:"results"`
	Data    json.RawMessage `json:"data"`
}

// RecipeDTO is the transport form of a full recipe.
type RecipeDTO struct {
	ID          string          `json:"id,omitempty"`
	Title       string          `json:"title"`
	Publisher   string          `json:"publisher"`
	SourceURL   string          `json:"source_url"`
	ImageURL    string          `json:"image_url"`
	Servings    int             `json:"servings"`
	CookingTime int             `json:"cooking_time"`
	Ingredients []IngredientDTO `json:"ingredients"`
	Key         string          `json:"key,omitempty"`
}

// IngredientDTO is a single ingredient line. Quantity is null for
// unquantified ingredients ("salt to taste").
type IngredientDTO struct {
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
}

// SummaryDTO is the lightweight result returned by search.
type SummaryDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	ImageURL  string `json:"image_url"`
	Key       string `json:"key,omitempty"`
}

type recipeData struct {
	Recipe RecipeDTO `json:"recipe"`
}

type searchData struct {
	Recipes []SummaryDTO `json:"recipes"`
}
