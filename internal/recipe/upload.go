package recipe

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrIngredientFormat is returned for ingredient lines that are not
// "quantity,unit,description".
var ErrIngredientFormat = errors.New("wrong ingredient format! please use the correct format: quantity,unit,description")

// Upload is a user-authored recipe as entered in the form or read from a
// YAML file.
type Upload struct {
	Title       string   `yaml:"title"`
	SourceURL   string   `yaml:"source_url"`
	ImageURL    string   `yaml:"image_url"`
	Publisher   string   `yaml:"publisher"`
	CookingTime int      `yaml:"cooking_time"`
	Servings    int      `yaml:"servings"`
	Ingredients []string `yaml:"ingredients"`
}

// ParseIngredient parses one "quantity,unit,description" line. Quantity and
// unit may be empty ("",,"salt"), description may not.
func ParseIngredient(raw string) (Ingredient, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return Ingredient{}, ErrIngredientFormat
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[2] == "" {
		return Ingredient{}, fmt.Errorf("%w: description is empty", ErrIngredientFormat)
	}
	ing := Ingredient{Unit: parts[1], Description: parts[2]}
	if parts[0] != "" {
		q, err := strconv.ParseFloat(parts[0], 64)
		if err != nil || q < 0 {
			return Ingredient{}, fmt.Errorf("%w: quantity %q is not a number", ErrIngredientFormat, parts[0])
		}
		ing.Quantity = &q
	}
	return ing, nil
}

// Build validates u and converts it into a Recipe ready for upload.
// Blank ingredient lines are skipped.
func (u Upload) Build() (Recipe, error) {
	title := strings.TrimSpace(u.Title)
	if title == "" {
		return Recipe{}, errors.New("title is required")
	}
	publisher := strings.TrimSpace(u.Publisher)
	if publisher == "" {
		return Recipe{}, errors.New("publisher is required")
	}
	sourceURL, err := validURL("source url", u.SourceURL)
	if err != nil {
		return Recipe{}, err
	}
	imageURL, err := validURL("image url", u.ImageURL)
	if err != nil {
		return Recipe{}, err
	}
	if u.CookingTime <= 0 {
		return Recipe{}, errors.New("cooking time must be greater than zero")
	}
	if u.Servings <= 0 {
		return Recipe{}, fmt.Errorf("servings: %w", ErrInvalidServings)
	}

	var ings []Ingredient
	for i, line := range u.Ingredients {
		if strings.TrimSpace(line) == "" {
			continue
		}
		ing, err := ParseIngredient(line)
		if err != nil {
			return Recipe{}, fmt.Errorf("ingredient %d: %w", i+1, err)
		}
		ings = append(ings, ing)
	}
	if len(ings) == 0 {
		return Recipe{}, errors.New("at least one ingredient is required")
	}

	return Recipe{
		Title:       title,
		Publisher:   publisher,
		SourceURL:   sourceURL,
		ImageURL:    imageURL,
		Servings:    u.Servings,
		CookingTime: u.CookingTime,
		Ingredients: ings,
	}, nil
}

func validURL(field, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%s %q must be an absolute http(s) url", field, trimmed)
	}
	return trimmed, nil
}
