package app

import "github.com/five82/forkify/internal/recipe"

func uploadFixture() recipe.Upload {
	return recipe.Upload{
		Title:       "Weeknight curry",
		SourceURL:   "https://example.com/curry",
		ImageURL:    "https://example.com/curry.jpg",
		Publisher:   "Me",
		CookingTime: 35,
		Servings:    3,
		Ingredients: []string{"1,kg,chicken", "2,tbsp,curry paste", ",,salt"},
	}
}
