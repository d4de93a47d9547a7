package recipe

import (
	"errors"
	"strings"
	"testing"
)

func validUpload() Upload {
	return Upload{
		Title:       " Test pizza ",
		SourceURL:   "https://example.com/pizza",
		ImageURL:    "https://example.com/pizza.jpg",
		Publisher:   "Me",
		CookingTime: 45,
		Servings:    4,
		Ingredients: []string{"0.5,kg,Rice", "1,,Avocado", "", ",,salt"},
	}
}

func TestParseIngredient(t *testing.T) {
	ing, err := ParseIngredient(" 1.5 , cups , flour ")
	if err != nil {
		t.Fatalf("ParseIngredient returned error: %v", err)
	}
	if ing.Quantity == nil || *ing.Quantity != 1.5 || ing.Unit != "cups" || ing.Description != "flour" {
		t.Fatalf("ParseIngredient = %#v", ing)
	}

	ing, err = ParseIngredient(",,salt")
	if err != nil {
		t.Fatalf("ParseIngredient returned error: %v", err)
	}
	if ing.Quantity != nil || ing.Description != "salt" {
		t.Fatalf("ParseIngredient unquantified = %#v", ing)
	}

	for _, bad := range []string{"salt", "1,cup", "1,cup,flour,extra", "x,cup,flour", "1,cup,", "-1,cup,flour"} {
		if _, err := ParseIngredient(bad); !errors.Is(err, ErrIngredientFormat) {
			t.Errorf("ParseIngredient(%q) error = %v, want ErrIngredientFormat", bad, err)
		}
	}
}

func TestUploadBuild(t *testing.T) {
	r, err := validUpload().Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if r.Title != "Test pizza" || r.Servings != 4 || r.CookingTime != 45 {
		t.Fatalf("Build = %#v", r)
	}
	if len(r.Ingredients) != 3 {
		t.Fatalf("Build kept %d ingredients, want 3 (blank skipped)", len(r.Ingredients))
	}
}

func TestUploadBuild_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Upload)
		want   string
	}{
		{"missing title", func(u *Upload) { u.Title = "  " }, "title"},
		{"missing publisher", func(u *Upload) { u.Publisher = "" }, "publisher"},
		{"relative url", func(u *Upload) { u.SourceURL = "/pizza" }, "source url"},
		{"bad image scheme", func(u *Upload) { u.ImageURL = "ftp://x/y.jpg" }, "image url"},
		{"zero time", func(u *Upload) { u.CookingTime = 0 }, "cooking time"},
		{"zero servings", func(u *Upload) { u.Servings = 0 }, "servings"},
		{"no ingredients", func(u *Upload) { u.Ingredients = []string{"", " "} }, "ingredient"},
		{"bad ingredient", func(u *Upload) { u.Ingredients = []string{"1,kg,rice", "oops"} }, "ingredient 2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := validUpload()
			tc.mutate(&u)
			_, err := u.Build()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Build error = %v, want it to mention %q", err, tc.want)
			}
		})
	}
}
