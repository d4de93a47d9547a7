package recipe

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/forkify/internal/forkify"
)

func qty(v float64) *float64 { return &v }

func TestScale_RescalesQuantitiesAndKeepsIdentity(t *testing.T) {
	in := []Ingredient{
		{Quantity: qty(2), Unit: "cups", Description: "flour"},
		{Quantity: nil, Unit: "", Description: "salt"},
		{Quantity: qty(0.5), Unit: "tsp", Description: "yeast"},
	}
	for _, servings := range []int{1, 2, 3, 8, 13} {
		out, err := Scale(in, 4, servings)
		if err != nil {
			t.Fatalf("Scale(4->%d) returned error: %v", servings, err)
		}
		if len(out) != len(in) {
			t.Fatalf("Scale returned %d ingredients, want %d", len(out), len(in))
		}
		for i := range in {
			if out[i].Description != in[i].Description || out[i].Unit != in[i].Unit {
				t.Fatalf("ingredient %d identity changed: %#v -> %#v", i, in[i], out[i])
			}
			if in[i].Quantity == nil {
				if out[i].Quantity != nil {
					t.Fatalf("ingredient %d gained a quantity", i)
				}
				continue
			}
			want := *in[i].Quantity * float64(servings) / 4
			if math.Abs(*out[i].Quantity-want) > 1e-9 {
				t.Fatalf("ingredient %d quantity = %v, want %v", i, *out[i].Quantity, want)
			}
		}
	}
	if *in[0].Quantity != 2 {
		t.Fatalf("Scale mutated its input")
	}
}

func TestScale_RejectsNonPositiveServings(t *testing.T) {
	if _, err := Scale(nil, 4, 0); !errors.Is(err, ErrInvalidServings) {
		t.Fatalf("Scale(->0) error = %v, want ErrInvalidServings", err)
	}
	if _, err := Scale(nil, 0, 2); !errors.Is(err, ErrInvalidServings) {
		t.Fatalf("Scale(0->) error = %v, want ErrInvalidServings", err)
	}
}

func TestWithServings_UpdatesCount(t *testing.T) {
	r := Recipe{ID: "x", Servings: 2, Ingredients: []Ingredient{{Quantity: qty(1), Description: "egg"}}}
	got, err := r.WithServings(6)
	if err != nil {
		t.Fatalf("WithServings returned error: %v", err)
	}
	if got.Servings != 6 || *got.Ingredients[0].Quantity != 3 {
		t.Fatalf("WithServings = %#v, want 6 servings and 3 eggs", got)
	}
	if r.Servings != 2 || *r.Ingredients[0].Quantity != 1 {
		t.Fatalf("WithServings mutated the receiver")
	}
}

func TestDTORoundTripKeepsNullQuantities(t *testing.T) {
	dto := forkify.RecipeDTO{
		ID: "abc", Title: "Soup", Publisher: "P", Servings: 4, CookingTime: 30, Key: "k",
		Ingredients: []forkify.IngredientDTO{{Quantity: qty(1), Unit: "l", Description: "water"}, {Description: "pepper"}},
	}
	r := FromDTO(dto)
	if !r.IsUserRecipe() || r.Ingredients[1].Quantity != nil {
		t.Fatalf("FromDTO = %#v, want user recipe with null quantity", r)
	}
	if diff := cmp.Diff(dto, r.DTO()); diff != "" {
		t.Fatalf("DTO mismatch (-want +got):\n%s", diff)
	}
	if got := r.Summary(); got.ID != "abc" || got.Key != "k" {
		t.Fatalf("Summary = %#v", got)
	}
}

func TestFormatQuantity(t *testing.T) {
	cases := []struct {
		in   *float64
		want string
	}{
		{nil, ""},
		{qty(2), "2"},
		{qty(0.5), "1/2"},
		{qty(1.5), "1 1/2"},
		{qty(1.0 / 3), "1/3"},
		{qty(0.75), "3/4"},
		{qty(2.999), "3"},
		{qty(0.05), "0.05"},
		{qty(-0.25), "-1/4"},
	}
	for _, tc := range cases {
		if got := FormatQuantity(tc.in); got != tc.want {
			t.Errorf("FormatQuantity(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIngredientString(t *testing.T) {
	half := 0.5
	two := 2.0
	tests := []struct {
		name string
		ing  Ingredient
		want string
	}{
		{"full", Ingredient{Quantity: &two, Unit: "cups", Description: "flour"}, "2 cups flour"},
		{"fraction", Ingredient{Quantity: &half, Unit: "tsp", Description: "salt"}, "1/2 tsp salt"},
		{"no unit", Ingredient{Quantity: &two, Description: "eggs"}, "2 eggs"},
		{"description only", Ingredient{Description: "pepper"}, "pepper"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ing.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
