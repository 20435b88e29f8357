package services

import (
	"testing"

	"backend/models"
)

func TestExtractCalories_ExplicitField(t *testing.T) {
	meal := &models.Meal{Calories: models.Flex(412)}
	if got := ExtractCalories(meal, "lunch"); got != 412 {
		t.Fatalf("expected 412, got %v", got)
	}
}

func TestExtractCalories_NutritionCalories(t *testing.T) {
	meal := &models.Meal{
		Nutrition: &models.Nutrition{Calories: models.Flex(615)},
	}
	if got := ExtractCalories(meal, "dinner"); got != 615 {
		t.Fatalf("expected 615, got %v", got)
	}
}

func TestExtractCalories_NutrientListEntry(t *testing.T) {
	meal := &models.Meal{
		Nutrition: &models.Nutrition{
			Nutrients: []models.Nutrient{
				{Name: "Protein", Amount: 22, Unit: "g"},
				{Name: "Calories", Amount: 287, Unit: "kcal"},
				{Name: "Fat", Amount: 11, Unit: "g"},
			},
		},
	}
	if got := ExtractCalories(meal, "breakfast"); got != 287 {
		t.Fatalf("expected 287, got %v", got)
	}
}

func TestExtractCalories_NutrientNameIsCaseInsensitive(t *testing.T) {
	meal := &models.Meal{
		Nutrition: &models.Nutrition{
			Nutrients: []models.Nutrient{{Name: "CALORIES", Amount: 512}},
		},
	}
	if got := ExtractCalories(meal, "lunch"); got != 512 {
		t.Fatalf("expected 512, got %v", got)
	}
}

func TestExtractCalories_ExplicitFieldWinsOverNutrition(t *testing.T) {
	meal := &models.Meal{
		Calories: models.Flex(300),
		Nutrition: &models.Nutrition{
			Calories:  models.Flex(999),
			Nutrients: []models.Nutrient{{Name: "Calories", Amount: 888}},
		},
	}
	if got := ExtractCalories(meal, "lunch"); got != 300 {
		t.Fatalf("expected explicit field to win, got %v", got)
	}
}

func TestExtractCalories_ReadyInMinutesHeuristic(t *testing.T) {
	tests := []struct {
		name string
		meal *models.Meal
		want float64
	}{
		{
			name: "large prep time with no calorie field is treated as calories",
			meal: &models.Meal{ReadyInMinutes: models.Flex(450)},
			want: 450,
		},
		{
			name: "plausible prep time falls through to the type fallback",
			meal: &models.Meal{ReadyInMinutes: models.Flex(45)},
			want: fallbackLunchCalories,
		},
		{
			name: "heuristic is skipped when a calorie field exists, even zero",
			meal: &models.Meal{ReadyInMinutes: models.Flex(450), Calories: models.Flex(0)},
			want: fallbackLunchCalories,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ExtractCalories(test.meal, "lunch"); got != test.want {
				t.Errorf("expected %v, got %v", test.want, got)
			}
		})
	}
}

func TestExtractCalories_Fallbacks(t *testing.T) {
	empty := &models.Meal{Title: "mystery stew"}
	tests := []struct {
		mealType string
		want     float64
	}{
		{"breakfast", 350},
		{"Breakfast", 350},
		{"lunch", 500},
		{"dinner", 600},
		{"DINNER", 600},
		{"snack", 400},
		{"", 400},
	}
	for _, test := range tests {
		if got := ExtractCalories(empty, test.mealType); got != test.want {
			t.Errorf("type %q: expected %v, got %v", test.mealType, test.want, got)
		}
	}
}

func TestExtractCalories_NilMeal(t *testing.T) {
	if got := ExtractCalories(nil, "breakfast"); got != 350 {
		t.Fatalf("expected fallback for nil meal, got %v", got)
	}
}

func TestExtractMacros(t *testing.T) {
	meal := &models.Meal{
		Nutrition: &models.Nutrition{
			Nutrients: []models.Nutrient{
				{Name: "Calories", Amount: 500},
				{Name: "Fat", Amount: 18},
				{Name: "Saturated Fat", Amount: 6},
				{Name: "Carbohydrates", Amount: 55},
				{Name: "Protein", Amount: 30},
			},
		},
	}
	p, c, f := ExtractMacros(meal)
	if p != 30 || c != 55 || f != 18 {
		t.Fatalf("expected 30/55/18, got %v/%v/%v", p, c, f)
	}
}

func TestExtractMacros_MissingStaysZero(t *testing.T) {
	p, c, f := ExtractMacros(&models.Meal{})
	if p != 0 || c != 0 || f != 0 {
		t.Fatalf("expected zeros, got %v/%v/%v", p, c, f)
	}
}
