package services

import (
	"strings"

	"backend/models"
)

// Fallback calories per meal type, used when a meal carries no resolvable
// nutrition data at all. Values mirror the mobile app's placeholders.
const (
	fallbackBreakfastCalories = 350
	fallbackLunchCalories     = 500
	fallbackDinnerCalories    = 600
	fallbackDefaultCalories   = 400
)

// ExtractCalories resolves a single calorie number for a meal, trying each
// known location in order: top-level calories, nutrition.calories, the first
// nutrients entry named like "calorie", then the mis-tagged prep-time
// heuristic, then the per-type fallback. It never fails and zero counts as
// absent (matches the source app's truthiness checks).
func ExtractCalories(meal *models.Meal, mealType string) float64 {
	if meal != nil {
		if meal.Calories != nil && *meal.Calories != 0 {
			return float64(*meal.Calories)
		}
		if meal.Nutrition != nil {
			if meal.Nutrition.Calories != nil && *meal.Nutrition.Calories != 0 {
				return float64(*meal.Nutrition.Calories)
			}
			for _, n := range meal.Nutrition.Nutrients {
				if strings.Contains(strings.ToLower(n.Name), "calorie") {
					return float64(n.Amount)
				}
			}
		}
		if v, ok := readyInMinutesLooksLikeCalories(meal); ok {
			return v
		}
	}
	return fallbackCalories(mealType)
}

// readyInMinutesLooksLikeCalories flags recipe-feed rows where the prep-time
// field holds a calorie-sized value while the calorie field is missing
// entirely. Almost certainly a data-entry bug in the upstream feed rather than
// a real shape.
// TODO: remove once the recipe feed's mis-tagged rows are confirmed fixed.
func readyInMinutesLooksLikeCalories(meal *models.Meal) (float64, bool) {
	if meal.ReadyInMinutes == nil || meal.Calories != nil {
		return 0, false
	}
	if *meal.ReadyInMinutes > 100 {
		return float64(*meal.ReadyInMinutes), true
	}
	return 0, false
}

func fallbackCalories(mealType string) float64 {
	switch strings.ToLower(mealType) {
	case "breakfast":
		return fallbackBreakfastCalories
	case "lunch":
		return fallbackLunchCalories
	case "dinner":
		return fallbackDinnerCalories
	default:
		return fallbackDefaultCalories
	}
}

// ExtractMacros pulls best-effort protein/carb/fat grams out of a meal's
// nutrient list. Missing entries stay zero; there is no fallback ladder for
// macros, only calories get one.
func ExtractMacros(meal *models.Meal) (protein, carbs, fat float64) {
	if meal == nil || meal.Nutrition == nil {
		return
	}
	for _, n := range meal.Nutrition.Nutrients {
		name := strings.ToLower(n.Name)
		switch {
		case protein == 0 && strings.Contains(name, "protein"):
			protein = float64(n.Amount)
		case carbs == 0 && strings.Contains(name, "carbohydrate"):
			carbs = float64(n.Amount)
		case fat == 0 && (name == "fat" || name == "total fat"):
			fat = float64(n.Amount)
		}
	}
	return
}
