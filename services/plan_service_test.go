package services

import (
	"strings"
	"testing"
	"time"

	"backend/models"
)

func TestPlanDocIDFormats(t *testing.T) {
	at := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)

	if got := aiPlanDocID(7, at); got != "7_2026-08-28" {
		t.Fatalf("unexpected ai doc id: %q", got)
	}

	manual := manualPlanDocID(7, at)
	if !strings.HasPrefix(manual, "7_manual_2026-08-28_") {
		t.Fatalf("unexpected manual doc id: %q", manual)
	}
	// the id convention is what DetectPlanType keys on for untagged docs
	if DetectPlanType(&models.MealPlanDocument{DocID: manual}) != models.PlanTypeManual {
		t.Fatalf("manual doc id %q not detected as manual", manual)
	}
}

func TestDayNutrients_SumsSlotsWithFallbacks(t *testing.T) {
	day := CanonicalDay{
		Breakfast: &models.Meal{Calories: models.Flex(300)},
		Lunch:     &models.Meal{Title: "unlabeled"}, // 500 fallback
		Dinner: &models.Meal{
			Nutrition: &models.Nutrition{
				Nutrients: []models.Nutrient{
					{Name: "Calories", Amount: 650},
					{Name: "Protein", Amount: 40},
				},
			},
		},
	}

	n := dayNutrients(day)
	if float64(n.Calories) != 1450 { // 300 + 500 + 650
		t.Fatalf("expected 1450, got %v", float64(n.Calories))
	}
	if float64(n.Protein) != 40 {
		t.Fatalf("expected protein 40, got %v", float64(n.Protein))
	}
}
