package services

import (
	"testing"

	"backend/models"
)

func nutrientDay(cal, prot, carbs, fat float64) CanonicalDay {
	return CanonicalDay{Nutrients: &models.DayNutrients{
		Calories: models.FlexFloat(cal),
		Protein:  models.FlexFloat(prot),
		Carbs:    models.FlexFloat(carbs),
		Fat:      models.FlexFloat(fat),
	}}
}

func TestAggregateWeek_AveragesOverResolvableDaysOnly(t *testing.T) {
	// 7-day week, only 5 days carry nutrient snapshots
	week := CanonicalWeek{
		"monday":    nutrientDay(2000, 100, 250, 70),
		"tuesday":   nutrientDay(1800, 90, 220, 60),
		"wednesday": nutrientDay(2200, 110, 260, 80),
		"thursday":  nutrientDay(1600, 80, 200, 50),
		"friday":    nutrientDay(2400, 120, 270, 90),
		"saturday":  {},
		"sunday":    {},
	}

	got := AggregateWeek(week, nil)
	if got.Calories != 2000 { // 10000 / 5, not / 7
		t.Fatalf("expected calories averaged over 5 days (2000), got %v", got.Calories)
	}
	if got.Protein != 100 || got.Carbs != 240 || got.Fat != 70 {
		t.Fatalf("unexpected macros: %+v", got)
	}
}

func TestAggregateWeek_ThreeDayExample(t *testing.T) {
	// duration 3, nutrients on 2 days: (300+500)/2, not /3
	week := CanonicalWeek{
		"monday":    nutrientDay(300, 0, 0, 0),
		"tuesday":   nutrientDay(500, 0, 0, 0),
		"wednesday": {Breakfast: &models.Meal{Title: "Toast"}},
	}
	got := AggregateWeek(week, nil)
	if got.Calories != 400 {
		t.Fatalf("expected 400, got %v", got.Calories)
	}
}

func TestAggregateWeek_NoResolvableDays(t *testing.T) {
	week := CanonicalWeek{"monday": {}, "tuesday": {}}
	if got := AggregateWeek(week, nil); got != (models.NutrientTotals{}) {
		t.Fatalf("expected all zeros, got %+v", got)
	}
}

func TestAggregateWeek_PriorSnapshotsPreferred(t *testing.T) {
	fresh := CanonicalWeek{"monday": nutrientDay(9999, 0, 0, 0)}
	prior := CanonicalWeek{"monday": nutrientDay(1500, 75, 180, 55)}

	got := AggregateWeek(fresh, prior)
	if got.Calories != 1500 {
		t.Fatalf("expected persisted snapshots to win, got %+v", got)
	}
}

func TestAggregateWeek_EmptyPriorFallsBackToFresh(t *testing.T) {
	fresh := CanonicalWeek{"monday": nutrientDay(1700, 0, 0, 0)}
	prior := CanonicalWeek{"monday": {}} // no nutrient days

	got := AggregateWeek(fresh, prior)
	if got.Calories != 1700 {
		t.Fatalf("expected fresh week to be used, got %+v", got)
	}
}

func TestAggregateWeek_CarbohydratesSpelling(t *testing.T) {
	week := CanonicalWeek{
		"monday":  {Nutrients: &models.DayNutrients{Carbohydrates: 200}},
		"tuesday": {Nutrients: &models.DayNutrients{Carbs: 100}},
	}
	got := AggregateWeek(week, nil)
	if got.Carbs != 150 {
		t.Fatalf("expected both carb spellings counted (150), got %v", got.Carbs)
	}
}

func TestComputeWeekNutrition_UsesExtractorFallbacks(t *testing.T) {
	week := CanonicalWeek{
		"monday": {
			Breakfast: &models.Meal{Title: "mystery"}, // falls back to 350
			Lunch:     &models.Meal{Calories: models.Flex(600)},
			Dinner:    &models.Meal{Calories: models.Flex(700)},
		},
		"tuesday": {}, // no meals, not counted
	}
	got := ComputeWeekNutrition(week)
	if got.Calories != 1650 { // 350+600+700 over 1 day
		t.Fatalf("expected 1650, got %v", got.Calories)
	}
}

func TestSummarizePlan_ManualSnapshotTrusted(t *testing.T) {
	doc := &models.MealPlanDocument{
		DocID: "3_manual_2026-08-28_1724800000",
		Raw: `{
			"type": "manual",
			"week": {"monday": {"breakfast": {"calories": 100}, "nutrients": {"calories": 100}}},
			"dailyAverageNutrition": {"calories": 1234, "protein": 60, "carbs": 150, "fat": 40}
		}`,
	}
	got := SummarizePlan(doc)
	if got.Calories != 1234 {
		t.Fatalf("expected stored snapshot to be trusted, got %+v", got)
	}
}

func TestSummarizePlan_ManualWithoutSnapshotRecomputes(t *testing.T) {
	doc := &models.MealPlanDocument{
		DocID: "3_manual_2026-08-28_1724800000",
		Raw: `{
			"type": "manual",
			"week": {
				"monday": {"breakfast": null, "lunch": null, "dinner": null, "nutrients": {"calories": 1500}}
			}
		}`,
	}
	got := SummarizePlan(doc)
	if got.Calories != 1500 {
		t.Fatalf("expected recompute from day snapshots, got %+v", got)
	}
}

func TestSummarizePlan_AIPlanFromWeek(t *testing.T) {
	doc := &models.MealPlanDocument{
		DocID: "3_2026-08-28",
		Raw: `{
			"week": {
				"monday":  {"meals": [], "nutrients": {"calories": "1800", "protein": "90"}},
				"tuesday": {"meals": [], "nutrients": {"calories": 2200, "protein": 110}}
			}
		}`,
	}
	got := SummarizePlan(doc)
	if got.Calories != 2000 {
		t.Fatalf("expected 2000 (string values parsed), got %+v", got)
	}
	if got.Protein != 100 {
		t.Fatalf("expected protein 100, got %v", got.Protein)
	}
}

func TestSummarizePlan_MealLevelFallback(t *testing.T) {
	doc := &models.MealPlanDocument{
		DocID: "3_2026-08-28",
		Raw: `{
			"week": {
				"monday": {"meals": [{"calories": 400}, {"calories": 500}, {"calories": 600}]}
			}
		}`,
	}
	got := SummarizePlan(doc)
	if got.Calories != 1500 {
		t.Fatalf("expected meal-level fallback 1500, got %+v", got)
	}
}

func TestSummarizePlan_NoWeek(t *testing.T) {
	doc := &models.MealPlanDocument{DocID: "3_2026-08-28", Raw: `{"status": "active"}`}
	if got := SummarizePlan(doc); got != (models.NutrientTotals{}) {
		t.Fatalf("expected zeros, got %+v", got)
	}
}
