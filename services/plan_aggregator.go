package services

import (
	"encoding/json"
	"math"

	"backend/models"
)

// AggregateWeek computes daily-average nutrition for a plan week. When a
// previously persisted week with per-day snapshots is available it is treated
// as authoritative (cheaper than recomputing from meal data) and the fresh
// week is not read at all. Exactly one source per invocation, so nothing can
// be double counted. Averages divide by the number of days that actually
// carried a nutrients snapshot, not the nominal plan length: a 7-day plan with
// 5 resolvable days averages over 5.
func AggregateWeek(week, prior CanonicalWeek) models.NutrientTotals {
	source := week
	if countNutrientDays(prior) > 0 {
		source = prior
	}

	var totals models.NutrientTotals
	days := 0
	for _, day := range source {
		n := day.Nutrients
		if n == nil {
			continue
		}
		totals.Calories += float64(n.Calories)
		totals.Protein += float64(n.Protein)
		totals.Carbs += n.CarbsValue()
		totals.Fat += float64(n.Fat)
		days++
	}
	if days == 0 {
		return models.NutrientTotals{}
	}
	return models.NutrientTotals{
		Calories: round2(totals.Calories / float64(days)),
		Protein:  round2(totals.Protein / float64(days)),
		Carbs:    round2(totals.Carbs / float64(days)),
		Fat:      round2(totals.Fat / float64(days)),
	}
}

func countNutrientDays(week CanonicalWeek) int {
	n := 0
	for _, day := range week {
		if day.Nutrients != nil {
			n++
		}
	}
	return n
}

// ComputeWeekNutrition recomputes daily averages from meal-level data through
// the extractor, for weeks whose days carry no nutrient snapshots at all. Days
// without any meal don't count toward the denominator.
func ComputeWeekNutrition(week CanonicalWeek) models.NutrientTotals {
	var totals models.NutrientTotals
	days := 0
	for _, day := range week {
		if day.Breakfast == nil && day.Lunch == nil && day.Dinner == nil {
			continue
		}
		n := dayNutrients(day)
		totals.Calories += float64(n.Calories)
		totals.Protein += float64(n.Protein)
		totals.Carbs += float64(n.Carbs)
		totals.Fat += float64(n.Fat)
		days++
	}
	if days == 0 {
		return models.NutrientTotals{}
	}
	return models.NutrientTotals{
		Calories: round2(totals.Calories / float64(days)),
		Protein:  round2(totals.Protein / float64(days)),
		Carbs:    round2(totals.Carbs / float64(days)),
		Fat:      round2(totals.Fat / float64(days)),
	}
}

// dayNutrients builds a per-day snapshot from meal-level data, extractor
// fallbacks included.
func dayNutrients(day CanonicalDay) *models.DayNutrients {
	n := &models.DayNutrients{}
	for _, slot := range []struct {
		meal *models.Meal
		typ  string
	}{
		{day.Breakfast, "breakfast"},
		{day.Lunch, "lunch"},
		{day.Dinner, "dinner"},
	} {
		if slot.meal == nil {
			continue
		}
		n.Calories += models.FlexFloat(ExtractCalories(slot.meal, slot.typ))
		p, c, f := ExtractMacros(slot.meal)
		n.Protein += models.FlexFloat(p)
		n.Carbs += models.FlexFloat(c)
		n.Fat += models.FlexFloat(f)
	}
	return n
}

// SummarizePlan turns a stored plan document into daily-average totals.
// Manual plans trust their stored dailyAverageNutrition snapshot outright when
// present; everything else goes unwrap → normalize → aggregate, falling back
// to meal-level recomputation only when no day had a snapshot.
func SummarizePlan(doc *models.MealPlanDocument) models.NutrientTotals {
	if DetectPlanType(doc) == models.PlanTypeManual {
		if snap := storedDailyAverage(doc); snap != nil {
			return *snap
		}
	}
	raw := UnwrapWeek(doc)
	if raw == nil {
		return models.NutrientTotals{}
	}
	week := NormalizeWeek(raw)
	totals := AggregateWeek(week, nil)
	if totals == (models.NutrientTotals{}) {
		totals = ComputeWeekNutrition(week)
	}
	return totals
}

func storedDailyAverage(doc *models.MealPlanDocument) *models.NutrientTotals {
	if doc == nil || doc.Raw == "" {
		return nil
	}
	var probe struct {
		DailyAverageNutrition *models.NutrientTotals `json:"dailyAverageNutrition"`
		MealPlan              struct {
			DailyAverageNutrition *models.NutrientTotals `json:"dailyAverageNutrition"`
		} `json:"mealPlan"`
	}
	if err := json.Unmarshal([]byte(doc.Raw), &probe); err != nil {
		return nil
	}
	if probe.DailyAverageNutrition != nil {
		return probe.DailyAverageNutrition
	}
	return probe.MealPlan.DailyAverageNutrition
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
