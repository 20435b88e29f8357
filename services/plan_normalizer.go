package services

import (
	"encoding/json"
	"strings"

	"backend/models"

	"github.com/rs/zerolog/log"
)

// CanonicalDay is the one day shape the rest of the codebase consumes. Both
// stored variants (ordered meals array from the AI planner, named fields from
// manual authoring) normalize to this. Meal keys stay present when empty so a
// normalized week re-normalizes to itself.
type CanonicalDay struct {
	Breakfast *models.Meal         `json:"breakfast"`
	Lunch     *models.Meal         `json:"lunch"`
	Dinner    *models.Meal         `json:"dinner"`
	Nutrients *models.DayNutrients `json:"nutrients,omitempty"`
}

type CanonicalWeek map[string]CanonicalDay

// NormalizeWeek converts a stored week mapping into canonical form. Days that
// match neither known shape keep their key with no meals so a seven-day screen
// still renders; nothing here ever fails.
func NormalizeWeek(raw map[string]json.RawMessage) CanonicalWeek {
	week := make(CanonicalWeek, len(raw))
	for day, body := range raw {
		week[day] = normalizeDay(day, body)
	}
	return week
}

func normalizeDay(day string, body json.RawMessage) CanonicalDay {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		log.Warn().Str("day", day).Msg("day is not an object, treating as unplanned")
		return CanonicalDay{}
	}

	nutrients := decodeNutrients(fields["nutrients"])

	// AI shape: ordered meals array, position implies breakfast/lunch/dinner.
	if raw, ok := fields["meals"]; ok && !isJSONNull(raw) {
		var meals []*models.Meal
		if err := json.Unmarshal(raw, &meals); err == nil {
			return CanonicalDay{
				Breakfast: mealAt(meals, 0),
				Lunch:     mealAt(meals, 1),
				Dinner:    mealAt(meals, 2),
				Nutrients: nutrients,
			}
		}
		log.Warn().Str("day", day).Msg("meals field is not an array, treating day as unplanned")
		return CanonicalDay{Nutrients: nutrients}
	}

	// Manual / already-canonical shape: any named meal key present passes
	// through, absent slots stay nil.
	_, hasB := fields["breakfast"]
	_, hasL := fields["lunch"]
	_, hasD := fields["dinner"]
	if hasB || hasL || hasD {
		return CanonicalDay{
			Breakfast: decodeMeal(fields["breakfast"]),
			Lunch:     decodeMeal(fields["lunch"]),
			Dinner:    decodeMeal(fields["dinner"]),
			Nutrients: nutrients,
		}
	}

	log.Warn().Str("day", day).Msg("day matches no known plan shape, treating as unplanned")
	return CanonicalDay{Nutrients: nutrients}
}

func mealAt(meals []*models.Meal, i int) *models.Meal {
	if i < len(meals) {
		return meals[i]
	}
	return nil
}

func decodeMeal(raw json.RawMessage) *models.Meal {
	if len(raw) == 0 || isJSONNull(raw) {
		return nil
	}
	var m models.Meal
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return &m
}

func decodeNutrients(raw json.RawMessage) *models.DayNutrients {
	if len(raw) == 0 || isJSONNull(raw) {
		return nil
	}
	var n models.DayNutrients
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	return &n
}

func isJSONNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// DetectPlanType classifies a stored plan document. Historical documents tag
// manual plans inconsistently (via "type", via "planType", or only through
// the "_manual_" id convention) so all three markers are honored.
func DetectPlanType(doc *models.MealPlanDocument) string {
	if doc == nil {
		return models.PlanTypeAI
	}
	if doc.PlanType == models.PlanTypeManual {
		return models.PlanTypeManual
	}
	var probe struct {
		Type     string `json:"type"`
		PlanType string `json:"planType"`
	}
	_ = json.Unmarshal([]byte(doc.Raw), &probe)
	if probe.Type == models.PlanTypeManual || probe.PlanType == models.PlanTypeManual {
		return models.PlanTypeManual
	}
	if strings.Contains(doc.DocID, "_manual_") {
		return models.PlanTypeManual
	}
	return models.PlanTypeAI
}

var weekdayNames = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// UnwrapWeek locates the week mapping inside a plan document. Documents store
// it at "week", at "mealPlan.week", or (older manual plans) spread the day
// names across the top level. The first location that yields a non-empty
// mapping wins, and it is the only source the caller reads.
func UnwrapWeek(doc *models.MealPlanDocument) map[string]json.RawMessage {
	if doc == nil || doc.Raw == "" {
		return nil
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(doc.Raw), &top); err != nil {
		log.Warn().Str("doc", doc.DocID).Err(err).Msg("plan document body is not an object")
		return nil
	}

	if wk := weekMapping(top["week"]); wk != nil {
		return wk
	}
	if mp, ok := top["mealPlan"]; ok && !isJSONNull(mp) {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(mp, &nested); err == nil {
			if wk := weekMapping(nested["week"]); wk != nil {
				return wk
			}
		}
	}
	if DetectPlanType(doc) == models.PlanTypeManual {
		wk := make(map[string]json.RawMessage)
		for k, v := range top {
			if weekdayNames[strings.ToLower(k)] {
				wk[k] = v
			}
		}
		if len(wk) > 0 {
			return wk
		}
	}
	return nil
}

func weekMapping(raw json.RawMessage) map[string]json.RawMessage {
	if len(raw) == 0 || isJSONNull(raw) {
		return nil
	}
	var wk map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wk); err != nil || len(wk) == 0 {
		return nil
	}
	return wk
}
