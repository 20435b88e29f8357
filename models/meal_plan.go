package models

import "time"

const (
	PlanTypeAI     = "ai"
	PlanTypeManual = "manual"

	PlanStatusActive   = "active"
	PlanStatusArchived = "archived"
)

// MealPlanDocument is a stored weekly plan. The body is kept exactly as
// received (AI and manual plans disagree on shape, and historical documents
// disagree with both); the normalizer owns decoding it. Metadata columns are
// denormalized for querying only.
type MealPlanDocument struct {
	DocID     string    `gorm:"primaryKey;size:128" json:"id"`
	PatientID uint      `gorm:"index;not null" json:"patientId"`
	DoctorID  *uint     `gorm:"index" json:"doctorId,omitempty"`
	PlanType  string    `gorm:"size:16" json:"planType"`      // "ai" | "manual"
	Status    string    `gorm:"size:16;index" json:"status"`  // "active" | "archived"
	Raw       string    `gorm:"type:jsonb" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DayNutrients is a per-day snapshot as written on plan documents. Carbs show
// up as either "carbs" or "carbohydrates" depending on which writer produced
// the document.
type DayNutrients struct {
	Calories      FlexFloat `json:"calories"`
	Protein       FlexFloat `json:"protein"`
	Carbs         FlexFloat `json:"carbs,omitempty"`
	Carbohydrates FlexFloat `json:"carbohydrates,omitempty"`
	Fat           FlexFloat `json:"fat"`
}

// CarbsValue resolves the two historical carb spellings.
func (d DayNutrients) CarbsValue() float64 {
	if d.Carbohydrates != 0 {
		return float64(d.Carbohydrates)
	}
	return float64(d.Carbs)
}

// NutrientTotals is a daily-average nutrition summary: totals across the days
// that carried resolvable nutrient data, divided by the count of those days
// (not the nominal plan length).
type NutrientTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}
