// services/plan_service.go
package services

import (
	"encoding/json"
	"fmt"
	"time"

	"backend/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PlanService struct {
	db      *gorm.DB
	recipes *RecipeService
}

func NewPlanService(db *gorm.DB, recipes *RecipeService) *PlanService {
	return &PlanService{db: db, recipes: recipes}
}

// Composite document keys, kept byte-compatible with what the mobile app
// wrote: "{patientId}_{date}" for AI plans, "{patientId}_manual_{date}_{ts}"
// for doctor-authored ones.
func aiPlanDocID(patientID uint, at time.Time) string {
	return fmt.Sprintf("%d_%s", patientID, at.Format("2006-01-02"))
}

func manualPlanDocID(patientID uint, at time.Time) string {
	return fmt.Sprintf("%d_manual_%s_%d", patientID, at.Format("2006-01-02"), at.Unix())
}

// GeneratePlan fetches a fresh AI weekly plan and persists it under the
// patient's document id for today. Regenerating on the same day overwrites the
// same document: last write wins, no coordination between concurrent writers.
// If a prior document existed, its per-day nutrient snapshots are preferred
// when computing the returned summary.
func (s *PlanService) GeneratePlan(patientID uint, targetCalories float64, diet string) (*models.MealPlanDocument, models.NutrientTotals, error) {
	raw, err := s.recipes.GenerateWeeklyPlan(targetCalories, diet)
	if err != nil {
		return nil, models.NutrientTotals{}, err
	}

	now := time.Now()
	doc := models.MealPlanDocument{
		DocID:     aiPlanDocID(patientID, now),
		PatientID: patientID,
		PlanType:  models.PlanTypeAI,
		Status:    models.PlanStatusActive,
		Raw:       string(raw),
	}

	var prior CanonicalWeek
	var existing models.MealPlanDocument
	if err := s.db.First(&existing, "doc_id = ?", doc.DocID).Error; err == nil {
		prior = NormalizeWeek(UnwrapWeek(&existing))
	}

	// Upsert by document id.
	if err := s.db.Where("doc_id = ?", doc.DocID).Assign(doc).FirstOrCreate(&doc).Error; err != nil {
		return nil, models.NutrientTotals{}, err
	}

	week := NormalizeWeek(UnwrapWeek(&doc))
	totals := AggregateWeek(week, prior)
	if totals == (models.NutrientTotals{}) {
		totals = ComputeWeekNutrition(week)
	}
	return &doc, totals, nil
}

type ManualDayInput struct {
	Breakfast *models.Meal `json:"breakfast"`
	Lunch     *models.Meal `json:"lunch"`
	Dinner    *models.Meal `json:"dinner"`
}

// CreateManualPlan stores a doctor-authored plan. Per-day nutrient snapshots
// and the dailyAverageNutrition summary are computed once at authoring time so
// readers can trust the snapshot without recomputing.
func (s *PlanService) CreateManualPlan(doctorID, patientID uint, week map[string]ManualDayInput) (*models.MealPlanDocument, error) {
	if len(week) == 0 {
		return nil, fmt.Errorf("week is empty")
	}

	canonical := make(CanonicalWeek, len(week))
	for day, in := range week {
		cd := CanonicalDay{Breakfast: in.Breakfast, Lunch: in.Lunch, Dinner: in.Dinner}
		if in.Breakfast != nil || in.Lunch != nil || in.Dinner != nil {
			cd.Nutrients = dayNutrients(cd)
		}
		canonical[day] = cd
	}
	avg := AggregateWeek(canonical, nil)

	body, err := json.Marshal(map[string]any{
		"type":                  models.PlanTypeManual,
		"week":                  canonical,
		"dailyAverageNutrition": avg,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := models.MealPlanDocument{
		DocID:     manualPlanDocID(patientID, now),
		PatientID: patientID,
		DoctorID:  &doctorID,
		PlanType:  models.PlanTypeManual,
		Status:    models.PlanStatusActive,
		Raw:       string(body),
	}
	if err := s.db.Create(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// CurrentPlan returns the patient's active plan. Concurrent writers (a doctor
// and a patient both regenerating) are not coordinated: the most recently
// created active document wins.
func (s *PlanService) CurrentPlan(patientID uint) (*models.MealPlanDocument, error) {
	var doc models.MealPlanDocument
	err := s.db.
		Where("patient_id = ? AND status = ?", patientID, models.PlanStatusActive).
		Order("created_at DESC").
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// PlanView is what plan screens render: the document, its canonical week and
// the daily-average summary.
type PlanView struct {
	Plan                  *models.MealPlanDocument `json:"plan"`
	Week                  CanonicalWeek            `json:"week"`
	DailyAverageNutrition models.NutrientTotals    `json:"dailyAverageNutrition"`
}

func (s *PlanService) CurrentPlanView(patientID uint) (*PlanView, error) {
	doc, err := s.CurrentPlan(patientID)
	if err != nil {
		return nil, err
	}
	raw := UnwrapWeek(doc)
	if raw == nil {
		log.Warn().Str("doc", doc.DocID).Msg("active plan has no resolvable week")
	}
	return &PlanView{
		Plan:                  doc,
		Week:                  NormalizeWeek(raw),
		DailyAverageNutrition: SummarizePlan(doc),
	}, nil
}

// WeekSummary resolves any stored plan document to its daily-average totals.
func (s *PlanService) WeekSummary(docID string) (models.NutrientTotals, error) {
	var doc models.MealPlanDocument
	if err := s.db.First(&doc, "doc_id = ?", docID).Error; err != nil {
		return models.NutrientTotals{}, err
	}
	return SummarizePlan(&doc), nil
}

// ArchivePlan marks a plan inactive. The next most recent active plan (if
// any) becomes current implicitly.
func (s *PlanService) ArchivePlan(patientID uint, docID string) error {
	return s.db.
		Model(&models.MealPlanDocument{}).
		Where("doc_id = ? AND patient_id = ?", docID, patientID).
		Update("status", models.PlanStatusArchived).Error
}
