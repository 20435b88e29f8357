package controllers

import (
	"errors"
	"net/http"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlanController struct {
	Plans *services.PlanService
}

func NewPlanController(p *services.PlanService) *PlanController {
	return &PlanController{Plans: p}
}

func (pc *PlanController) Generate(c *gin.Context) {
	uid := c.GetUint("userID")

	var body struct {
		TargetCalories float64 `json:"target_calories"`
		Diet           string  `json:"diet"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.TargetCalories <= 0 {
		body.TargetCalories = 2000
	}

	doc, totals, err := pc.Plans.GeneratePlan(uid, body.TargetCalories, body.Diet)
	if err != nil {
		// upstream planner failure: retryable, never a crash
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"plan": doc, "dailyAverageNutrition": totals})
}

func (pc *PlanController) CreateManual(c *gin.Context) {
	// doctor-only action, checked before anything is touched
	if c.GetString("role") != models.RoleDoctor {
		c.JSON(http.StatusForbidden, gin.H{"error": "doctor role required"})
		return
	}
	doctorID := c.GetUint("userID")

	var body struct {
		PatientID uint                               `json:"patient_id"`
		Week      map[string]services.ManualDayInput `json:"week"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.PatientID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "patient_id required"})
		return
	}

	doc, err := pc.Plans.CreateManualPlan(doctorID, body.PatientID, body.Week)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (pc *PlanController) Current(c *gin.Context) {
	uid := c.GetUint("userID")

	view, err := pc.Plans.CurrentPlanView(uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active plan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (pc *PlanController) Summary(c *gin.Context) {
	totals, err := pc.Plans.WeekSummary(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (pc *PlanController) Archive(c *gin.Context) {
	uid := c.GetUint("userID")
	if err := pc.Plans.ArchivePlan(uid, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
