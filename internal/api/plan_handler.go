// internal/api/plan_handler.go
package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alcyxob/runplan/internal/domain"
	"github.com/alcyxob/runplan/internal/service"
)

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

type GeneratePlanRequest struct {
	AthleteID       string   `json:"athleteId" binding:"required"`
	AthleteName     string   `json:"athleteName" binding:"required"`
	StartDate       string   `json:"startDate" binding:"required"` // YYYY-MM-DD
	EventDate       string   `json:"eventDate"`                    // optional
	DurationWeeks   int      `json:"planDurationWeeks"`
	GoalDistanceKm  float64  `json:"goalDistanceKm" binding:"required"`
	WeeklyFrequency int      `json:"weeklyFrequency" binding:"required"`
	AvailableDays   []string `json:"availableDays" binding:"required"`
	Experience      string   `json:"experience"`
	TimeEstimates   string   `json:"timeEstimates"`
	Observations    string   `json:"specialObservations"`
}

type ExportPlanResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// --- Handlers ---

// GeneratePlan handles POST /plans: validates the questionnaire input
// and returns the freshly generated, stored plan.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.planService.GeneratePlan(c.Request.Context(), service.GeneratePlanRequest{
		AthleteID:       req.AthleteID,
		AthleteName:     req.AthleteName,
		StartDate:       req.StartDate,
		EventDate:       req.EventDate,
		DurationWeeks:   req.DurationWeeks,
		GoalDistanceKm:  req.GoalDistanceKm,
		WeeklyFrequency: req.WeeklyFrequency,
		AvailableDays:   req.AvailableDays,
		Experience:      req.Experience,
		TimeEstimates:   req.TimeEstimates,
		Observations:    req.Observations,
	})
	if err != nil {
		if isValidationError(err) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("ERROR: plan generation failed: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to generate plan.")
		return
	}

	c.JSON(http.StatusCreated, record)
}

// GetPlan handles GET /plans/:id.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	record, err := h.planService.GetPlan(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, "Plan not found.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plan.")
		return
	}
	c.JSON(http.StatusOK, record)
}

// ListPlans handles GET /plans?athlete=<id>.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	athleteID := c.Query("athlete")
	if athleteID == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'athlete' is required.")
		return
	}

	plans, err := h.planService.GetPlansByAthlete(c.Request.Context(), athleteID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans.")
		return
	}
	if plans == nil {
		c.JSON(http.StatusOK, []domain.GeneratedPlan{})
		return
	}
	c.JSON(http.StatusOK, plans)
}

// ExportPlan handles GET /plans/:id/export: uploads the plan JSON to
// object storage and returns a presigned download URL.
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	url, err := h.planService.ExportPlan(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, "Plan not found.")
			return
		}
		log.Printf("ERROR: plan export failed: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to export plan.")
		return
	}
	c.JSON(http.StatusOK, ExportPlanResponse{DownloadURL: url})
}

// DeletePlan handles DELETE /plans/:id.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, "Plan not found.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete plan.")
		return
	}
	c.Status(http.StatusNoContent)
}

// isValidationError maps the service's input errors onto 400 responses.
func isValidationError(err error) bool {
	for _, target := range []error{
		service.ErrInvalidDate,
		service.ErrMissingDuration,
		service.ErrInvalidFrequency,
		service.ErrInvalidDistance,
		service.ErrNoAvailableDays,
		service.ErrUnknownWeekday,
		service.ErrEventBeforeStart,
		service.ErrMissingAthlete,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
