package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alcyxob/runplan/internal/domain"
	"github.com/alcyxob/runplan/internal/engine"
	"github.com/alcyxob/runplan/internal/repository"
	"github.com/alcyxob/runplan/internal/storage"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound     = errors.New("plan not found")
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrMissingDuration  = errors.New("plan duration is required when no event date is given")
	ErrInvalidFrequency = errors.New("weekly frequency must be at least 1")
	ErrInvalidDistance  = errors.New("goal distance must be positive")
	ErrNoAvailableDays  = errors.New("at least one available day is required")
	ErrUnknownWeekday   = errors.New("unknown weekday name")
	ErrEventBeforeStart = errors.New("event date must not precede the start date")
	ErrMissingAthlete   = errors.New("athlete id and name are required")
)

// Goal distances the VDOT engine supports; everything else routes to
// the flat generator.
const (
	engineMinDistanceKm = 15
	engineMaxDistanceKm = 50
)

const isoDateLayout = "2006-01-02"

// GeneratePlanRequest is the raw, string-typed input from the
// questionnaire/API layer. The service is the validation boundary: it
// turns this into a typed domain.AthleteInput or rejects it.
type GeneratePlanRequest struct {
	AthleteID       string
	AthleteName     string
	StartDate       string // ISO date
	EventDate       string // ISO date, optional
	DurationWeeks   int    // required when EventDate is empty
	GoalDistanceKm  float64
	WeeklyFrequency int
	AvailableDays   []string
	Experience      string
	TimeEstimates   string
	Observations    string
}

// --- Service Interface ---
type PlanService interface {
	GeneratePlan(ctx context.Context, req GeneratePlanRequest) (*domain.GeneratedPlan, error)
	GetPlan(ctx context.Context, id primitive.ObjectID) (*domain.GeneratedPlan, error)
	GetPlansByAthlete(ctx context.Context, athleteID string) ([]domain.GeneratedPlan, error)
	ExportPlan(ctx context.Context, id primitive.ObjectID) (string, error)
	DeletePlan(ctx context.Context, id primitive.ObjectID) error
}

// --- Service Implementation ---

type planService struct {
	planRepo    repository.PlanRepository
	fileStorage storage.FileStorage
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, fileStorage storage.FileStorage) PlanService {
	return &planService{
		planRepo:    planRepo,
		fileStorage: fileStorage,
	}
}

// validate turns the raw request into a typed AthleteInput. Malformed
// dates and inconsistent fields surface here; the engine below this
// boundary never errors.
func (s *planService) validate(req GeneratePlanRequest) (domain.AthleteInput, error) {
	var input domain.AthleteInput

	if req.AthleteID == "" || req.AthleteName == "" {
		return input, ErrMissingAthlete
	}
	if req.GoalDistanceKm <= 0 {
		return input, ErrInvalidDistance
	}
	if req.WeeklyFrequency < 1 {
		return input, ErrInvalidFrequency
	}
	if len(req.AvailableDays) == 0 {
		return input, ErrNoAvailableDays
	}

	startDate, err := time.Parse(isoDateLayout, req.StartDate)
	if err != nil {
		return input, fmt.Errorf("%w: start date %q", ErrInvalidDate, req.StartDate)
	}

	var eventDate *time.Time
	if req.EventDate != "" {
		parsed, err := time.Parse(isoDateLayout, req.EventDate)
		if err != nil {
			return input, fmt.Errorf("%w: event date %q", ErrInvalidDate, req.EventDate)
		}
		if parsed.Before(startDate) {
			return input, ErrEventBeforeStart
		}
		eventDate = &parsed
	} else if req.DurationWeeks < 1 {
		return input, ErrMissingDuration
	}

	days := make([]domain.Weekday, 0, len(req.AvailableDays))
	for _, raw := range req.AvailableDays {
		day, ok := domain.ParseWeekday(raw)
		if !ok {
			return input, fmt.Errorf("%w: %q", ErrUnknownWeekday, raw)
		}
		days = append(days, day)
	}

	// Fewer available days than requested frequency is a soft
	// inconsistency: the scheduler produces fewer sessions.
	if len(days) < req.WeeklyFrequency {
		log.Printf("WARN: athlete %s: %d available days for frequency %d; weeks will be short",
			req.AthleteID, len(days), req.WeeklyFrequency)
	}

	var experience domain.ExperienceLevel
	if req.Experience != "" {
		experience = domain.ParseExperienceLevel(req.Experience)
	}

	input = domain.AthleteInput{
		AthleteID:       req.AthleteID,
		AthleteName:     req.AthleteName,
		StartDate:       startDate,
		EventDate:       eventDate,
		DurationWeeks:   req.DurationWeeks,
		GoalDistanceKm:  req.GoalDistanceKm,
		WeeklyFrequency: req.WeeklyFrequency,
		AvailableDays:   days,
		Experience:      experience,
		TimeEstimates:   req.TimeEstimates,
		Observations:    req.Observations,
	}
	return input, nil
}

// GeneratePlan validates the request, routes it to the VDOT engine or
// the flat fallback generator based on goal distance, persists the
// output and returns the stored record.
func (s *planService) GeneratePlan(ctx context.Context, req GeneratePlanRequest) (*domain.GeneratedPlan, error) {
	input, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	var plan domain.Plan
	generator := "vdot"
	if input.GoalDistanceKm >= engineMinDistanceKm && input.GoalDistanceKm <= engineMaxDistanceKm {
		plan = engine.GeneratePlan(input)
	} else {
		generator = "flat"
		objective := fmt.Sprintf("Run %g km", input.GoalDistanceKm)
		plan = engine.GenerateFlatPlan(
			objective,
			fmt.Sprintf("%g", input.GoalDistanceKm),
			input.WeeklyFrequency,
			input.AvailableDays,
			input.DurationWeeks,
			input.StartDate,
		)
	}

	record := &domain.GeneratedPlan{
		AthleteID:       input.AthleteID,
		AthleteName:     input.AthleteName,
		GoalDistanceKm:  input.GoalDistanceKm,
		StartDate:       input.StartDate,
		EventDate:       input.EventDate,
		WeeklyFrequency: input.WeeklyFrequency,
		Generator:       generator,
		Plan:            plan,
	}

	id, err := s.planRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = id
	return record, nil
}

// GetPlan retrieves one stored plan.
func (s *planService) GetPlan(ctx context.Context, id primitive.ObjectID) (*domain.GeneratedPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// GetPlansByAthlete retrieves all stored plans for an athlete.
func (s *planService) GetPlansByAthlete(ctx context.Context, athleteID string) ([]domain.GeneratedPlan, error) {
	if athleteID == "" {
		return nil, ErrMissingAthlete
	}
	return s.planRepo.GetByAthleteID(ctx, athleteID)
}

// ExportPlan serializes a stored plan to JSON, uploads it to object
// storage and returns a presigned download URL.
func (s *planService) ExportPlan(ctx context.Context, id primitive.ObjectID) (string, error) {
	record, err := s.GetPlan(ctx, id)
	if err != nil {
		return "", err
	}

	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("exports/%s/%s.json", record.ID.Hex(), uuid.New().String())
	if err := s.fileStorage.UploadObject(ctx, objectKey, "application/json", payload); err != nil {
		return "", err
	}

	return s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
}

// DeletePlan removes a stored plan.
func (s *planService) DeletePlan(ctx context.Context, id primitive.ObjectID) error {
	err := s.planRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}
