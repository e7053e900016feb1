package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alcyxob/runplan/internal/domain"
	"github.com/alcyxob/runplan/internal/repository"
)

// --- In-memory stubs ---

type stubPlanRepo struct {
	plans map[primitive.ObjectID]*domain.GeneratedPlan
}

func newStubPlanRepo() *stubPlanRepo {
	return &stubPlanRepo{plans: make(map[primitive.ObjectID]*domain.GeneratedPlan)}
}

func (r *stubPlanRepo) Create(ctx context.Context, plan *domain.GeneratedPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now().UTC()
	plan.UpdatedAt = plan.CreatedAt
	r.plans[plan.ID] = plan
	return plan.ID, nil
}

func (r *stubPlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GeneratedPlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return plan, nil
}

func (r *stubPlanRepo) GetByAthleteID(ctx context.Context, athleteID string) ([]domain.GeneratedPlan, error) {
	var out []domain.GeneratedPlan
	for _, p := range r.plans {
		if p.AthleteID == athleteID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPlanRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

type stubStorage struct {
	objects map[string][]byte
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: make(map[string][]byte)}
}

func (s *stubStorage) UploadObject(ctx context.Context, objectKey, contentType string, body []byte) error {
	s.objects[objectKey] = body
	return nil
}

func (s *stubStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/%s", objectKey), nil
}

func (s *stubStorage) DeleteObject(ctx context.Context, objectKey string) error {
	delete(s.objects, objectKey)
	return nil
}

func newTestService() (PlanService, *stubPlanRepo, *stubStorage) {
	repo := newStubPlanRepo()
	store := newStubStorage()
	return NewPlanService(repo, store), repo, store
}

func validRequest() GeneratePlanRequest {
	return GeneratePlanRequest{
		AthleteID:       "ath-1",
		AthleteName:     "Test Athlete",
		StartDate:       "2026-03-02",
		DurationWeeks:   12,
		GoalDistanceKm:  21,
		WeeklyFrequency: 4,
		AvailableDays:   []string{"Tuesday", "Thursday", "Saturday", "Sunday"},
		TimeEstimates:   "10k em 45:00",
	}
}

// --- Tests ---

func TestGeneratePlanPersistsRecord(t *testing.T) {
	svc, repo, _ := newTestService()
	record, err := svc.GeneratePlan(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, primitive.NilObjectID, record.ID)
	assert.Equal(t, "vdot", record.Generator)
	assert.NotEmpty(t, record.Plan.Sessions)
	assert.Len(t, repo.plans, 1)
}

func TestGeneratePlanRoutesToFlatGenerator(t *testing.T) {
	svc, _, _ := newTestService()
	for _, dist := range []float64{5, 10, 14.9, 50.1, 100} {
		req := validRequest()
		req.GoalDistanceKm = dist
		record, err := svc.GeneratePlan(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "flat", record.Generator, "distance %.1f", dist)
	}
	for _, dist := range []float64{15, 21, 42.2, 50} {
		req := validRequest()
		req.GoalDistanceKm = dist
		record, err := svc.GeneratePlan(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "vdot", record.Generator, "distance %.1f", dist)
	}
}

func TestGeneratePlanValidation(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name    string
		mutate  func(*GeneratePlanRequest)
		wantErr error
	}{
		{"bad start date", func(r *GeneratePlanRequest) { r.StartDate = "03/02/2026" }, ErrInvalidDate},
		{"bad event date", func(r *GeneratePlanRequest) { r.EventDate = "next sunday" }, ErrInvalidDate},
		{"event before start", func(r *GeneratePlanRequest) { r.EventDate = "2026-01-01" }, ErrEventBeforeStart},
		{"no duration without event", func(r *GeneratePlanRequest) { r.DurationWeeks = 0 }, ErrMissingDuration},
		{"zero frequency", func(r *GeneratePlanRequest) { r.WeeklyFrequency = 0 }, ErrInvalidFrequency},
		{"no days", func(r *GeneratePlanRequest) { r.AvailableDays = nil }, ErrNoAvailableDays},
		{"bad weekday", func(r *GeneratePlanRequest) { r.AvailableDays = []string{"Funday"} }, ErrUnknownWeekday},
		{"zero distance", func(r *GeneratePlanRequest) { r.GoalDistanceKm = 0 }, ErrInvalidDistance},
		{"missing athlete", func(r *GeneratePlanRequest) { r.AthleteID = "" }, ErrMissingAthlete},
	}
	for _, tt := range tests {
		req := validRequest()
		tt.mutate(&req)
		_, err := svc.GeneratePlan(context.Background(), req)
		assert.ErrorIs(t, err, tt.wantErr, tt.name)
	}
}

func TestGeneratePlanExperienceNormalized(t *testing.T) {
	svc, _, _ := newTestService()

	req := validRequest()
	req.Experience = " Advanced "
	record, err := svc.GeneratePlan(context.Background(), req)
	require.NoError(t, err)
	joined := strings.Join(record.Plan.NotesAndAssumptions, "\n")
	assert.Contains(t, joined, "Declared level: advanced")

	// Out-of-vocabulary levels degrade to "unknown" instead of erroring.
	req = validRequest()
	req.Experience = "weekend warrior"
	record, err = svc.GeneratePlan(context.Background(), req)
	require.NoError(t, err)
	joined = strings.Join(record.Plan.NotesAndAssumptions, "\n")
	assert.Contains(t, joined, "Declared level: unknown")
}

func TestGeneratePlanEventDateSkipsDuration(t *testing.T) {
	svc, _, _ := newTestService()
	req := validRequest()
	req.DurationWeeks = 0
	req.EventDate = "2026-06-07"
	record, err := svc.GeneratePlan(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, record.EventDate)
}

func TestGetPlanNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.GetPlan(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestExportPlan(t *testing.T) {
	svc, _, store := newTestService()
	record, err := svc.GeneratePlan(context.Background(), validRequest())
	require.NoError(t, err)

	url, err := svc.ExportPlan(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Contains(t, url, "https://storage.test/exports/")
	assert.Len(t, store.objects, 1)
}

func TestDeletePlan(t *testing.T) {
	svc, repo, _ := newTestService()
	record, err := svc.GeneratePlan(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeletePlan(context.Background(), record.ID))
	assert.Empty(t, repo.plans)
	assert.ErrorIs(t, svc.DeletePlan(context.Background(), record.ID), ErrPlanNotFound)
}
