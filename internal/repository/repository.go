package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alcyxob/runplan/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// PlanRepository defines the interface for stored generated plans.
// Only generator output is persisted; questionnaire answers live in
// the upstream system.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.GeneratedPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GeneratedPlan, error)
	GetByAthleteID(ctx context.Context, athleteID string) ([]domain.GeneratedPlan, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
