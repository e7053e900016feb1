// internal/domain/generated_plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeneratedPlan is the persisted wrapper around one generator output.
// Only the output is stored; questionnaire answers live upstream.
type GeneratedPlan struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AthleteID       string             `bson:"athleteId" json:"athleteId"`
	AthleteName     string             `bson:"athleteName" json:"athleteName"`
	GoalDistanceKm  float64            `bson:"goalDistanceKm" json:"goalDistanceKm"`
	StartDate       time.Time          `bson:"startDate" json:"startDate"`
	EventDate       *time.Time         `bson:"eventDate,omitempty" json:"eventDate,omitempty"`
	WeeklyFrequency int                `bson:"weeklyFrequency" json:"weeklyFrequency"`
	Generator       string             `bson:"generator" json:"generator"` // "vdot" or "flat"
	Plan            Plan               `bson:"plan" json:"plan"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
