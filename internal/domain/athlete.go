package domain

import (
	"strings"
	"time"
)

// ExperienceLevel as declared by the athlete. Advisory only: it is
// echoed into the plan notes, never used to gate generation.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceUnknown      ExperienceLevel = "unknown"
)

// ParseExperienceLevel normalizes a declared level. Anything outside
// the vocabulary maps to ExperienceUnknown rather than failing.
func ParseExperienceLevel(s string) ExperienceLevel {
	switch level := ExperienceLevel(strings.ToLower(strings.TrimSpace(s))); level {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return level
	}
	return ExperienceUnknown
}

// Focus biases the weekly schedule toward the athlete's weaker side,
// derived by comparing short-distance and long-distance fitness scores.
type Focus string

const (
	FocusSpeed     Focus = "speed"
	FocusEndurance Focus = "endurance"
	FocusBalanced  Focus = "balanced"
)

// RaceSample is a single race performance parsed from free text.
// Ephemeral: it exists only inside one generation call.
type RaceSample struct {
	DistanceMeters float64
	TimeSeconds    float64
	Label          string // e.g. "10k"
}

// AthleteInput is the fully-validated, strongly-typed input to the plan
// generator. Presence/format checks happen at the service boundary; the
// engine trusts every field here.
type AthleteInput struct {
	AthleteID       string
	AthleteName     string
	StartDate       time.Time
	EventDate       *time.Time // nil when training without a target race
	DurationWeeks   int        // used only when EventDate is nil
	GoalDistanceKm  float64    // 15–50 for the advanced engine
	WeeklyFrequency int
	AvailableDays   []Weekday
	Experience      ExperienceLevel // empty when not declared
	TimeEstimates   string          // free text, e.g. "10k em 45:00"
	Observations    string
}
