package domain

// WorkoutType identifies one entry in the fixed workout vocabulary.
type WorkoutType string

const (
	WorkoutEasyRun     WorkoutType = "Easy Run"
	WorkoutThreshold   WorkoutType = "Threshold"
	WorkoutIntervals   WorkoutType = "Intervals"
	WorkoutFartlek     WorkoutType = "Fartlek"
	WorkoutLongRun     WorkoutType = "Long Run"
	WorkoutContinuous  WorkoutType = "Continuous"
	WorkoutProgressive WorkoutType = "Progressive"
	WorkoutTempoRun    WorkoutType = "Tempo Run"
	WorkoutTimeTrial   WorkoutType = "Time Trial"
	WorkoutRaceDay     WorkoutType = "Race Day"
)

// PaceRange is one zone's pace band in min/km. Both bounds are "M:SS"
// strings; Min is the faster bound. Empty strings mean "no zones
// available" (the no-test fallback plan).
type PaceRange struct {
	MinPerKm string `bson:"paceMinPerKm" json:"paceMinPerKm"`
	MaxPerKm string `bson:"paceMaxPerKm" json:"paceMaxPerKm"`
}

// PaceZones holds the six training zones, A1 (easiest) through A6.
type PaceZones struct {
	A1 PaceRange `bson:"a1" json:"A1"`
	A2 PaceRange `bson:"a2" json:"A2"`
	A3 PaceRange `bson:"a3" json:"A3"`
	A4 PaceRange `bson:"a4" json:"A4"`
	A5 PaceRange `bson:"a5" json:"A5"`
	A6 PaceRange `bson:"a6" json:"A6"`
}

// Session is one scheduled workout. DistanceKm is nil when a distance
// cannot be derived (no pace zones available).
type Session struct {
	WeekNumber      int         `bson:"weekNumber" json:"weekNumber"`
	Date            string      `bson:"date" json:"date"` // YYYY-MM-DD
	WorkoutType     WorkoutType `bson:"workoutType" json:"workoutType"`
	Description     string      `bson:"description" json:"description"`
	DurationMinutes int         `bson:"durationMinutes" json:"durationMinutes"`
	DistanceKm      *float64    `bson:"distanceKm,omitempty" json:"distanceKm"`
	RPE             int         `bson:"rpe" json:"rpe"`
	Notes           string      `bson:"notes" json:"notes"`
}

// Plan is the complete generator output: zones, every session across
// every week ordered by date, and the assumptions the generator made.
// A Plan is immutable once returned; regeneration replaces it whole.
type Plan struct {
	Zones               PaceZones `bson:"zones" json:"zones"`
	Sessions            []Session `bson:"sessions" json:"sessions"`
	NotesAndAssumptions []string  `bson:"notesAndAssumptions" json:"notesAndAssumptions"`
}
