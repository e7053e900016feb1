package domain

// Phase labels one periodization week.
type Phase string

const (
	PhaseBase     Phase = "base"
	PhaseBuild    Phase = "build"
	PhaseSpecific Phase = "specific"
	PhasePolish   Phase = "polish"
	PhaseTaper    Phase = "taper"
	PhaseRace     Phase = "race"
	PhaseRegen    Phase = "regen"
)

// WeekTag marks special load handling within a phase.
type WeekTag string

const (
	TagShock       WeekTag = "shock"
	TagStabilizer  WeekTag = "stabilizer"
	TagPolish      WeekTag = "polish"
	TagCompetitive WeekTag = "competitive"
)

// PeriodWeek is one calendar week of the periodization skeleton.
// Indices are contiguous from 1 and start dates are exactly 7 days
// apart. TargetLoad is in abstract minutes.
type PeriodWeek struct {
	Index      int     `json:"index"`
	StartDate  string  `json:"startDate"` // YYYY-MM-DD
	TargetLoad float64 `json:"targetLoad"`
	Phase      Phase   `json:"phase"`
	Tag        WeekTag `json:"tag,omitempty"`
}
