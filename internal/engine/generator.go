package engine

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/alcyxob/runplan/internal/domain"
)

const (
	// Weekly baseline when the athlete supplied no usable time trial.
	fallbackWeeklyMinutes = 240

	// Focus bias threshold: a short/long VDOT gap above this marks an
	// endurance or speed imbalance.
	focusVDOTGap = 0.5
)

var labelKmRe = regexp.MustCompile(`(?i)([0-9]+(?:\.[0-9]+)?)k`)

func labelKm(label string) (float64, bool) {
	m := labelKmRe.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	kmVal, err := strconv.ParseFloat(m[1], 64)
	return kmVal, err == nil
}

// deriveFocus compares the best short-distance (≤10 km) score against
// the best long-distance (≥21 km) score. Strong endurance relative to
// speed means speed needs work, and vice versa.
func deriveFocus(samples []VDOTSample) domain.Focus {
	bestShort, bestLong := math.NaN(), math.NaN()
	for _, s := range samples {
		kmVal, ok := labelKm(s.Label)
		if !ok {
			continue
		}
		if kmVal <= 10 && (math.IsNaN(bestShort) || s.VDOT > bestShort) {
			bestShort = s.VDOT
		}
		if kmVal >= 21 && (math.IsNaN(bestLong) || s.VDOT > bestLong) {
			bestLong = s.VDOT
		}
	}
	if math.IsNaN(bestShort) || math.IsNaN(bestLong) {
		return domain.FocusBalanced
	}
	if bestLong > bestShort+focusVDOTGap {
		return domain.FocusSpeed
	}
	if bestShort > bestLong+focusVDOTGap {
		return domain.FocusEndurance
	}
	return domain.FocusBalanced
}

// GeneratePlan assembles the complete plan: fitness extraction, pace
// zones, periodization, week-by-week scheduling, the race-day session
// and the assumption notes. It never fails for missing performance
// data — that path produces the conservative fallback plan instead.
func GeneratePlan(input domain.AthleteInput) domain.Plan {
	vdot, samples, ok := BestVDOTFromText(input.TimeEstimates)
	if !ok {
		return fallbackPlan(input)
	}

	zones := TrainingPacesFromVDOT(vdot)

	// Baseline weekly minutes from frequency and goal distance.
	baseMinutes := math.Round(float64(input.WeeklyFrequency)*60 + input.GoalDistanceKm*2)
	baseMinutes = math.Max(180, math.Min(600, baseMinutes))

	period := BuildPeriodization(PeriodizationArgs{
		StartDate:         input.StartDate,
		EventDate:         input.EventDate,
		Weeks:             input.DurationWeeks,
		BaseWeeklyMinutes: baseMinutes,
	})

	focus := deriveFocus(samples)

	var sessions []domain.Session
	for _, w := range period {
		weekStart, _ := time.Parse(isoDateLayout, w.StartDate)
		sessions = append(sessions, BuildWeekSessions(WeekArgs{
			WeekNumber:      w.Index,
			WeekStart:       weekStart,
			TargetMinutes:   int(math.Round(w.TargetLoad)),
			Zones:           zones,
			AvailableDays:   input.AvailableDays,
			WeeklyFrequency: input.WeeklyFrequency,
			GoalDistanceKm:  input.GoalDistanceKm,
			Phase:           w.Phase,
			Tag:             w.Tag,
			Focus:           focus,
		})...)
	}

	if input.EventDate != nil {
		raceWeek := weeksBetween(input.StartDate, *input.EventDate) + 1
		avgA3 := midPace(zones.A3)
		sessions = append(sessions, domain.Session{
			WeekNumber:      raceWeek,
			Date:            isoDate(*input.EventDate),
			WorkoutType:     domain.WorkoutRaceDay,
			Description:     fmt.Sprintf("Target race %g km. Hold A3 for most of the distance; touches of A4 in the closing stages as tolerated.", input.GoalDistanceKm),
			DurationMinutes: int(math.Round(input.GoalDistanceKm * avgA3)),
			DistanceKm:      km(input.GoalDistanceKm),
			RPE:             9,
			Notes:           "Plan logistics, hydration and pacing strategy. Race week carries polish and reduced volume.",
		})
	}

	provenance := ""
	for i, s := range samples {
		if i > 0 {
			provenance += "; "
		}
		provenance += fmt.Sprintf("%s: VDOT≈%.1f", s.Label, s.VDOT)
	}

	notes := []string{
		"VDOT source: " + provenance,
		"Microcycle structure applied: 3 ordinary weeks + 1 stabilizer; final sequence: shock → stabilizer → polish → competitive; post-race: regenerative.",
		"Volume cut rules: 5–15% on stabilizer weeks; additional reduction during polish/competitive.",
	}
	if input.Observations != "" {
		notes = append(notes, "Athlete observations: "+input.Observations)
	}
	if input.Experience != "" {
		notes = append(notes, "Declared level: "+string(input.Experience))
	}

	return domain.Plan{Zones: zones, Sessions: sessions, NotesAndAssumptions: notes}
}

// fallbackPlan is the conservative fixed-structure plan used when no
// race sample could be parsed: an easy/fartlek/long-run triad per week
// with no pace prescriptions. Zones are emitted as empty strings so
// the output shape stays stable.
func fallbackPlan(input domain.AthleteInput) domain.Plan {
	period := BuildPeriodization(PeriodizationArgs{
		StartDate:         input.StartDate,
		EventDate:         input.EventDate,
		Weeks:             input.DurationWeeks,
		BaseWeeklyMinutes: fallbackWeeklyMinutes,
	})

	var sessions []domain.Session
	for _, w := range period {
		weekStart, _ := time.Parse(isoDateLayout, w.StartDate)
		longMinutes := 60 + (w.Index-1)*5
		if longMinutes > 90 {
			longMinutes = 90
		}
		sessions = append(sessions,
			domain.Session{
				WeekNumber:      w.Index,
				Date:            isoDate(weekStart.AddDate(0, 0, 1)),
				WorkoutType:     domain.WorkoutEasyRun,
				Description:     "Easy run 40–50 min (A2).",
				DurationMinutes: 45,
				RPE:             3,
				Notes:           "No recent test. A 5k/10k time trial is recommended to compute paces.",
			},
			domain.Session{
				WeekNumber:      w.Index,
				Date:            isoDate(weekStart.AddDate(0, 0, 4)),
				WorkoutType:     domain.WorkoutFartlek,
				Description:     "Light fartlek: 6x(2' strong / 2' easy).",
				DurationMinutes: 45,
				RPE:             6,
				Notes:           "No specific paces until a test is available.",
			},
			domain.Session{
				WeekNumber:      w.Index,
				Date:            isoDate(weekStart.AddDate(0, 0, 6)),
				WorkoutType:     domain.WorkoutLongRun,
				Description:     "Conversational long run 60–90 min.",
				DurationMinutes: longMinutes,
				RPE:             4,
				Notes:           "Increase gradually, never above 10%/week.",
			},
		)
	}

	return domain.Plan{
		Zones:    domain.PaceZones{},
		Sessions: sessions,
		NotesAndAssumptions: []string{
			"No valid test detected. Request a 5k/10k time trial to compute VDOT and A1–A6 paces.",
			"3:1 microcycle applied with stabilizer weeks.",
		},
	}
}
