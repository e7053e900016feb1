package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/alcyxob/runplan/internal/domain"
)

// The flat generator is the fallback for goal distances the VDOT
// engine does not cover. It is a table lookup plus a linear volume
// ramp: four distance tiers, a fixed 70/20/10 easy/moderate/intense
// split, and a taper after the peak at 80% through the plan.

type flatTier struct {
	minWeeks     int
	maxWeeks     int
	baseVolumeKm float64
}

var flatTiers = map[int]flatTier{
	5:  {minWeeks: 8, maxWeeks: 12, baseVolumeKm: 15},
	10: {minWeeks: 10, maxWeeks: 14, baseVolumeKm: 25},
	21: {minWeeks: 12, maxWeeks: 16, baseVolumeKm: 40},
	42: {minWeeks: 16, maxWeeks: 20, baseVolumeKm: 60},
}

func flatTierFor(distanceKm string) flatTier {
	dist, err := strconv.ParseFloat(distanceKm, 64)
	if err != nil {
		dist = 42
	}
	switch {
	case dist <= 5:
		return flatTiers[5]
	case dist <= 10:
		return flatTiers[10]
	case dist <= 21:
		return flatTiers[21]
	default:
		return flatTiers[42]
	}
}

// flatWeeklyVolumeKm ramps linearly to a peak at 80% through the plan,
// then tapers off 40% by the final week.
func flatWeeklyVolumeKm(baseVolume float64, week, totalWeeks, frequency int) float64 {
	progression := float64(week) / float64(totalWeeks)
	peakWeek := int(math.Floor(float64(totalWeeks) * 0.8))
	if peakWeek < 1 {
		peakWeek = 1
	}
	freqFactor := float64(frequency) / 3

	switch {
	case week < peakWeek:
		return baseVolume * (1 + progression*0.5) * freqFactor
	case week == peakWeek:
		return baseVolume * 1.5 * freqFactor
	default:
		taper := 1 - float64(week-peakWeek)/float64(totalWeeks-peakWeek)*0.4
		return baseVolume * 1.5 * taper * freqFactor
	}
}

// apportion splits n into non-negative integer counts proportional to
// ratios, summing exactly to n (largest-remainder method, earlier
// entries win ties).
func apportion(n int, ratios []float64) []int {
	counts := make([]int, len(ratios))
	remainders := make([]float64, len(ratios))
	assigned := 0
	for i, r := range ratios {
		exact := float64(n) * r
		counts[i] = int(math.Floor(exact))
		remainders[i] = exact - math.Floor(exact)
		assigned += counts[i]
	}
	order := make([]int, len(ratios))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return remainders[order[a]] > remainders[order[b]] })
	for i := 0; assigned < n; i++ {
		counts[order[i%len(order)]]++
		assigned++
	}
	return counts
}

var flatSplitRatios = []float64{0.7, 0.2, 0.1} // easy, moderate, intense

// GenerateFlatPlan builds the legacy flat-volume plan. durationWeeks 0
// means "use the tier minimum". It emits the same Plan shape as the
// VDOT engine, with empty pace zones.
func GenerateFlatPlan(objective, distanceKm string, weeklyFrequency int, availableDays []domain.Weekday, durationWeeks int, startDate time.Time) domain.Plan {
	tier := flatTierFor(distanceKm)
	totalWeeks := durationWeeks
	if totalWeeks <= 0 {
		totalWeeks = tier.minWeeks
	}
	if weeklyFrequency < 1 {
		weeklyFrequency = 1
	}

	days := distributeDays(availableDays, weeklyFrequency)
	if len(days) == 0 {
		return domain.Plan{
			Zones: domain.PaceZones{},
			NotesAndAssumptions: []string{
				"Objective: " + objective,
				"No available training days supplied; no sessions scheduled.",
			},
		}
	}
	counts := apportion(len(days), flatSplitRatios)

	workoutOrder := make([]domain.WorkoutType, 0, len(days))
	for i, wt := range []domain.WorkoutType{domain.WorkoutEasyRun, domain.WorkoutContinuous, domain.WorkoutIntervals} {
		for n := 0; n < counts[i]; n++ {
			workoutOrder = append(workoutOrder, wt)
		}
	}

	var sessions []domain.Session
	for week := 1; week <= totalWeeks; week++ {
		weekStart := startDate.AddDate(0, 0, (week-1)*7)
		volumeKm := flatWeeklyVolumeKm(tier.baseVolumeKm, week, totalWeeks, weeklyFrequency)
		perWorkoutKm := volumeKm / float64(len(days))
		duration := int(math.Round(perWorkoutKm * 6)) // ~6 min/km assumed
		distance := math.Round(perWorkoutKm*10) / 10

		for i, dayIdx := range days {
			wt := workoutOrder[i]
			var description string
			rpe := 3
			switch wt {
			case domain.WorkoutEasyRun:
				description = fmt.Sprintf("Easy run of %d min (~%gkm). Comfortable conversation.", duration, distance)
			case domain.WorkoutContinuous:
				description = fmt.Sprintf("Moderate run of %d min (~%gkm). Conversation is hard.", duration, distance)
				rpe = 5
			default:
				description = fmt.Sprintf("Intense run of %d min (~%gkm). No conversation.", duration, distance)
				rpe = 7
			}
			sessions = append(sessions, domain.Session{
				WeekNumber:      week,
				Date:            isoDate(weekStart.AddDate(0, 0, dayIdx)),
				WorkoutType:     wt,
				Description:     description,
				DurationMinutes: duration,
				DistanceKm:      km(distance),
				RPE:             rpe,
				Notes:           "Flat-volume plan: fixed 70/20/10 easy/moderate/intense split.",
			})
		}
	}

	return domain.Plan{
		Zones:    domain.PaceZones{},
		Sessions: sessions,
		NotesAndAssumptions: []string{
			"Objective: " + objective,
			fmt.Sprintf("Flat-volume heuristic plan over %d weeks, peaking at 80%% through the plan with a closing taper.", totalWeeks),
			"Goal distance outside the 15–50 km range of the pace-zone engine; no VDOT paces computed.",
		},
	}
}
