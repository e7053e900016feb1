package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alcyxob/runplan/internal/domain"
)

// WeekArgs carries everything the scheduler needs to lay out one week.
// The scheduler is stateless: the same arguments always produce the
// same sessions.
type WeekArgs struct {
	WeekNumber      int
	WeekStart       time.Time
	TargetMinutes   int
	Zones           domain.PaceZones
	AvailableDays   []domain.Weekday
	WeeklyFrequency int
	GoalDistanceKm  float64
	Phase           domain.Phase
	Tag             domain.WeekTag
	Focus           domain.Focus
}

const (
	keySessionMinMinutes = 35
	keySessionMaxMinutes = 65
	easyRunMinMinutes    = 35
	easyRunMaxMinutes    = 70
)

// chooseLongRunDay prefers Sunday, then Saturday, then the latest
// available weekday.
func chooseLongRunDay(available []domain.Weekday) int {
	hasDay := func(idx int) bool {
		for _, d := range available {
			if d.Index() == idx {
				return true
			}
		}
		return false
	}
	if hasDay(6) {
		return 6
	}
	if hasDay(5) {
		return 5
	}
	latest := 6
	for i, d := range available {
		if idx := d.Index(); i == 0 || idx > latest {
			latest = idx
		}
	}
	return latest
}

// distributeDays picks up to count distinct day indices, preserving
// weekday order. No randomization: deterministic for the same input.
func distributeDays(available []domain.Weekday, count int) []int {
	idxs := make([]int, 0, len(available))
	seen := make(map[int]bool)
	for _, d := range available {
		if idx := d.Index(); idx >= 0 && !seen[idx] {
			idxs = append(idxs, idx)
			seen[idx] = true
		}
	}
	sort.Ints(idxs)
	if len(idxs) > count {
		idxs = idxs[:count]
	}
	return idxs
}

func paceStringToMinutes(s string) float64 {
	parts := strings.SplitN(s, ":", 2)
	m, _ := strconv.Atoi(parts[0])
	sec := 0
	if len(parts) == 2 {
		sec, _ = strconv.Atoi(parts[1])
	}
	return float64(m) + float64(sec)/60
}

func midPace(r domain.PaceRange) float64 {
	return (paceStringToMinutes(r.MinPerKm) + paceStringToMinutes(r.MaxPerKm)) / 2
}

func minutesForDistanceKm(distanceKm, paceMinPerKm float64) int {
	return int(math.Round(distanceKm * paceMinPerKm))
}

// distanceFromMinutes converts a block duration into kilometers using
// the zone's midpoint pace, rounded to 0.1 km.
func distanceFromMinutes(minutes float64, zone domain.PaceRange) float64 {
	pace := midPace(zone)
	if pace <= 0 {
		return 0
	}
	return math.Round(minutes/pace*10) / 10
}

func km(v float64) *float64 { return &v }

type plannedDay struct {
	idx         int
	workoutType domain.WorkoutType
	minutes     int
}

// BuildWeekSessions converts one week's load target into placed
// sessions: a long run (Sunday-preferred), one key quality session at
// least two days earlier when the availability allows it, and easy
// runs on the remaining chosen days. Sessions come back sorted by
// date.
func BuildWeekSessions(args WeekArgs) []domain.Session {
	chosen := distributeDays(args.AvailableDays, args.WeeklyFrequency)
	if len(chosen) == 0 {
		return nil
	}
	longDay := chooseLongRunDay(args.AvailableDays)

	// Long run distance: smoothed progression capped at a peak
	// fraction of the goal distance. Stabilizer weeks hold the
	// progression at the previous week: with easy runs capped, a
	// still-growing long run would out-schedule the loading week the
	// cutback is supposed to recover from.
	peakFraction := 0.85
	if args.GoalDistanceKm > 30 {
		peakFraction = 0.8
	}
	longPeakKm := math.Round(args.GoalDistanceKm * peakFraction)
	progressionWeek := args.WeekNumber
	if args.Tag == domain.TagStabilizer && progressionWeek > 1 {
		progressionWeek--
	}
	longKm := math.Max(10, math.Min(longPeakKm, math.Round(8+float64(progressionWeek-1)*1.2)))
	a2Mid := midPace(args.Zones.A2)
	longMin := minutesForDistanceKm(longKm, a2Mid)

	longIdx := chosen[len(chosen)-1]
	for _, d := range chosen {
		if d == longDay {
			longIdx = longDay
			break
		}
	}

	// Only chosen day: the long run absorbs the whole target.
	if len(chosen) == 1 {
		absorbedKm := distanceFromMinutes(float64(args.TargetMinutes), args.Zones.A2)
		return []domain.Session{longRunSession(args, longIdx, args.TargetMinutes, absorbedKm)}
	}

	remaining := math.Max(0, float64(args.TargetMinutes-longMin))
	easyShare := 0.6
	switch args.Focus {
	case domain.FocusEndurance:
		easyShare = 0.7
	case domain.FocusSpeed:
		easyShare = 0.5
	}
	qualityMin := remaining - math.Round(remaining*easyShare)

	keyType := domain.WorkoutThreshold
	switch {
	case args.Phase == domain.PhaseBase:
		keyType = domain.WorkoutFartlek
	case args.Phase == domain.PhasePolish || args.Phase == domain.PhaseTaper:
		keyType = domain.WorkoutTempoRun
	}
	if args.Focus == domain.FocusSpeed && (args.Phase == domain.PhaseBuild || args.Phase == domain.PhaseSpecific) {
		keyType = domain.WorkoutIntervals
	}

	keyShare := 0.6
	if args.Focus == domain.FocusSpeed {
		keyShare = 0.7
	}
	keyMin := int(math.Max(keySessionMinMinutes, math.Min(keySessionMaxMinutes,
		math.Round(math.Max(qualityMin*keyShare, 40)))))

	// Place the key session at least two days before the long run when
	// the chosen days permit; otherwise fall back to the earliest.
	keyIdx := chosen[0]
	for _, d := range chosen {
		if longIdx-d >= 2 {
			keyIdx = d
			break
		}
	}

	dayPlan := []plannedDay{
		{idx: longIdx, workoutType: domain.WorkoutLongRun, minutes: longMin},
	}
	if keyIdx != longIdx {
		dayPlan = append(dayPlan, plannedDay{idx: keyIdx, workoutType: keyType, minutes: keyMin})
	}

	// Remaining chosen days become easy runs, splitting whatever is
	// left of the weekly target. Days whose share would fall under the
	// 35-minute floor are dropped rather than emitted as token runs.
	used := make(map[int]bool, len(dayPlan))
	usedMinutes := 0
	for _, dp := range dayPlan {
		used[dp.idx] = true
		usedMinutes += dp.minutes
	}
	var easyDays []int
	for _, d := range chosen {
		if !used[d] {
			easyDays = append(easyDays, d)
		}
	}
	easyBudget := args.TargetMinutes - usedMinutes
	for len(easyDays) > 0 {
		perEasy := easyBudget / len(easyDays)
		if perEasy >= easyRunMinMinutes {
			if perEasy > easyRunMaxMinutes {
				perEasy = easyRunMaxMinutes
			}
			for _, d := range easyDays {
				dayPlan = append(dayPlan, plannedDay{idx: d, workoutType: domain.WorkoutEasyRun, minutes: perEasy})
			}
			break
		}
		easyDays = easyDays[:len(easyDays)-1]
	}

	sessions := make([]domain.Session, 0, len(dayPlan))
	for _, dp := range dayPlan {
		if dp.workoutType == domain.WorkoutLongRun {
			sessions = append(sessions, longRunSession(args, dp.idx, dp.minutes, longKm))
			continue
		}
		sessions = append(sessions, prescribeSession(args, dp))
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Date < sessions[j].Date })
	return sessions
}

const sessionNotes = "Maintain form, hydration and recovery. Keep at least 48h between hard sessions."

func sessionDate(weekStart time.Time, dayIdx int) string {
	return isoDate(weekStart.AddDate(0, 0, dayIdx))
}

// longRunSession builds the long run prescription. In the specific and
// polish phases the run finishes with a marathon-pace block (75% easy,
// 25% marathon pace).
func longRunSession(args WeekArgs, dayIdx, minutes int, longKm float64) domain.Session {
	s := domain.Session{
		WeekNumber:      args.WeekNumber,
		Date:            sessionDate(args.WeekStart, dayIdx),
		WorkoutType:     domain.WorkoutLongRun,
		DurationMinutes: minutes,
		Notes:           sessionNotes,
	}
	z := args.Zones
	if args.Phase == domain.PhaseSpecific || args.Phase == domain.PhasePolish {
		a3Part := int(math.Round(float64(minutes) * 0.25))
		a2Part := minutes - a3Part
		s.Description = fmt.Sprintf("Long run: %d min in A2 (%s–%s min/km) + %d min in A3 (%s–%s min/km)",
			a2Part, z.A2.MinPerKm, z.A2.MaxPerKm, a3Part, z.A3.MinPerKm, z.A3.MaxPerKm)
		s.RPE = 5
		s.DistanceKm = km(math.Round((distanceFromMinutes(float64(a2Part), z.A2)+distanceFromMinutes(float64(a3Part), z.A3))*10) / 10)
		return s
	}
	s.Description = fmt.Sprintf("Long run %g km in A2 (%s–%s min/km).", longKm, z.A2.MinPerKm, z.A2.MaxPerKm)
	s.RPE = 4
	s.DistanceKm = km(longKm)
	return s
}

// prescribeSession writes the textual prescription for everything that
// is not a long run.
func prescribeSession(args WeekArgs, dp plannedDay) domain.Session {
	z := args.Zones
	s := domain.Session{
		WeekNumber:      args.WeekNumber,
		Date:            sessionDate(args.WeekStart, dp.idx),
		WorkoutType:     dp.workoutType,
		DurationMinutes: dp.minutes,
		Notes:           sessionNotes,
	}

	switch dp.workoutType {
	case domain.WorkoutThreshold, domain.WorkoutTempoRun:
		// Warm-up / main block / cool-down at 25%/50%/25%.
		wu := int(math.Min(15, math.Round(float64(dp.minutes)*0.25)))
		main := int(math.Max(15, math.Round(float64(dp.minutes)*0.5)))
		cd := dp.minutes - wu - main
		if cd < 10 {
			cd = 10
		}
		s.Description = fmt.Sprintf("Warm-up: %d min in A2 (%s–%s)\nMain block: %d min in A4 (%s–%s)\nCool-down: %d min in A2 (%s–%s)",
			wu, z.A2.MinPerKm, z.A2.MaxPerKm, main, z.A4.MinPerKm, z.A4.MaxPerKm, cd, z.A2.MinPerKm, z.A2.MaxPerKm)
		s.RPE = 7
		s.DistanceKm = km(math.Round((distanceFromMinutes(float64(wu), z.A2)+distanceFromMinutes(float64(main), z.A4)+distanceFromMinutes(float64(cd), z.A2))*10) / 10)

	case domain.WorkoutFartlek:
		const wu, cd, reps, on, off = 12, 10, 6, 2, 2
		s.Description = fmt.Sprintf("Warm-up: %d min in A2 (%s–%s)\nRepeat %dx: %d min in A4 (%s–%s) / %d min in A1–A2\nCool-down: %d min in A2",
			wu, z.A2.MinPerKm, z.A2.MaxPerKm, reps, on, z.A4.MinPerKm, z.A4.MaxPerKm, off, cd)
		s.RPE = 6
		s.DistanceKm = km(math.Round((distanceFromMinutes(wu, z.A2)+distanceFromMinutes(reps*on, z.A4)+distanceFromMinutes(reps*off, z.A2)+distanceFromMinutes(cd, z.A2))*10) / 10)

	case domain.WorkoutIntervals:
		const wu, cd, reps, on, off = 15, 10, 5, 3, 2
		s.Description = fmt.Sprintf("Warm-up: %d min in A2\nRepeat %dx: %d min in A5 (%s–%s) / %d min in A1–A2\nCool-down: %d min in A2",
			wu, reps, on, z.A5.MinPerKm, z.A5.MaxPerKm, off, cd)
		s.RPE = 8
		s.DistanceKm = km(math.Round((distanceFromMinutes(wu, z.A2)+distanceFromMinutes(reps*on, z.A5)+distanceFromMinutes(reps*off, z.A2)+distanceFromMinutes(cd, z.A2))*10) / 10)

	case domain.WorkoutEasyRun:
		s.Description = fmt.Sprintf("Easy run %d min in A2 (%s–%s).", dp.minutes, z.A2.MinPerKm, z.A2.MaxPerKm)
		s.RPE = 3
		s.DistanceKm = km(distanceFromMinutes(float64(dp.minutes), z.A2))

	case domain.WorkoutContinuous, domain.WorkoutProgressive:
		s.Description = fmt.Sprintf("%s %d min alternating between A2 and A3 (%s–%s / %s–%s).",
			dp.workoutType, dp.minutes, z.A2.MinPerKm, z.A2.MaxPerKm, z.A3.MinPerKm, z.A3.MaxPerKm)
		s.RPE = 5
		s.DistanceKm = km(math.Round((distanceFromMinutes(float64(dp.minutes)*0.6, z.A2)+distanceFromMinutes(float64(dp.minutes)*0.4, z.A3))*10) / 10)

	default:
		s.Description = fmt.Sprintf("%s %d min.", dp.workoutType, dp.minutes)
		s.RPE = 5
	}

	return s
}
