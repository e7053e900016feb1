package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alcyxob/runplan/internal/domain"
)

var testZones = TrainingPacesFromVDOT(45)

func weekArgs() WeekArgs {
	return WeekArgs{
		WeekNumber:      1,
		WeekStart:       date(2026, 3, 2), // a Monday
		TargetMinutes:   300,
		Zones:           testZones,
		AvailableDays:   []domain.Weekday{domain.Tuesday, domain.Thursday, domain.Saturday, domain.Sunday},
		WeeklyFrequency: 4,
		GoalDistanceKm:  21,
		Phase:           domain.PhaseBuild,
		Focus:           domain.FocusBalanced,
	}
}

func sessionsByType(sessions []domain.Session, wt domain.WorkoutType) []domain.Session {
	var out []domain.Session
	for _, s := range sessions {
		if s.WorkoutType == wt {
			out = append(out, s)
		}
	}
	return out
}

func weekdayOf(isoDate string) time.Weekday {
	d, _ := time.Parse("2006-01-02", isoDate)
	return d.Weekday()
}

func TestBuildWeekSessionsLayout(t *testing.T) {
	sessions := BuildWeekSessions(weekArgs())
	require.Len(t, sessions, 4)

	longRuns := sessionsByType(sessions, domain.WorkoutLongRun)
	require.Len(t, longRuns, 1, "exactly one long run per week")
	assert.Equal(t, time.Sunday, weekdayOf(longRuns[0].Date))

	keys := sessionsByType(sessions, domain.WorkoutThreshold)
	require.Len(t, keys, 1, "exactly one key session per week")
	assert.Equal(t, time.Tuesday, weekdayOf(keys[0].Date))

	easies := sessionsByType(sessions, domain.WorkoutEasyRun)
	assert.Len(t, easies, 2)

	// Sorted by date ascending.
	for i := 1; i < len(sessions); i++ {
		assert.Less(t, sessions[i-1].Date, sessions[i].Date)
	}
}

func TestBuildWeekSessionsKeySpacing(t *testing.T) {
	sessions := BuildWeekSessions(weekArgs())
	longRun := sessionsByType(sessions, domain.WorkoutLongRun)[0]
	key := sessionsByType(sessions, domain.WorkoutThreshold)[0]

	longDate, _ := time.Parse("2006-01-02", longRun.Date)
	keyDate, _ := time.Parse("2006-01-02", key.Date)
	gap := longDate.Sub(keyDate).Hours() / 24
	assert.GreaterOrEqual(t, gap, 2.0, "key session at least two days before the long run")
}

func TestBuildWeekSessionsNeverExceedsFrequency(t *testing.T) {
	args := weekArgs()
	for freq := 1; freq <= 7; freq++ {
		args.WeeklyFrequency = freq
		sessions := BuildWeekSessions(args)
		assert.LessOrEqual(t, len(sessions), freq, "frequency %d", freq)
		assert.LessOrEqual(t, len(sessions), len(args.AvailableDays))
	}
}

func TestBuildWeekSessionsFewerDaysThanFrequency(t *testing.T) {
	args := weekArgs()
	args.AvailableDays = []domain.Weekday{domain.Wednesday, domain.Sunday}
	args.WeeklyFrequency = 5
	sessions := BuildWeekSessions(args)
	// The frequency is a target, not a guarantee.
	assert.LessOrEqual(t, len(sessions), 2)
}

func TestBuildWeekSessionsSingleDayAbsorbsTarget(t *testing.T) {
	args := weekArgs()
	args.AvailableDays = []domain.Weekday{domain.Sunday}
	args.WeeklyFrequency = 1
	sessions := BuildWeekSessions(args)
	require.Len(t, sessions, 1)
	assert.Equal(t, domain.WorkoutLongRun, sessions[0].WorkoutType)
	assert.Equal(t, args.TargetMinutes, sessions[0].DurationMinutes)
}

func TestBuildWeekSessionsNoAvailableDays(t *testing.T) {
	args := weekArgs()
	args.AvailableDays = nil
	assert.Empty(t, BuildWeekSessions(args))
}

func TestBuildWeekSessionsNoZeroMinuteSessions(t *testing.T) {
	args := weekArgs()
	// A tight target would underflow the easy-run remainder; those days
	// must be dropped, never emitted as zero-minute sessions.
	args.TargetMinutes = 120
	sessions := BuildWeekSessions(args)
	for _, s := range sessions {
		assert.Positive(t, s.DurationMinutes, "session on %s", s.Date)
	}
}

func TestBuildWeekSessionsKeyTypeByPhase(t *testing.T) {
	tests := []struct {
		phase domain.Phase
		focus domain.Focus
		want  domain.WorkoutType
	}{
		{domain.PhaseBase, domain.FocusBalanced, domain.WorkoutFartlek},
		{domain.PhaseBuild, domain.FocusBalanced, domain.WorkoutThreshold},
		{domain.PhaseTaper, domain.FocusBalanced, domain.WorkoutTempoRun},
		{domain.PhasePolish, domain.FocusBalanced, domain.WorkoutTempoRun},
		{domain.PhaseBuild, domain.FocusSpeed, domain.WorkoutIntervals},
		{domain.PhaseSpecific, domain.FocusSpeed, domain.WorkoutIntervals},
	}
	for _, tt := range tests {
		args := weekArgs()
		args.Phase = tt.phase
		args.Focus = tt.focus
		sessions := BuildWeekSessions(args)
		assert.Len(t, sessionsByType(sessions, tt.want), 1, "phase %s focus %s", tt.phase, tt.focus)
	}
}

func TestBuildWeekSessionsKeyDurationClamped(t *testing.T) {
	args := weekArgs()
	args.TargetMinutes = 600
	sessions := BuildWeekSessions(args)
	key := sessionsByType(sessions, domain.WorkoutThreshold)[0]
	assert.GreaterOrEqual(t, key.DurationMinutes, 35)
	assert.LessOrEqual(t, key.DurationMinutes, 65)
}

func TestBuildWeekSessionsLongRunProgression(t *testing.T) {
	args := weekArgs()
	var prevKm float64
	for week := 1; week <= 8; week++ {
		args.WeekNumber = week
		sessions := BuildWeekSessions(args)
		longRun := sessionsByType(sessions, domain.WorkoutLongRun)[0]
		require.NotNil(t, longRun.DistanceKm)
		assert.GreaterOrEqual(t, *longRun.DistanceKm, 10.0, "long run floors at 10 km")
		assert.LessOrEqual(t, *longRun.DistanceKm, 21*0.85+0.5, "long run capped at peak fraction")
		assert.GreaterOrEqual(t, *longRun.DistanceKm, prevKm, "long run never shrinks")
		prevKm = *longRun.DistanceKm
	}
}

func TestBuildWeekSessionsStabilizerHoldsLongRun(t *testing.T) {
	loading := weekArgs()
	loading.WeekNumber = 3
	loading.TargetMinutes = 310

	cutback := weekArgs()
	cutback.WeekNumber = 4
	cutback.TargetMinutes = 279 // 10% below the loading week
	cutback.Tag = domain.TagStabilizer

	loadingLong := sessionsByType(BuildWeekSessions(loading), domain.WorkoutLongRun)[0]
	cutbackSessions := BuildWeekSessions(cutback)
	cutbackLong := sessionsByType(cutbackSessions, domain.WorkoutLongRun)[0]

	// The stabilizer week reuses the loading week's long-run distance
	// instead of advancing the progression.
	assert.Equal(t, *loadingLong.DistanceKm, *cutbackLong.DistanceKm)

	total := 0
	for _, s := range cutbackSessions {
		total += s.DurationMinutes
	}
	loadingTotal := 0
	for _, s := range BuildWeekSessions(loading) {
		loadingTotal += s.DurationMinutes
	}
	assert.Less(t, total, loadingTotal, "cutback week schedules less than the loading week")
}

func TestBuildWeekSessionsSaturdayFallback(t *testing.T) {
	args := weekArgs()
	args.AvailableDays = []domain.Weekday{domain.Monday, domain.Wednesday, domain.Saturday}
	args.WeeklyFrequency = 3
	sessions := BuildWeekSessions(args)
	longRun := sessionsByType(sessions, domain.WorkoutLongRun)[0]
	assert.Equal(t, time.Saturday, weekdayOf(longRun.Date))
}
