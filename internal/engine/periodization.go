package engine

import (
	"math"
	"time"

	"github.com/alcyxob/runplan/internal/domain"
)

const (
	loadRampPerWeek = 0.05 // flat 5% weekly increase
	cutbackDrop     = 0.10 // 10% reduction on stabilizer weeks
)

// PeriodizationArgs describe one periodization request. EventDate nil
// means "train for Weeks weeks" (default 12 when zero).
type PeriodizationArgs struct {
	StartDate         time.Time
	EventDate         *time.Time
	Weeks             int
	BaseWeeklyMinutes float64
}

const isoDateLayout = "2006-01-02"

func isoDate(t time.Time) string {
	return t.Format(isoDateLayout)
}

// weeksBetween counts whole 7-day steps from start to end.
func weeksBetween(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / 7
}

// BuildPeriodization produces the weekly skeleton: a 5%/week load ramp
// on a 3:1 microcycle (every 4th week cut back 10% and tagged
// stabilizer), and — when an event date exists — a final-four override
// sequence of shock, stabilizer, polish and competitive weeks, plus
// one trailing regenerative week after the race.
func BuildPeriodization(args PeriodizationArgs) []domain.PeriodWeek {
	totalWeeks := args.Weeks
	if args.EventDate != nil {
		totalWeeks = weeksBetween(args.StartDate, *args.EventDate) + 1
	} else if totalWeeks == 0 {
		totalWeeks = 12
	}
	if totalWeeks < 1 {
		totalWeeks = 1
	}

	base := args.BaseWeeklyMinutes
	weeks := make([]domain.PeriodWeek, 0, totalWeeks+1)

	for i := 1; i <= totalWeeks; i++ {
		wStart := args.StartDate.AddDate(0, 0, (i-1)*7)
		phase := domain.PhaseBuild
		var tag domain.WeekTag
		targetLoad := base * (1 + float64(i-1)*loadRampPerWeek)

		if i%4 == 0 {
			targetLoad *= 1 - cutbackDrop
			tag = domain.TagStabilizer
		}

		// Final four weeks replace, not compound, the generic
		// ramp/cutback handling.
		if args.EventDate != nil && totalWeeks >= 4 {
			switch totalWeeks - i {
			case 3:
				tag = domain.TagShock
				targetLoad = base * (1 + float64(i-1)*loadRampPerWeek) * 1.05
			case 2:
				tag = domain.TagStabilizer
				targetLoad = base * (1 + float64(i-1)*loadRampPerWeek) * (1 - cutbackDrop)
			case 1:
				phase = domain.PhaseTaper
				tag = domain.TagPolish
				targetLoad = base * (1 + float64(i-1)*loadRampPerWeek) * 0.7
			case 0:
				phase = domain.PhaseRace
				tag = domain.TagCompetitive
				targetLoad = math.Max(base*0.4, 120)
			}
		}

		weeks = append(weeks, domain.PeriodWeek{
			Index:      i,
			StartDate:  isoDate(wStart),
			TargetLoad: targetLoad,
			Phase:      phase,
			Tag:        tag,
		})
	}

	// One regenerative week after the race.
	if args.EventDate != nil {
		last := weeks[len(weeks)-1]
		lastStart, _ := time.Parse(isoDateLayout, last.StartDate)
		weeks = append(weeks, domain.PeriodWeek{
			Index:      len(weeks) + 1,
			StartDate:  isoDate(lastStart.AddDate(0, 0, 7)),
			TargetLoad: math.Max(base*0.3, 90),
			Phase:      domain.PhaseRegen,
		})
	}

	return weeks
}
