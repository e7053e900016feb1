package engine

import (
	"fmt"
	"math"

	"github.com/alcyxob/runplan/internal/domain"
)

// paceMinPerKm converts a velocity in m/min to a pace in min/km.
func paceMinPerKm(v float64) float64 {
	return 1000 / math.Max(v, 1e-6)
}

// formatPace renders a min/km pace as "M:SS", seconds rounded to the
// nearest whole second and zero-padded.
func formatPace(minPerKm float64) string {
	totalSeconds := int(math.Round(minPerKm * 60))
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

// rangeFromSpeeds builds a pace range from a velocity band. The faster
// velocity becomes the lower (faster) pace bound.
func rangeFromSpeeds(vMin, vMax float64) domain.PaceRange {
	return domain.PaceRange{
		MinPerKm: formatPace(paceMinPerKm(vMax)),
		MaxPerKm: formatPace(paceMinPerKm(vMin)),
	}
}

// VelocityAtVDOT returns vVO2max: the velocity at which oxygen cost
// equals the fitness score.
func VelocityAtVDOT(vdot float64) float64 {
	return VelocityFromVO2(vdot)
}

// TrainingPacesFromVDOT maps a fitness score to the six A1–A6 zones.
// Percentages are the standard training-zone bands: easy running at
// 59–74% of vVO2max, threshold at the 60-minute race velocity,
// intervals at vVO2max, repetitions near 5.5-minute race velocity, and
// marathon pace from the predicted marathon time.
func TrainingPacesFromVDOT(vdot float64) domain.PaceZones {
	vVO2 := VelocityAtVDOT(vdot)

	// A2 (easy): 59–74% vVO2. A1 sits just below it.
	a2 := rangeFromSpeeds(vVO2*0.59, vVO2*0.74)
	a1 := rangeFromSpeeds(vVO2*0.50, vVO2*0.58)

	// A4 (threshold): velocity sustainable for ~60 minutes, ±2%.
	vT := PredictVelocityAtTime(vdot, 60)
	a4 := rangeFromSpeeds(vT*0.98, vT*1.02)

	// A5 (interval): vVO2max ±2%.
	a5 := rangeFromSpeeds(vVO2*0.98, vVO2*1.02)

	// A6 (repetition): ~5.5-minute race velocity, ±1.5%.
	vR := PredictVelocityAtTime(vdot, 5.5)
	a6 := rangeFromSpeeds(vR*0.985, vR*1.015)

	// A3 (marathon): velocity at the predicted marathon duration,
	// narrow ±0.5% band.
	tMarathonMin := PredictTimeForDistance(vdot, 42195) / 60
	vM := PredictVelocityAtTime(vdot, tMarathonMin)
	a3 := rangeFromSpeeds(vM*0.995, vM*1.005)

	return domain.PaceZones{A1: a1, A2: a2, A3: a3, A4: a4, A5: a5, A6: a6}
}
