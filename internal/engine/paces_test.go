package engine

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alcyxob/runplan/internal/domain"
)

var paceFormatRe = regexp.MustCompile(`^\d+:\d{2}$`)

func zoneList(z domain.PaceZones) []domain.PaceRange {
	return []domain.PaceRange{z.A1, z.A2, z.A3, z.A4, z.A5, z.A6}
}

func TestTrainingPacesFormat(t *testing.T) {
	zones := TrainingPacesFromVDOT(50)
	for i, r := range zoneList(zones) {
		assert.Regexp(t, paceFormatRe, r.MinPerKm, "zone A%d min", i+1)
		assert.Regexp(t, paceFormatRe, r.MaxPerKm, "zone A%d max", i+1)
	}
}

func TestTrainingPacesOrdered(t *testing.T) {
	// Zones must be ordered slowest (A1) to fastest (A6): expressed as
	// pace, the midpoint min/km value decreases monotonically.
	for _, vdot := range []float64{35, 45, 55, 65} {
		zones := zoneList(TrainingPacesFromVDOT(vdot))
		for i := 1; i < len(zones); i++ {
			prev := midPace(zones[i-1])
			cur := midPace(zones[i])
			assert.GreaterOrEqual(t, prev, cur, "VDOT %.0f: zone A%d should be slower than A%d", vdot, i, i+1)
		}
	}
}

func TestTrainingPacesRangeOrientation(t *testing.T) {
	// Within each zone the min bound is the faster pace.
	zones := zoneList(TrainingPacesFromVDOT(48))
	for i, r := range zones {
		assert.LessOrEqual(t, paceStringToMinutes(r.MinPerKm), paceStringToMinutes(r.MaxPerKm), "zone A%d", i+1)
	}
}

func TestEasyZoneScenario(t *testing.T) {
	// 10k in 45:00 → easy running roughly in the 5:30–6:30 min/km
	// neighborhood.
	vdot := ComputeVDOT(10000, 2700)
	zones := TrainingPacesFromVDOT(vdot)

	fast := paceStringToMinutes(zones.A2.MinPerKm)
	slow := paceStringToMinutes(zones.A2.MaxPerKm)
	require.Less(t, fast, slow)
	assert.InDelta(t, 5.75, fast, 0.5, "fast easy bound")
	assert.InDelta(t, 6.75, slow, 0.75, "slow easy bound")
}

func TestFormatPace(t *testing.T) {
	assert.Equal(t, "5:00", formatPace(5))
	assert.Equal(t, "4:05", formatPace(4.0833))
	assert.Equal(t, "6:30", formatPace(6.5))
	// Seconds round to the nearest whole second.
	assert.Equal(t, "5:01", formatPace(5.01))
}
