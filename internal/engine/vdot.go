// Package engine implements the training-plan generator: VDOT
// physiology, A1–A6 pace zones, periodization and week scheduling.
// The package is a pure computation — no I/O, no shared state — so
// concurrent generation calls are safe by construction.
//
// VDOT math follows Daniels' published formulas (widely cited):
//
//	VO2 (ml/kg/min) = -4.60 + 0.182258*v + 0.000104*v^2, v in m/min
//	%VO2max at duration t (min) ≈ 0.8 + 0.1894393*e^(-0.012778*t) + 0.2989558*e^(-0.1932605*t)
package engine

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/alcyxob/runplan/internal/domain"
)

var (
	clockRe      = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)
	hoursRe      = regexp.MustCompile(`([0-9]+)\s*h`)
	minutesRe    = regexp.MustCompile(`([0-9]+)\s*m`)
	secondsRe    = regexp.MustCompile(`([0-9]+)\s*s`)
	bareNumberRe = regexp.MustCompile(`^\d+$`)
	distTokenRe  = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*(km|k)`)
	// Time-ish token inside a lookahead window: "45:00", "1:40:30",
	// "1h40m30s", "45m", "45min", "3600s".
	timeTokenRe = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}(?::\d{2})?|\d+\s*h(?:\s*\d+\s*m(?:\s*\d+\s*s)?)?|\d+\s*m(?:in)?|\d+\s*s)`)
)

// timeStringToSeconds parses "45:00", "1:40:30", "1h40m30s", "90min",
// "3600s" or a bare number (≥10 means minutes, <10 seconds). Returns
// false for anything else, including tokens that add up to zero.
func timeStringToSeconds(s string) (int, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(s))

	if clockRe.MatchString(trimmed) {
		parts := strings.Split(trimmed, ":")
		total := 0
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				return 0, false
			}
			total = total*60 + n
		}
		if total == 0 {
			return 0, false
		}
		return total, true
	}

	h := hoursRe.FindStringSubmatch(trimmed)
	m := minutesRe.FindStringSubmatch(trimmed)
	sec := secondsRe.FindStringSubmatch(trimmed)
	if h != nil || m != nil || sec != nil {
		total := 0
		if h != nil {
			n, _ := strconv.Atoi(h[1])
			total += n * 3600
		}
		if m != nil {
			n, _ := strconv.Atoi(m[1])
			total += n * 60
		}
		if sec != nil {
			n, _ := strconv.Atoi(sec[1])
			total += n
		}
		if total == 0 {
			return 0, false
		}
		return total, true
	}

	if bareNumberRe.MatchString(trimmed) {
		n, err := strconv.Atoi(trimmed)
		if err != nil || n == 0 {
			return 0, false
		}
		if n >= 10 {
			return n * 60, true
		}
		return n, true
	}

	return 0, false
}

// parseDistanceKmToken matches tokens like "5k", "10km", "21.1k",
// "42.195km" and returns the distance in kilometers.
func parseDistanceKmToken(token string) (float64, bool) {
	m := distTokenRe.FindStringSubmatch(strings.ToLower(token))
	if m == nil {
		return 0, false
	}
	km, err := strconv.ParseFloat(m[1], 64)
	if err != nil || km <= 0 {
		return 0, false
	}
	return km, true
}

// ParseRaceSamples scans free-form text for "<dist>k[m]" tokens
// followed by a time-ish token within the next five words. This is a
// best-effort heuristic: malformed or ambiguous input yields no sample
// rather than an error.
func ParseRaceSamples(text string) []domain.RaceSample {
	if text == "" {
		return nil
	}
	tokens := strings.Fields(text)
	var samples []domain.RaceSample
	for i, tok := range tokens {
		distKm, ok := parseDistanceKmToken(tok)
		if !ok {
			continue
		}
		end := i + 6
		if end > len(tokens) {
			end = len(tokens)
		}
		window := strings.Join(tokens[i+1:end], " ")
		candidate := timeTokenRe.FindString(window)
		if candidate == "" {
			continue
		}
		secs, ok := timeStringToSeconds(candidate)
		if !ok || secs <= 0 {
			continue
		}
		samples = append(samples, domain.RaceSample{
			DistanceMeters: distKm * 1000,
			TimeSeconds:    float64(secs),
			Label:          fmt.Sprintf("%gk", distKm),
		})
	}
	return samples
}

// VO2FromVelocity converts a running velocity (m/min) into an oxygen
// cost (ml/kg/min).
func VO2FromVelocity(v float64) float64 {
	return -4.6 + 0.182258*v + 0.000104*v*v
}

// VelocityFromVO2 inverts VO2FromVelocity via the quadratic formula.
// The discriminant is clamped at zero so extreme inputs saturate
// instead of producing NaN.
func VelocityFromVO2(vo2 float64) float64 {
	const (
		a = 0.000104
		b = 0.182258
	)
	c := -(vo2 + 4.6)
	disc := b*b - 4*a*c
	return (-b + math.Sqrt(math.Max(disc, 0))) / (2 * a)
}

// PercentVO2AtTime gives the fraction of VO2max sustainable for a race
// of t minutes. Longer efforts sustain a smaller fraction.
func PercentVO2AtTime(tMinutes float64) float64 {
	return 0.8 + 0.1894393*math.Exp(-0.012778*tMinutes) + 0.2989558*math.Exp(-0.1932605*tMinutes)
}

// ComputeVDOT derives the fitness score from one race performance.
// Both arguments must be positive; the caller is responsible for
// rejecting degenerate values upstream.
func ComputeVDOT(distanceMeters, timeSeconds float64) float64 {
	tMin := timeSeconds / 60
	v := distanceMeters / timeSeconds * 60 // m/min
	return VO2FromVelocity(v) / PercentVO2AtTime(tMin)
}

// PredictVelocityAtTime returns the velocity (m/min) an athlete with
// the given VDOT can sustain for t minutes.
func PredictVelocityAtTime(vdot, tMinutes float64) float64 {
	return VelocityFromVO2(vdot * PercentVO2AtTime(tMinutes))
}

// PredictTimeForDistance solves for the race time (seconds) at a given
// distance. There is no closed form because velocity depends on
// duration, so it bisects over a 3–360 minute window; 40 iterations
// converge well under a second.
func PredictTimeForDistance(vdot, distanceMeters float64) float64 {
	lo, hi := 3.0, 360.0 // minutes
	for i := 0; i < 40; i++ {
		mid := (lo + hi) / 2
		d := PredictVelocityAtTime(vdot, mid) * mid
		if d > distanceMeters {
			hi = mid
		} else {
			lo = mid
		}
	}
	return (lo + hi) / 2 * 60
}

// VDOTSample pairs a parsed race label with its computed score.
type VDOTSample struct {
	Label string
	VDOT  float64
}

// BestVDOTFromText parses every race sample out of the free text,
// scores each, and returns the maximum plus the full list sorted by
// score descending. ok is false when nothing parsed — an expected
// outcome (athlete gave no time estimates), not an error.
func BestVDOTFromText(text string) (best float64, samples []VDOTSample, ok bool) {
	raw := ParseRaceSamples(text)
	if len(raw) == 0 {
		return 0, nil, false
	}
	samples = make([]VDOTSample, 0, len(raw))
	for _, s := range raw {
		samples = append(samples, VDOTSample{Label: s.Label, VDOT: ComputeVDOT(s.DistanceMeters, s.TimeSeconds)})
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].VDOT > samples[j].VDOT })
	return samples[0].VDOT, samples, true
}
