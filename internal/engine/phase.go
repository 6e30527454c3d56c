package engine

import (
	"math"
	"strings"
	"time"
)

// Phase classification parameters.
const (
	maxDeficitDurationDays   = 90   // sustained deficit length that forces a diet break
	maintenanceWindowDays    = 14   // recent window checked for weight stability
	adaptationRateThreshold  = 0.15 // fractional slowdown in loss rate indicating adaptation
	plateauWeeklyKG          = 0.1  // weekly change magnitude considered a plateau
	maintenanceRateFraction  = 0.2  // fraction of the minimum target rate counted as "stable"
	adaptationMinWeeklyCount = 4
)

// ClassifyPhase derives the active diet phase from goal, history and the
// trend summary. It is stateless: the same inputs always produce the same
// (phase, reason) pair, and nothing is persisted between calls.
func ClassifyPhase(p Profile, entries []Entry, tr Trend, now time.Time) (Phase, string) {
	if len(entries) < 2 {
		switch p.Goal {
		case GoalRecomp:
			return PhaseRecomp, "Initial recomp phase"
		case GoalLose:
			return PhaseCut, "Initial phase"
		default:
			return PhaseBulk, "Initial phase"
		}
	}

	sorted := sortedByDate(entries)

	if p.Goal == GoalLose || p.Goal == GoalRecomp {
		if daysBetween(sorted[0].Date, now) >= maxDeficitDurationDays {
			return PhaseDietBreak, "Extended deficit period"
		}

		if indicators := adaptationIndicators(tr.WeeklyChanges); len(indicators) > 0 {
			return PhaseDietBreak, "Metabolic adaptation detected: " + strings.Join(indicators, ", ")
		}

		if tr.CurrentRate != nil && isMaintaining(p, sorted, *tr.CurrentRate, now) {
			return PhaseMaintenance, "Weight stable within maintenance range"
		}
	}

	switch p.Goal {
	case GoalRecomp:
		return PhaseRecomp, "Active recomp phase"
	case GoalLose:
		return PhaseCut, "Active phase"
	default:
		return PhaseBulk, "Active phase"
	}
}

// adaptationIndicators checks the weekly series for signs that the body
// has adapted to the deficit: a slowing loss rate, a plateau, or rising
// variability. Needs at least four weekly points.
func adaptationIndicators(weekly []float64) []string {
	if len(weekly) < adaptationMinWeeklyCount {
		return nil
	}

	recent := weekly[len(weekly)-4:]
	initial := weekly[:4]
	recentRate := mean(recent)
	initialRate := mean(initial)

	var indicators []string

	if initialRate != 0 && recentRate/initialRate < 1-adaptationRateThreshold {
		indicators = append(indicators, "weight loss rate decreasing")
	}

	if math.Abs(weekly[len(weekly)-1]) < plateauWeeklyKG && math.Abs(weekly[len(weekly)-2]) < plateauWeeklyKG {
		indicators = append(indicators, "weight loss plateau detected")
	}

	if variance(recent) > variance(initial)*2 {
		indicators = append(indicators, "increased weight variability")
	}

	return indicators
}

// isMaintaining reports whether the current rate sits inside the
// maintenance band and the last two weeks of entries back that up.
func isMaintaining(p Profile, sorted []Entry, currentRate float64, now time.Time) bool {
	band := lossTargets(p.Intensity)
	threshold := band.Min * maintenanceRateFraction
	if math.Abs(currentRate) >= threshold {
		return false
	}

	var recent []Entry
	for _, e := range sorted {
		if daysBetween(e.Date, now) <= maintenanceWindowDays {
			recent = append(recent, e)
		}
	}
	if len(recent) < 3 {
		return false
	}
	for i := 1; i < len(recent); i++ {
		if math.Abs(recent[i].WeightKG()-recent[i-1].WeightKG()) >= threshold {
			return false
		}
	}
	return true
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func variance(xs []float64) float64 {
	m := mean(xs)
	v := 0.0
	for _, x := range xs {
		v += (x - m) * (x - m)
	}
	return v / float64(len(xs))
}
