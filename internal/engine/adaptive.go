package engine

import "math"

// Target weekly-change bands in kg/week.
var (
	weightLossTargets = map[Intensity]Range{
		IntensityModerate:   {Min: 0.45, Max: 0.68}, // 1-1.5 lb/week
		IntensityAggressive: {Min: 0.68, Max: 0.91}, // 1.5-2 lb/week
	}
	weightGainTargets = map[Intensity]Range{
		IntensityModerate:   {Min: 0.11, Max: 0.23}, // 0.25-0.5 lb/week
		IntensityAggressive: {Min: 0.23, Max: 0.34}, // 0.5-0.75 lb/week
	}
)

// Controller bounds. Larger deficits risk muscle loss and metabolic
// adaptation; larger surpluses just add fat.
const (
	baseDeficit          = 0.15
	baseSurplus          = 0.05
	maxDeficitAdjustment = 0.15
	maxSurplusAdjustment = 0.10
	minDeficit           = 0.10
	maxDeficit           = 0.30
	minSurplus           = 0.03
	maxSurplus           = 0.15
)

func lossTargets(i Intensity) Range {
	if band, ok := weightLossTargets[i]; ok {
		return band
	}
	return weightLossTargets[IntensityModerate]
}

func gainTargets(i Intensity) Range {
	if band, ok := weightGainTargets[i]; ok {
		return band
	}
	return weightGainTargets[IntensityModerate]
}

// AdaptiveDeficit tunes the calorie deficit toward the intensity's target
// loss band. A proportional controller: the error is the normalized
// distance from the nearest band edge, with a finer gain near the band
// and a coarser one further out, always clamped to the safety range.
func AdaptiveDeficit(entries []Entry, tr Trend, intensity Intensity) float64 {
	if len(entries) < 2 || tr.CurrentRate == nil {
		return baseDeficit
	}
	rate := *tr.CurrentRate
	band := lossTargets(intensity)

	switch {
	case rate > -band.Min: // losing slower than the minimum target
		distance := math.Abs((-band.Min - rate) / band.Min)
		adjustment := math.Min(deficitAdjustment(distance), maxDeficitAdjustment)
		return math.Min(baseDeficit+adjustment, maxDeficit)
	case rate < -band.Max: // losing faster than the maximum target
		distance := math.Abs((rate + band.Max) / band.Max)
		adjustment := math.Min(deficitAdjustment(distance), maxDeficitAdjustment)
		return math.Max(baseDeficit-adjustment, minDeficit)
	default:
		return baseDeficit
	}
}

// AdaptiveSurplus mirrors AdaptiveDeficit for gain goals, with gentler
// gains and a tighter safety range.
func AdaptiveSurplus(entries []Entry, tr Trend, intensity Intensity) float64 {
	if len(entries) < 2 || tr.CurrentRate == nil {
		return baseSurplus
	}
	rate := *tr.CurrentRate
	band := gainTargets(intensity)

	switch {
	case rate < band.Min: // gaining slower than the minimum target
		distance := math.Abs((band.Min - rate) / band.Min)
		adjustment := math.Min(surplusAdjustment(distance), maxSurplusAdjustment)
		return math.Min(baseSurplus+adjustment, maxSurplus)
	case rate > band.Max: // gaining faster than the maximum target
		distance := math.Abs((rate - band.Max) / band.Max)
		adjustment := math.Min(surplusAdjustment(distance), maxSurplusAdjustment)
		return math.Max(baseSurplus-adjustment, minSurplus)
	default:
		return baseSurplus
	}
}

func deficitAdjustment(distance float64) float64 {
	if distance < 0.2 {
		return distance * 0.2
	}
	return distance * 0.3
}

func surplusAdjustment(distance float64) float64 {
	if distance < 0.2 {
		return distance * 0.1
	}
	return distance * 0.15
}
