package engine

import (
	"math"
	"sort"
	"time"
)

// Trend analysis parameters.
const (
	periodMinDays       = 6    // flush a grouping period once its span reaches this many days
	rateDecayFactor     = 0.85 // recency weighting for the current-rate estimate
	minEntriesPerWeek   = 3.0  // weigh-in frequency considered fully reliable
	maxWeightVarianceKG = 2.0  // kg variance at which consistency is scored zero
)

// Trend is the derived view of a weight-entry window: per-period weekly
// change rates (kg/week), a recency-weighted current rate and the
// difference between the last two periods. CurrentRate and Delta are nil
// when fewer than one (resp. two) usable periods exist.
type Trend struct {
	WeeklyChanges []float64
	CurrentRate   *float64
	Delta         *float64
}

type dailyRate struct {
	date time.Time
	rate float64
}

// AnalyzeTrend builds the weekly-change series from a weight history.
// Entries are sorted by date internally; same-day pairs contribute no
// delta. Fewer than two entries yields an empty Trend.
func AnalyzeTrend(entries []Entry) Trend {
	if len(entries) < 2 {
		return Trend{}
	}

	sorted := sortedByDate(entries)

	// Per-adjacent-pair daily rates in kg/day.
	var daily []dailyRate
	for i := 1; i < len(sorted); i++ {
		days := daysBetween(sorted[i-1].Date, sorted[i].Date)
		if days == 0 {
			continue
		}
		change := (sorted[i].WeightKG() - sorted[i-1].WeightKG()) / float64(days)
		daily = append(daily, dailyRate{date: sorted[i].Date, rate: change})
	}
	if len(daily) == 0 {
		return Trend{}
	}

	// Group into flexible ~weekly periods and normalize each period's
	// mean daily rate to a 7-day-equivalent weekly rate.
	var weekly []float64
	var period []dailyRate
	periodStart := daily[0].date

	flush := func() {
		if len(period) == 0 {
			return
		}
		periodDays := daysBetween(period[0].date, period[len(period)-1].date) + 1
		sum := 0.0
		for _, p := range period {
			sum += p.rate
		}
		avg := sum / float64(len(period))
		weekly = append(weekly, avg*7/float64(periodDays))
	}

	for _, p := range daily {
		if daysBetween(periodStart, p.date) >= periodMinDays {
			flush()
			period = period[:0]
			periodStart = p.date
		}
		period = append(period, p)
	}
	flush()

	if len(weekly) == 0 {
		return Trend{}
	}

	// Recency-weighted current rate: most recent period gets the highest
	// weight, weights normalized to sum to 1.
	weights := make([]float64, len(weekly))
	total := 0.0
	for i := range weights {
		w := math.Pow(rateDecayFactor, float64(len(weekly)-1-i))
		weights[i] = w
		total += w
	}
	rate := 0.0
	for i, change := range weekly {
		rate += change * weights[i] / total
	}

	tr := Trend{WeeklyChanges: weekly, CurrentRate: &rate}
	if len(weekly) >= 2 {
		delta := weekly[len(weekly)-1] - weekly[len(weekly)-2]
		tr.Delta = &delta
	}
	return tr
}

// DataQuality scores a history window in [0, 1]: 60% weigh-in frequency
// against the 3-per-week baseline, 40% consistency (low variance of the
// kg values). Used only to weight the TDEE blend.
func DataQuality(entries []Entry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sorted := sortedByDate(entries)

	spanDays := daysBetween(sorted[0].Date, sorted[len(sorted)-1].Date) + 1
	perWeek := float64(len(sorted)) / (float64(spanDays) / 7)
	frequency := math.Min(perWeek/minEntriesPerWeek, 1)

	mean := 0.0
	for _, e := range sorted {
		mean += e.WeightKG()
	}
	mean /= float64(len(sorted))
	variance := 0.0
	for _, e := range sorted {
		d := e.WeightKG() - mean
		variance += d * d
	}
	variance /= float64(len(sorted))
	consistency := 1 - math.Min(variance/maxWeightVarianceKG, 1)

	return 0.6*frequency + 0.4*consistency
}

func sortedByDate(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// daysBetween counts whole days from a to b at day granularity.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}
