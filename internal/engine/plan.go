package engine

import (
	"math"
	"time"
)

const minProteinPerKG = 1.7

// Protein multipliers in g/kg body weight, keyed by activity level. The
// deficit table applies under lose/recomp goals, where protein needs rise.
var (
	proteinMultipliers = map[ActivityLevel]float64{
		ActivitySedentary:  1.76, // 0.8 g/lb
		ActivityLight:      1.98, // 0.9 g/lb
		ActivityModerate:   2.20, // 1.0 g/lb
		ActivityActive:     2.42, // 1.1 g/lb
		ActivityVeryActive: 2.64, // 1.2 g/lb
	}
	deficitProteinMultipliers = map[ActivityLevel]float64{
		ActivitySedentary:  2.20, // 1.0 g/lb
		ActivityLight:      2.42, // 1.1 g/lb
		ActivityModerate:   2.64, // 1.2 g/lb
		ActivityActive:     2.86, // 1.3 g/lb
		ActivityVeryActive: 2.86, // 1.3 g/lb, capped
	}
)

// Fat allocation as a fraction of calories, by goal.
var fatRanges = map[Goal]Range{
	GoalLose:     {Min: 0.20, Max: 0.25},
	GoalGain:     {Min: 0.25, Max: 0.35},
	GoalMaintain: {Min: 0.25, Max: 0.35},
}

var defaultFatRange = Range{Min: 0.25, Max: 0.35}

const dietBreakCalorieBump = 1.10

// ComputePlan runs the full pipeline over a profile snapshot and its
// recent weight history (callers pass the last four weeks of entries,
// sorted or not): trend extraction, TDEE estimation and blending, phase
// classification, adaptive calorie targeting and macro allocation. It
// either returns a complete plan or a typed error, never both.
func ComputePlan(p Profile, entries []Entry, now time.Time) (*MacroPlan, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	weightKG, _, err := ConvertToMetric(p.WeightLB, p.HeightIn)
	if err != nil {
		return nil, err
	}

	tr := AnalyzeTrend(entries)

	theoretical, err := TheoreticalTDEE(p)
	if err != nil {
		return nil, err
	}
	actual, err := ActualTDEE(p, entries)
	if err != nil {
		return nil, err
	}

	quality := DataQuality(entries)
	tdee := BlendTDEE(theoretical, actual, quality)

	bmr, err := BMR(p)
	if err != nil {
		return nil, err
	}

	phase, reason := ClassifyPhase(p, entries, tr, now)

	calories := targetCalories(p, entries, tr, tdee, phase)

	if err := validateCalories(calories, bmr, p.Sex); err != nil {
		return nil, err
	}

	multiplier := proteinMultiplier(p)
	proteinGrams := weightKG * multiplier

	fatBand, ok := fatRanges[p.Goal]
	if !ok {
		fatBand = defaultFatRange
	}
	minFat := calories * fatBand.Min / 9
	maxFat := calories * fatBand.Max / 9

	// Carb and fat ranges move inversely so total calories stay fixed.
	maxCarbs := (calories - proteinGrams*4 - minFat*9) / 4
	minCarbs := (calories - proteinGrams*4 - maxFat*9) / 4
	if minCarbs < 0 {
		minCarbs = 0
	}
	if maxCarbs < 0 {
		maxCarbs = 0
	}

	plan := &MacroPlan{
		Calories: math.Round(calories),
		Protein: ProteinTarget{
			Grams:          math.Round(proteinGrams),
			PerLB:          round2(multiplier / KGToLB),
			PerKG:          round2(multiplier),
			Recommendation: proteinRecommendation(p.Goal),
		},
		Fat: FatTarget{
			MinGrams:   math.Round(minFat),
			MaxGrams:   math.Round(maxFat),
			MinPercent: math.Round(fatBand.Min * 100),
			MaxPercent: math.Round(fatBand.Max * 100),
		},
		Carbs:             Range{Min: math.Round(minCarbs), Max: math.Round(maxCarbs)},
		TDEE:              math.Round(tdee),
		BMR:               math.Round(bmr),
		AdjustmentPercent: math.Round((calories/tdee - 1) * 100),
		TDEEDetail:        tdeeDetail(theoretical, actual),
		UsingActualTDEE:   actual != nil,
		EntriesUsed:       len(entries),
		WeeklyChangesKG:   roundedSeries(tr.WeeklyChanges, round3),
		WeeklyChangesLB:   roundedSeries(tr.WeeklyChanges, func(v float64) float64 { return round2(v * KGToLB) }),
		TargetWeeklyKG:    targetBand(p),
		TargetWeeklyLB:    toLBBand(targetBand(p)),
		DietPhase:         PhaseInfo{Current: phase, Reason: reason},
	}

	if tr.CurrentRate != nil {
		plan.CurrentRate = &PairKGLB{KG: round3(*tr.CurrentRate), LB: round2(*tr.CurrentRate * KGToLB)}
	}
	if tr.Delta != nil {
		plan.Trend = &TrendInfo{
			KG:          round3(*tr.Delta),
			LB:          round2(*tr.Delta * KGToLB),
			Description: trendDescription(*tr.Delta),
		}
	}
	if p.Goal == GoalRecomp {
		plan.Recomp = &RecompInfo{
			CalorieRange:   Range{Min: math.Round(tdee * 0.9), Max: math.Round(tdee * 1.1)},
			Recommendation: "Alternate between slight deficit and surplus based on training days",
		}
	}

	return plan, nil
}

// targetCalories applies the phase override first, then the goal-based
// adaptive adjustment.
func targetCalories(p Profile, entries []Entry, tr Trend, tdee float64, phase Phase) float64 {
	switch phase {
	case PhaseDietBreak:
		// Reverse-dieting: ease calories up above maintenance.
		return tdee * dietBreakCalorieBump
	case PhaseMaintenance:
		return tdee
	}

	switch p.Goal {
	case GoalLose:
		return tdee * (1 - AdaptiveDeficit(entries, tr, p.Intensity))
	case GoalGain:
		return tdee * (1 + AdaptiveSurplus(entries, tr, p.Intensity))
	default:
		return tdee
	}
}

// validateCalories enforces the safety gate: never plan below the sex
// floor or below BMR, whichever is higher.
func validateCalories(calories, bmr float64, sex Sex) error {
	floor := float64(MinCaloriesFemale)
	if sex == SexMale {
		floor = MinCaloriesMale
	}
	if bmr > floor {
		floor = bmr
	}
	if calories < floor {
		return &UnsafeCalorieError{Calories: calories, Floor: floor}
	}
	return nil
}

func proteinMultiplier(p Profile) float64 {
	table := proteinMultipliers
	if p.Goal == GoalLose || p.Goal == GoalRecomp {
		table = deficitProteinMultipliers
	}
	m, ok := table[p.ActivityLevel]
	if !ok {
		m = minProteinPerKG
	}
	return math.Max(m, minProteinPerKG)
}

func proteinRecommendation(g Goal) string {
	if g == GoalRecomp {
		return "Alternate between slight deficit and surplus based on training days"
	}
	return "Distribute protein across 3-6 meals, with 20-40g per meal."
}

// targetBand reports the weekly-change band the controller steers toward:
// the loss band for lose goals, the gain band otherwise.
func targetBand(p Profile) Range {
	if p.Goal == GoalLose {
		return lossTargets(p.Intensity)
	}
	return gainTargets(p.Intensity)
}

func toLBBand(band Range) Range {
	return Range{Min: round2(band.Min * KGToLB), Max: round2(band.Max * KGToLB)}
}

func tdeeDetail(theoretical float64, actual *float64) TDEEDetail {
	detail := TDEEDetail{Theoretical: math.Round(theoretical)}
	if actual != nil {
		a := math.Round(*actual)
		diff := round1((*actual - theoretical) / theoretical * 100)
		detail.Actual = &a
		detail.DifferencePercent = &diff
	}
	return detail
}

func trendDescription(delta float64) string {
	switch {
	case delta > 0:
		return "accelerating"
	case delta < 0:
		return "decelerating"
	default:
		return "stable"
	}
}

func roundedSeries(xs []float64, round func(float64) float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = round(x)
	}
	return out
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
