package engine

// Energy density of body tissue: roughly 7700 kcal per kg of change.
const caloriesPerKG = 7700

// Flat intake assumptions used when backing out actual expenditure from
// the weight trend. These deliberately do not track the adaptive
// deficit/surplus computed elsewhere; the original behavior is preserved
// as a known approximation.
const (
	assumedDeficit = 0.15
	assumedSurplus = 0.05
)

// Actual TDEE is clamped to within this fraction of theoretical.
const maxTDEEDeviation = 0.3

// TDEE blending: below this quality score the theoretical estimate
// dominates the blend.
const (
	qualityTrustThreshold = 0.7
	blendTheoreticalShare = 0.7
	blendActualShare      = 0.3
)

// BMR computes basal metabolic rate via Mifflin-St Jeor.
func BMR(p Profile) (float64, error) {
	if err := ValidateMeasurements(p.WeightLB, p.HeightIn, float64(p.Age)); err != nil {
		return 0, err
	}
	weightKG, heightCM, err := ConvertToMetric(p.WeightLB, p.HeightIn)
	if err != nil {
		return 0, err
	}

	bmr := 10*weightKG + 6.25*heightCM - 5*float64(p.Age)
	if p.Sex == SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	if bmr <= 0 {
		return 0, &InvalidResultError{What: "BMR", Value: bmr}
	}
	return bmr, nil
}

// TheoreticalTDEE is BMR scaled by the activity multiplier.
func TheoreticalTDEE(p Profile) (float64, error) {
	bmr, err := BMR(p)
	if err != nil {
		return 0, err
	}
	if err := p.ActivityLevel.Validate(); err != nil {
		return 0, err
	}
	tdee := bmr * activityMultipliers[p.ActivityLevel]
	if tdee <= 0 {
		return 0, &InvalidResultError{What: "TDEE", Value: tdee}
	}
	return tdee, nil
}

// ActualTDEE backs expenditure out of the observed first-to-last weight
// change: assumed intake minus the daily calorie equivalent of the weekly
// change rate. Returns nil (not an error) when the history is too thin:
// fewer than 2 entries or under 2 weeks of span.
func ActualTDEE(p Profile, entries []Entry) (*float64, error) {
	if len(entries) < 2 {
		return nil, nil
	}

	sorted := sortedByDate(entries)
	first, last := sorted[0], sorted[len(sorted)-1]

	if err := ValidateMeasurements(first.WeightLB, p.HeightIn, 0); err != nil {
		return nil, err
	}
	if err := ValidateMeasurements(last.WeightLB, p.HeightIn, 0); err != nil {
		return nil, err
	}

	weeks := float64(daysBetween(first.Date, last.Date)) / 7
	if weeks < 2 {
		return nil, nil
	}

	weeklyChangeKG := (last.WeightKG() - first.WeightKG()) / weeks

	theoretical, err := TheoreticalTDEE(p)
	if err != nil {
		return nil, err
	}

	intake := theoretical
	switch p.Goal {
	case GoalLose:
		intake *= 1 - assumedDeficit
	case GoalGain:
		intake *= 1 + assumedSurplus
	}

	actual := intake - weeklyChangeKG*caloriesPerKG/7
	if actual <= 0 {
		return nil, &InvalidResultError{What: "actual TDEE", Value: actual}
	}

	// Cap the deviation from theoretical: individual variation is real,
	// but a short noisy window must not swing the estimate by more than 30%.
	maxDiff := theoretical * maxTDEEDeviation
	if actual > theoretical+maxDiff {
		actual = theoretical + maxDiff
	} else if actual < theoretical-maxDiff {
		actual = theoretical - maxDiff
	}
	return &actual, nil
}

// BlendTDEE picks the expenditure estimate to plan against. Poor-quality
// history biases toward the formula; otherwise the observed estimate wins
// when available.
func BlendTDEE(theoretical float64, actual *float64, quality float64) float64 {
	if actual != nil && quality < qualityTrustThreshold {
		return theoretical*blendTheoreticalShare + *actual*blendActualShare
	}
	if actual != nil {
		return *actual
	}
	return theoretical
}
