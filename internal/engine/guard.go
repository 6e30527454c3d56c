package engine

import "fmt"

// A new entry differing from the last one by more than this many kg needs
// explicit user confirmation. ~4.4 lb covers water shifts, refeeds,
// digestive contents, menstrual fluctuation and scale error.
const maxEntryJumpKG = 2.0

// CheckResult is the guard's verdict on a prospective weight entry.
// WeightLB is the value normalized to pounds for storage.
type CheckResult struct {
	WeightLB             float64
	ChangeKG             float64
	RequiresConfirmation bool
	Warning              string
}

// CheckNewEntry vets a prospective entry against the most recent stored
// one. A jump above the plausibility threshold is not rejected; it is
// routed back to the caller for confirmation unless confirmed is already
// set. Hard bounds are enforced regardless of confirmation.
func CheckNewEntry(weight float64, unit Unit, latest *Entry, confirmed bool) (CheckResult, error) {
	if err := unit.Validate(); err != nil {
		return CheckResult{}, err
	}

	weightLB := weight
	if unit == UnitKG {
		weightLB = weight * KGToLB
	}
	if weightLB < MinWeightLB || weightLB > MaxWeightLB {
		return CheckResult{}, &OutOfRangeError{Field: "weight_lb", Value: weightLB, Min: MinWeightLB, Max: MaxWeightLB}
	}

	res := CheckResult{WeightLB: weightLB}
	if latest == nil {
		return res, nil
	}

	res.ChangeKG = weightLB*LBToKG - latest.WeightKG()
	if absFloat(res.ChangeKG) > maxEntryJumpKG && !confirmed {
		res.RequiresConfirmation = true
		res.Warning = fmt.Sprintf(
			"Significant weight change detected (%.1f lbs). Please verify this entry is correct. "+
				"This could be due to: water weight fluctuations, post-carb refeed weight gain, "+
				"post-workout water retention, digestive system contents, menstrual cycle fluctuations, "+
				"scale calibration, or a unit conversion error.",
			absFloat(res.ChangeKG)*KGToLB)
	}
	return res, nil
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
