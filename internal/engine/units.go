// Package engine implements the adaptive macro-targeting computations:
// weight-trend extraction, TDEE estimation, diet-phase classification,
// adaptive deficit/surplus control and macro allocation. Everything here
// is a pure function over snapshots; the engine performs no I/O and
// never mutates its inputs.
package engine

// Unit conversion constants.
const (
	LBToKG   = 0.453592
	InchToCM = 2.54
	KGToLB   = 2.20462
)

// Supported measurement bounds. Values outside these ranges need medical
// supervision rather than a macro calculator.
const (
	MinWeightLB = 40
	MaxWeightLB = 700
	MinHeightIn = 36
	MaxHeightIn = 108
	MinAge      = 16
	MaxAge      = 100
)

// Minimum safe daily calories by sex.
const (
	MinCaloriesMale   = 1500
	MinCaloriesFemale = 1200
)

// Sex is the biological sex category used by the BMR formula.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func (s Sex) Validate() error {
	switch s {
	case SexMale, SexFemale:
		return nil
	}
	return &InvalidCategoryError{Field: "sex", Value: string(s), Allowed: []string{"male", "female"}}
}

// ActivityLevel keys the TDEE activity multiplier and the protein table.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

var activityLevelNames = []string{"sedentary", "light", "moderate", "active", "very_active"}

func (a ActivityLevel) Validate() error {
	if _, ok := activityMultipliers[a]; !ok {
		return &InvalidCategoryError{Field: "activity_level", Value: string(a), Allowed: activityLevelNames}
	}
	return nil
}

// Goal is the user's dietary objective.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
	GoalRecomp   Goal = "recomp"
)

func (g Goal) Validate() error {
	switch g {
	case GoalLose, GoalMaintain, GoalGain, GoalRecomp:
		return nil
	}
	return &InvalidCategoryError{Field: "goal", Value: string(g), Allowed: []string{"lose", "maintain", "gain", "recomp"}}
}

// Intensity selects the target weekly-change band.
type Intensity string

const (
	IntensityModerate   Intensity = "moderate"
	IntensityAggressive Intensity = "aggressive"
)

func (i Intensity) Validate() error {
	switch i {
	case IntensityModerate, IntensityAggressive:
		return nil
	}
	return &InvalidCategoryError{Field: "intensity", Value: string(i), Allowed: []string{"moderate", "aggressive"}}
}

// Unit is a weight display/input unit.
type Unit string

const (
	UnitLB Unit = "lbs"
	UnitKG Unit = "kg"
)

func (u Unit) Validate() error {
	switch u {
	case UnitLB, UnitKG:
		return nil
	}
	return &InvalidCategoryError{Field: "unit", Value: string(u), Allowed: []string{"lbs", "kg"}}
}

// ValidateMeasurements checks weight, height and age against the supported
// bounds. Age 0 is accepted so that pure unit conversions can reuse the
// weight/height checks.
func ValidateMeasurements(weightLB, heightIn, age float64) error {
	if weightLB < MinWeightLB || weightLB > MaxWeightLB {
		return &OutOfRangeError{Field: "weight_lb", Value: weightLB, Min: MinWeightLB, Max: MaxWeightLB}
	}
	if heightIn < MinHeightIn || heightIn > MaxHeightIn {
		return &OutOfRangeError{Field: "height_in", Value: heightIn, Min: MinHeightIn, Max: MaxHeightIn}
	}
	if age != 0 && (age < MinAge || age > MaxAge) {
		return &OutOfRangeError{Field: "age", Value: age, Min: MinAge, Max: MaxAge}
	}
	return nil
}

// ConvertToMetric converts an imperial weight/height pair to kg/cm,
// validating the imperial values first so an out-of-range profile can
// never slip through a conversion.
func ConvertToMetric(weightLB, heightIn float64) (weightKG, heightCM float64, err error) {
	if err := ValidateMeasurements(weightLB, heightIn, 0); err != nil {
		return 0, 0, err
	}
	return weightLB * LBToKG, heightIn * InchToCM, nil
}

// ConvertToImperial converts kg/cm back to lb/in and validates the result
// against the imperial bounds.
func ConvertToImperial(weightKG, heightCM float64) (weightLB, heightIn float64, err error) {
	weightLB = weightKG * KGToLB
	heightIn = heightCM / InchToCM
	if err := ValidateMeasurements(weightLB, heightIn, 0); err != nil {
		return 0, 0, err
	}
	return weightLB, heightIn, nil
}
