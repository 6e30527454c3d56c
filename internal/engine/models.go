package engine

import "time"

// Profile is a read-only snapshot of the user's body profile. Weight and
// height are stored imperial; all computations convert to metric.
type Profile struct {
	WeightLB      float64
	HeightIn      float64
	Age           int
	Sex           Sex
	ActivityLevel ActivityLevel
	Goal          Goal
	Intensity     Intensity
	PreferredUnit Unit
}

// Normalize fills optional fields with their documented defaults.
func (p Profile) Normalize() Profile {
	if p.ActivityLevel == "" {
		p.ActivityLevel = ActivityModerate
	}
	if p.Intensity == "" {
		p.Intensity = IntensityModerate
	}
	if p.PreferredUnit == "" {
		p.PreferredUnit = UnitLB
	}
	return p
}

// Validate checks measurements and every enumerated field.
func (p Profile) Validate() error {
	if err := ValidateMeasurements(p.WeightLB, p.HeightIn, float64(p.Age)); err != nil {
		return err
	}
	if err := p.Sex.Validate(); err != nil {
		return err
	}
	if err := p.ActivityLevel.Validate(); err != nil {
		return err
	}
	if err := p.Goal.Validate(); err != nil {
		return err
	}
	if err := p.Intensity.Validate(); err != nil {
		return err
	}
	return p.PreferredUnit.Validate()
}

// Entry is one dated weight measurement. Weight is stored in pounds
// regardless of the unit it was entered in; Date has day granularity.
type Entry struct {
	Date     time.Time
	WeightLB float64
}

// WeightKG returns the entry weight in kilograms.
func (e Entry) WeightKG() float64 {
	return e.WeightLB * LBToKG
}

// Phase is the classified diet regime. It is re-derived from history on
// every computation, never stored.
type Phase string

const (
	PhaseCut         Phase = "cut"
	PhaseMaintenance Phase = "maintenance"
	PhaseDietBreak   Phase = "diet_break"
	PhaseBulk        Phase = "bulk"
	PhaseDeload      Phase = "deload"
	PhaseRecomp      Phase = "recomp"
)

// Range is an inclusive numeric band.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ProteinTarget describes the protein allocation.
type ProteinTarget struct {
	Grams          float64 `json:"grams"`
	PerLB          float64 `json:"per_lb"`
	PerKG          float64 `json:"per_kg"`
	Recommendation string  `json:"recommendation"`
}

// FatTarget is the fat gram range plus the percent-of-calories band it
// was derived from.
type FatTarget struct {
	MinGrams   float64 `json:"min"`
	MaxGrams   float64 `json:"max"`
	MinPercent float64 `json:"min_percent"`
	MaxPercent float64 `json:"max_percent"`
}

// TDEEDetail reports how expenditure was estimated.
type TDEEDetail struct {
	Theoretical       float64  `json:"theoretical"`
	Actual            *float64 `json:"actual,omitempty"`
	DifferencePercent *float64 `json:"difference_percent,omitempty"`
}

// PairKGLB carries the same value in both units.
type PairKGLB struct {
	KG float64 `json:"kg"`
	LB float64 `json:"lb"`
}

// TrendInfo is the weekly-change trend with a descriptive label.
type TrendInfo struct {
	KG          float64 `json:"kg"`
	LB          float64 `json:"lb"`
	Description string  `json:"description"`
}

// PhaseInfo is the active diet phase and why it was chosen.
type PhaseInfo struct {
	Current Phase  `json:"current"`
	Reason  string `json:"reason"`
}

// RecompInfo is the calorie-cycling advisory for recomposition goals.
type RecompInfo struct {
	CalorieRange   Range  `json:"calorie_range"`
	Recommendation string `json:"recommendation"`
}

// MacroPlan is the engine's sole output: a value object regenerated on
// demand, with no identity of its own.
type MacroPlan struct {
	Calories          float64       `json:"calories"`
	Protein           ProteinTarget `json:"protein"`
	Fat               FatTarget     `json:"fat"`
	Carbs             Range         `json:"carbs"`
	TDEE              float64       `json:"tdee"`
	BMR               float64       `json:"bmr"`
	AdjustmentPercent float64       `json:"adjustment_percentage"`
	TDEEDetail        TDEEDetail    `json:"tdee_detail"`
	UsingActualTDEE   bool          `json:"using_actual_tdee"`
	EntriesUsed       int           `json:"weight_entries_used"`
	WeeklyChangesKG   []float64     `json:"weekly_changes_kg"`
	WeeklyChangesLB   []float64     `json:"weekly_changes_lb"`
	CurrentRate       *PairKGLB     `json:"current_rate,omitempty"`
	Trend             *TrendInfo    `json:"trend,omitempty"`
	TargetWeeklyKG    Range         `json:"target_weekly_change_kg"`
	TargetWeeklyLB    Range         `json:"target_weekly_change_lb"`
	DietPhase         PhaseInfo     `json:"diet_phase"`
	Recomp            *RecompInfo   `json:"recomp_info,omitempty"`
}
