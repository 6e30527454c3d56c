package engine

import (
	"errors"
	"math"
	"testing"
)

func TestValidateMeasurements(t *testing.T) {
	tests := []struct {
		name      string
		weight    float64
		height    float64
		age       float64
		wantField string
	}{
		{"valid", 200, 70, 30, ""},
		{"weight too low", 39, 70, 30, "weight_lb"},
		{"weight too high", 701, 70, 30, "weight_lb"},
		{"height too low", 200, 35, 30, "height_in"},
		{"height too high", 200, 109, 30, "height_in"},
		{"age too low", 200, 70, 15, "age"},
		{"age too high", 200, 70, 101, "age"},
		{"age zero skips age check", 200, 70, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMeasurements(tt.weight, tt.height, tt.age)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			var oor *OutOfRangeError
			if !errors.As(err, &oor) {
				t.Fatalf("expected OutOfRangeError, got %v", err)
			}
			if oor.Field != tt.wantField {
				t.Errorf("field = %q, want %q", oor.Field, tt.wantField)
			}
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	weightKG, heightCM, err := ConvertToMetric(200, 70)
	if err != nil {
		t.Fatalf("ConvertToMetric: %v", err)
	}
	weightLB, heightIn, err := ConvertToImperial(weightKG, heightCM)
	if err != nil {
		t.Fatalf("ConvertToImperial: %v", err)
	}
	if math.Abs(weightLB-200) > 1e-6 {
		t.Errorf("weight round trip = %f, want 200", weightLB)
	}
	if math.Abs(heightIn-70) > 1e-6 {
		t.Errorf("height round trip = %f, want 70", heightIn)
	}
}

func TestConvertToMetricRejectsOutOfRange(t *testing.T) {
	if _, _, err := ConvertToMetric(30, 70); err == nil {
		t.Error("expected error for 30 lb")
	}
	if _, _, err := ConvertToMetric(200, 120); err == nil {
		t.Error("expected error for 120 in")
	}
}

func TestCategoryValidation(t *testing.T) {
	if err := ActivityLevel("extreme").Validate(); err == nil {
		t.Error("expected error for unknown activity level")
	}
	var ice *InvalidCategoryError
	if err := Unit("stones").Validate(); !errors.As(err, &ice) {
		t.Errorf("expected InvalidCategoryError, got %v", err)
	}
	if err := Goal("shred").Validate(); err == nil {
		t.Error("expected error for unknown goal")
	}
	if err := Intensity("extreme").Validate(); err == nil {
		t.Error("expected error for unknown intensity")
	}
	for _, a := range []ActivityLevel{ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive} {
		if err := a.Validate(); err != nil {
			t.Errorf("activity %s: %v", a, err)
		}
	}
}

func TestProfileNormalizeDefaults(t *testing.T) {
	p := Profile{WeightLB: 200, HeightIn: 70, Age: 30, Sex: SexMale, Goal: GoalLose}.Normalize()
	if p.ActivityLevel != ActivityModerate {
		t.Errorf("activity = %s, want moderate", p.ActivityLevel)
	}
	if p.Intensity != IntensityModerate {
		t.Errorf("intensity = %s, want moderate", p.Intensity)
	}
	if p.PreferredUnit != UnitLB {
		t.Errorf("unit = %s, want lbs", p.PreferredUnit)
	}
}
