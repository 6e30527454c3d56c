package engine

import (
	"errors"
	"testing"
)

func TestComputePlanNoHistory(t *testing.T) {
	now := day(30)
	plan, err := ComputePlan(testProfile(), nil, now)
	if err != nil {
		t.Fatalf("ComputePlan: %v", err)
	}

	if plan.BMR != 1873 {
		t.Errorf("BMR = %f, want 1873", plan.BMR)
	}
	if plan.TDEE != 2904 {
		t.Errorf("TDEE = %f, want 2904", plan.TDEE)
	}
	// No history: the default 15% deficit applies.
	if plan.Calories != 2468 {
		t.Errorf("calories = %f, want 2468", plan.Calories)
	}
	if plan.AdjustmentPercent != -15 {
		t.Errorf("adjustment = %f, want -15", plan.AdjustmentPercent)
	}
	if plan.DietPhase.Current != PhaseCut {
		t.Errorf("phase = %s, want cut", plan.DietPhase.Current)
	}
	if plan.UsingActualTDEE {
		t.Error("no history cannot use actual TDEE")
	}
	if plan.CurrentRate != nil || plan.Trend != nil {
		t.Error("no history should have no rate or trend")
	}
	if plan.EntriesUsed != 0 {
		t.Errorf("entries used = %d, want 0", plan.EntriesUsed)
	}

	// Deficit protein table, moderate activity: 2.64 g/kg.
	if plan.Protein.PerKG != 2.64 {
		t.Errorf("protein per kg = %f, want 2.64", plan.Protein.PerKG)
	}
	if plan.Protein.Grams != 239 {
		t.Errorf("protein grams = %f, want 239", plan.Protein.Grams)
	}
	if plan.Fat.MinGrams != 55 || plan.Fat.MaxGrams != 69 {
		t.Errorf("fat = [%f, %f], want [55, 69]", plan.Fat.MinGrams, plan.Fat.MaxGrams)
	}
	if plan.Carbs.Min != 223 || plan.Carbs.Max != 254 {
		t.Errorf("carbs = [%f, %f], want [223, 254]", plan.Carbs.Min, plan.Carbs.Max)
	}
	if plan.TargetWeeklyKG.Min != 0.45 || plan.TargetWeeklyKG.Max != 0.68 {
		t.Errorf("target band = %+v, want 0.45-0.68", plan.TargetWeeklyKG)
	}
	if plan.TargetWeeklyLB.Min != 0.99 || plan.TargetWeeklyLB.Max != 1.5 {
		t.Errorf("target band lb = %+v, want 0.99-1.5", plan.TargetWeeklyLB)
	}
	if plan.Recomp != nil {
		t.Error("non-recomp goal must not include recomp info")
	}
}

func TestComputePlanEnergyIdentity(t *testing.T) {
	now := day(30)
	entries := []Entry{entry(0, 200), entry(7, 199), entry(14, 198), entry(21, 197.5)}

	for _, goal := range []Goal{GoalLose, GoalGain, GoalMaintain, GoalRecomp} {
		p := testProfile()
		p.Goal = goal
		plan, err := ComputePlan(p, entries, now)
		if err != nil {
			t.Fatalf("goal %s: %v", goal, err)
		}

		// Protein + fat + carbs must account for the calorie target at
		// both fat extremes (carb and fat ranges move inversely).
		proteinKcal := plan.Protein.Grams * 4
		low := proteinKcal + plan.Fat.MinGrams*9 + plan.Carbs.Max*4
		high := proteinKcal + plan.Fat.MaxGrams*9 + plan.Carbs.Min*4
		if !almost(low, plan.Calories, 9) {
			t.Errorf("goal %s: min-fat total %f != calories %f", goal, low, plan.Calories)
		}
		if !almost(high, plan.Calories, 9) {
			t.Errorf("goal %s: max-fat total %f != calories %f", goal, high, plan.Calories)
		}

		// Protein floor holds in g/kg of body weight.
		weightKG := p.WeightLB * LBToKG
		if plan.Protein.Grams/weightKG < minProteinPerKG-0.01 {
			t.Errorf("goal %s: protein %f g below %f g/kg", goal, plan.Protein.Grams, minProteinPerKG)
		}
	}
}

func TestComputePlanWithTrendUsesActualTDEE(t *testing.T) {
	now := day(30)
	// Daily consistent weigh-ins over 4 weeks, ~0.9 kg/week loss.
	var entries []Entry
	for i := 0; i <= 28; i++ {
		entries = append(entries, entry(i, 200-float64(i)*2.0/7))
	}

	plan, err := ComputePlan(testProfile(), entries, now)
	if err != nil {
		t.Fatalf("ComputePlan: %v", err)
	}
	if !plan.UsingActualTDEE {
		t.Error("4 weeks of entries should produce an actual TDEE")
	}
	if plan.TDEEDetail.Actual == nil || plan.TDEEDetail.DifferencePercent == nil {
		t.Fatal("TDEE detail incomplete")
	}
	if plan.CurrentRate == nil {
		t.Fatal("expected a current rate")
	}
	if plan.CurrentRate.KG >= 0 {
		t.Errorf("losing weight but rate = %f", plan.CurrentRate.KG)
	}
	if len(plan.WeeklyChangesKG) != len(plan.WeeklyChangesLB) {
		t.Errorf("weekly change series lengths differ: %d vs %d", len(plan.WeeklyChangesKG), len(plan.WeeklyChangesLB))
	}
}

func TestComputePlanRecompInfo(t *testing.T) {
	now := day(30)
	p := testProfile()
	p.Goal = GoalRecomp

	plan, err := ComputePlan(p, nil, now)
	if err != nil {
		t.Fatalf("ComputePlan: %v", err)
	}
	if plan.Recomp == nil {
		t.Fatal("recomp goal must include recomp info")
	}
	if plan.Calories != plan.TDEE {
		t.Errorf("recomp calories = %f, want TDEE %f", plan.Calories, plan.TDEE)
	}
	if plan.Recomp.CalorieRange.Min >= plan.Calories || plan.Recomp.CalorieRange.Max <= plan.Calories {
		t.Errorf("cycling range %+v should bracket %f", plan.Recomp.CalorieRange, plan.Calories)
	}
}

func TestComputePlanUnsafeCalories(t *testing.T) {
	now := day(30)
	// Small sedentary profile pushed to the maximum deficit by a stalled
	// loss trend: the target falls below BMR and the plan must be blocked.
	p := Profile{
		WeightLB:      130,
		HeightIn:      64,
		Age:           30,
		Sex:           SexFemale,
		ActivityLevel: ActivitySedentary,
		Goal:          GoalLose,
		Intensity:     IntensityModerate,
		PreferredUnit: UnitLB,
	}
	entries := []Entry{entry(0, 130), entry(28, 129.5)}

	_, err := ComputePlan(p, entries, now)
	var unsafeErr *UnsafeCalorieError
	if !errors.As(err, &unsafeErr) {
		t.Fatalf("expected UnsafeCalorieError, got %v", err)
	}
	if unsafeErr.Floor < MinCaloriesFemale {
		t.Errorf("floor = %f, must be at least %d", unsafeErr.Floor, MinCaloriesFemale)
	}
}

func TestComputePlanValidatesProfile(t *testing.T) {
	now := day(30)

	p := testProfile()
	p.Age = 15
	var oor *OutOfRangeError
	if _, err := ComputePlan(p, nil, now); !errors.As(err, &oor) {
		t.Fatalf("age 15: expected OutOfRangeError, got %v", err)
	}
	if oor.Field != "age" {
		t.Errorf("field = %q, want age", oor.Field)
	}

	p = testProfile()
	p.ActivityLevel = "couch"
	var ice *InvalidCategoryError
	if _, err := ComputePlan(p, nil, now); !errors.As(err, &ice) {
		t.Fatalf("expected InvalidCategoryError, got %v", err)
	}
}

func TestComputePlanCaloriesNeverBelowFloor(t *testing.T) {
	now := day(30)
	histories := [][]Entry{
		nil,
		{entry(0, 200), entry(14, 199)},
		{entry(0, 200), entry(7, 199), entry(14, 198), entry(21, 197), entry(28, 196)},
	}
	for _, goal := range []Goal{GoalLose, GoalGain, GoalMaintain, GoalRecomp} {
		for i, entries := range histories {
			p := testProfile()
			p.Goal = goal
			plan, err := ComputePlan(p, entries, now)
			if err != nil {
				t.Fatalf("goal %s history %d: %v", goal, i, err)
			}
			if plan.Calories < MinCaloriesMale || plan.Calories < plan.BMR {
				t.Errorf("goal %s history %d: calories %f below floor (bmr %f)", goal, i, plan.Calories, plan.BMR)
			}
		}
	}
}
