package engine

import (
	"errors"
	"math"
	"testing"
)

func TestCheckNewEntryNoHistory(t *testing.T) {
	res, err := CheckNewEntry(200, UnitLB, nil, false)
	if err != nil {
		t.Fatalf("CheckNewEntry: %v", err)
	}
	if res.RequiresConfirmation {
		t.Error("first entry should never need confirmation")
	}
	if res.WeightLB != 200 {
		t.Errorf("weight = %f, want 200", res.WeightLB)
	}
}

func TestCheckNewEntryLargeJump(t *testing.T) {
	latest := entry(0, 198)

	// 198 -> 205 lb is a 3.2 kg jump.
	res, err := CheckNewEntry(205, UnitLB, &latest, false)
	if err != nil {
		t.Fatalf("CheckNewEntry: %v", err)
	}
	if !res.RequiresConfirmation {
		t.Fatal("7 lb jump should require confirmation")
	}
	if res.Warning == "" {
		t.Error("confirmation request must carry a warning")
	}
	if !almost(res.ChangeKG, 7*LBToKG, 0.001) {
		t.Errorf("change = %f kg, want %f", res.ChangeKG, 7*LBToKG)
	}

	// Resubmitting with the confirmed flag accepts the same value.
	res, err = CheckNewEntry(205, UnitLB, &latest, true)
	if err != nil {
		t.Fatalf("confirmed: %v", err)
	}
	if res.RequiresConfirmation {
		t.Error("confirmed entry should be accepted")
	}
}

func TestCheckNewEntrySmallChange(t *testing.T) {
	latest := entry(0, 198)
	res, err := CheckNewEntry(201, UnitLB, &latest, false)
	if err != nil {
		t.Fatalf("CheckNewEntry: %v", err)
	}
	if res.RequiresConfirmation {
		t.Errorf("1.4 kg change flagged: %+v", res)
	}
}

func TestCheckNewEntryKilograms(t *testing.T) {
	latest := entry(0, 198)
	res, err := CheckNewEntry(93, UnitKG, &latest, false)
	if err != nil {
		t.Fatalf("CheckNewEntry: %v", err)
	}
	if !res.RequiresConfirmation {
		t.Error("93 kg vs 198 lb is a >2 kg jump")
	}
	if math.Abs(res.WeightLB-93*KGToLB) > 0.001 {
		t.Errorf("normalized weight = %f, want %f", res.WeightLB, 93*KGToLB)
	}
}

func TestCheckNewEntryRejectsBadInput(t *testing.T) {
	var ice *InvalidCategoryError
	if _, err := CheckNewEntry(200, "stones", nil, false); !errors.As(err, &ice) {
		t.Errorf("expected InvalidCategoryError, got %v", err)
	}

	var oor *OutOfRangeError
	if _, err := CheckNewEntry(750, UnitLB, nil, true); !errors.As(err, &oor) {
		t.Errorf("expected OutOfRangeError, got %v", err)
	}
}
