package engine

import (
	"math"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func entry(n int, weightLB float64) Entry {
	return Entry{Date: day(n), WeightLB: weightLB}
}

func almost(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestAnalyzeTrendTooFewEntries(t *testing.T) {
	for _, entries := range [][]Entry{nil, {entry(0, 200)}} {
		tr := AnalyzeTrend(entries)
		if len(tr.WeeklyChanges) != 0 || tr.CurrentRate != nil || tr.Delta != nil {
			t.Errorf("expected empty trend for %d entries", len(entries))
		}
	}
}

func TestAnalyzeTrendSameDayOnly(t *testing.T) {
	tr := AnalyzeTrend([]Entry{entry(0, 200), entry(0, 201)})
	if len(tr.WeeklyChanges) != 0 || tr.CurrentRate != nil {
		t.Error("same-day pairs should produce no usable deltas")
	}
}

func TestAnalyzeTrendWeeklyEntries(t *testing.T) {
	// Weigh-ins exactly one week apart, steady 2 lb/week loss.
	tr := AnalyzeTrend([]Entry{entry(0, 200), entry(7, 198), entry(14, 196)})

	if len(tr.WeeklyChanges) != 2 {
		t.Fatalf("weekly changes = %d, want 2", len(tr.WeeklyChanges))
	}
	want := -2 * LBToKG // -0.907 kg/week
	for i, change := range tr.WeeklyChanges {
		if !almost(change, want, 0.001) {
			t.Errorf("weekly change[%d] = %f, want %f", i, change, want)
		}
	}
	if tr.CurrentRate == nil || !almost(*tr.CurrentRate, want, 0.001) {
		t.Errorf("current rate = %v, want %f", tr.CurrentRate, want)
	}
	if tr.Delta == nil || !almost(*tr.Delta, 0, 1e-9) {
		t.Errorf("delta = %v, want 0", tr.Delta)
	}
}

func TestAnalyzeTrendRecencyWeighting(t *testing.T) {
	// Loss slowing down: the weighted rate must sit between the two
	// weekly values and closer to the most recent one.
	tr := AnalyzeTrend([]Entry{entry(0, 200), entry(7, 198), entry(14, 197.5)})
	if tr.CurrentRate == nil {
		t.Fatal("expected a current rate")
	}
	first, last := tr.WeeklyChanges[0], tr.WeeklyChanges[1]
	rate := *tr.CurrentRate
	if rate <= first || rate >= last {
		t.Fatalf("rate %f not between %f and %f", rate, first, last)
	}
	if math.Abs(rate-last) >= math.Abs(rate-first) {
		t.Errorf("rate %f should be closer to the recent change %f than to %f", rate, last, first)
	}
	if tr.Delta == nil || *tr.Delta <= 0 {
		t.Errorf("slowing loss should have positive delta, got %v", tr.Delta)
	}
}

func TestAnalyzeTrendSeriesGrows(t *testing.T) {
	entries := []Entry{entry(0, 200)}
	prevLen := 0
	for week := 1; week <= 6; week++ {
		entries = append(entries, entry(week*7, 200-float64(week)))
		got := len(AnalyzeTrend(entries).WeeklyChanges)
		if got < prevLen {
			t.Fatalf("series shrank from %d to %d at week %d", prevLen, got, week)
		}
		prevLen = got
	}
	if prevLen < 2 {
		t.Errorf("expected at least 2 weekly changes after 6 weeks, got %d", prevLen)
	}
}

func TestDataQuality(t *testing.T) {
	if q := DataQuality(nil); q != 0 {
		t.Errorf("empty history quality = %f, want 0", q)
	}

	// Frequent, consistent entries score high.
	var good []Entry
	for i := 0; i < 14; i++ {
		good = append(good, entry(i, 200-0.1*float64(i)))
	}
	if q := DataQuality(good); q < 0.9 {
		t.Errorf("daily consistent entries quality = %f, want >= 0.9", q)
	}

	// Sparse, erratic entries score low: 3 entries over 3 weeks with
	// 10 lb swings.
	bad := []Entry{entry(0, 200), entry(10, 210), entry(20, 200)}
	if q := DataQuality(bad); !almost(q, 0.2, 0.01) {
		t.Errorf("sparse erratic quality = %f, want ~0.2", q)
	}

	if q := DataQuality(good); q > 1 || q < 0 {
		t.Errorf("quality %f outside [0,1]", q)
	}
}
