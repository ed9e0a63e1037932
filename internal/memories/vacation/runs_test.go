package vacation

import (
	"fmt"
	"testing"
	"time"

	"github.com/kozaktomas/photo-memories/internal/memories"
)

func testDetector() RunDetector {
	opts := DefaultOptions()
	return RunDetector{
		Extender:       TransportDayExtender{TransitSpeedKmh: opts.Day.TransitSpeedKmh},
		Opts:           opts.Run,
		MinItemsPerDay: opts.Day.MinItemsPerDay,
	}
}

// summaryDay builds a bare day summary for run detection tests.
func summaryDay(key string, members int, away bool) *DaySummary {
	ts, _ := time.Parse(dateKeyLayout, key)
	return &DaySummary{
		DateKey:        key,
		Weekday:        ts.Weekday(),
		Members:        make([]memories.Photo, members),
		AwayByDistance: away,
		Countries:      map[string]int{},
		Offsets:        map[int]int{},
	}
}

func daySet(days ...*DaySummary) map[string]*DaySummary {
	out := make(map[string]*DaySummary, len(days))
	for _, d := range days {
		out[d.DateKey] = d
	}
	return out
}

func runsEqual(got []Run, want []Run) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if fmt.Sprint(got[i]) != fmt.Sprint(want[i]) {
			return false
		}
	}
	return true
}

func TestRunDetectorBridgesBoundedGaps(t *testing.T) {
	days := daySet(
		summaryDay("2024-07-01", 5, true),
		summaryDay("2024-07-02", 4, true),
		// 03 and 04 have no photos at all
		summaryDay("2024-07-05", 6, true),
	)

	got := testDetector().Detect(days)
	want := []Run{{"2024-07-01", "2024-07-02", "2024-07-03", "2024-07-04", "2024-07-05"}}
	if !runsEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

func TestRunDetectorSplitsOnLongGaps(t *testing.T) {
	days := daySet(
		summaryDay("2024-07-01", 5, true),
		summaryDay("2024-07-02", 4, true),
		// 03, 04 and 05 missing: one day past the bridge limit
		summaryDay("2024-07-06", 6, true),
	)

	got := testDetector().Detect(days)
	want := []Run{
		{"2024-07-01", "2024-07-02"},
		{"2024-07-06"},
	}
	if !runsEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

func TestRunDetectorHomeDayClosesRun(t *testing.T) {
	home := summaryDay("2024-07-03", 8, false)
	days := daySet(
		summaryDay("2024-07-01", 5, true),
		summaryDay("2024-07-02", 4, true),
		home,
		summaryDay("2024-07-04", 6, true),
	)

	got := testDetector().Detect(days)
	want := []Run{
		{"2024-07-01", "2024-07-02"},
		{"2024-07-04"},
	}
	if !runsEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

func TestRunDetectorPrependsTransportDay(t *testing.T) {
	// Arrival day: two airport shots, not enough to qualify on its own.
	arrival := summaryDay("2024-07-01", 2, false)
	arrival.HasAirportPoi = true

	days := daySet(
		arrival,
		summaryDay("2024-07-02", 5, true),
		summaryDay("2024-07-03", 4, true),
	)

	got := testDetector().Detect(days)
	want := []Run{{"2024-07-01", "2024-07-02", "2024-07-03"}}
	if !runsEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

func TestRunDetectorExtendsWithTrailingTransit(t *testing.T) {
	// Departure day: high-speed motion, only two photos.
	departure := summaryDay("2024-07-03", 2, false)
	departure.MaxSpeedKmh = 240

	days := daySet(
		summaryDay("2024-07-01", 5, true),
		summaryDay("2024-07-02", 4, true),
		departure,
	)

	got := testDetector().Detect(days)
	want := []Run{{"2024-07-01", "2024-07-02", "2024-07-03"}}
	if !runsEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

func TestRunDetectorWeakAwayDayExtendsButDoesNotOpen(t *testing.T) {
	// One away photo is too little to open a run.
	weak := summaryDay("2024-07-01", 1, true)
	days := daySet(weak)
	if got := testDetector().Detect(days); len(got) != 0 {
		t.Errorf("Detect() = %v, want no runs", got)
	}

	// The same day directly after a qualifying day extends its run.
	days = daySet(
		summaryDay("2024-06-30", 5, true),
		weak,
	)
	got := testDetector().Detect(days)
	want := []Run{{"2024-06-30", "2024-07-01"}}
	if !runsEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

func TestRunDetectorMinRunDays(t *testing.T) {
	det := testDetector()
	det.Opts.MinRunDays = 2

	days := daySet(
		summaryDay("2024-07-01", 5, true),
		summaryDay("2024-07-03", 8, false),
		summaryDay("2024-07-04", 5, true),
		summaryDay("2024-07-05", 5, true),
	)

	got := det.Detect(days)
	want := []Run{{"2024-07-04", "2024-07-05"}}
	if !runsEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

func TestRunDetectorEmptyInput(t *testing.T) {
	if got := testDetector().Detect(nil); got != nil {
		t.Errorf("Detect(nil) = %v, want nil", got)
	}
}
