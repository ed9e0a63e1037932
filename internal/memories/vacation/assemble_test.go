package vacation

import (
	"testing"

	"github.com/kozaktomas/photo-memories/internal/holiday"
)

func testAssembler() SegmentAssembler {
	opts := DefaultOptions()
	return SegmentAssembler{
		Detector: testDetector(),
		Calculator: ScoreCalculator{
			Holidays:   holiday.None{},
			Catalog:    testCatalog(),
			Opts:       opts.Score,
			Thresholds: opts.Thresholds,
			Lang:       "en",
		},
	}
}

func TestAssembleBridgedGapSpansRun(t *testing.T) {
	mk := func(key string) *DaySummary {
		d := scoredDay(key, 4, 2200)
		d.ZoneName = "Europe/Lisbon"
		d.OffsetMin = 60
		d.Countries["pt"] = 4
		d.TourismHits = 3
		d.POISamples = 4
		return d
	}
	// Camera stayed in the hotel on the 13th and 14th.
	days := daySet(mk("2024-07-11"), mk("2024-07-12"), mk("2024-07-15"))

	drafts := testAssembler().Assemble(days, *pragueHome())
	if len(drafts) != 1 {
		t.Fatalf("got %d drafts, want 1", len(drafts))
	}

	params := drafts[0].Params
	if params.StartDate != "2024-07-11" || params.EndDate != "2024-07-15" {
		t.Errorf("range = %s..%s, want 2024-07-11..2024-07-15", params.StartDate, params.EndDate)
	}
	// Bridged days carry no photos and must not count as away days.
	if params.AwayDays != 3 {
		t.Errorf("away days = %d, want 3", params.AwayDays)
	}
	if params.Nights != 2 {
		t.Errorf("nights = %d, want 2", params.Nights)
	}

	// The input map stays free of synthetic entries for later reruns.
	if _, ok := days["2024-07-13"]; ok {
		t.Error("input days map gained a synthetic entry")
	}
}

func TestAssembleNoRuns(t *testing.T) {
	day := scoredDay("2024-07-11", 8, 2) // a plain home day
	if drafts := testAssembler().Assemble(daySet(day), *pragueHome()); drafts != nil {
		t.Errorf("Assemble() = %v, want nil", drafts)
	}
}
