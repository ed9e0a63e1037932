package vacation

import (
	"testing"
	"time"

	"github.com/kozaktomas/photo-memories/internal/geo"
	"github.com/kozaktomas/photo-memories/internal/holiday"
	"github.com/kozaktomas/photo-memories/internal/memories"
)

func testCalculator() ScoreCalculator {
	opts := DefaultOptions()
	return ScoreCalculator{
		Holidays:   holiday.None{},
		Catalog:    testCatalog(),
		Opts:       opts.Score,
		Thresholds: opts.Thresholds,
		Lang:       "en",
	}
}

// scoredDay builds a day summary with enough structure for scoring.
func scoredDay(key string, members int, maxKm float64) *DaySummary {
	ts, _ := time.Parse(dateKeyLayout, key)
	photos := make([]memories.Photo, members)
	for i := range photos {
		photos[i] = memories.Photo{ID: key + "-" + string(rune('a'+i)), TakenAt: ts}
	}
	return &DaySummary{
		DateKey:        key,
		Weekday:        ts.Weekday(),
		Members:        photos,
		MaxDistanceKm:  maxKm,
		AwayByDistance: maxKm > DefaultOptions().Day.AwayDistanceKm,
		Countries:      map[string]int{},
		Offsets:        map[int]int{},
		BaseLocation:   geo.Point{Lat: 50, Lon: 14},
	}
}

func TestBuildDraftBelowMinScoreYieldsNothing(t *testing.T) {
	// A 20 km radius with no tourism signal never reaches the floor.
	day := scoredDay("2024-06-05", 4, 20)
	run := Run{day.DateKey}

	if draft := testCalculator().BuildDraft(run, daySet(day), *pragueHome()); draft != nil {
		t.Errorf("BuildDraft() = %+v, want nil", draft)
	}
}

func TestBuildDraftClassification(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		setup func(map[string]*DaySummary)
		want  string
	}{
		{
			name: "touristic saturday stays a day trip",
			keys: []string{"2024-06-08"}, // Saturday
			setup: func(days map[string]*DaySummary) {
				d := days["2024-06-08"]
				d.MaxDistanceKm = 70
				d.AwayByDistance = true
				d.TourismHits = 4
				d.POISamples = 4
			},
			want: ClassDayTrip,
		},
		{
			name: "touristic weekend becomes a short trip",
			keys: []string{"2024-06-08", "2024-06-09"},
			setup: func(days map[string]*DaySummary) {
				for _, d := range days {
					d.MaxDistanceKm = 120
					d.AwayByDistance = true
					d.TourismHits = 3
					d.POISamples = 4
				}
			},
			want: ClassShortTrip,
		},
		{
			name: "long foreign run becomes a vacation",
			keys: []string{"2024-07-11", "2024-07-12", "2024-07-13", "2024-07-14", "2024-07-15"},
			setup: func(days map[string]*DaySummary) {
				for _, d := range days {
					d.MaxDistanceKm = 2200
					d.AwayByDistance = true
					d.TourismHits = 3
					d.POISamples = 5
					d.Countries["pt"] = len(d.Members)
				}
			},
			want: ClassVacation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := make(map[string]*DaySummary)
			for _, key := range tt.keys {
				days[key] = scoredDay(key, 4, 0)
			}
			tt.setup(days)

			draft := testCalculator().BuildDraft(Run(tt.keys), days, *pragueHome())
			if draft == nil {
				t.Fatal("BuildDraft() = nil, want a draft")
			}
			if draft.Params.Classification != tt.want {
				t.Errorf("classification = %q (score %.1f), want %q",
					draft.Params.Classification, draft.Params.Score, tt.want)
			}
			if draft.Params.StartDate != tt.keys[0] || draft.Params.EndDate != tt.keys[len(tt.keys)-1] {
				t.Errorf("range = %s..%s, want %s..%s",
					draft.Params.StartDate, draft.Params.EndDate, tt.keys[0], tt.keys[len(tt.keys)-1])
			}
			if want := len(tt.keys) - 1; draft.Params.Nights != want {
				t.Errorf("nights = %d, want %d", draft.Params.Nights, want)
			}
		})
	}
}

func TestBuildDraftForeignCountryAndOffsets(t *testing.T) {
	day1 := scoredDay("2024-07-12", 4, 2200)
	day1.Countries["pt"] = 4
	day1.Offsets[60] = 4
	day2 := scoredDay("2024-07-13", 4, 2200)
	day2.Countries["pt"] = 3
	day2.Countries["es"] = 1
	day2.Offsets[120] = 1
	day2.Offsets[60] = 3

	draft := testCalculator().BuildDraft(Run{day1.DateKey, day2.DateKey}, daySet(day1, day2), *pragueHome())
	if draft == nil {
		t.Fatal("BuildDraft() = nil, want a draft")
	}
	if want := []string{"es", "pt"}; len(draft.Params.Countries) != 2 ||
		draft.Params.Countries[0] != want[0] || draft.Params.Countries[1] != want[1] {
		t.Errorf("countries = %v, want %v", draft.Params.Countries, want)
	}
	if want := []int{60, 120}; len(draft.Params.TimezoneOffsets) != 2 ||
		draft.Params.TimezoneOffsets[0] != want[0] || draft.Params.TimezoneOffsets[1] != want[1] {
		t.Errorf("offsets = %v, want %v", draft.Params.TimezoneOffsets, want)
	}
	// Two foreign countries and one offset change must both contribute.
	if draft.Params.Breakdown.Country != 12 {
		t.Errorf("country contribution = %.1f, want 12", draft.Params.Breakdown.Country)
	}
	if draft.Params.Breakdown.Timezone != 4 {
		t.Errorf("timezone contribution = %.1f, want 4", draft.Params.Breakdown.Timezone)
	}
}

func TestBuildDraftWorkdayPenaltyLowersScore(t *testing.T) {
	calc := testCalculator()
	base := func() map[string]*DaySummary {
		days := make(map[string]*DaySummary)
		for _, key := range []string{"2024-07-11", "2024-07-12", "2024-07-13"} {
			d := scoredDay(key, 4, 300)
			d.TourismHits = 2
			d.POISamples = 4
			days[key] = d
		}
		return days
	}
	run := Run{"2024-07-11", "2024-07-12", "2024-07-13"}

	clean := calc.BuildDraft(run, base(), *pragueHome())
	if clean == nil {
		t.Fatal("BuildDraft() = nil, want a draft")
	}

	// Turn the middle day into an ordinary at-home workday inside the run.
	withWorkday := base()
	withWorkday["2024-07-12"].MaxDistanceKm = 3
	withWorkday["2024-07-12"].AwayByDistance = false
	penalized := calc.BuildDraft(run, withWorkday, *pragueHome())
	if penalized == nil {
		t.Fatal("BuildDraft() with workday = nil, want a draft")
	}

	if penalized.Params.WorkdayCount != 1 {
		t.Errorf("workday count = %d, want 1", penalized.Params.WorkdayCount)
	}
	if penalized.Params.Score >= clean.Params.Score {
		t.Errorf("score with workday = %.2f, want below %.2f", penalized.Params.Score, clean.Params.Score)
	}
}

func TestBuildDraftHolidayCountsAsFreeDay(t *testing.T) {
	calc := testCalculator()
	calc.Holidays = holiday.NewCalendarResolver("cz")

	// 2024-10-28 is a Monday and a Czech public holiday.
	day := scoredDay("2024-10-28", 4, 120)
	day.TourismHits = 4
	day.POISamples = 4

	draft := calc.BuildDraft(Run{day.DateKey}, daySet(day), *pragueHome())
	if draft == nil {
		t.Fatal("BuildDraft() = nil, want a draft")
	}
	if draft.Params.WeekendHolidayDays != 1 {
		t.Errorf("weekend/holiday days = %d, want 1", draft.Params.WeekendHolidayDays)
	}
	if draft.Params.WorkdayCount != 0 {
		t.Errorf("workday count = %d, want 0", draft.Params.WorkdayCount)
	}
}

func TestBuildDraftAirportTransferOnlyAtBoundaries(t *testing.T) {
	first := scoredDay("2024-07-11", 4, 2200)
	first.HasAirportPoi = true
	middle := scoredDay("2024-07-12", 4, 2200)
	last := scoredDay("2024-07-13", 4, 2200)

	draft := testCalculator().BuildDraft(
		Run{first.DateKey, middle.DateKey, last.DateKey},
		daySet(first, middle, last), *pragueHome())
	if draft == nil {
		t.Fatal("BuildDraft() = nil, want a draft")
	}
	if !draft.Params.AirportTransfer {
		t.Error("airport transfer = false, want true for an airport on the first day")
	}

	// The same airport signal in the middle of the run is sightseeing.
	first.HasAirportPoi = false
	middle.HasAirportPoi = true
	draft = testCalculator().BuildDraft(
		Run{first.DateKey, middle.DateKey, last.DateKey},
		daySet(first, middle, last), *pragueHome())
	if draft == nil {
		t.Fatal("BuildDraft() = nil, want a draft")
	}
	if draft.Params.AirportTransfer {
		t.Error("airport transfer = true, want false for a mid-run airport")
	}
}

func TestBuildDraftEmptyRun(t *testing.T) {
	if draft := testCalculator().BuildDraft(nil, nil, *pragueHome()); draft != nil {
		t.Errorf("BuildDraft(nil) = %+v, want nil", draft)
	}
}

func TestLabelLocalization(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"en", "Vacation in Lisboa"},
		{"cs", "Dovolená v Lisboa"},
		{"de-AT", "Urlaub in Lisboa"},
		{"fr", "Vacation in Lisboa"}, // unsupported falls back to English
		{"", "Vacation in Lisboa"},
	}
	for _, tt := range tests {
		if got := Label(tt.lang, ClassVacation, "Lisboa"); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}
