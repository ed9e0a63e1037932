package vacation

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/kozaktomas/photo-memories/internal/geo"
	"github.com/kozaktomas/photo-memories/internal/memories"
	"github.com/kozaktomas/photo-memories/internal/monitor"
)

// lisbonTrip builds the reference corpus: three home-anchored days in Prague
// followed by five days in Lisbon, with airport shots framing the trip.
func lisbonTrip() []memories.Photo {
	var photos []memories.Photo
	for i := range 3 {
		day := time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		photos = append(photos, dayOfPhotos(day.Format("0102"), day, praguePoint, "prague-home", 4)...)
	}
	airportPoint := geo.Point{Lat: 38.7742, Lon: -9.1342}
	for i := range 5 {
		day := time.Date(2024, 7, 11, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		photos = append(photos, dayOfPhotos(day.Format("0102"), day, lisbonPoint, "lisbon-center", 4)...)
		if i == 0 || i == 4 {
			photos = append(photos, photoAt(day.Format("0102")+"-air", day.Add(10*time.Hour), airportPoint, "lisbon-airport"))
		}
	}
	return photos
}

func TestClusterDetectsVacation(t *testing.T) {
	strategy := defaultStrategy(t, Deps{ConfiguredHome: pragueHome(), Lang: "en"})

	drafts, err := strategy.Cluster(context.Background(), lisbonTrip())
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("got %d clusters, want exactly 1: %+v", len(drafts), drafts)
	}

	draft := drafts[0]
	if draft.Algorithm != "vacation" {
		t.Errorf("algorithm = %q, want vacation", draft.Algorithm)
	}
	if draft.Params.Classification != ClassVacation {
		t.Errorf("classification = %q (score %.1f), want %q",
			draft.Params.Classification, draft.Params.Score, ClassVacation)
	}
	if draft.Params.AwayDays != 5 || draft.Params.Nights != 4 {
		t.Errorf("away days/nights = %d/%d, want 5/4", draft.Params.AwayDays, draft.Params.Nights)
	}
	if draft.Params.StartDate != "2024-07-11" || draft.Params.EndDate != "2024-07-15" {
		t.Errorf("range = %s..%s, want 2024-07-11..2024-07-15", draft.Params.StartDate, draft.Params.EndDate)
	}
	if !draft.Params.AirportTransfer {
		t.Error("airport transfer = false, want true")
	}
	if want := []string{"pt"}; !reflect.DeepEqual(draft.Params.Countries, want) {
		t.Errorf("countries = %v, want %v", draft.Params.Countries, want)
	}
	if draft.Label != "Vacation in Lisboa" {
		t.Errorf("label = %q, want %q", draft.Label, "Vacation in Lisboa")
	}
	if got := geo.DistanceKm(draft.Centroid, lisbonPoint); got > 15 {
		t.Errorf("centroid %.4f,%.4f is %.1f km from Lisbon", draft.Centroid.Lat, draft.Centroid.Lon, got)
	}
	// No home-day photo may leak into the trip members.
	for _, id := range draft.Members {
		for _, homeDay := range []string{"0708", "0709", "0710"} {
			if strings.HasPrefix(id, homeDay) {
				t.Errorf("member %s belongs to a home day", id)
			}
		}
	}
}

func TestClusterSaturdayOutingIsDayTrip(t *testing.T) {
	day := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC) // Saturday
	spot := geo.Point{Lat: praguePoint.Lat + 0.63, Lon: praguePoint.Lon}
	photos := dayOfPhotos("sat", day, spot, "karlstejn", 4)

	strategy := defaultStrategy(t, Deps{ConfiguredHome: pragueHome(), Lang: "en"})
	drafts, err := strategy.Cluster(context.Background(), photos)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("got %d clusters, want 1", len(drafts))
	}
	if drafts[0].Params.Classification != ClassDayTrip {
		t.Errorf("classification = %q (score %.1f), want %q",
			drafts[0].Params.Classification, drafts[0].Params.Score, ClassDayTrip)
	}
	if drafts[0].Label != "Day trip to Karlštejn" {
		t.Errorf("label = %q, want %q", drafts[0].Label, "Day trip to Karlštejn")
	}
}

func TestClusterNearbyErrandYieldsNothing(t *testing.T) {
	// 20 km out with no tourism signal: an errand, not a memory.
	day := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	spot := geo.Point{Lat: praguePoint.Lat + 0.18, Lon: praguePoint.Lon}
	photos := dayOfPhotos("errand", day, spot, "", 4)

	strategy := defaultStrategy(t, Deps{ConfiguredHome: pragueHome()})
	drafts, err := strategy.Cluster(context.Background(), photos)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("got %d clusters, want none: %+v", len(drafts), drafts)
	}
}

func TestClusterDegenerateHomeDisablesDetection(t *testing.T) {
	rec := &monitor.Recorder{}
	strategy := defaultStrategy(t, Deps{
		ConfiguredHome: &memories.Home{Point: geo.Point{}},
		Emitter:        rec,
	})

	drafts, err := strategy.Cluster(context.Background(), lisbonTrip())
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	if drafts != nil {
		t.Errorf("got %v, want nil for a (0,0) home", drafts)
	}

	statuses := rec.Statuses()
	if len(statuses) == 0 || statuses[len(statuses)-1] != monitor.StatusWarning {
		t.Errorf("statuses = %v, want trailing warning", statuses)
	}
}

func TestClusterWithoutLocationDataWarnsAndSkips(t *testing.T) {
	photos := []memories.Photo{
		{ID: "p1", TakenAt: time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)},
		{ID: "p2", TakenAt: time.Date(2024, 6, 6, 12, 0, 0, 0, time.UTC)},
	}
	rec := &monitor.Recorder{}
	strategy := defaultStrategy(t, Deps{Emitter: rec})

	drafts, err := strategy.Cluster(context.Background(), photos)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	if drafts != nil {
		t.Errorf("got %v, want nil without any GPS data", drafts)
	}
	statuses := rec.Statuses()
	if len(statuses) == 0 || statuses[len(statuses)-1] != monitor.StatusWarning {
		t.Errorf("statuses = %v, want trailing warning", statuses)
	}
}

func TestClusterDeterministicUnderPermutation(t *testing.T) {
	photos := lisbonTrip()
	reversed := make([]memories.Photo, len(photos))
	for i, p := range photos {
		reversed[len(photos)-1-i] = p
	}
	// Duplicate deliveries must not change the outcome either.
	noisy := append(append([]memories.Photo(nil), reversed...), photos[3], photos[7])

	strategy := defaultStrategy(t, Deps{ConfiguredHome: pragueHome(), Lang: "en"})
	first, err := strategy.Cluster(context.Background(), photos)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	second, err := strategy.Cluster(context.Background(), noisy)
	if err != nil {
		t.Fatalf("Cluster (permuted): %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("permuted corpus changed the result:\n%+v\nvs\n%+v", first, second)
	}
}

func TestClusterDSTWeekendKeepsOneRun(t *testing.T) {
	// DST ends in Prague between these two days; both must land in the same
	// run with both offsets recorded.
	spot := geo.Point{Lat: praguePoint.Lat + 1.1, Lon: praguePoint.Lon}
	photos := append(
		dayOfPhotos("sat", time.Date(2024, 10, 26, 0, 0, 0, 0, time.UTC), spot, "", 4),
		dayOfPhotos("sun", time.Date(2024, 10, 27, 0, 0, 0, 0, time.UTC), spot, "", 4)...)

	strategy := defaultStrategy(t, Deps{ConfiguredHome: pragueHome(), Lang: "en"})
	drafts, err := strategy.Cluster(context.Background(), photos)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("got %d clusters, want 1", len(drafts))
	}

	draft := drafts[0]
	if draft.Params.StartDate != "2024-10-26" || draft.Params.EndDate != "2024-10-27" {
		t.Errorf("range = %s..%s, want 2024-10-26..2024-10-27", draft.Params.StartDate, draft.Params.EndDate)
	}
	if want := []int{60, 120}; !reflect.DeepEqual(draft.Params.TimezoneOffsets, want) {
		t.Errorf("offsets = %v, want %v", draft.Params.TimezoneOffsets, want)
	}
	if draft.Params.Classification != ClassShortTrip {
		t.Errorf("classification = %q (score %.1f), want %q",
			draft.Params.Classification, draft.Params.Score, ClassShortTrip)
	}
}

func TestClusterLifecycleEvents(t *testing.T) {
	rec := &monitor.Recorder{}
	strategy := defaultStrategy(t, Deps{ConfiguredHome: pragueHome(), Emitter: rec})

	if _, err := strategy.Cluster(context.Background(), lisbonTrip()); err != nil {
		t.Fatalf("Cluster: %v", err)
	}

	want := []string{EventStart, EventFiltered, EventHomeDetermined, EventDaysAggregated, EventCompleted}
	if got := rec.Statuses(); !reflect.DeepEqual(got, want) {
		t.Errorf("lifecycle = %v, want %v", got, want)
	}

	for _, ev := range rec.Events() {
		if ev.Job != "memories.vacation" {
			t.Errorf("event job = %q, want memories.vacation", ev.Job)
		}
	}
}

func TestClusterDropsPhotosWithoutTimestamp(t *testing.T) {
	photos := append(lisbonTrip(), memories.Photo{ID: "broken", Lat: lisbonPoint.Lat, Lng: lisbonPoint.Lon})

	rec := &monitor.Recorder{}
	strategy := defaultStrategy(t, Deps{ConfiguredHome: pragueHome(), Emitter: rec})
	if _, err := strategy.Cluster(context.Background(), photos); err != nil {
		t.Fatalf("Cluster: %v", err)
	}

	events := rec.Events()
	if len(events) < 2 {
		t.Fatalf("got %d events, want at least 2", len(events))
	}
	filtered := events[1]
	if filtered.Status != EventFiltered {
		t.Fatalf("second event = %s, want %s", filtered.Status, EventFiltered)
	}
	if dropped, _ := filtered.Fields["dropped"].(int); dropped != 1 {
		t.Errorf("dropped = %v, want 1", filtered.Fields["dropped"])
	}
}

func TestStrategyName(t *testing.T) {
	strategy := defaultStrategy(t, Deps{ConfiguredHome: pragueHome()})
	if got := strategy.Name(); got != "vacation" {
		t.Errorf("Name() = %q, want vacation", got)
	}
}
