package vacation

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/kozaktomas/photo-memories/internal/geo"
	"github.com/kozaktomas/photo-memories/internal/holiday"
	"github.com/kozaktomas/photo-memories/internal/memories"
)

// ScoreCalculator turns one run into a scored, classified cluster draft.
type ScoreCalculator struct {
	Holidays   holiday.Resolver
	Catalog    memories.PlaceCatalog
	Opts       ScoreOptions
	Thresholds ThresholdOptions
	Lang       string // BCP 47 tag for the cluster label
}

// runAggregate holds per-run totals before weighting.
type runAggregate struct {
	awayDays           int // run days with real members
	maxDistanceKm      float64
	travelKm           float64
	countries          map[string]int
	offsets            map[int]bool
	tourismHits        int
	poiSamples         int
	airportTransfer    bool
	spotClusters       int
	multiSpotDays      int
	weekendHolidayDays int
	workdayCount       int
	cohortDays         int
}

// BuildDraft scores the run and builds the balanced member list. Returns
// nil when the run scores below the minimum threshold; a Run object alone
// never guarantees a cluster.
func (c ScoreCalculator) BuildDraft(run Run, days map[string]*DaySummary, home memories.Home) *memories.ClusterDraft {
	if len(run) == 0 {
		return nil
	}

	agg := c.aggregate(run, days)
	if agg.awayDays == 0 {
		return nil
	}

	homeCountry := normalizeLocality(home.CountryCode)
	foreign := 0
	for country := range agg.countries {
		if country != homeCountry {
			foreign++
		}
	}
	offsetChanges := len(agg.offsets) - 1
	if offsetChanges < 0 {
		offsetChanges = 0
	}
	tourismRatio := 0.0
	if agg.poiSamples > 0 {
		tourismRatio = float64(agg.tourismHits) / float64(agg.poiSamples)
	}

	breakdown := memories.ScoreBreakdown{
		Distance:       c.Opts.DistanceWeight * math.Log1p(agg.maxDistanceKm),
		Travel:         c.Opts.TravelWeight * math.Log1p(agg.travelKm),
		Country:        c.Opts.CountryBonus * float64(foreign),
		Timezone:       c.Opts.TimezoneBonus * float64(offsetChanges),
		Tourism:        c.Opts.TourismWeight * tourismRatio,
		Exploration:    c.Opts.SpotBonus * float64(agg.multiSpotDays),
		WeekendHoliday: c.Opts.WeekendHolidayBonus * float64(agg.weekendHolidayDays),
		Social:         c.Opts.SocialBonus * float64(agg.cohortDays),
		WorkdayPenalty: c.Opts.WorkdayPenalty * float64(agg.workdayCount),
	}
	score := breakdown.Distance + breakdown.Travel + breakdown.Country +
		breakdown.Timezone + breakdown.Tourism + breakdown.Exploration +
		breakdown.WeekendHoliday + breakdown.Social - breakdown.WorkdayPenalty

	if score < c.Thresholds.MinScore {
		return nil
	}

	classification := c.classify(score, agg.awayDays)

	nights := agg.awayDays - 1
	if nights < 0 {
		nights = 0
	}

	draft := &memories.ClusterDraft{
		Algorithm: "vacation",
		Label:     Label(c.Lang, classification, c.destination(run, days, home)),
		Centroid:  runCentroid(run, days),
		Members:   balanceMembers(run, days),
		Params: memories.ClusterParams{
			Classification:     classification,
			Score:              score,
			AwayDays:           agg.awayDays,
			Nights:             nights,
			StartDate:          run[0],
			EndDate:            run[len(run)-1],
			Countries:          sortedCountrySet(agg.countries),
			TimezoneOffsets:    sortedOffsetSet(agg.offsets),
			MaxDistanceKm:      agg.maxDistanceKm,
			TravelKm:           agg.travelKm,
			TourismRatio:       tourismRatio,
			AirportTransfer:    agg.airportTransfer,
			SpotClusters:       agg.spotClusters,
			MultiSpotDays:      agg.multiSpotDays,
			WeekendHolidayDays: agg.weekendHolidayDays,
			WorkdayCount:       agg.workdayCount,
			CohortDays:         agg.cohortDays,
			Breakdown:          breakdown,
		},
	}
	return draft
}

func (c ScoreCalculator) aggregate(run Run, days map[string]*DaySummary) runAggregate {
	agg := runAggregate{
		countries: make(map[string]int),
		offsets:   make(map[int]bool),
	}

	for i, key := range run {
		day := days[key]
		if day == nil {
			continue
		}
		if !day.IsSynthetic && len(day.Members) > 0 {
			agg.awayDays++
		}

		if day.MaxDistanceKm > agg.maxDistanceKm {
			agg.maxDistanceKm = day.MaxDistanceKm
		}
		agg.travelKm += day.TravelKm
		for country, n := range day.Countries {
			agg.countries[country] += n
		}
		for offset := range day.Offsets {
			agg.offsets[offset] = true
		}
		agg.tourismHits += day.TourismHits
		agg.poiSamples += day.POISamples

		if day.HasAirportPoi && (i == 0 || i == len(run)-1) {
			agg.airportTransfer = true
		}

		agg.spotClusters += len(day.Staypoints.Clusters)
		if len(day.Staypoints.Clusters) >= 2 {
			agg.multiSpotDays++
		}

		date, err := time.Parse(dateKeyLayout, key)
		if err != nil {
			continue
		}
		free := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday
		if !free && c.Holidays != nil && c.Holidays.IsHoliday(date) {
			free = true
		}
		switch {
		case free:
			if !day.IsSynthetic && len(day.Members) > 0 {
				agg.weekendHolidayDays++
			}
		case !day.isAwayCandidate(1) && !day.IsSynthetic && len(day.Members) > 0:
			// An ordinary workday with photos but no away signal inside a
			// run is usually commute photography, not travel.
			agg.workdayCount++
		}

		if day.CohortPresent {
			agg.cohortDays++
		}
	}
	return agg
}

func (c ScoreCalculator) classify(score float64, awayDays int) string {
	switch {
	case awayDays >= c.Thresholds.VacationMinDays && score >= c.Thresholds.VacationMinScore:
		return ClassVacation
	case awayDays >= 2 && score >= c.Thresholds.ShortTripMinScore:
		return ClassShortTrip
	default:
		return ClassDayTrip
	}
}

// destination picks the display name for the run: the most photographed
// locality, falling back to the country code and finally a generic "away".
func (c ScoreCalculator) destination(run Run, days map[string]*DaySummary, home memories.Home) string {
	if c.Catalog == nil {
		return "away"
	}
	counts := make(map[string]int)
	display := make(map[string]string)
	homeCountry := normalizeLocality(home.CountryCode)

	for _, key := range run {
		day := days[key]
		if day == nil {
			continue
		}
		for _, photo := range day.Members {
			if photo.PlaceID == "" {
				continue
			}
			place, ok := c.Catalog.Place(photo.PlaceID)
			if !ok {
				continue
			}
			name := place.Locality
			if name == "" {
				name = strings.ToUpper(place.CountryCode)
			}
			if name == "" {
				continue
			}
			// Skip the home country capital-of-commute case only when a
			// locality is missing; named foreign and domestic spots both
			// make fine titles.
			norm := normalizeLocality(name)
			if norm == homeCountry && place.Locality == "" {
				continue
			}
			counts[norm]++
			display[norm] = name
		}
	}

	best := topKey(counts)
	if best == "" {
		return "away"
	}
	return display[best]
}

// runCentroid averages the day base locations, falling back to raw GPS
// members for days without a dwell cluster.
func runCentroid(run Run, days map[string]*DaySummary) geo.Point {
	var points []geo.Point
	for _, key := range run {
		day := days[key]
		if day == nil {
			continue
		}
		if !day.BaseLocation.IsZero() {
			points = append(points, day.BaseLocation)
			continue
		}
		for _, photo := range day.GPSMembers {
			points = append(points, photo.Point())
		}
	}
	return geo.Centroid(points)
}

func sortedCountrySet(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for c := range counts {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func sortedOffsetSet(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for o := range set {
		out = append(out, o)
	}
	sort.Ints(out)
	return out
}
