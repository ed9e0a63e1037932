package vacation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/kozaktomas/photo-memories/internal/geo"
	"github.com/kozaktomas/photo-memories/internal/memories"
	"github.com/kozaktomas/photo-memories/internal/timezone"
)

// ErrUnresolvedTimezone marks a day summary that ended up without a local
// timezone. That cannot come from bad input data, only from a bug in an
// earlier stage, so it aborts the whole run instead of degrading.
var ErrUnresolvedTimezone = errors.New("day summary has no resolved timezone")

const dateKeyLayout = "2006-01-02"

// DaySummary is the aggregate record for one local calendar day.
type DaySummary struct {
	DateKey string
	Weekday time.Weekday

	Members    []memories.Photo // all members, chronological
	GPSMembers []memories.Photo // subset with usable GPS, chronological

	MaxDistanceKm float64 // from home, noise samples excluded
	AvgDistanceKm float64
	TravelKm      float64 // sum of consecutive point-to-point hops
	MaxSpeedKmh   float64
	AvgSpeedKmh   float64

	Countries map[string]int // country-code histogram over members
	Offsets   map[int]int    // tz-offset histogram over members

	ZoneName  string // dominant resolved local timezone for the day
	OffsetMin int

	TourismHits   int
	POISamples    int
	HasAirportPoi bool
	HasTransitPoi bool

	DensityZ   float64 // photo count vs. rolling per-weekday baseline
	Staypoints Staypoints

	BaseLocation   geo.Point // dominant dwell location of the day
	BasePlaceID    string
	BaseAway       bool // base place is non-residential and outside home
	AwayByDistance bool // max distance exceeds the away threshold

	FirstGPS *memories.Photo
	LastGPS  *memories.Photo

	CohortPresent bool // a recurring person-cohort member appears this day

	IsSynthetic bool // bridged gap day with no real photos
}

// TourismRatio is the touristic share of the day's POI samples.
func (d *DaySummary) TourismRatio() float64 {
	if d.POISamples == 0 {
		return 0
	}
	return float64(d.TourismHits) / float64(d.POISamples)
}

// isAwayCandidate reports whether the day qualifies as away on its own.
func (d *DaySummary) isAwayCandidate(minItems int) bool {
	if d.IsSynthetic || len(d.Members) < minItems {
		return false
	}
	return d.BaseAway || d.AwayByDistance
}

// newSyntheticDay materializes a bridged gap day.
func newSyntheticDay(dateKey string, zone string, offsetMin int) *DaySummary {
	ts, _ := time.Parse(dateKeyLayout, dateKey)
	return &DaySummary{
		DateKey:     dateKey,
		Weekday:     ts.Weekday(),
		ZoneName:    zone,
		OffsetMin:   offsetMin,
		Countries:   map[string]int{},
		Offsets:     map[int]int{},
		IsSynthetic: true,
	}
}

// DaySummaryBuilder folds a chronologically sorted photo corpus into one
// summary per local calendar day. The work runs as a fixed, ordered pipeline
// of stages over a shared per-day record; every stage is pure given the
// read-only build environment, so days stay independent of each other.
type DaySummaryBuilder struct {
	Resolver   timezone.Resolver
	Catalog    memories.PlaceCatalog
	Classifier PoiClassifier
	Opts       DayOptions
}

// buildEnv is the read-only cross-day context available to stages.
type buildEnv struct {
	home memories.Home
	// zones holds the resolved zone per photo id, filled during bucketing.
	zones map[string]timezone.Zone
	// cohort is the set of subjects recurring on enough distinct days.
	cohort map[string]bool
	// weekdayMean/weekdayStd are the photo-count baselines per weekday.
	weekdayMean map[time.Weekday]float64
	weekdayStd  map[time.Weekday]float64
}

// stage is one step of the day pipeline. Stages declare what they touch in
// their doc comment and must not mutate env or other days.
type stage struct {
	name  string
	apply func(b *DaySummaryBuilder, env *buildEnv, day *DaySummary) error
}

// dayStages run in exactly this order for every day.
var dayStages = []stage{
	{name: "gps_metrics", apply: (*DaySummaryBuilder).stageGpsMetrics},
	{name: "density", apply: (*DaySummaryBuilder).stageDensity},
	{name: "cohort_presence", apply: (*DaySummaryBuilder).stageCohortPresence},
	{name: "away_flag", apply: (*DaySummaryBuilder).stageAwayFlag},
}

// Build creates one DaySummary per local calendar day. photos must already
// be sorted chronologically; the initialization stage buckets them into
// local-day keys using the per-photo resolved timezone.
func (b *DaySummaryBuilder) Build(photos []memories.Photo, home memories.Home) (map[string]*DaySummary, error) {
	env := &buildEnv{
		home:        home,
		zones:       make(map[string]timezone.Zone),
		weekdayMean: make(map[time.Weekday]float64),
		weekdayStd:  make(map[time.Weekday]float64),
	}

	days, err := b.stageInitialization(env, photos)
	if err != nil {
		return nil, err
	}

	b.fillDensityBaselines(env, days)
	env.cohort = b.recurringCohort(days)

	for _, key := range sortedKeys(days) {
		day := days[key]
		for _, st := range dayStages {
			if err := st.apply(b, env, day); err != nil {
				return nil, fmt.Errorf("stage %s on %s: %w", st.name, day.DateKey, err)
			}
		}
	}
	return days, nil
}

// stageInitialization buckets photos into local-day records.
// Writes: DateKey, Weekday, Members, GPSMembers, Countries, Offsets,
// ZoneName, OffsetMin, FirstGPS, LastGPS.
func (b *DaySummaryBuilder) stageInitialization(env *buildEnv, photos []memories.Photo) (map[string]*DaySummary, error) {
	days := make(map[string]*DaySummary)

	for _, photo := range photos {
		at := photo.Point()
		if !photo.HasGPS() {
			// No position of its own: assume the photo was taken in the
			// home zone. Wrong for unflagged travel days, but those carry
			// no away signal anyway.
			at = env.home.Point
		}
		zone, err := b.Resolver.Resolve(photo.TakenAt, at)
		if err != nil {
			return nil, fmt.Errorf("resolve timezone for %s: %w", photo.ID, err)
		}
		env.zones[photo.ID] = zone

		local := photo.TakenAt.In(zone.Location)
		key := local.Format(dateKeyLayout)

		day, ok := days[key]
		if !ok {
			day = &DaySummary{
				DateKey:   key,
				Weekday:   local.Weekday(),
				Countries: map[string]int{},
				Offsets:   map[int]int{},
			}
			days[key] = day
		}

		day.Members = append(day.Members, photo)
		day.Offsets[zone.OffsetMin]++
		if photo.HasGPS() {
			day.GPSMembers = append(day.GPSMembers, photo)
			if day.FirstGPS == nil {
				p := photo
				day.FirstGPS = &p
			}
			p := photo
			day.LastGPS = &p
		}
		if photo.PlaceID != "" && b.Catalog != nil {
			if place, ok := b.Catalog.Place(photo.PlaceID); ok && place.CountryCode != "" {
				day.Countries[normalizeLocality(place.CountryCode)]++
			}
		}
	}

	for _, day := range days {
		zone, ok := dominantZone(day, env)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedTimezone, day.DateKey)
		}
		day.ZoneName = zone.Name
		day.OffsetMin = zone.OffsetMin
	}
	return days, nil
}

// dominantZone picks the most frequent resolved zone among a day's members.
func dominantZone(day *DaySummary, env *buildEnv) (timezone.Zone, bool) {
	counts := make(map[string]int)
	byName := make(map[string]timezone.Zone)
	for _, photo := range day.Members {
		zone, ok := env.zones[photo.ID]
		if !ok || zone.Name == "" {
			continue
		}
		counts[zone.Name]++
		byName[zone.Name] = zone
	}
	name := topKey(counts)
	if name == "" {
		return timezone.Zone{}, false
	}
	return byName[name], true
}

// stageGpsMetrics computes distance, travel and dwell structure.
// Reads: GPSMembers, home. Writes: Staypoints, MaxDistanceKm, AvgDistanceKm,
// TravelKm, MaxSpeedKmh, AvgSpeedKmh, BaseLocation.
func (b *DaySummaryBuilder) stageGpsMetrics(env *buildEnv, day *DaySummary) error {
	if len(day.GPSMembers) == 0 {
		return nil
	}

	points := make([]geo.Point, len(day.GPSMembers))
	times := make([]time.Time, len(day.GPSMembers))
	for i, photo := range day.GPSMembers {
		points[i] = photo.Point()
		times[i] = photo.TakenAt
	}

	detector := StaypointDetector{RadiusKm: b.Opts.StaypointRadiusKm, MinSamples: b.Opts.StaypointMinPhotos}
	day.Staypoints = detector.Detect(points, times)

	// Noise samples stay out of every aggregate: a single mis-geotagged
	// photo must not flip a day between home and away.
	clustered := day.Staypoints.clusteredIndexSet()
	retained := make([]int, 0, len(points))
	if len(clustered) > 0 {
		for i := range points {
			if clustered[i] {
				retained = append(retained, i)
			}
		}
	} else {
		// No dense region at all: the day was spent in motion, or has too
		// few samples to tell an outlier apart. Keep everything.
		for i := range points {
			retained = append(retained, i)
		}
	}

	var sumDist float64
	for n, i := range retained {
		dist := geo.DistanceKm(env.home.Point, points[i])
		sumDist += dist
		if dist > day.MaxDistanceKm {
			day.MaxDistanceKm = dist
		}
		if n > 0 {
			prev := retained[n-1]
			hop := geo.DistanceKm(points[prev], points[i])
			day.TravelKm += hop
			if dt := times[i].Sub(times[prev]); dt >= time.Minute {
				speed := hop / dt.Hours()
				if speed > day.MaxSpeedKmh {
					day.MaxSpeedKmh = speed
				}
				day.AvgSpeedKmh += speed
			}
		}
	}
	if len(retained) > 0 {
		day.AvgDistanceKm = sumDist / float64(len(retained))
	}
	if n := len(retained) - 1; n > 0 {
		day.AvgSpeedKmh /= float64(n)
	}

	if len(day.Staypoints.Clusters) > 0 {
		// Dominant dwell cluster anchors the day.
		largest := day.Staypoints.Clusters[0]
		for _, c := range day.Staypoints.Clusters[1:] {
			if len(c.Indices) > len(largest.Indices) {
				largest = c
			}
		}
		day.BaseLocation = largest.Centroid
	} else if len(retained) > 0 {
		pts := make([]geo.Point, len(retained))
		for i, idx := range retained {
			pts[i] = points[idx]
		}
		day.BaseLocation = geo.Centroid(pts)
	}
	return nil
}

// stageDensity scores the day's photo count against the per-weekday
// baseline. Reads: Members, Weekday, baselines. Writes: DensityZ.
func (b *DaySummaryBuilder) stageDensity(env *buildEnv, day *DaySummary) error {
	mean := env.weekdayMean[day.Weekday]
	std := math.Max(env.weekdayStd[day.Weekday], 1)
	day.DensityZ = (float64(len(day.Members)) - mean) / std
	return nil
}

// stageCohortPresence flags days where a recurring person-cohort member
// appears. Reads: Members, cohort. Writes: CohortPresent.
func (b *DaySummaryBuilder) stageCohortPresence(env *buildEnv, day *DaySummary) error {
	for _, photo := range day.Members {
		for _, subject := range photo.Subjects {
			if env.cohort[subject] {
				day.CohortPresent = true
				return nil
			}
		}
	}
	return nil
}

// stageAwayFlag resolves the day's base place and sets the two away flags.
// Reads: Members, BaseLocation, MaxDistanceKm, home. Writes: BasePlaceID,
// TourismHits, POISamples, HasAirportPoi, HasTransitPoi, BaseAway,
// AwayByDistance.
func (b *DaySummaryBuilder) stageAwayFlag(env *buildEnv, day *DaySummary) error {
	placeCounts := make(map[string]int)
	for _, photo := range day.Members {
		if photo.PlaceID == "" || b.Catalog == nil {
			continue
		}
		place, ok := b.Catalog.Place(photo.PlaceID)
		if !ok {
			continue
		}
		placeCounts[photo.PlaceID]++
		flags := b.Classifier.Classify(place)
		day.TourismHits += flags.TourismHits
		day.POISamples += flags.POICount
		if flags.Airport {
			day.HasAirportPoi = true
		}
		if flags.Transit {
			day.HasTransitPoi = true
		}
	}

	day.BasePlaceID = topKey(placeCounts)
	baseResidential := false
	if day.BasePlaceID != "" {
		if place, ok := b.Catalog.Place(day.BasePlaceID); ok {
			baseResidential = b.Classifier.Classify(place).Residential
		}
	}

	if !day.BaseLocation.IsZero() {
		baseDist := geo.DistanceKm(env.home.Point, day.BaseLocation)
		day.BaseAway = !baseResidential && baseDist > env.home.RadiusKm*3
	}
	day.AwayByDistance = day.MaxDistanceKm > b.Opts.AwayDistanceKm
	return nil
}

// fillDensityBaselines computes photo-count mean and stddev per weekday
// across the whole corpus.
func (b *DaySummaryBuilder) fillDensityBaselines(env *buildEnv, days map[string]*DaySummary) {
	counts := make(map[time.Weekday][]float64)
	for _, day := range days {
		counts[day.Weekday] = append(counts[day.Weekday], float64(len(day.Members)))
	}
	for wd, values := range counts {
		var sum float64
		for _, v := range values {
			sum += v
		}
		mean := sum / float64(len(values))
		var variance float64
		for _, v := range values {
			variance += (v - mean) * (v - mean)
		}
		env.weekdayMean[wd] = mean
		env.weekdayStd[wd] = math.Sqrt(variance / float64(len(values)))
	}
}

// recurringCohort finds subjects appearing on at least CohortMinDays
// distinct days.
func (b *DaySummaryBuilder) recurringCohort(days map[string]*DaySummary) map[string]bool {
	subjectDays := make(map[string]map[string]bool)
	for key, day := range days {
		for _, photo := range day.Members {
			for _, subject := range photo.Subjects {
				if subjectDays[subject] == nil {
					subjectDays[subject] = make(map[string]bool)
				}
				subjectDays[subject][key] = true
			}
		}
	}
	cohort := make(map[string]bool)
	for subject, onDays := range subjectDays {
		if len(onDays) >= b.Opts.CohortMinDays {
			cohort[subject] = true
		}
	}
	return cohort
}

// sortedKeys returns the day keys in chronological order.
func sortedKeys(days map[string]*DaySummary) []string {
	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
