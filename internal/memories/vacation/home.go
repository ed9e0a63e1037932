package vacation

import (
	"math"
	"sort"

	"github.com/kozaktomas/photo-memories/internal/geo"
	"github.com/kozaktomas/photo-memories/internal/memories"
	"github.com/kozaktomas/photo-memories/internal/timezone"
)

// HomeLocator determines the home anchor. An explicitly configured home
// always wins; otherwise home is inferred from where daylight-hour photos
// recur across the most distinct days.
type HomeLocator struct {
	Configured *memories.Home
	Resolver   timezone.Resolver
	Catalog    memories.PlaceCatalog
	Opts       HomeOptions
}

// DetermineHome returns the home anchor or nil when the corpus carries no
// location data at all. A nil home disables vacation detection for the
// corpus; it is not an error.
func (l HomeLocator) DetermineHome(photos []memories.Photo) *memories.Home {
	if l.Configured != nil {
		home := *l.Configured
		if home.RadiusKm <= 0 {
			home.RadiusKm = l.Opts.DefaultRadiusKm
		}
		return &home
	}
	return l.infer(photos)
}

type homeSample struct {
	point     geo.Point
	dateKey   string
	offsetMin int
	placeID   string
}

func (l HomeLocator) infer(photos []memories.Photo) *memories.Home {
	var samples []homeSample
	anyGPS := false

	for _, photo := range photos {
		if !photo.HasGPS() {
			continue
		}
		anyGPS = true

		zone, err := l.Resolver.Resolve(photo.TakenAt, photo.Point())
		if err != nil {
			continue
		}
		local := photo.TakenAt.In(zone.Location)
		if local.Hour() < l.Opts.DaylightFromHour || local.Hour() >= l.Opts.DaylightToHour {
			continue
		}
		samples = append(samples, homeSample{
			point:     photo.Point(),
			dateKey:   local.Format("2006-01-02"),
			offsetMin: zone.OffsetMin,
			placeID:   photo.PlaceID,
		})
	}

	if !anyGPS {
		return nil
	}
	if len(samples) == 0 {
		// Only night photos carry GPS. Fall back to all GPS samples rather
		// than giving up on the corpus.
		for _, photo := range photos {
			if !photo.HasGPS() {
				continue
			}
			zone, err := l.Resolver.Resolve(photo.TakenAt, photo.Point())
			if err != nil {
				continue
			}
			samples = append(samples, homeSample{
				point:     photo.Point(),
				dateKey:   photo.TakenAt.In(zone.Location).Format("2006-01-02"),
				offsetMin: zone.OffsetMin,
				placeID:   photo.PlaceID,
			})
		}
	}
	if len(samples) == 0 {
		return nil
	}

	points := make([]geo.Point, len(samples))
	for i, s := range samples {
		points[i] = s.point
	}
	res := geo.DBSCAN(points, l.Opts.ClusterRadiusKm, 2)
	if len(res.Clusters) == 0 {
		return nil
	}

	// Home is where photos recur across the most distinct days, not where
	// the most photos were taken. One wedding weekend must not beat months
	// of kitchen snapshots.
	best := -1
	bestDays := 0
	for i, cluster := range res.Clusters {
		days := make(map[string]bool)
		for _, idx := range cluster.Indices {
			days[samples[idx].dateKey] = true
		}
		if len(days) > bestDays {
			best = i
			bestDays = len(days)
		}
	}
	if best < 0 || bestDays < l.Opts.MinSampleDays {
		return nil
	}

	cluster := res.Clusters[best]
	clusterPoints := make([]geo.Point, len(cluster.Indices))
	for i, idx := range cluster.Indices {
		clusterPoints[i] = samples[idx].point
	}

	home := &memories.Home{
		Point:    cluster.Centroid,
		RadiusKm: math.Max(l.Opts.DefaultRadiusKm, geo.SpreadKm(clusterPoints)),
	}
	home.CountryCode = l.dominantCountry(samples, cluster.Indices)
	home.OffsetMin, home.OffsetKnown = dominantOffset(samples, cluster.Indices)
	return home
}

func (l HomeLocator) dominantCountry(samples []homeSample, indices []int) string {
	if l.Catalog == nil {
		return ""
	}
	counts := make(map[string]int)
	for _, idx := range indices {
		if samples[idx].placeID == "" {
			continue
		}
		if place, ok := l.Catalog.Place(samples[idx].placeID); ok && place.CountryCode != "" {
			counts[place.CountryCode]++
		}
	}
	return topKey(counts)
}

func dominantOffset(samples []homeSample, indices []int) (int, bool) {
	counts := make(map[int]int)
	for _, idx := range indices {
		counts[samples[idx].offsetMin]++
	}
	if len(counts) == 0 {
		return 0, false
	}
	offsets := make([]int, 0, len(counts))
	for o := range counts {
		offsets = append(offsets, o)
	}
	sort.Ints(offsets)
	best := offsets[0]
	for _, o := range offsets[1:] {
		if counts[o] > counts[best] {
			best = o
		}
	}
	return best, true
}

// topKey returns the most frequent key, ties broken lexicographically so the
// result does not depend on map iteration order.
func topKey(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best := ""
	bestCount := 0
	for _, k := range keys {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best
}
