package vacation

import (
	"strings"

	"github.com/kozaktomas/photo-memories/internal/memories"
)

// PlaceFlags is the semantic classification of one place's POI annotations.
type PlaceFlags struct {
	Tourism     bool
	Residential bool
	Airport     bool
	Transit     bool
	TourismHits int // POI entries with a touristic category
	POICount    int // POI entries considered at all
}

// PoiClassifier folds free-form place categories and POI tags into the
// handful of flags the scorer cares about.
type PoiClassifier struct{}

var tourismValues = map[string]bool{
	"attraction":          true,
	"museum":              true,
	"gallery":             true,
	"viewpoint":           true,
	"zoo":                 true,
	"theme_park":          true,
	"artwork":             true,
	"castle":              true,
	"monument":            true,
	"memorial":            true,
	"ruins":               true,
	"archaeological_site": true,
	"beach":               true,
	"national_park":       true,
}

var transitValues = map[string]bool{
	"station":        true,
	"halt":           true,
	"subway":         true,
	"train_station":  true,
	"bus_station":    true,
	"ferry_terminal": true,
}

// Classify inspects the place category and its POI list.
func (PoiClassifier) Classify(place memories.Place) PlaceFlags {
	var flags PlaceFlags

	category := strings.ToLower(place.Category)
	switch category {
	case "residential", "suburb", "neighbourhood", "hamlet":
		flags.Residential = true
	case "tourism", "attraction", "leisure":
		flags.Tourism = true
	}

	for _, poi := range place.POIs {
		key := strings.ToLower(poi.Category)
		value := strings.ToLower(poi.Value)

		switch key {
		case "tourism", "historic", "leisure":
			flags.POICount++
			if key == "tourism" || tourismValues[value] {
				flags.Tourism = true
				flags.TourismHits++
			}
		case "aeroway":
			flags.POICount++
			if value == "aerodrome" || value == "airport" || value == "terminal" {
				flags.Airport = true
			}
		case "railway", "public_transport", "amenity":
			flags.POICount++
			if transitValues[value] || value == "bus_station" {
				flags.Transit = true
			}
		case "landuse", "place":
			flags.POICount++
			if value == "residential" {
				flags.Residential = true
			}
		default:
			flags.POICount++
		}

		for _, tag := range poi.Tags {
			switch strings.ToLower(tag) {
			case "airport", "aerodrome":
				flags.Airport = true
			case "sightseeing", "landmark":
				flags.Tourism = true
			}
		}
	}

	return flags
}

// TourismRatio is the share of touristic POI entries among all entries.
func (f PlaceFlags) TourismRatio() float64 {
	if f.POICount == 0 {
		return 0
	}
	return float64(f.TourismHits) / float64(f.POICount)
}
