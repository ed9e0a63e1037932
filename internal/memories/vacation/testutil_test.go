package vacation

import (
	"fmt"
	"testing"
	"time"

	"github.com/kozaktomas/photo-memories/internal/geo"
	"github.com/kozaktomas/photo-memories/internal/memories"
	"github.com/kozaktomas/photo-memories/internal/timezone"
)

// Reference coordinates used across the package tests.
var (
	praguePoint = geo.Point{Lat: 50.0755, Lon: 14.4378}
	lisbonPoint = geo.Point{Lat: 38.7223, Lon: -9.1393}
)

// stubCatalog is an in-memory PlaceCatalog.
type stubCatalog map[string]memories.Place

func (c stubCatalog) Place(id string) (memories.Place, bool) {
	p, ok := c[id]
	return p, ok
}

// testCatalog covers home, a touristic destination and an airport.
func testCatalog() stubCatalog {
	return stubCatalog{
		"prague-home": {
			ID:          "prague-home",
			CountryCode: "cz",
			Locality:    "Praha",
			Category:    "residential",
		},
		"lisbon-center": {
			ID:          "lisbon-center",
			CountryCode: "pt",
			Locality:    "Lisboa",
			POIs:        []memories.POI{{Category: "tourism", Value: "attraction"}},
		},
		"lisbon-airport": {
			ID:          "lisbon-airport",
			CountryCode: "pt",
			Locality:    "Lisboa",
			POIs:        []memories.POI{{Category: "aeroway", Value: "aerodrome"}},
		},
		"karlstejn": {
			ID:          "karlstejn",
			CountryCode: "cz",
			Locality:    "Karlštejn",
			POIs:        []memories.POI{{Category: "tourism", Value: "castle"}},
		},
		"bored-office": {
			ID:          "bored-office",
			CountryCode: "cz",
			Locality:    "Praha",
			Category:    "residential",
		},
	}
}

// cityResolver resolves Europe/Lisbon west of Greenwich and Europe/Prague
// everywhere else, which is all the geography the tests need.
type cityResolver struct{}

func (cityResolver) Resolve(ts time.Time, p geo.Point) (timezone.Zone, error) {
	name := "Europe/Prague"
	if p.Lon < 0 {
		name = "Europe/Lisbon"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return timezone.Zone{}, err
	}
	_, offsetSec := ts.In(loc).Zone()
	return timezone.Zone{Name: name, OffsetMin: offsetSec / 60, Location: loc}, nil
}

// photoAt builds a GPS-bearing test photo.
func photoAt(id string, ts time.Time, at geo.Point, placeID string) memories.Photo {
	return memories.Photo{
		ID:       id,
		TakenAt:  ts,
		Lat:      at.Lat,
		Lng:      at.Lon,
		PlaceID:  placeID,
		Checksum: "sum-" + id,
	}
}

// dayOfPhotos emits n photos spread over the afternoon of the given day,
// jittered a few dozen metres around the anchor so they form one staypoint.
func dayOfPhotos(prefix string, day time.Time, at geo.Point, placeID string, n int) []memories.Photo {
	photos := make([]memories.Photo, 0, n)
	for i := range n {
		p := geo.Point{
			Lat: at.Lat + float64(i)*0.0003,
			Lon: at.Lon + float64(i)*0.0002,
		}
		ts := day.Add(time.Duration(13+i) * time.Hour)
		photos = append(photos, photoAt(fmt.Sprintf("%s-%d", prefix, i), ts, p, placeID))
	}
	return photos
}

// pragueHome is the configured home used by most tests.
func pragueHome() *memories.Home {
	return &memories.Home{Point: praguePoint, RadiusKm: 1.5, CountryCode: "cz"}
}

func defaultStrategy(t *testing.T, deps Deps) *ClusterStrategy {
	t.Helper()
	if deps.Resolver == nil {
		deps.Resolver = cityResolver{}
	}
	if deps.Catalog == nil {
		deps.Catalog = testCatalog()
	}
	return New(DefaultOptions(), deps)
}
