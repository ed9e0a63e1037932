package memories

import (
	"context"
	"time"

	"github.com/kozaktomas/photo-memories/internal/geo"
)

// Photo is the read-only input view of one library photo. Metadata
// extraction (EXIF, hashing, face markers) happens upstream; this package
// only consumes the result.
type Photo struct {
	ID       string    // stable library UID, unique per photo
	TakenAt  time.Time // capture timestamp; photos without one are dropped
	Lat      float64
	Lng      float64
	PlaceID  string // reference into the place catalog, may be empty
	Checksum string // content hash, used as a stable tie-break

	// Quality metrics, used only for member ranking. Zero values mean the
	// metric was not computed upstream.
	Width     int
	Height    int
	Sharpness float64
	ISO       int

	// Subjects are opaque person-marker UIDs appearing on the photo.
	Subjects []string
}

// HasGPS reports whether the photo carries a usable position.
func (p Photo) HasGPS() bool {
	return !(geo.Point{Lat: p.Lat, Lon: p.Lng}).IsZero()
}

// Point returns the photo position.
func (p Photo) Point() geo.Point {
	return geo.Point{Lat: p.Lat, Lon: p.Lng}
}

// POI is one point-of-interest annotation on a place.
type POI struct {
	Category string // OSM-style key, e.g. "tourism", "aeroway"
	Value    string // e.g. "attraction", "aerodrome"
	Tags     []string
}

// Place is the read-only place record a photo may reference.
type Place struct {
	ID          string
	CountryCode string // lowercase ISO 3166-1 alpha-2
	Locality    string
	Category    string // dominant place category, e.g. "residential"
	POIs        []POI
}

// PlaceCatalog supplies place records by reference. Implementations are
// expected to be fully resolved before detection runs; lookups never block
// on I/O inside the core.
type PlaceCatalog interface {
	Place(id string) (Place, bool)
}

// PhotoSource yields the photo corpus, already deduplicated by identity.
type PhotoSource interface {
	Photos(ctx context.Context) ([]Photo, error)
}

// Home is the anchor the away/home classification measures against.
type Home struct {
	Point       geo.Point
	RadiusKm    float64
	CountryCode string
	// OffsetMin is the home timezone offset in minutes when known;
	// OffsetKnown distinguishes a real UTC home from an unset field.
	OffsetMin   int
	OffsetKnown bool
}

// ScoreBreakdown records each weighted contribution to a cluster score.
type ScoreBreakdown struct {
	Distance       float64 `json:"distance"`
	Travel         float64 `json:"travel"`
	Country        float64 `json:"country"`
	Timezone       float64 `json:"timezone"`
	Tourism        float64 `json:"tourism"`
	Exploration    float64 `json:"exploration"`
	WeekendHoliday float64 `json:"weekend_holiday"`
	Social         float64 `json:"social"`
	WorkdayPenalty float64 `json:"workday_penalty"` // subtracted from the total
}

// ClusterParams carries the classification outcome and the aggregates it was
// derived from. Downstream consumers read only the fields they need.
type ClusterParams struct {
	Classification     string         `json:"classification"`
	Score              float64        `json:"score"`
	AwayDays           int            `json:"away_days"`
	Nights             int            `json:"nights"`
	StartDate          string         `json:"start_date"` // YYYY-MM-DD, local
	EndDate            string         `json:"end_date"`
	Countries          []string       `json:"countries"`
	TimezoneOffsets    []int          `json:"timezone_offsets"`
	MaxDistanceKm      float64        `json:"max_distance_km"`
	TravelKm           float64        `json:"travel_km"`
	TourismRatio       float64        `json:"tourism_ratio"`
	AirportTransfer    bool           `json:"airport_transfer"`
	SpotClusters       int            `json:"spot_clusters"`
	MultiSpotDays      int            `json:"multi_spot_days"`
	WeekendHolidayDays int            `json:"weekend_holiday_days"`
	WorkdayCount       int            `json:"workday_count"`
	CohortDays         int            `json:"cohort_days"`
	Breakdown          ScoreBreakdown `json:"breakdown"`
}

// ClusterDraft is one detected memory cluster, immutable once built except
// for downstream member re-ranking, which may reorder but never drop members.
type ClusterDraft struct {
	Algorithm string        `json:"algorithm"`
	Label     string        `json:"label"`
	Centroid  geo.Point     `json:"centroid"`
	Members   []string      `json:"members"` // ordered, deduplicated photo ids
	Params    ClusterParams `json:"params"`
}

// Strategy is the capability every cluster strategy implements. Strategies
// are pure given a fixed corpus; running one twice on the same photos must
// yield identical drafts.
type Strategy interface {
	Name() string
	Cluster(ctx context.Context, photos []Photo) ([]ClusterDraft, error)
}
