package mariadb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/kozaktomas/photo-memories/internal/memories"
)

// unknownCellID is PhotoPrism's placeholder for photos without a resolved place.
const unknownCellID = "zz"

// Source reads the photo corpus straight from a PhotoPrism MariaDB instance.
// Compared to the HTTP source it sees person markers and place metadata in
// one pass, which matters for large libraries.
type Source struct {
	pool    *Pool
	catalog map[string]memories.Place
}

// NewSource wraps an open pool. The place catalog is loaded lazily on the
// first Photos call.
func NewSource(pool *Pool) *Source {
	return &Source{pool: pool}
}

// Photos implements memories.PhotoSource.
func (s *Source) Photos(ctx context.Context) ([]memories.Photo, error) {
	if s.catalog == nil {
		catalog, err := s.loadPlaces(ctx)
		if err != nil {
			return nil, err
		}
		s.catalog = catalog
	}

	query := `
		SELECT p.photo_uid, p.taken_at, p.photo_lat, p.photo_lng, p.cell_id,
		       p.photo_iso, f.file_hash, f.file_width, f.file_height
		FROM photos p
		JOIN files f ON f.photo_id = p.id AND f.file_primary = 1
		WHERE p.deleted_at IS NULL
		  AND p.photo_type = 'image'
		ORDER BY p.taken_at, p.photo_uid
	`

	rows, err := s.pool.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query photos: %w", err)
	}
	defer rows.Close()

	var photos []memories.Photo
	for rows.Next() {
		var (
			uid     string
			takenAt sql.NullTime
			lat     sql.NullFloat64
			lng     sql.NullFloat64
			cellID  sql.NullString
			iso     sql.NullInt64
			hash    sql.NullString
			width   sql.NullInt64
			height  sql.NullInt64
		)
		if err := rows.Scan(&uid, &takenAt, &lat, &lng, &cellID, &iso, &hash, &width, &height); err != nil {
			return nil, fmt.Errorf("scan photo row: %w", err)
		}
		if !takenAt.Valid {
			continue
		}

		placeID := cellID.String
		if placeID == unknownCellID {
			placeID = ""
		}

		photos = append(photos, memories.Photo{
			ID:       uid,
			TakenAt:  takenAt.Time.UTC(),
			Lat:      lat.Float64,
			Lng:      lng.Float64,
			PlaceID:  placeID,
			Checksum: hash.String,
			Width:    int(width.Int64),
			Height:   int(height.Int64),
			ISO:      int(iso.Int64),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photo rows: %w", err)
	}

	if err := s.attachSubjects(ctx, photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// Catalog returns the place catalog. Valid after the first Photos call.
func (s *Source) Catalog() memories.PlaceCatalog { return s }

// Place implements memories.PlaceCatalog.
func (s *Source) Place(id string) (memories.Place, bool) {
	place, ok := s.catalog[id]
	return place, ok
}

// attachSubjects joins valid face markers back onto the photo list.
func (s *Source) attachSubjects(ctx context.Context, photos []memories.Photo) error {
	query := `
		SELECT p.photo_uid, m.subj_uid
		FROM markers m
		JOIN files f ON f.file_uid = m.file_uid
		JOIN photos p ON p.id = f.photo_id
		WHERE m.marker_type = 'face'
		  AND m.marker_invalid = 0
		  AND m.subj_uid <> ''
		ORDER BY p.photo_uid, m.subj_uid
	`

	rows, err := s.pool.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("query markers: %w", err)
	}
	defer rows.Close()

	subjects := make(map[string][]string)
	for rows.Next() {
		var photoUID, subjUID string
		if err := rows.Scan(&photoUID, &subjUID); err != nil {
			return fmt.Errorf("scan marker row: %w", err)
		}
		subjects[photoUID] = append(subjects[photoUID], subjUID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate marker rows: %w", err)
	}

	for i := range photos {
		photos[i].Subjects = subjects[photos[i].ID]
	}
	return nil
}

// loadPlaces reads the cells and places tables into the in-memory catalog.
func (s *Source) loadPlaces(ctx context.Context) (map[string]memories.Place, error) {
	query := `
		SELECT c.id, c.cell_category, pl.place_city, pl.place_country, pl.place_keywords
		FROM cells c
		JOIN places pl ON pl.id = c.place_id
	`

	rows, err := s.pool.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query places: %w", err)
	}
	defer rows.Close()

	catalog := make(map[string]memories.Place)
	for rows.Next() {
		var (
			id       string
			category sql.NullString
			city     sql.NullString
			country  sql.NullString
			keywords sql.NullString
		)
		if err := rows.Scan(&id, &category, &city, &country, &keywords); err != nil {
			return nil, fmt.Errorf("scan place row: %w", err)
		}
		if id == unknownCellID {
			continue
		}

		catalog[id] = memories.Place{
			ID:          id,
			CountryCode: strings.ToLower(country.String),
			Locality:    city.String,
			Category:    category.String,
			POIs:        keywordPOIs(category.String, keywords.String),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate place rows: %w", err)
	}
	return catalog, nil
}

// keywordPOIs folds the cell category and comma-separated place keywords
// into POI annotations the classifier understands.
func keywordPOIs(category, keywords string) []memories.POI {
	var pois []memories.POI
	if category != "" {
		pois = append(pois, memories.POI{Category: poiCategory(category), Value: strings.ToLower(category)})
	}
	for _, kw := range strings.Split(keywords, ",") {
		kw = strings.TrimSpace(strings.ToLower(kw))
		if kw == "" {
			continue
		}
		pois = append(pois, memories.POI{Category: poiCategory(kw), Value: kw})
	}
	return pois
}

// poiCategory maps a PhotoPrism cell category or keyword onto an OSM-style key.
func poiCategory(value string) string {
	switch strings.ToLower(value) {
	case "airport", "aerodrome", "terminal":
		return "aeroway"
	case "station", "train station", "bus station", "subway", "ferry terminal":
		return "railway"
	case "museum", "gallery", "attraction", "viewpoint", "zoo", "beach",
		"castle", "monument", "memorial", "ruins", "national park", "sightseeing":
		return "tourism"
	case "residential", "suburb", "neighbourhood", "hamlet":
		return "place"
	default:
		return "amenity"
	}
}

// Ping verifies the database is reachable within the given timeout.
func (s *Source) Ping(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.pool.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping PhotoPrism database: %w", err)
	}
	return nil
}

var (
	_ memories.PhotoSource  = (*Source)(nil)
	_ memories.PlaceCatalog = (*Source)(nil)
)
