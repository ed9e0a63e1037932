package photoprism

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kozaktomas/photo-memories/internal/memories"
)

// unknownCellID is PhotoPrism's placeholder for photos without a resolved place.
const unknownCellID = "zz"

const defaultPageSize = 1000

// Source adapts the PhotoPrism API to the memories photo source and place
// catalog. Photos() pages through the whole library once and fills the
// catalog as a side effect, so Catalog() is only meaningful afterwards.
type Source struct {
	client   *PhotoPrism
	pageSize int

	// WithSubjects enables person-marker enrichment. It costs one search
	// query per library subject, so callers doing a quick dry run can skip it.
	WithSubjects bool

	places map[string]memories.Place
}

// NewSource wraps an authenticated client.
func NewSource(client *PhotoPrism) *Source {
	return &Source{
		client:       client,
		pageSize:     defaultPageSize,
		WithSubjects: true,
		places:       make(map[string]memories.Place),
	}
}

// Photos implements memories.PhotoSource.
func (s *Source) Photos(ctx context.Context) ([]memories.Photo, error) {
	var out []memories.Photo

	for offset := 0; ; offset += s.pageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := s.client.GetPhotosWithQueryAndOrder(s.pageSize, offset, "photo:true", "oldest")
		if err != nil {
			return nil, fmt.Errorf("could not list photos at offset %d: %w", offset, err)
		}

		for _, photo := range page {
			converted, ok := s.convert(photo)
			if !ok {
				continue
			}
			out = append(out, converted)
		}

		if len(page) < s.pageSize {
			break
		}
	}

	if s.WithSubjects {
		if err := s.attachSubjects(ctx, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Catalog returns the place catalog accumulated by Photos().
func (s *Source) Catalog() memories.PlaceCatalog { return s }

// Place implements memories.PlaceCatalog.
func (s *Source) Place(id string) (memories.Place, bool) {
	place, ok := s.places[id]
	return place, ok
}

func (s *Source) convert(photo Photo) (memories.Photo, bool) {
	takenAt, err := time.Parse(time.RFC3339, photo.TakenAt)
	if err != nil {
		// No timestamp means the photo cannot take part in day bucketing.
		return memories.Photo{}, false
	}

	placeID := photo.CellID
	if placeID == unknownCellID {
		placeID = ""
	}
	if placeID != "" {
		if _, ok := s.places[placeID]; !ok {
			s.places[placeID] = memories.Place{
				ID:          placeID,
				CountryCode: strings.ToLower(photo.Country),
				Locality:    localityFromLabel(photo.PlaceLabel),
			}
		}
	}

	return memories.Photo{
		ID:       photo.UID,
		TakenAt:  takenAt,
		Lat:      photo.Lat,
		Lng:      photo.Lng,
		PlaceID:  placeID,
		Checksum: photo.Hash,
		Width:    photo.Width,
		Height:   photo.Height,
		ISO:      photo.Iso,
	}, true
}

// attachSubjects resolves person markers by querying photo lists per subject.
// The API does not expose markers in the search response, so this is the
// cheapest way to learn who appears where.
func (s *Source) attachSubjects(ctx context.Context, photos []memories.Photo) error {
	byUID := make(map[string]*memories.Photo, len(photos))
	for i := range photos {
		byUID[photos[i].ID] = &photos[i]
	}

	subjects, err := s.client.GetSubjects(defaultPageSize, 0)
	if err != nil {
		return fmt.Errorf("could not list subjects: %w", err)
	}

	for _, subject := range subjects {
		if subject.Hidden || subject.Excluded || subject.Slug == "" {
			continue
		}
		for offset := 0; ; offset += s.pageSize {
			if err := ctx.Err(); err != nil {
				return err
			}
			page, err := s.client.GetPhotosWithQuery(s.pageSize, offset, "person:"+subject.Slug)
			if err != nil {
				return fmt.Errorf("could not list photos of %s: %w", subject.Slug, err)
			}
			for _, photo := range page {
				if target, ok := byUID[photo.UID]; ok {
					target.Subjects = append(target.Subjects, subject.UID)
				}
			}
			if len(page) < s.pageSize {
				break
			}
		}
	}
	return nil
}

// localityFromLabel extracts the locality from a PhotoPrism place label like
// "Lisboa, Lisbon, Portugal".
func localityFromLabel(label string) string {
	if label == "" {
		return ""
	}
	first, _, _ := strings.Cut(label, ",")
	return strings.TrimSpace(first)
}

var (
	_ memories.PhotoSource  = (*Source)(nil)
	_ memories.PlaceCatalog = (*Source)(nil)
)
